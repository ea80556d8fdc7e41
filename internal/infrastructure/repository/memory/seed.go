package memory

import (
	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/team"
)

const (
	CompetitionIDLiga1      = "idn-liga-1-2026"
	CompetitionIDPialaMerah = "idn-piala-merah-2026"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "idn-persija", Name: "Persija Jakarta", Country: "ID", LogoRef: "logos/persija.png"},
		{ID: "idn-persib", Name: "Persib Bandung", Country: "ID", LogoRef: "logos/persib.png"},
		{ID: "idn-persebaya", Name: "Persebaya Surabaya", Country: "ID", LogoRef: "logos/persebaya.png"},
		{ID: "idn-baliutd", Name: "Bali United", Country: "ID", LogoRef: "logos/baliutd.png"},
		{ID: "idn-psm", Name: "PSM Makassar", Country: "ID", LogoRef: "logos/psm.png"},
		{ID: "idn-arema", Name: "Arema FC", Country: "ID", LogoRef: "logos/arema.png"},
	}
}

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:           CompetitionIDLiga1,
			Name:         "Liga 1 Indonesia",
			Season:       "2026/2027",
			Status:       competition.StatusUpcoming,
			Format:       competition.FormatLeague,
			TwoLegged:    true,
			DrawsAllowed: true,
			TeamIDs: []string{
				"idn-persija",
				"idn-persib",
				"idn-persebaya",
				"idn-baliutd",
				"idn-psm",
				"idn-arema",
			},
		},
		{
			ID:           CompetitionIDPialaMerah,
			Name:         "Piala Merah Putih",
			Season:       "2026",
			Status:       competition.StatusUpcoming,
			Format:       competition.FormatCup,
			DrawsAllowed: false,
			TeamIDs: []string{
				"idn-persija",
				"idn-persib",
				"idn-persebaya",
				"idn-baliutd",
			},
		},
	}
}
