package competition

import "fmt"

const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

const (
	FormatLeague = "league"
	FormatCup    = "cup"
	FormatMixed  = "mixed"
)

// Competition ties enrolled teams to a fixture format. DrawsAllowed selects
// the standings scoring model: when true, tied regulation results stand as
// draws (3/1/0); when false, every match must be decided, and shootout
// winners/losers take 2/1 points.
type Competition struct {
	ID             string
	Name           string
	Season         string
	Status         string
	TeamIDs        []string
	Format         string
	TwoLegged      bool
	TeamsPerGroup  int
	DrawsAllowed   bool
	DefaultArenaID string
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	if c.Season == "" {
		return fmt.Errorf("competition season is required")
	}
	switch c.Format {
	case FormatLeague, FormatCup, FormatMixed:
	default:
		return fmt.Errorf("invalid competition format %q", c.Format)
	}
	if c.Format == FormatMixed && c.TeamsPerGroup < 2 {
		return fmt.Errorf("mixed format requires teams per group >= 2, got %d", c.TeamsPerGroup)
	}

	seen := make(map[string]struct{}, len(c.TeamIDs))
	for _, teamID := range c.TeamIDs {
		if teamID == "" {
			return fmt.Errorf("enrolled team id cannot be empty")
		}
		if _, ok := seen[teamID]; ok {
			return fmt.Errorf("team %s enrolled more than once", teamID)
		}
		seen[teamID] = struct{}{}
	}

	return nil
}

// HasTeam reports whether teamID is enrolled.
func (c Competition) HasTeam(teamID string) bool {
	for _, id := range c.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
