package standings

// Row is one ranking line. Rows are always derived on demand from the
// finished matches of a competition, never persisted.
type Row struct {
	TeamID           string
	TeamName         string
	LogoRef          string
	Played           int
	Wins             int
	WinsByShootout   int
	Draws            int
	Losses           int
	LossesByShootout int
	GoalsFor         int
	GoalsAgainst     int
	GoalDifference   int
	Points           int
}
