package team

import "fmt"

// Team is a club enrolled into competitions. Matches embed a snapshot of the
// Team at fixture-generation time, so later edits never rewrite played games.
type Team struct {
	ID      string
	Name    string
	Country string
	LogoRef string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Country == "" {
		return fmt.Errorf("team country is required")
	}

	return nil
}
