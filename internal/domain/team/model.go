package team

import (
	"fmt"
	"strings"
)

// Team is a club inside a league. LeagueKey is fixed when the team is first
// stored; later upserts refresh only Name and Logo.
type Team struct {
	Key       string
	Name      string
	Logo      string
	LeagueKey string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return fmt.Errorf("team key is required")
	}
	if strings.TrimSpace(t.LeagueKey) == "" {
		return fmt.Errorf("team league key is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
