package fixture

import "strings"

// Side identifies the home or away half of a fixture.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

const (
	StatusFinished  = "Finished"
	StatusCancelled = "Cancelled"
	StatusPostponed = "Postponed"
)

// Fixture is one game. ID is a surrogate key assigned on first store and kept
// across upserts; EventKey is the provider's natural key.
type Fixture struct {
	ID           string
	EventKey     string
	Date         string
	Time         string
	Status       string
	Quarter      string
	FinalResult  string
	Live         bool
	LeagueKey    string
	LeagueRound  string
	LeagueSeason string
	HomeTeamKey  string
	AwayTeamKey  string
}

// TeamKey returns the team playing on side s.
func (f Fixture) TeamKey(s Side) string {
	if s == SideAway {
		return f.AwayTeamKey
	}
	return f.HomeTeamKey
}

func IsFinishedStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "finished", "after over time", "after ot":
		return true
	default:
		return false
	}
}

// ParseLive reads the provider's event_live flag ("1"/"0").
func ParseLive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Score is the per-quarter scoreline of a fixture; one row per quarter.
type Score struct {
	FixtureID string
	Quarter   string
	Home      string
	Away      string
}

// Statistic is one team box-score line, e.g. Rebounds home=40 away=35.
type Statistic struct {
	FixtureID string
	Type      string
	Home      string
	Away      string
}
