package standing

import (
	"sort"
	"strconv"
	"strings"
)

// Standing is one team's row in a league table. Identity is the composite
// (TeamKey, LeagueKey, LeagueSeason, LeagueRound); every value is stored as
// the provider formats it.
type Standing struct {
	TeamKey       string
	LeagueKey     string
	LeagueSeason  string
	LeagueRound   string
	Place         string
	PlaceType     string
	TeamName      string
	Played        string
	Won           string
	WonOvertime   string
	Lost          string
	LostOvertime  string
	PointsFor     string
	PointsAgainst string
	Pct           string
	SourceUpdated string
}

// SortByPlace orders rows by numeric place ascending. Rows whose place is not
// an integer sort after numbered rows, lexicographically.
func SortByPlace(items []Standing) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, okI := placeNumber(items[i].Place)
		pj, okJ := placeNumber(items[j].Place)
		switch {
		case okI && okJ:
			return pi < pj
		case okI != okJ:
			return okI
		default:
			return items[i].Place < items[j].Place
		}
	})
}

func placeNumber(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
