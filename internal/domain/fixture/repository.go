package fixture

import "context"

// Filter narrows fixture listings. Zero values are ignored; dates are
// inclusive YYYY-MM-DD bounds.
type Filter struct {
	LeagueKey string
	TeamKey   string
	Season    string
	DateFrom  string
	DateTo    string
	Limit     int
	Offset    int
}

// Repository persists fixtures by event key.
type Repository interface {
	// Upsert stores item by EventKey and returns the stored fixture with its
	// surrogate ID. created is false when the event key already existed.
	Upsert(ctx context.Context, item Fixture) (Fixture, bool, error)
	GetByID(ctx context.Context, id string) (Fixture, bool, error)
	GetByEventKey(ctx context.Context, eventKey string) (Fixture, bool, error)
	// List returns fixtures newest date first.
	List(ctx context.Context, filter Filter) ([]Fixture, error)
	Count(ctx context.Context, filter Filter) (int, error)
	// LeagueSummary returns the distinct team keys appearing in the league's
	// fixtures and the greatest season label.
	LeagueSummary(ctx context.Context, leagueKey string) (teamKeys []string, latestSeason string, err error)
}

// ScoreRepository keeps one row per (fixture, quarter).
type ScoreRepository interface {
	UpsertScore(ctx context.Context, item Score) (bool, error)
	ListScores(ctx context.Context, fixtureID string) ([]Score, error)
}

// StatisticRepository stores team box scores, replaced as a whole per fixture.
type StatisticRepository interface {
	ReplaceStatistics(ctx context.Context, fixtureID string, items []Statistic) error
	ListStatistics(ctx context.Context, fixtureID string) ([]Statistic, error)
}
