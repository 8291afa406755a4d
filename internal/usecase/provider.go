package usecase

import "context"

// BasketballProvider is the upstream data source. Every method returns an
// *UpstreamError on transport failure or a non-success envelope.
type BasketballProvider interface {
	FetchCountries(ctx context.Context) ([]ExternalCountry, error)
	FetchLeagues(ctx context.Context, countryKey string) ([]ExternalLeague, error)
	FetchTeams(ctx context.Context, leagueKey string) ([]ExternalTeam, error)
	FetchFixtures(ctx context.Context, query FixtureQuery) ([]ExternalFixture, error)
	FetchLivescore(ctx context.Context, leagueKey string) ([]ExternalFixture, error)
	FetchStandings(ctx context.Context, leagueKey string) ([]ExternalStanding, error)
	FetchH2H(ctx context.Context, firstTeamKey, secondTeamKey string) (ExternalH2H, error)
}

// Optional marks a payload block that may be absent. An empty but present
// block (e.g. "statistics": []) has Present=true.
type Optional[T any] struct {
	Value   T
	Present bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

type FixtureQuery struct {
	From       string
	To         string
	LeagueKey  string
	TeamKey    string
	CountryKey string
}

type ExternalCountry struct {
	Key  string
	Name string
	Logo string
}

type ExternalLeague struct {
	Key        string
	Name       string
	CountryKey string
	Logo       string
}

type ExternalTeam struct {
	Key  string
	Name string
	Logo string
}

type ExternalFixture struct {
	EventKey     string
	Date         string
	Time         string
	HomeTeamName string
	HomeTeamKey  string
	AwayTeamName string
	AwayTeamKey  string
	FinalResult  string
	Quarter      string
	Status       string
	Live         string
	CountryName  string
	LeagueName   string
	LeagueKey    string
	LeagueRound  string
	LeagueSeason string

	Scores           Optional[ExternalQuarterScores]
	Statistics       Optional[[]ExternalStatistic]
	Lineups          Optional[ExternalLineups]
	PlayerStatistics Optional[ExternalPlayerStatistics]
}

// ExternalQuarterScores holds every entry reported per quarter, keyed by the
// provider label ("1stQuarter" ... "4thQuarter").
type ExternalQuarterScores struct {
	ByQuarter map[string][]ExternalQuarterScore
}

type ExternalQuarterScore struct {
	Home string
	Away string
}

type ExternalStatistic struct {
	Type string
	Home string
	Away string
}

type ExternalLineups struct {
	Home Optional[ExternalTeamLineup]
	Away Optional[ExternalTeamLineup]
}

type ExternalTeamLineup struct {
	Starters    []ExternalLineupPlayer
	Substitutes []ExternalLineupPlayer
}

type ExternalLineupPlayer struct {
	Key  string
	Name string
}

type ExternalPlayerStatistics struct {
	Home []ExternalPlayerStatistic
	Away []ExternalPlayerStatistic
}

type ExternalPlayerStatistic struct {
	PlayerKey          string
	PlayerName         string
	Position           string
	Minutes            string
	Points             string
	Assists            string
	Blocks             string
	Steals             string
	Turnovers          string
	PersonalFouls      string
	PlusMinus          string
	DefenseRebounds    string
	OffenceRebounds    string
	TotalRebounds      string
	FieldGoalsMade     string
	FieldGoalsAttempts string
	ThreePointMade     string
	ThreePointAttempts string
	FreeThrowsMade     string
	FreeThrowsAttempts string
	OnCourt            string
}

type ExternalStanding struct {
	TeamKey       string
	TeamName      string
	LeagueKey     string
	LeagueSeason  string
	LeagueRound   string
	Place         string
	PlaceType     string
	Played        string
	Won           string
	WonOvertime   string
	Lost          string
	LostOvertime  string
	PointsFor     string
	PointsAgainst string
	Pct           string
	Updated       string
}

// ExternalH2H is passed through to callers as reported by the provider.
type ExternalH2H struct {
	H2H            []ExternalFixture
	FirstTeamLast  []ExternalFixture
	SecondTeamLast []ExternalFixture
}
