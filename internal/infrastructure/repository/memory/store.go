package memory

import "github.com/riskibarqy/hoops-sync/internal/platform/id"

// Store bundles one in-memory repository per entity.
type Store struct {
	Countries   *CountryRepository
	Leagues     *LeagueRepository
	Teams       *TeamRepository
	Players     *PlayerRepository
	Fixtures    *FixtureRepository
	Scores      *ScoreRepository
	Statistics  *StatisticRepository
	Lineups     *LineupRepository
	PlayerStats *PlayerStatsRepository
	Standings   *StandingRepository
}

func NewStore(ids id.Generator) *Store {
	return &Store{
		Countries:   NewCountryRepository(),
		Leagues:     NewLeagueRepository(),
		Teams:       NewTeamRepository(),
		Players:     NewPlayerRepository(),
		Fixtures:    NewFixtureRepository(ids),
		Scores:      NewScoreRepository(),
		Statistics:  NewStatisticRepository(),
		Lineups:     NewLineupRepository(),
		PlayerStats: NewPlayerStatsRepository(),
		Standings:   NewStandingRepository(),
	}
}
