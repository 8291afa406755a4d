package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
)

// Store groups every repository over one connection pool.
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

func NewStore(db *sqlx.DB, ids id.Generator) *Store {
	return &Store{
		Countries:   NewCountryRepository(db),
		Leagues:     NewLeagueRepository(db),
		Teams:       NewTeamRepository(db),
		Players:     NewPlayerRepository(db),
		Fixtures:    NewFixtureRepository(db, ids),
		Scores:      NewScoreRepository(db),
		Statistics:  NewStatisticRepository(db),
		Lineups:     NewLineupRepository(db),
		PlayerStats: NewPlayerStatsRepository(db),
		Standings:   NewStandingRepository(db),
	}
}
