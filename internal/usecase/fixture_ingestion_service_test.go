package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/lineup"
	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"github.com/riskibarqy/hoops-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
	"github.com/riskibarqy/hoops-sync/internal/platform/lock"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore(&id.Sequence{Prefix: "fx-"})
	_, err := store.Leagues.Upsert(ctx, league.League{Key: "757", Name: "Euroleague", CountryKey: "5"})
	require.NoError(t, err)
	for _, tm := range []team.Team{
		{Key: "100", Name: "Real Madrid", LeagueKey: "757"},
		{Key: "200", Name: "Olympiacos", LeagueKey: "757"},
	} {
		_, err := store.Teams.Upsert(ctx, tm)
		require.NoError(t, err)
	}
	return store
}

func fixtureRepos(store *memory.Store) FixtureRepositories {
	return FixtureRepositories{
		Leagues:     store.Leagues,
		Teams:       store.Teams,
		Players:     store.Players,
		Fixtures:    store.Fixtures,
		Scores:      store.Scores,
		Statistics:  store.Statistics,
		Lineups:     store.Lineups,
		PlayerStats: store.PlayerStats,
	}
}

func testSupport(locker lock.Locker) SyncSupport {
	return SyncSupport{Locker: locker, Logger: logging.NewNop()}
}

func fullFixturePayload() ExternalFixture {
	return ExternalFixture{
		EventKey:     "9001",
		Date:         "2025-01-10",
		Time:         "20:00",
		HomeTeamKey:  "100",
		AwayTeamKey:  "200",
		FinalResult:  "88 - 80",
		Status:       "Finished",
		Live:         "0",
		LeagueKey:    "757",
		LeagueRound:  "Round 20",
		LeagueSeason: "2024/2025",
		Scores: Some(ExternalQuarterScores{ByQuarter: map[string][]ExternalQuarterScore{
			"1stQuarter": {{Home: "20", Away: "18"}, {Home: "99", Away: "99"}},
			"2ndQuarter": {{Home: "22", Away: "20"}},
			"3rdQuarter": {{Home: "24", Away: "21"}},
			"4thQuarter": {{Home: "22", Away: "21"}},
		}}),
		Statistics: Some([]ExternalStatistic{
			{Type: "Rebounds", Home: "40", Away: "35"},
			{Type: "Assists", Home: "20", Away: "18"},
		}),
		Lineups: Some(ExternalLineups{
			Home: Some(ExternalTeamLineup{
				Starters:    []ExternalLineupPlayer{{Key: "p1", Name: "Campazzo"}},
				Substitutes: []ExternalLineupPlayer{{Key: "p2", Name: "Llull"}},
			}),
			Away: Some(ExternalTeamLineup{
				Starters: []ExternalLineupPlayer{{Key: "p3", Name: "Vezenkov"}},
			}),
		}),
		PlayerStatistics: Some(ExternalPlayerStatistics{
			Home: []ExternalPlayerStatistic{
				{PlayerKey: "p1", Points: "18", FieldGoalsMade: "7", FieldGoalsAttempts: "12"},
				{PlayerKey: "p2", Points: "9"},
			},
			Away: []ExternalPlayerStatistic{
				{PlayerKey: "p3", Points: "21"},
				{PlayerKey: "p9", Points: "4"},
			},
		}),
	}
}

func TestFixtureIngestion_IdempotentAcrossRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

	query := FixtureQuery{From: "2025-01-01", To: "2025-01-31", LeagueKey: "757"}
	first := fullFixturePayload()
	second := fullFixturePayload()
	second.Statistics = Some([]ExternalStatistic{{Type: "Steals", Home: "8", Away: "6"}})

	provider.On("FetchFixtures", mock.Anything, query).Return([]ExternalFixture{first}, nil).Once()
	provider.On("FetchFixtures", mock.Anything, query).Return([]ExternalFixture{second}, nil).Once()

	input := FixtureSyncInput{From: "2025-01-01", To: "2025-01-31", LeagueKey: "757"}
	res, err := service.SyncFixtures(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)

	skipped := res.Skipped(entityPlayerStatistic)
	require.Len(t, skipped, 1)
	assert.Equal(t, "missing_player", skipped[0].Reason)

	res, err = service.SyncFixtures(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)

	assert.Equal(t, 1, store.Fixtures.Len())
	fx, ok, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fx-1", fx.ID)

	scores, err := store.Scores.ListScores(ctx, fx.ID)
	require.NoError(t, err)
	require.Len(t, scores, 4)
	for _, score := range scores {
		if score.Quarter == fixture.QuarterFirst {
			assert.Equal(t, "20", score.Home, "only the first reported entry is kept")
		}
	}

	stats, err := store.Statistics.ListStatistics(ctx, fx.ID)
	require.NoError(t, err)
	assert.Equal(t, []fixture.Statistic{{FixtureID: fx.ID, Type: "Steals", Home: "8", Away: "6"}}, stats)

	entries, err := store.Lineups.ListByFixture(ctx, fx.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	roles := map[string]lineup.Role{}
	for _, entry := range entries {
		roles[entry.PlayerKey] = entry.Role
	}
	assert.Equal(t, lineup.RoleStarter, roles["p1"])
	assert.Equal(t, lineup.RoleSubstitute, roles["p2"])
	assert.Equal(t, lineup.RoleStarter, roles["p3"])

	assert.Equal(t, 3, store.PlayerStats.Len())
	assert.Equal(t, 3, store.Players.Len())

	p3, ok, err := store.Players.GetByKey(ctx, "p3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "200", p3.TeamKey)
}

func TestFixtureIngestion_PlayerStatDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

	provider.On("FetchFixtures", mock.Anything, mock.Anything).Return([]ExternalFixture{fullFixturePayload()}, nil).Once()

	_, err := service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)

	fx, _, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)
	lines, err := store.PlayerStats.ListByFixture(ctx, fx.ID)
	require.NoError(t, err)

	var p2 playerstats.Line
	for _, line := range lines {
		if line.PlayerKey == "p2" {
			p2 = line
		}
	}
	assert.Equal(t, "9", p2.Points)
	assert.Equal(t, playerstats.DefaultCounter, p2.Assists)
	assert.Equal(t, playerstats.DefaultCounter, p2.Minutes)
	assert.Equal(t, playerstats.DefaultOnCourt, p2.OnCourt)
	assert.Equal(t, fixture.SideHome, p2.Side)
}

func TestFixtureIngestion_SkipsFixtureWithMissingDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ExternalFixture)
		reason string
	}{
		{name: "league", mutate: func(f *ExternalFixture) { f.LeagueKey = "999" }, reason: "missing_league"},
		{name: "home team", mutate: func(f *ExternalFixture) { f.HomeTeamKey = "404" }, reason: "missing_home_team"},
		{name: "away team", mutate: func(f *ExternalFixture) { f.AwayTeamKey = "404" }, reason: "missing_away_team"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store := newSeededStore(t)
			provider := newMockProvider(t)
			service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

			payload := fullFixturePayload()
			tc.mutate(&payload)
			provider.On("FetchFixtures", mock.Anything, mock.Anything).Return([]ExternalFixture{payload}, nil).Once()

			res, err := service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-02"})
			require.NoError(t, err)
			assert.Equal(t, 0, res.Synced)
			assert.Equal(t, 0, store.Fixtures.Len())
			assert.Equal(t, 0, store.Players.Len(), "no children of a skipped fixture are written")

			skipped := res.Skipped(entityFixture)
			require.Len(t, skipped, 1)
			assert.Equal(t, tc.reason, skipped[0].Reason)
		})
	}
}

func TestFixtureIngestion_AbsentBlocksWriteNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

	payload := fullFixturePayload()
	payload.Scores = Optional[ExternalQuarterScores]{}
	payload.Statistics = Optional[[]ExternalStatistic]{}
	payload.Lineups = Optional[ExternalLineups]{}
	payload.PlayerStatistics = Optional[ExternalPlayerStatistics]{}
	provider.On("FetchLivescore", mock.Anything, "757").Return([]ExternalFixture{payload}, nil).Once()

	res, err := service.SyncLivescore(ctx, LivescoreSyncInput{LeagueKey: "757"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)

	fx, ok, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)
	require.True(t, ok)
	scores, err := store.Scores.ListScores(ctx, fx.ID)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.Equal(t, 0, store.PlayerStats.Len())
}

func TestFixtureIngestion_ValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewFixtureIngestionService(newMockProvider(t), fixtureRepos(newSeededStore(t)), testSupport(nil))

	for _, input := range []FixtureSyncInput{
		{From: "", To: "2025-01-01"},
		{From: "01/01/2025", To: "2025-01-01"},
		{From: "2025-02-01", To: "2025-01-01"},
		{From: "2025-01-01", To: "2025-06-01"},
	} {
		_, err := service.SyncFixtures(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", input)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	}
}

func TestFixtureIngestion_UpstreamFailureAborts(t *testing.T) {
	t.Parallel()

	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(newSeededStore(t)), testSupport(nil))

	provider.On("FetchFixtures", mock.Anything, mock.Anything).
		Return(nil, &UpstreamError{Method: "Fixtures", Err: errors.New("success=0")}).
		Once()

	_, err := service.SyncFixtures(context.Background(), FixtureSyncInput{From: "2025-01-01", To: "2025-01-02", LeagueKey: "757"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFixtureIngestion_BusyTargetReturnsInProgress(t *testing.T) {
	t.Parallel()

	locker := lock.NewKeyedMutex()
	release, err := locker.TryAcquire(context.Background(), "fixtures:757")
	require.NoError(t, err)
	defer release()

	service := NewFixtureIngestionService(newMockProvider(t), fixtureRepos(newSeededStore(t)), testSupport(locker))

	_, err = service.SyncFixtures(context.Background(), FixtureSyncInput{From: "2025-01-01", To: "2025-01-02", LeagueKey: "757"})
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestFixtureIngestion_StoresOnlyTheFourQuarters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

	payload := fullFixturePayload()
	byQuarter := payload.Scores.Value.ByQuarter
	byQuarter["5thQuarter"] = []ExternalQuarterScore{{Home: "10", Away: "8"}}
	byQuarter["total"] = []ExternalQuarterScore{{Home: "88", Away: "80"}}
	byQuarter["Overtime"] = []ExternalQuarterScore{{Home: "5", Away: "3"}}
	byQuarter["1st"] = []ExternalQuarterScore{{Home: "1", Away: "1"}}

	provider.On("FetchFixtures", mock.Anything, mock.Anything).Return([]ExternalFixture{payload}, nil).Once()

	_, err := service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-31", LeagueKey: "757"})
	require.NoError(t, err)

	fx, ok, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)
	require.True(t, ok)
	scores, err := store.Scores.ListScores(ctx, fx.ID)
	require.NoError(t, err)
	require.Len(t, scores, 4)

	byLabel := map[string]fixture.Score{}
	labels := make([]string, 0, len(scores))
	for _, score := range scores {
		byLabel[score.Quarter] = score
		labels = append(labels, score.Quarter)
	}
	assert.ElementsMatch(t, []string{"1st", "2nd", "3rd", "4th"}, labels)
	assert.Equal(t, "20", byLabel[fixture.QuarterFirst].Home, "provider key wins over an alias")
}

func TestFixtureIngestion_QuarterAliasUsedWhenProviderKeyMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))

	payload := fullFixturePayload()
	payload.Scores = Some(ExternalQuarterScores{ByQuarter: map[string][]ExternalQuarterScore{
		"1stQuarter": {},
		"1st":        {{Home: "15", Away: "14"}, {Home: "0", Away: "0"}},
	}})
	provider.On("FetchFixtures", mock.Anything, mock.Anything).Return([]ExternalFixture{payload}, nil).Once()

	_, err := service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-31", LeagueKey: "757"})
	require.NoError(t, err)

	fx, _, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)
	scores, err := store.Scores.ListScores(ctx, fx.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, fixture.QuarterFirst, scores[0].Quarter)
	assert.Equal(t, "15", scores[0].Home)
}

func TestFixtureIngestion_AllLeaguesRunBusyWhileLeagueRunHeld(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locker := lock.NewKeyedMutex()
	release, err := locker.TryAcquire(ctx, "fixtures:757")
	require.NoError(t, err)

	service := NewFixtureIngestionService(newMockProvider(t), fixtureRepos(newSeededStore(t)), testSupport(locker))

	_, err = service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-02"})
	assert.ErrorIs(t, err, ErrSyncInProgress)
	_, err = service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-02", TeamKey: "100"})
	assert.ErrorIs(t, err, ErrSyncInProgress)

	// A busy run gives back the keys it already took.
	allRelease, err := locker.TryAcquire(ctx, "fixtures:all")
	require.NoError(t, err)
	allRelease()
	release()
}

func TestFixtureIngestion_LeagueRunBusyWhileAllLeaguesRunActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locker := lock.NewKeyedMutex()
	provider := newMockProvider(t)
	service := NewFixtureIngestionService(provider, fixtureRepos(newSeededStore(t)), testSupport(locker))

	var nestedErr, livescoreErr error
	provider.On("FetchFixtures", mock.Anything, FixtureQuery{From: "2025-01-01", To: "2025-01-02"}).
		Run(func(mock.Arguments) {
			_, nestedErr = service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-02", LeagueKey: "757"})
			_, livescoreErr = service.SyncLivescore(ctx, LivescoreSyncInput{LeagueKey: "757"})
		}).
		Return([]ExternalFixture{}, nil).
		Once()

	_, err := service.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-02"})
	require.NoError(t, err)
	assert.ErrorIs(t, nestedErr, ErrSyncInProgress)
	assert.ErrorIs(t, livescoreErr, ErrSyncInProgress)
}

func TestLeagueScopedLockKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagues := memory.NewLeagueRepository(
		league.League{Key: "757", Name: "Euroleague", CountryKey: "5"},
		league.League{Key: "756", Name: "Eurocup", CountryKey: "5"},
	)

	keys, err := leagueScopedLockKeys(ctx, leagues, "fixtures", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"fixtures:all", "fixtures:756", "fixtures:757"}, keys)

	keys, err = leagueScopedLockKeys(ctx, leagues, "fixtures", " 757 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"fixtures:757"}, keys)
}
