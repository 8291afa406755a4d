package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"github.com/riskibarqy/hoops-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	records map[string]int
	runs    map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{records: map[string]int{}, runs: map[string]int{}}
}

func (o *countingObserver) ObserveRecord(entity string, outcome Outcome) {
	o.records[entity+":"+string(outcome)]++
}

func (o *countingObserver) ObserveRun(job, status string, _ time.Duration) {
	o.runs[job+":"+status]++
}

func TestCountrySync_CreatesThenUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(nil)
	provider := newMockProvider(t)
	observer := newCountingObserver()
	service := NewCountrySyncService(provider, store.Countries, SyncSupport{Observer: observer})

	provider.On("FetchCountries", mockAnyCtx).
		Return([]ExternalCountry{{Key: "5", Name: "Europe"}, {Key: "", Name: "broken"}}, nil).
		Twice()

	res, err := service.SyncCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, OutcomeCreated, res.Records[0].Outcome)

	res, err = service.SyncCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, OutcomeUpdated, res.Records[0].Outcome)

	assert.Equal(t, 1, observer.records["country:created"])
	assert.Equal(t, 1, observer.records["country:updated"])
	assert.Equal(t, 2, observer.runs["countries:success"])
}

func TestLeagueSync_SkipsLeagueWithoutCountry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(nil)
	_, err := store.Countries.Upsert(ctx, country.Country{Key: "5", Name: "Europe"})
	require.NoError(t, err)

	provider := newMockProvider(t)
	provider.On("FetchLeagues", mockAnyCtx, "").Return([]ExternalLeague{
		{Key: "757", Name: "Euroleague", CountryKey: "5"},
		{Key: "756", Name: "Eurocup", CountryKey: "5"},
		{Key: "766", Name: "NBA", CountryKey: "99"},
		{Key: "1", Name: "Ignored", CountryKey: "5"},
	}, nil).Once()

	service := NewLeagueSyncService(provider, store.Countries, store.Leagues, testSupport(nil))
	res, err := service.SyncLeagues(ctx, LeagueSyncInput{LeagueKeys: []string{"757", "756", "766"}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Synced)
	skipped := res.Skipped(entityLeague)
	require.Len(t, skipped, 1)
	assert.Equal(t, "766", skipped[0].Key)
	assert.Equal(t, "missing_country", skipped[0].Reason)

	_, ok, err := store.Leagues.GetByKey(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok, "leagues outside the requested keys are not stored")
}

func TestTeamSync_LinksLeagueOnCreateOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	provider.On("FetchTeams", mockAnyCtx, "757").Return([]ExternalTeam{
		{Key: "100", Name: "Real Madrid Baloncesto", Logo: "rm.png"},
		{Key: "300", Name: "Fenerbahce"},
	}, nil).Once()

	service := NewTeamSyncService(provider, store.Leagues, store.Teams, testSupport(nil))
	res, err := service.SyncTeams(ctx, TeamSyncInput{LeagueKey: "757"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Synced)

	got, ok, err := store.Teams.GetByKey(ctx, "100")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, team.Team{Key: "100", Name: "Real Madrid Baloncesto", Logo: "rm.png", LeagueKey: "757"}, got)
}

func TestTeamSync_MissingLeagueSkipsEveryTeam(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(nil)
	provider := newMockProvider(t)
	provider.On("FetchTeams", mockAnyCtx, "757").Return([]ExternalTeam{{Key: "100", Name: "A"}, {Key: "200", Name: "B"}}, nil).Once()

	service := NewTeamSyncService(provider, store.Leagues, store.Teams, testSupport(nil))
	res, err := service.SyncTeams(context.Background(), TeamSyncInput{LeagueKey: "757"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Synced)
	assert.Len(t, res.Skipped("team"), 2)

	_, err = service.SyncTeams(context.Background(), TeamSyncInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStandingSync_UpsertsByCompositeKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	rows := []ExternalStanding{
		{TeamKey: "100", LeagueKey: "757", LeagueSeason: "2024/2025", Place: "1", Won: "20", Pct: "0.800"},
		{TeamKey: "200", LeagueKey: "757", LeagueSeason: "2024/2025", Place: "2", Won: "18", Pct: "0.720"},
		{TeamKey: "404", LeagueKey: "757", LeagueSeason: "2024/2025", Place: "3"},
	}
	provider.On("FetchStandings", mockAnyCtx, "757").Return(rows, nil).Twice()

	service := NewStandingSyncService(provider, store.Leagues, store.Teams, store.Standings, testSupport(nil))
	res, err := service.SyncStandings(ctx, StandingSyncInput{LeagueKey: "757"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Synced)
	skipped := res.Skipped(entityStanding)
	require.Len(t, skipped, 1)
	assert.Equal(t, "missing_team", skipped[0].Reason)

	_, err = service.SyncStandings(ctx, StandingSyncInput{LeagueKey: "757"})
	require.NoError(t, err)

	stored, err := store.Standings.ListByLeague(ctx, "757", "")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "0.800", stored[0].Pct, "raw strings are kept")
	assert.Equal(t, "", stored[0].LeagueRound)
}

func TestStandingSync_MissingLeague(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(&id.Sequence{})
	provider := newMockProvider(t)
	provider.On("FetchStandings", mockAnyCtx, "757").
		Return([]ExternalStanding{{TeamKey: "100", LeagueKey: "757", Place: "1"}}, nil).Once()

	service := NewStandingSyncService(provider, store.Leagues, store.Teams, store.Standings, testSupport(nil))
	res, err := service.SyncStandings(context.Background(), StandingSyncInput{LeagueKey: "757"})
	require.NoError(t, err)
	assert.Equal(t, "missing_league", res.Skipped("")[0].Reason)
}

func TestStandingSync_UpstreamError(t *testing.T) {
	t.Parallel()

	store := newSeededStore(t)
	provider := newMockProvider(t)
	provider.On("FetchStandings", mockAnyCtx, "757").
		Return(nil, &UpstreamError{Method: "Standings", Err: errors.New("timeout")}).Once()

	service := NewStandingSyncService(provider, store.Leagues, store.Teams, store.Standings, testSupport(nil))
	_, err := service.SyncStandings(context.Background(), StandingSyncInput{LeagueKey: "757"})
	assert.ErrorIs(t, err, ErrUpstream)
}
