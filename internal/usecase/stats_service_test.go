package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/player"
	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_PlayerAverages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	for _, p := range []player.Player{
		{Key: "p1", Name: "Campazzo", TeamKey: "100"},
		{Key: "p2", Name: "Llull", TeamKey: "100"},
	} {
		_, err := store.Players.Upsert(ctx, p)
		require.NoError(t, err)
	}
	for _, line := range []playerstats.Line{
		{FixtureID: "f1", PlayerKey: "p1", Side: fixture.SideHome, Points: "10", FieldGoalsMade: "4", FieldGoalsAttempts: "8", Minutes: "30:30"},
		{FixtureID: "f2", PlayerKey: "p1", Side: fixture.SideHome, Points: "20", FieldGoalsMade: "6", FieldGoalsAttempts: "12", Minutes: "29:30"},
	} {
		_, err := store.PlayerStats.Upsert(ctx, line)
		require.NoError(t, err)
	}

	service := NewStatsService(fixtureRepos(store))
	got, err := service.PlayerAverages(ctx, "100")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].PlayerKey)
	assert.Equal(t, 2, got[0].GamesPlayed)
	assert.InDelta(t, 15, got[0].AvgPoints, 0.0001)
	assert.InDelta(t, 30, got[0].AvgMinutes, 0.0001)
	assert.InDelta(t, 50, got[0].FGPercentage, 0.0001)

	assert.Equal(t, "p2", got[1].PlayerKey)
	assert.Equal(t, 0, got[1].GamesPlayed)
	assert.Zero(t, got[1].AvgPoints)
	assert.Zero(t, got[1].FGPercentage)
}

func TestComputePlayerAverage_ShootingWithoutAttempts(t *testing.T) {
	t.Parallel()

	avg := computePlayerAverage(player.Player{Key: "p1"}, []playerstats.Line{
		{Points: "12", FieldGoalsMade: "5", FieldGoalsAttempts: "0", FreeThrowsMade: "abc"},
	})
	assert.Zero(t, avg.FGPercentage)
	assert.Zero(t, avg.FTPercentage)
	assert.InDelta(t, 12, avg.AvgPoints, 0.0001)
}

func TestStatsService_PlayerAverageUnknownPlayer(t *testing.T) {
	t.Parallel()

	service := NewStatsService(fixtureRepos(newSeededStore(t)))
	_, err := service.PlayerAverage(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.PlayerAverages(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDedupePlayerLines_KeepsHighestPoints(t *testing.T) {
	t.Parallel()

	got := DedupePlayerLines([]playerstats.Line{
		{PlayerKey: "p1", Side: fixture.SideHome, Points: "12", Assists: "first"},
		{PlayerKey: "p2", Side: fixture.SideHome, Points: "7"},
		{PlayerKey: "p1", Side: fixture.SideHome, Points: "18", Assists: "second"},
		{PlayerKey: "p1", Side: fixture.SideAway, Points: "3"},
		{PlayerKey: "p2", Side: fixture.SideHome, Points: "7", Assists: "tie"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "18", got[0].Points)
	assert.Equal(t, "second", got[0].Assists)
	assert.Equal(t, "p2", got[1].PlayerKey)
	assert.Empty(t, got[1].Assists, "first row wins ties")
	assert.Equal(t, fixture.SideAway, got[2].Side)
}

func TestOrderScores(t *testing.T) {
	t.Parallel()

	got := OrderScores([]fixture.Score{
		{Quarter: "3rd"}, {Quarter: "1st"}, {Quarter: "OT"}, {Quarter: "2nd"}, {Quarter: "1st", Home: "dup"},
	})

	labels := make([]string, 0, len(got))
	for _, s := range got {
		labels = append(labels, s.Quarter)
	}
	assert.Equal(t, []string{"1st", "2nd", "3rd", "OT"}, labels)
	assert.Empty(t, got[0].Home)
}

func TestStatsService_FixtureDetail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore(t)
	provider := newMockProvider(t)
	ingest := NewFixtureIngestionService(provider, fixtureRepos(store), testSupport(nil))
	provider.On("FetchFixtures", mockAnyCtx, FixtureQuery{From: "2025-01-01", To: "2025-01-31"}).
		Return([]ExternalFixture{fullFixturePayload()}, nil).Once()
	_, err := ingest.SyncFixtures(ctx, FixtureSyncInput{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)

	fx, _, err := store.Fixtures.GetByEventKey(ctx, "9001")
	require.NoError(t, err)

	detail, err := NewStatsService(fixtureRepos(store)).FixtureDetail(ctx, fx.ID)
	require.NoError(t, err)

	assert.Equal(t, "9001", detail.Fixture.EventKey)
	require.Len(t, detail.Scores, 4)
	assert.Equal(t, "1st", detail.Scores[0].Quarter)
	assert.Equal(t, "Real Madrid", detail.Home.TeamName)
	require.Len(t, detail.Home.Players, 2)
	assert.Equal(t, "Campazzo", detail.Home.Players[0].PlayerName)
	assert.Equal(t, "18", detail.Home.Players[0].Line.Points)
	require.Len(t, detail.Away.Players, 1)
	assert.Len(t, detail.Statistics, 2)

	_, err = NewStatsService(fixtureRepos(store)).FixtureDetail(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
