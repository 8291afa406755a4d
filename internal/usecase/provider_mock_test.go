package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func newMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockProvider {
	m := &mockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockProvider) FetchCountries(ctx context.Context) ([]ExternalCountry, error) {
	ret := m.Called(ctx)
	out, _ := ret.Get(0).([]ExternalCountry)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchLeagues(ctx context.Context, countryKey string) ([]ExternalLeague, error) {
	ret := m.Called(ctx, countryKey)
	out, _ := ret.Get(0).([]ExternalLeague)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchTeams(ctx context.Context, leagueKey string) ([]ExternalTeam, error) {
	ret := m.Called(ctx, leagueKey)
	out, _ := ret.Get(0).([]ExternalTeam)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchFixtures(ctx context.Context, query FixtureQuery) ([]ExternalFixture, error) {
	ret := m.Called(ctx, query)
	out, _ := ret.Get(0).([]ExternalFixture)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchLivescore(ctx context.Context, leagueKey string) ([]ExternalFixture, error) {
	ret := m.Called(ctx, leagueKey)
	out, _ := ret.Get(0).([]ExternalFixture)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchStandings(ctx context.Context, leagueKey string) ([]ExternalStanding, error) {
	ret := m.Called(ctx, leagueKey)
	out, _ := ret.Get(0).([]ExternalStanding)
	return out, ret.Error(1)
}

func (m *mockProvider) FetchH2H(ctx context.Context, firstTeamKey, secondTeamKey string) (ExternalH2H, error) {
	ret := m.Called(ctx, firstTeamKey, secondTeamKey)
	out, _ := ret.Get(0).(ExternalH2H)
	return out, ret.Error(1)
}

var mockAnyCtx = mock.Anything
