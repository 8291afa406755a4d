package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation teams does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestBuildUpsertAppendsInsertedFlag(t *testing.T) {
	query, args, err := buildUpsert(qb.Upsert{
		Table:           "countries",
		Model:           countryWriteModel{CountryKey: "5", Name: "Europe"},
		ConflictColumns: []string{"country_key"},
		Touch:           []string{"updated_at"},
		Returning:       "ignored",
	})
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}

	want := "INSERT INTO countries (country_key, name) VALUES ($1, $2) " +
		"ON CONFLICT (country_key) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW() " +
		"RETURNING (xmax = 0) AS inserted"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestTeamUpsertKeepsLeagueOnConflict(t *testing.T) {
	query, _, err := buildUpsert(teamUpsert(teamWriteModel{TeamKey: "100", Name: "Real Madrid", LeagueKey: "757"}))
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}

	want := "INSERT INTO teams (team_key, name, logo, league_key) VALUES ($1, $2, $3, $4) " +
		"ON CONFLICT (team_key) DO UPDATE SET name = EXCLUDED.name, logo = EXCLUDED.logo, updated_at = NOW() " +
		"RETURNING (xmax = 0) AS inserted"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestUniqueKeys(t *testing.T) {
	got := uniqueKeys([]string{" b", "a", "", "b", "a "})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestFixtureFilterConditions(t *testing.T) {
	query, args, err := qb.Select("COUNT(1)").From("fixtures").
		Where(fixtureConditions(fixture.Filter{LeagueKey: "757", TeamKey: " 100 ", DateFrom: "2025-01-01", DateTo: "2025-01-31"})...).
		ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}

	want := "SELECT COUNT(1) FROM fixtures WHERE league_key = $1 AND (home_team_key = $2 OR away_team_key = $3) " +
		"AND event_date >= $4 AND event_date <= $5"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
