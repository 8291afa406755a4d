package postgres

import "database/sql"

// Write models carry only the columns an upsert sets; timestamps are left to
// column defaults and Touch.

type countryWriteModel struct {
	CountryKey string `db:"country_key"`
	Name       string `db:"name"`
}

type leagueWriteModel struct {
	LeagueKey  string `db:"league_key"`
	Name       string `db:"name"`
	CountryKey string `db:"country_key"`
}

type teamWriteModel struct {
	TeamKey   string `db:"team_key"`
	Name      string `db:"name"`
	Logo      string `db:"logo"`
	LeagueKey string `db:"league_key"`
}

type playerWriteModel struct {
	PlayerKey string         `db:"player_key"`
	Name      string         `db:"name"`
	TeamKey   sql.NullString `db:"team_key"`
}

type fixtureWriteModel struct {
	ID           string `db:"id"`
	EventKey     string `db:"event_key"`
	EventDate    string `db:"event_date"`
	EventTime    string `db:"event_time"`
	Status       string `db:"status"`
	Quarter      string `db:"quarter"`
	FinalResult  string `db:"final_result"`
	Live         bool   `db:"live"`
	LeagueKey    string `db:"league_key"`
	LeagueRound  string `db:"league_round"`
	LeagueSeason string `db:"league_season"`
	HomeTeamKey  string `db:"home_team_key"`
	AwayTeamKey  string `db:"away_team_key"`
}

type fixtureScoreModel struct {
	FixtureID string `db:"fixture_id"`
	Quarter   string `db:"quarter"`
	Home      string `db:"score_home"`
	Away      string `db:"score_away"`
}

type fixtureStatisticModel struct {
	FixtureID string `db:"fixture_id"`
	Type      string `db:"stat_type"`
	Home      string `db:"home"`
	Away      string `db:"away"`
}

type lineupModel struct {
	FixtureID string `db:"fixture_id"`
	PlayerKey string `db:"player_key"`
	Side      string `db:"side"`
	Role      string `db:"role"`
}

type playerStatisticModel struct {
	FixtureID          string `db:"fixture_id"`
	PlayerKey          string `db:"player_key"`
	Side               string `db:"side"`
	Position           string `db:"position"`
	Minutes            string `db:"minutes"`
	Points             string `db:"points"`
	Assists            string `db:"assists"`
	Blocks             string `db:"blocks"`
	Steals             string `db:"steals"`
	Turnovers          string `db:"turnovers"`
	PersonalFouls      string `db:"personal_fouls"`
	PlusMinus          string `db:"plus_minus"`
	DefenseRebounds    string `db:"defense_rebounds"`
	OffenceRebounds    string `db:"offence_rebounds"`
	TotalRebounds      string `db:"total_rebounds"`
	FieldGoalsMade     string `db:"field_goals_made"`
	FieldGoalsAttempts string `db:"field_goals_attempts"`
	ThreePointMade     string `db:"three_point_made"`
	ThreePointAttempts string `db:"three_point_attempts"`
	FreeThrowsMade     string `db:"free_throws_made"`
	FreeThrowsAttempts string `db:"free_throws_attempts"`
	OnCourt            string `db:"on_court"`
}

type standingModel struct {
	TeamKey       string `db:"team_key"`
	LeagueKey     string `db:"league_key"`
	LeagueSeason  string `db:"league_season"`
	LeagueRound   string `db:"league_round"`
	Place         string `db:"place"`
	PlaceType     string `db:"place_type"`
	TeamName      string `db:"team_name"`
	Played        string `db:"played"`
	Won           string `db:"won"`
	WonOvertime   string `db:"won_overtime"`
	Lost          string `db:"lost"`
	LostOvertime  string `db:"lost_overtime"`
	PointsFor     string `db:"points_for"`
	PointsAgainst string `db:"points_against"`
	Pct           string `db:"pct"`
	SourceUpdated string `db:"source_updated"`
}
