package allsports

import (
	"bytes"
	"encoding/json"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type envelope struct {
	Success flexString      `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// flexString accepts a JSON string, number or bool and keeps its text. The
// provider is inconsistent about quoting keys and counters.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(trimmed)
	return nil
}

func (f flexString) String() string { return string(f) }

// block tracks whether a payload section was present at all. null and ""
// count as absent; an empty PHP array ([]) counts as present and empty.
type block[T any] struct {
	value   T
	present bool
}

func (b *block[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		*b = block[T]{}
		return nil
	}
	var value T
	if err := sonic.Unmarshal(trimmed, &value); err != nil {
		if !isEmptyPHPArray(trimmed) {
			return err
		}
	}
	b.value = value
	b.present = true
	return nil
}

func isEmptyPHPArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return false
	}
	return len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0
}

type wireCountry struct {
	Key  flexString `json:"country_key"`
	Name flexString `json:"country_name"`
	Logo flexString `json:"country_logo"`
}

type wireLeague struct {
	Key         flexString `json:"league_key"`
	Name        flexString `json:"league_name"`
	CountryKey  flexString `json:"country_key"`
	CountryName flexString `json:"country_name"`
	Logo        flexString `json:"league_logo"`
}

type wireTeam struct {
	Key  flexString `json:"team_key"`
	Name flexString `json:"team_name"`
	Logo flexString `json:"team_logo"`
}

type wireFixture struct {
	EventKey     flexString `json:"event_key"`
	Date         flexString `json:"event_date"`
	Time         flexString `json:"event_time"`
	HomeTeam     flexString `json:"event_home_team"`
	HomeTeamKey  flexString `json:"home_team_key"`
	AwayTeam     flexString `json:"event_away_team"`
	AwayTeamKey  flexString `json:"away_team_key"`
	FinalResult  flexString `json:"event_final_result"`
	Quarter      flexString `json:"event_quarter"`
	Status       flexString `json:"event_status"`
	Live         flexString `json:"event_live"`
	CountryName  flexString `json:"country_name"`
	LeagueName   flexString `json:"league_name"`
	LeagueKey    flexString `json:"league_key"`
	LeagueRound  flexString `json:"league_round"`
	LeagueSeason flexString `json:"league_season"`

	Scores           block[map[string][]wireQuarterScore] `json:"scores"`
	Statistics       block[[]wireStatistic]               `json:"statistics"`
	Lineups          block[wireLineups]                   `json:"lineups"`
	PlayerStatistics block[wirePlayerStatistics]          `json:"player_statistics"`
}

type wireQuarterScore struct {
	Home flexString `json:"score_home"`
	Away flexString `json:"score_away"`
}

type wireStatistic struct {
	Type flexString `json:"type"`
	Home flexString `json:"home"`
	Away flexString `json:"away"`
}

type wireLineups struct {
	Home block[wireTeamLineup] `json:"home_team"`
	Away block[wireTeamLineup] `json:"away_team"`
}

type wireTeamLineup struct {
	Starters    []wireLineupPlayer `json:"starting_lineups"`
	Substitutes []wireLineupPlayer `json:"substitutes"`
}

type wireLineupPlayer struct {
	Name flexString `json:"player"`
	Key  flexString `json:"player_id"`
}

type wirePlayerStatistics struct {
	Home []wirePlayerStatistic `json:"home_team"`
	Away []wirePlayerStatistic `json:"away_team"`
}

type wirePlayerStatistic struct {
	Name               flexString `json:"player"`
	Key                flexString `json:"player_id"`
	Position           flexString `json:"player_position"`
	Minutes            flexString `json:"player_minutes"`
	Points             flexString `json:"player_points"`
	Assists            flexString `json:"player_assists"`
	Blocks             flexString `json:"player_blocks"`
	Steals             flexString `json:"player_steals"`
	Turnovers          flexString `json:"player_turnovers"`
	PersonalFouls      flexString `json:"player_personal_fouls"`
	PlusMinus          flexString `json:"player_plus_minus"`
	DefenseRebounds    flexString `json:"player_defense_rebounds"`
	OffenceRebounds    flexString `json:"player_offence_rebounds"`
	TotalRebounds      flexString `json:"player_total_rebounds"`
	FieldGoalsMade     flexString `json:"player_field_goals_made"`
	FieldGoalsAttempts flexString `json:"player_field_goals_attempts"`
	ThreePointMade     flexString `json:"player_threepoint_goals_made"`
	ThreePointAttempts flexString `json:"player_threepoint_goals_attempts"`
	FreeThrowsMade     flexString `json:"player_freethrows_goals_made"`
	FreeThrowsAttempts flexString `json:"player_freethrows_goals_attempts"`
	OnCourt            flexString `json:"player_oncourt"`
}

type wireStanding struct {
	Place         flexString `json:"standing_place"`
	PlaceType     flexString `json:"standing_place_type"`
	TeamName      flexString `json:"standing_team"`
	Played        flexString `json:"standing_P"`
	Won           flexString `json:"standing_W"`
	WonOvertime   flexString `json:"standing_WO"`
	Lost          flexString `json:"standing_L"`
	LostOvertime  flexString `json:"standing_LO"`
	PointsFor     flexString `json:"standing_F"`
	PointsAgainst flexString `json:"standing_A"`
	Pct           flexString `json:"standing_PCT"`
	TeamKey       flexString `json:"team_key"`
	LeagueKey     flexString `json:"league_key"`
	LeagueSeason  flexString `json:"league_season"`
	LeagueRound   flexString `json:"league_round"`
	Updated       flexString `json:"standing_updated"`
}

type wireStandings struct {
	Total []wireStanding `json:"total"`
}

type wireH2H struct {
	H2H               []wireFixture `json:"H2H"`
	FirstTeamResults  []wireFixture `json:"firstTeamResults"`
	SecondTeamResults []wireFixture `json:"secondTeamResults"`
}
