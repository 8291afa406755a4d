package allsports

import (
	"github.com/riskibarqy/hoops-sync/internal/usecase"
)

func mapCountries(rows []wireCountry) []usecase.ExternalCountry {
	out := make([]usecase.ExternalCountry, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalCountry{
			Key:  row.Key.String(),
			Name: row.Name.String(),
			Logo: row.Logo.String(),
		})
	}
	return out
}

func mapLeagues(rows []wireLeague) []usecase.ExternalLeague {
	out := make([]usecase.ExternalLeague, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalLeague{
			Key:        row.Key.String(),
			Name:       row.Name.String(),
			CountryKey: row.CountryKey.String(),
			Logo:       row.Logo.String(),
		})
	}
	return out
}

func mapTeams(rows []wireTeam) []usecase.ExternalTeam {
	out := make([]usecase.ExternalTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalTeam{
			Key:  row.Key.String(),
			Name: row.Name.String(),
			Logo: row.Logo.String(),
		})
	}
	return out
}

func mapFixtures(rows []wireFixture) []usecase.ExternalFixture {
	out := make([]usecase.ExternalFixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFixture(row))
	}
	return out
}

func mapFixture(row wireFixture) usecase.ExternalFixture {
	fx := usecase.ExternalFixture{
		EventKey:     row.EventKey.String(),
		Date:         row.Date.String(),
		Time:         row.Time.String(),
		HomeTeamName: row.HomeTeam.String(),
		HomeTeamKey:  row.HomeTeamKey.String(),
		AwayTeamName: row.AwayTeam.String(),
		AwayTeamKey:  row.AwayTeamKey.String(),
		FinalResult:  row.FinalResult.String(),
		Quarter:      row.Quarter.String(),
		Status:       row.Status.String(),
		Live:         row.Live.String(),
		CountryName:  row.CountryName.String(),
		LeagueName:   row.LeagueName.String(),
		LeagueKey:    row.LeagueKey.String(),
		LeagueRound:  row.LeagueRound.String(),
		LeagueSeason: row.LeagueSeason.String(),
	}

	if row.Scores.present {
		byQuarter := make(map[string][]usecase.ExternalQuarterScore, len(row.Scores.value))
		for label, entries := range row.Scores.value {
			mapped := make([]usecase.ExternalQuarterScore, 0, len(entries))
			for _, entry := range entries {
				mapped = append(mapped, usecase.ExternalQuarterScore{Home: entry.Home.String(), Away: entry.Away.String()})
			}
			byQuarter[label] = mapped
		}
		fx.Scores = usecase.Some(usecase.ExternalQuarterScores{ByQuarter: byQuarter})
	}

	if row.Statistics.present {
		stats := make([]usecase.ExternalStatistic, 0, len(row.Statistics.value))
		for _, stat := range row.Statistics.value {
			stats = append(stats, usecase.ExternalStatistic{
				Type: stat.Type.String(),
				Home: stat.Home.String(),
				Away: stat.Away.String(),
			})
		}
		fx.Statistics = usecase.Some(stats)
	}

	if row.Lineups.present {
		var lineups usecase.ExternalLineups
		if row.Lineups.value.Home.present {
			lineups.Home = usecase.Some(mapTeamLineup(row.Lineups.value.Home.value))
		}
		if row.Lineups.value.Away.present {
			lineups.Away = usecase.Some(mapTeamLineup(row.Lineups.value.Away.value))
		}
		fx.Lineups = usecase.Some(lineups)
	}

	if row.PlayerStatistics.present {
		fx.PlayerStatistics = usecase.Some(usecase.ExternalPlayerStatistics{
			Home: mapPlayerStatistics(row.PlayerStatistics.value.Home),
			Away: mapPlayerStatistics(row.PlayerStatistics.value.Away),
		})
	}
	return fx
}

func mapTeamLineup(row wireTeamLineup) usecase.ExternalTeamLineup {
	return usecase.ExternalTeamLineup{
		Starters:    mapLineupPlayers(row.Starters),
		Substitutes: mapLineupPlayers(row.Substitutes),
	}
}

func mapLineupPlayers(rows []wireLineupPlayer) []usecase.ExternalLineupPlayer {
	out := make([]usecase.ExternalLineupPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalLineupPlayer{Key: row.Key.String(), Name: row.Name.String()})
	}
	return out
}

func mapPlayerStatistics(rows []wirePlayerStatistic) []usecase.ExternalPlayerStatistic {
	out := make([]usecase.ExternalPlayerStatistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalPlayerStatistic{
			PlayerKey:          row.Key.String(),
			PlayerName:         row.Name.String(),
			Position:           row.Position.String(),
			Minutes:            row.Minutes.String(),
			Points:             row.Points.String(),
			Assists:            row.Assists.String(),
			Blocks:             row.Blocks.String(),
			Steals:             row.Steals.String(),
			Turnovers:          row.Turnovers.String(),
			PersonalFouls:      row.PersonalFouls.String(),
			PlusMinus:          row.PlusMinus.String(),
			DefenseRebounds:    row.DefenseRebounds.String(),
			OffenceRebounds:    row.OffenceRebounds.String(),
			TotalRebounds:      row.TotalRebounds.String(),
			FieldGoalsMade:     row.FieldGoalsMade.String(),
			FieldGoalsAttempts: row.FieldGoalsAttempts.String(),
			ThreePointMade:     row.ThreePointMade.String(),
			ThreePointAttempts: row.ThreePointAttempts.String(),
			FreeThrowsMade:     row.FreeThrowsMade.String(),
			FreeThrowsAttempts: row.FreeThrowsAttempts.String(),
			OnCourt:            row.OnCourt.String(),
		})
	}
	return out
}

func mapStandings(rows []wireStanding) []usecase.ExternalStanding {
	out := make([]usecase.ExternalStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ExternalStanding{
			TeamKey:       row.TeamKey.String(),
			TeamName:      row.TeamName.String(),
			LeagueKey:     row.LeagueKey.String(),
			LeagueSeason:  row.LeagueSeason.String(),
			LeagueRound:   row.LeagueRound.String(),
			Place:         row.Place.String(),
			PlaceType:     row.PlaceType.String(),
			Played:        row.Played.String(),
			Won:           row.Won.String(),
			WonOvertime:   row.WonOvertime.String(),
			Lost:          row.Lost.String(),
			LostOvertime:  row.LostOvertime.String(),
			PointsFor:     row.PointsFor.String(),
			PointsAgainst: row.PointsAgainst.String(),
			Pct:           row.Pct.String(),
			Updated:       row.Updated.String(),
		})
	}
	return out
}
