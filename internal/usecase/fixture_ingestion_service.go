package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/lineup"
	"github.com/riskibarqy/hoops-sync/internal/domain/player"
	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

const (
	entityFixture         = "fixture"
	entityScore           = "score"
	entityStatistic       = "fixture_statistic"
	entityPlayer          = "player"
	entityLineup          = "lineup"
	entityPlayerStatistic = "player_statistic"
)

// FixtureRepositories is every store touched when a fixture cascades.
type FixtureRepositories struct {
	Leagues     league.Repository
	Teams       team.Repository
	Players     player.Repository
	Fixtures    fixture.Repository
	Scores      fixture.ScoreRepository
	Statistics  fixture.StatisticRepository
	Lineups     lineup.Repository
	PlayerStats playerstats.Repository
}

type FixtureSyncInput struct {
	From      string `json:"from" validate:"required,datetime=2006-01-02"`
	To        string `json:"to" validate:"required,datetime=2006-01-02"`
	LeagueKey string `json:"league_key" validate:"omitempty,max=32"`
	TeamKey   string `json:"team_key" validate:"omitempty,max=32"`
}

type LivescoreSyncInput struct {
	LeagueKey string `json:"league_key" validate:"omitempty,max=32"`
}

type FixtureIngestionService struct {
	provider BasketballProvider
	repos    FixtureRepositories
	support  SyncSupport
}

func NewFixtureIngestionService(provider BasketballProvider, repos FixtureRepositories, support SyncSupport) *FixtureIngestionService {
	return &FixtureIngestionService{
		provider: provider,
		repos:    repos,
		support:  support.normalized(),
	}
}

func (s *FixtureIngestionService) SyncFixtures(ctx context.Context, input FixtureSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureIngestionService.SyncFixtures",
		attribute.String("league_key", input.LeagueKey),
		attribute.String("from", input.From),
		attribute.String("to", input.To),
	)
	defer span.End()

	input.From = strings.TrimSpace(input.From)
	input.To = strings.TrimSpace(input.To)
	input.LeagueKey = strings.TrimSpace(input.LeagueKey)
	input.TeamKey = strings.TrimSpace(input.TeamKey)
	if err := validateInput(input); err != nil {
		return SyncResult{}, err
	}
	if err := validateDateWindow(input.From, input.To); err != nil {
		return SyncResult{}, err
	}

	lockKeys, err := leagueScopedLockKeys(ctx, s.repos.Leagues, "fixtures", input.LeagueKey)
	if err != nil {
		recordSpanError(span, err)
		return SyncResult{}, err
	}
	result, err := s.support.run(ctx, "fixtures", lockKeys, func(ctx context.Context) (SyncResult, error) {
		items, err := s.provider.FetchFixtures(ctx, FixtureQuery{
			From:      input.From,
			To:        input.To,
			LeagueKey: input.LeagueKey,
			TeamKey:   input.TeamKey,
		})
		if err != nil {
			return SyncResult{}, fmt.Errorf("fetch fixtures league=%s from=%s to=%s: %w", input.LeagueKey, input.From, input.To, err)
		}
		return s.ingest(ctx, items)
	})
	recordSpanError(span, err)
	return result, err
}

// SyncLivescore runs the provider's live feed through the same cascade. It
// shares the fixtures lock so it never overlaps a scheduled fixture sync.
func (s *FixtureIngestionService) SyncLivescore(ctx context.Context, input LivescoreSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureIngestionService.SyncLivescore",
		attribute.String("league_key", input.LeagueKey),
	)
	defer span.End()

	input.LeagueKey = strings.TrimSpace(input.LeagueKey)
	if err := validateInput(input); err != nil {
		return SyncResult{}, err
	}

	lockKeys, err := leagueScopedLockKeys(ctx, s.repos.Leagues, "fixtures", input.LeagueKey)
	if err != nil {
		recordSpanError(span, err)
		return SyncResult{}, err
	}
	result, err := s.support.run(ctx, "livescore", lockKeys, func(ctx context.Context) (SyncResult, error) {
		items, err := s.provider.FetchLivescore(ctx, input.LeagueKey)
		if err != nil {
			return SyncResult{}, fmt.Errorf("fetch livescore league=%s: %w", input.LeagueKey, err)
		}
		return s.ingest(ctx, items)
	})
	recordSpanError(span, err)
	return result, err
}

func (s *FixtureIngestionService) ingest(ctx context.Context, items []ExternalFixture) (SyncResult, error) {
	rec := newRecorder(s.support.Observer, s.support.Logger)
	for _, item := range items {
		if err := s.ingestFixture(ctx, rec, item); err != nil {
			return SyncResult{}, err
		}
	}
	return rec.finish("synced %d of %d fixtures", rec.result.Synced, len(items)), nil
}

func (s *FixtureIngestionService) ingestFixture(ctx context.Context, rec *recorder, item ExternalFixture) error {
	eventKey := strings.TrimSpace(item.EventKey)
	if eventKey == "" {
		s.support.Logger.WarnContext(ctx, "ignore fixture without event key", "league_key", item.LeagueKey)
		return nil
	}

	gap, err := s.checkFixtureDependencies(ctx, eventKey, item)
	if err != nil {
		return err
	}
	if gap != nil {
		rec.skipped(ctx, gap)
		return nil
	}

	stored, created, err := s.repos.Fixtures.Upsert(ctx, fixture.Fixture{
		EventKey:     eventKey,
		Date:         strings.TrimSpace(item.Date),
		Time:         strings.TrimSpace(item.Time),
		Status:       strings.TrimSpace(item.Status),
		Quarter:      strings.TrimSpace(item.Quarter),
		FinalResult:  strings.TrimSpace(item.FinalResult),
		Live:         fixture.ParseLive(item.Live),
		LeagueKey:    strings.TrimSpace(item.LeagueKey),
		LeagueRound:  strings.TrimSpace(item.LeagueRound),
		LeagueSeason: strings.TrimSpace(item.LeagueSeason),
		HomeTeamKey:  strings.TrimSpace(item.HomeTeamKey),
		AwayTeamKey:  strings.TrimSpace(item.AwayTeamKey),
	})
	if err != nil {
		return fmt.Errorf("upsert fixture event=%s: %w", eventKey, err)
	}
	rec.upserted(entityFixture, eventKey, created)

	if item.Scores.Present {
		if err := s.syncScores(ctx, rec, stored, item.Scores.Value); err != nil {
			return err
		}
	}
	if item.Statistics.Present {
		if err := s.syncStatistics(ctx, rec, stored, item.Statistics.Value); err != nil {
			return err
		}
	}
	if item.Lineups.Present {
		if err := s.syncLineups(ctx, rec, stored, item.Lineups.Value); err != nil {
			return err
		}
	}
	if item.PlayerStatistics.Present {
		if err := s.syncPlayerStatistics(ctx, rec, stored, item.PlayerStatistics.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *FixtureIngestionService) checkFixtureDependencies(ctx context.Context, eventKey string, item ExternalFixture) (*ReferentialGapError, error) {
	leagueKey := strings.TrimSpace(item.LeagueKey)
	_, ok, err := s.repos.Leagues.GetByKey(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("get league=%s: %w", leagueKey, err)
	}
	if !ok {
		return &ReferentialGapError{Entity: entityFixture, Key: eventKey, Missing: "league", MissingKey: leagueKey}, nil
	}

	for _, side := range []struct {
		missing string
		key     string
	}{
		{missing: "home_team", key: strings.TrimSpace(item.HomeTeamKey)},
		{missing: "away_team", key: strings.TrimSpace(item.AwayTeamKey)},
	} {
		_, ok, err := s.repos.Teams.GetByKey(ctx, side.key)
		if err != nil {
			return nil, fmt.Errorf("get team=%s: %w", side.key, err)
		}
		if !ok {
			return &ReferentialGapError{Entity: entityFixture, Key: eventKey, Missing: side.missing, MissingKey: side.key}, nil
		}
	}
	return nil, nil
}

// scoredQuarters are the only periods stored as score rows.
var scoredQuarters = []string{
	fixture.QuarterFirst,
	fixture.QuarterSecond,
	fixture.QuarterThird,
	fixture.QuarterFourth,
}

func (s *FixtureIngestionService) syncScores(ctx context.Context, rec *recorder, fx fixture.Fixture, scores ExternalQuarterScores) error {
	for _, quarter := range scoredQuarters {
		first, ok := firstQuarterEntry(scores.ByQuarter, quarter)
		if !ok {
			continue
		}
		created, err := s.repos.Scores.UpsertScore(ctx, fixture.Score{
			FixtureID: fx.ID,
			Quarter:   quarter,
			Home:      strings.TrimSpace(first.Home),
			Away:      strings.TrimSpace(first.Away),
		})
		if err != nil {
			return fmt.Errorf("upsert score event=%s quarter=%s: %w", fx.EventKey, quarter, err)
		}
		rec.child(entityScore, fx.EventKey+":"+quarter, created)
	}
	return nil
}

// firstQuarterEntry returns the first entry reported for quarter. The
// provider key ("1stQuarter") wins; other keys normalizing to the same label
// are only consulted, in key order, when it is missing or empty.
func firstQuarterEntry(byQuarter map[string][]ExternalQuarterScore, quarter string) (ExternalQuarterScore, bool) {
	canonical := quarter + "Quarter"
	if entries := byQuarter[canonical]; len(entries) > 0 {
		return entries[0], true
	}

	aliases := make([]string, 0, 1)
	for label := range byQuarter {
		if label != canonical && fixture.NormalizeQuarter(label) == quarter {
			aliases = append(aliases, label)
		}
	}
	sort.Strings(aliases)
	for _, label := range aliases {
		if entries := byQuarter[label]; len(entries) > 0 {
			return entries[0], true
		}
	}
	return ExternalQuarterScore{}, false
}

func (s *FixtureIngestionService) syncStatistics(ctx context.Context, rec *recorder, fx fixture.Fixture, items []ExternalStatistic) error {
	stats := make([]fixture.Statistic, 0, len(items))
	for _, item := range items {
		statType := strings.TrimSpace(item.Type)
		if statType == "" {
			continue
		}
		stats = append(stats, fixture.Statistic{
			FixtureID: fx.ID,
			Type:      statType,
			Home:      strings.TrimSpace(item.Home),
			Away:      strings.TrimSpace(item.Away),
		})
	}

	if err := s.repos.Statistics.ReplaceStatistics(ctx, fx.ID, stats); err != nil {
		return fmt.Errorf("replace statistics event=%s: %w", fx.EventKey, err)
	}
	for _, stat := range stats {
		rec.child(entityStatistic, fx.EventKey+":"+stat.Type, true)
	}
	return nil
}

func (s *FixtureIngestionService) syncLineups(ctx context.Context, rec *recorder, fx fixture.Fixture, lineups ExternalLineups) error {
	for _, side := range []struct {
		side   fixture.Side
		lineup Optional[ExternalTeamLineup]
	}{
		{side: fixture.SideHome, lineup: lineups.Home},
		{side: fixture.SideAway, lineup: lineups.Away},
	} {
		if !side.lineup.Present {
			continue
		}
		if err := s.syncSideLineup(ctx, rec, fx, side.side, side.lineup.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *FixtureIngestionService) syncSideLineup(ctx context.Context, rec *recorder, fx fixture.Fixture, side fixture.Side, roster ExternalTeamLineup) error {
	starters := make(map[string]struct{}, len(roster.Starters))
	for _, p := range roster.Starters {
		starters[strings.TrimSpace(p.Key)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(roster.Starters)+len(roster.Substitutes))
	merged := append(append([]ExternalLineupPlayer(nil), roster.Starters...), roster.Substitutes...)
	for _, p := range merged {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		playerCreated, err := s.repos.Players.Upsert(ctx, player.Player{
			Key:     key,
			Name:    strings.TrimSpace(p.Name),
			TeamKey: fx.TeamKey(side),
		})
		if err != nil {
			return fmt.Errorf("upsert player=%s: %w", key, err)
		}
		rec.child(entityPlayer, key, playerCreated)

		role := lineup.RoleSubstitute
		if _, ok := starters[key]; ok {
			role = lineup.RoleStarter
		}
		created, err := s.repos.Lineups.Upsert(ctx, lineup.Entry{
			FixtureID: fx.ID,
			PlayerKey: key,
			Side:      side,
			Role:      role,
		})
		if err != nil {
			return fmt.Errorf("upsert lineup event=%s player=%s: %w", fx.EventKey, key, err)
		}
		rec.child(entityLineup, fx.EventKey+":"+string(side)+":"+key, created)
	}
	return nil
}

func (s *FixtureIngestionService) syncPlayerStatistics(ctx context.Context, rec *recorder, fx fixture.Fixture, stats ExternalPlayerStatistics) error {
	for _, side := range []struct {
		side  fixture.Side
		items []ExternalPlayerStatistic
	}{
		{side: fixture.SideHome, items: stats.Home},
		{side: fixture.SideAway, items: stats.Away},
	} {
		for _, item := range side.items {
			key := strings.TrimSpace(item.PlayerKey)
			recordKey := fx.EventKey + ":" + string(side.side) + ":" + key

			_, ok, err := s.repos.Players.GetByKey(ctx, key)
			if err != nil {
				return fmt.Errorf("get player=%s: %w", key, err)
			}
			if !ok {
				rec.skipped(ctx, &ReferentialGapError{Entity: entityPlayerStatistic, Key: recordKey, Missing: "player", MissingKey: key})
				continue
			}

			created, err := s.repos.PlayerStats.Upsert(ctx, playerStatLine(fx.ID, side.side, key, item))
			if err != nil {
				return fmt.Errorf("upsert player statistic event=%s player=%s: %w", fx.EventKey, key, err)
			}
			rec.child(entityPlayerStatistic, recordKey, created)
		}
	}
	return nil
}

func playerStatLine(fixtureID string, side fixture.Side, playerKey string, item ExternalPlayerStatistic) playerstats.Line {
	return playerstats.Line{
		FixtureID:          fixtureID,
		PlayerKey:          playerKey,
		Side:               side,
		Position:           strings.TrimSpace(item.Position),
		Minutes:            strings.TrimSpace(item.Minutes),
		Points:             strings.TrimSpace(item.Points),
		Assists:            strings.TrimSpace(item.Assists),
		Blocks:             strings.TrimSpace(item.Blocks),
		Steals:             strings.TrimSpace(item.Steals),
		Turnovers:          strings.TrimSpace(item.Turnovers),
		PersonalFouls:      strings.TrimSpace(item.PersonalFouls),
		PlusMinus:          strings.TrimSpace(item.PlusMinus),
		DefenseRebounds:    strings.TrimSpace(item.DefenseRebounds),
		OffenceRebounds:    strings.TrimSpace(item.OffenceRebounds),
		TotalRebounds:      strings.TrimSpace(item.TotalRebounds),
		FieldGoalsMade:     strings.TrimSpace(item.FieldGoalsMade),
		FieldGoalsAttempts: strings.TrimSpace(item.FieldGoalsAttempts),
		ThreePointMade:     strings.TrimSpace(item.ThreePointMade),
		ThreePointAttempts: strings.TrimSpace(item.ThreePointAttempts),
		FreeThrowsMade:     strings.TrimSpace(item.FreeThrowsMade),
		FreeThrowsAttempts: strings.TrimSpace(item.FreeThrowsAttempts),
		OnCourt:            strings.TrimSpace(item.OnCourt),
	}.WithDefaults()
}
