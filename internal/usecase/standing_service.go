package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
	"go.opentelemetry.io/otel/attribute"
)

type StandingService struct {
	standings standing.Repository
}

func NewStandingService(standings standing.Repository) *StandingService {
	return &StandingService{standings: standings}
}

// ListByLeague returns the league table ordered by place. A non-empty season
// narrows the rows to that exact season label.
func (s *StandingService) ListByLeague(ctx context.Context, leagueKey, season string) ([]standing.Standing, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	season = strings.TrimSpace(season)
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByLeague",
		attribute.String("league_key", leagueKey),
		attribute.String("season", season),
	)
	defer span.End()

	if leagueKey == "" {
		return nil, &ValidationError{Field: "league_key", Reason: "is required"}
	}

	items, err := s.standings.ListByLeague(ctx, leagueKey, season)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list standings league=%s season=%s: %w", leagueKey, season, err)
	}

	out := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		if season != "" && item.LeagueSeason != season {
			continue
		}
		out = append(out, item)
	}
	standing.SortByPlace(out)
	return out, nil
}
