package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type FixtureFilter struct {
	LeagueKey string `json:"league_key" validate:"omitempty,max=32"`
	TeamKey   string `json:"team_key" validate:"omitempty,max=32"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Page      int    `json:"page" validate:"gte=0"`
	Limit     int    `json:"limit" validate:"gte=0,lte=100"`
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type FixturePage struct {
	Data []fixture.Fixture `json:"data"`
	Meta PageMeta          `json:"meta"`
}

type FixtureService struct {
	fixtures fixture.Repository
}

func NewFixtureService(fixtures fixture.Repository) *FixtureService {
	return &FixtureService{fixtures: fixtures}
}

// List pages through fixtures newest first. Page is 1-based; zero selects
// the first page and a zero limit selects the default page size.
func (s *FixtureService) List(ctx context.Context, filter FixtureFilter) (FixturePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.List")
	defer span.End()

	filter.LeagueKey = strings.TrimSpace(filter.LeagueKey)
	filter.TeamKey = strings.TrimSpace(filter.TeamKey)
	filter.Date = strings.TrimSpace(filter.Date)
	if err := validateInput(filter); err != nil {
		return FixturePage{}, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	query := fixture.Filter{
		LeagueKey: filter.LeagueKey,
		TeamKey:   filter.TeamKey,
		DateFrom:  filter.Date,
		DateTo:    filter.Date,
	}
	total, err := s.fixtures.Count(ctx, query)
	if err != nil {
		recordSpanError(span, err)
		return FixturePage{}, fmt.Errorf("count fixtures: %w", err)
	}

	query.Limit = limit
	query.Offset = (page - 1) * limit
	items, err := s.fixtures.List(ctx, query)
	if err != nil {
		recordSpanError(span, err)
		return FixturePage{}, fmt.Errorf("list fixtures: %w", err)
	}

	return FixturePage{
		Data: items,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *FixtureService) GetByEventKey(ctx context.Context, eventKey string) (fixture.Fixture, error) {
	eventKey = strings.TrimSpace(eventKey)
	if eventKey == "" {
		return fixture.Fixture{}, &ValidationError{Field: "event_key", Reason: "is required"}
	}

	item, ok, err := s.fixtures.GetByEventKey(ctx, eventKey)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture event=%s: %w", eventKey, err)
	}
	if !ok {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture event=%s", ErrNotFound, eventKey)
	}
	return item, nil
}
