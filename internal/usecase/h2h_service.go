package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/platform/cache"
)

const defaultH2HTTL = 30 * time.Minute

type H2HService struct {
	provider BasketballProvider
	cache    *cache.Store
	ttl      time.Duration
}

// NewH2HService caches provider responses for ttl; a nil store disables
// caching.
func NewH2HService(provider BasketballProvider, store *cache.Store, ttl time.Duration) *H2HService {
	if ttl <= 0 {
		ttl = defaultH2HTTL
	}
	return &H2HService{
		provider: provider,
		cache:    store,
		ttl:      ttl,
	}
}

func (s *H2HService) HeadToHead(ctx context.Context, firstTeamKey, secondTeamKey string) (ExternalH2H, error) {
	firstTeamKey = strings.TrimSpace(firstTeamKey)
	secondTeamKey = strings.TrimSpace(secondTeamKey)
	ctx, span := startUsecaseSpan(ctx, "usecase.H2HService.HeadToHead")
	defer span.End()

	if firstTeamKey == "" {
		return ExternalH2H{}, &ValidationError{Field: "first_team_key", Reason: "is required"}
	}
	if secondTeamKey == "" {
		return ExternalH2H{}, &ValidationError{Field: "second_team_key", Reason: "is required"}
	}

	load := func(ctx context.Context) (any, error) {
		out, err := s.provider.FetchH2H(ctx, firstTeamKey, secondTeamKey)
		if err != nil {
			return nil, fmt.Errorf("fetch h2h first=%s second=%s: %w", firstTeamKey, secondTeamKey, err)
		}
		return out, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			recordSpanError(span, err)
			return ExternalH2H{}, err
		}
		return value.(ExternalH2H), nil
	}

	value, err := s.cache.GetOrLoadTTL(ctx, "h2h:"+firstTeamKey+":"+secondTeamKey, s.ttl, load)
	if err != nil {
		recordSpanError(span, err)
		return ExternalH2H{}, err
	}
	out, ok := value.(ExternalH2H)
	if !ok {
		return ExternalH2H{}, fmt.Errorf("unexpected h2h cache value type %T", value)
	}
	return out, nil
}
