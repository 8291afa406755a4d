package allsports

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/riskibarqy/hoops-sync/internal/platform/resilience"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://apiv2.allsportsapi.com/basketball/"
	defaultTimeout  = 20 * time.Second
	maxResponseBody = 6 << 20
)

const (
	methodCountries = "Countries"
	methodLeagues   = "Leagues"
	methodTeams     = "Teams"
	methodFixtures  = "Fixtures"
	methodLivescore = "Livescore"
	methodStandings = "Standings"
	methodH2H       = "H2H"
)

var apiKeyParamRegex = regexp.MustCompile(`APIkey=[^&\s"']+`)
var errAllSportsTransient = crerr.New("allsports transient failure")

// RequestObserver receives one call per provider request after retries.
type RequestObserver interface {
	ObserveRequest(method, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timezone   string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerMinute throttles outgoing calls; zero disables throttling.
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	Observer          RequestObserver
}

// Client talks to the AllSports basketball API. It implements
// usecase.BasketballProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	timezone       string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	limiter        *rate.Limiter
	observer       RequestObserver
	flight         singleflight.Group
}

var _ usecase.BasketballProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	c := &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timezone:       strings.TrimSpace(cfg.Timezone),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreakerFromConfig(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		limiter:        limiter,
		observer:       cfg.Observer,
	}
	c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("allsports circuit breaker state changed", "from", from, "to", to)
	})
	return c
}

func (c *Client) FetchCountries(ctx context.Context) ([]usecase.ExternalCountry, error) {
	var rows []wireCountry
	if err := c.call(ctx, methodCountries, nil, &rows); err != nil {
		return nil, err
	}
	return mapCountries(rows), nil
}

func (c *Client) FetchLeagues(ctx context.Context, countryKey string) ([]usecase.ExternalLeague, error) {
	params := url.Values{}
	setIfNotEmpty(params, "countryId", countryKey)

	var rows []wireLeague
	if err := c.call(ctx, methodLeagues, params, &rows); err != nil {
		return nil, err
	}
	return mapLeagues(rows), nil
}

func (c *Client) FetchTeams(ctx context.Context, leagueKey string) ([]usecase.ExternalTeam, error) {
	params := url.Values{}
	setIfNotEmpty(params, "leagueId", leagueKey)

	var rows []wireTeam
	if err := c.call(ctx, methodTeams, params, &rows); err != nil {
		return nil, err
	}
	return mapTeams(rows), nil
}

func (c *Client) FetchFixtures(ctx context.Context, query usecase.FixtureQuery) ([]usecase.ExternalFixture, error) {
	params := url.Values{}
	setIfNotEmpty(params, "from", query.From)
	setIfNotEmpty(params, "to", query.To)
	setIfNotEmpty(params, "leagueId", query.LeagueKey)
	setIfNotEmpty(params, "teamId", query.TeamKey)
	setIfNotEmpty(params, "countryId", query.CountryKey)
	setIfNotEmpty(params, "timezone", c.timezone)

	var rows []wireFixture
	if err := c.call(ctx, methodFixtures, params, &rows); err != nil {
		return nil, err
	}
	return mapFixtures(rows), nil
}

func (c *Client) FetchLivescore(ctx context.Context, leagueKey string) ([]usecase.ExternalFixture, error) {
	params := url.Values{}
	setIfNotEmpty(params, "leagueId", leagueKey)
	setIfNotEmpty(params, "timezone", c.timezone)

	var rows []wireFixture
	if err := c.call(ctx, methodLivescore, params, &rows); err != nil {
		return nil, err
	}
	return mapFixtures(rows), nil
}

func (c *Client) FetchStandings(ctx context.Context, leagueKey string) ([]usecase.ExternalStanding, error) {
	params := url.Values{}
	setIfNotEmpty(params, "leagueId", leagueKey)

	var result wireStandings
	if err := c.call(ctx, methodStandings, params, &result); err != nil {
		return nil, err
	}
	return mapStandings(result.Total), nil
}

func (c *Client) FetchH2H(ctx context.Context, firstTeamKey, secondTeamKey string) (usecase.ExternalH2H, error) {
	params := url.Values{}
	params.Set("firstTeamId", strings.TrimSpace(firstTeamKey))
	params.Set("secondTeamId", strings.TrimSpace(secondTeamKey))

	var result wireH2H
	if err := c.call(ctx, methodH2H, params, &result); err != nil {
		return usecase.ExternalH2H{}, err
	}
	return usecase.ExternalH2H{
		H2H:            mapFixtures(result.H2H),
		FirstTeamLast:  mapFixtures(result.FirstTeamResults),
		SecondTeamLast: mapFixtures(result.SecondTeamResults),
	}, nil
}

// call wraps every failure in *usecase.UpstreamError so callers can tell
// provider trouble apart from storage trouble.
func (c *Client) call(ctx context.Context, method string, params url.Values, target any) error {
	started := time.Now()
	err := c.doJSON(ctx, method, params, target)
	if c.observer != nil {
		c.observer.ObserveRequest(method, requestOutcome(err), time.Since(started))
	}
	if err != nil {
		return &usecase.UpstreamError{Method: method, Err: err}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method string, params url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "allsports circuit breaker rejected request", "method", method, "state", c.breaker.State())
			return fmt.Errorf("%w: basketball data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, items := range params {
		for _, item := range items {
			values.Add(key, item)
		}
	}
	values.Set("met", method)

	// The flight key leaves the API key out; it is the same for every caller.
	key := values.Encode()
	values.Set("APIkey", c.apiKey)
	fullURL := c.baseURL + "?" + values.Encode()

	// The shared request outlives any one caller; the HTTP client timeout
	// bounds each attempt. Callers stop waiting when their own ctx ends.
	flightCtx := context.WithoutCancel(ctx)
	results := c.flight.DoChan(key, func() (any, error) {
		raw, reqErr := c.executeRequest(flightCtx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isAllSportsCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-results:
	}
	if res.Err != nil {
		return res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", res.Val)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return crerr.Wrap(err, "decode provider envelope")
	}
	if env.Success.String() != "1" {
		return crerr.Newf("provider reported success=%q body=%s", env.Success.String(), c.safeBody(raw))
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := sonic.Unmarshal(env.Result, target); err != nil {
		if isEmptyPHPArray(env.Result) {
			return nil
		}
		return crerr.Wrapf(err, "decode %s result", method)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, crerr.Wrap(err, "wait for rate limiter")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey)), errAllSportsTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errAllSportsTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, c.safeBody(raw)), errAllSportsTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, c.safeBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = stderrors.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "allsports request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isAllSportsCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	return crerr.Is(err, errAllSportsTransient) || stderrors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func requestOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case stderrors.Is(err, usecase.ErrDependencyUnavailable):
		return "circuit_open"
	case crerr.Is(err, errAllSportsTransient):
		return "transient"
	default:
		return "error"
	}
}

func setIfNotEmpty(values url.Values, key, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		values.Set(key, value)
	}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "APIkey=REDACTED")
}

func redactAPIURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(raw, "APIkey=REDACTED")
	}
	query := parsed.Query()
	if query.Has("APIkey") {
		query.Set("APIkey", "REDACTED")
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func (c *Client) safeBody(raw []byte) string {
	return sanitizeSensitiveText(abbreviateBody(raw), c.apiKey)
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) <= 240 {
		return body
	}
	return body[:240] + "..."
}
