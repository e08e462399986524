package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/platform/logging"
	"github.com/quietscores/scores/internal/platform/resilience"
	"github.com/quietscores/scores/internal/usecase"
)

const (
	defaultBaseURL  = "https://site.api.espn.com"
	maxResponseSize = 6 << 20
	scoreboardDate  = "20060102"
)

var errESPNTransient = crerr.New("espn transient failure")

// sportPath maps a sport key to the feed's sport/league path segment.
var sportPath = map[string]string{
	game.SportNFL:               "football/nfl",
	game.SportNBA:               "basketball/nba",
	game.SportMLB:               "baseball/mlb",
	game.SportNHL:               "hockey/nhl",
	game.SportCollegeFootball:   "football/college-football",
	game.SportCollegeBasketball: "basketball/mens-college-basketball",
}

// scoreboardExtraQuery widens the college basketball scoreboard, which
// defaults to a tiny ranked-only slate.
var scoreboardExtraQuery = map[string]string{
	game.SportCollegeBasketball: "limit=200&groups=50",
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches raw scoreboard/summary/standings documents. It never
// interprets payloads beyond JSON decoding; normalization lives in the
// sibling files of this package.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker("espn", breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GetScoreboard returns the raw event objects for one sport on one
// date. Events dated outside the requested day are dropped here: the
// feed is known to leak adjacent dates, and for the college sports it
// does so aggressively enough that only an exact date-string match is
// accepted.
func (c *Client) GetScoreboard(ctx context.Context, sport string, date time.Time) ([]map[string]any, error) {
	path, ok := sportPath[sport]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport)
	}

	url := fmt.Sprintf("%s/apis/site/v2/sports/%s/scoreboard?dates=%s", c.baseURL, path, date.Format(scoreboardDate))
	if extra := scoreboardExtraQuery[sport]; extra != "" {
		url += "&" + extra
	}

	var doc map[string]any
	if err := c.doJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch scoreboard sport=%s: %w", sport, err)
	}

	target := date.Format(scoreboardDate)
	events := make([]map[string]any, 0, 16)
	for _, raw := range getSlice(doc, "events") {
		event, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		eventDate := parseEventDate(getString(event, "date"))
		if eventDate.IsZero() {
			continue
		}
		if eventDate.Format(scoreboardDate) != target {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// GetSummary returns the raw summary/boxscore document for one event.
func (c *Client) GetSummary(ctx context.Context, sport, eventID string) (map[string]any, error) {
	path, ok := sportPath[sport]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport)
	}
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", usecase.ErrInvalidInput)
	}

	url := fmt.Sprintf("%s/apis/site/v2/sports/%s/summary?event=%s", c.baseURL, path, eventID)
	var doc map[string]any
	if err := c.doJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch summary sport=%s event=%s: %w", sport, eventID, err)
	}
	return doc, nil
}

// GetStandings returns the raw standings document for one sport. The
// decoded value may be an object or a top-level array; the matcher
// handles both.
func (c *Client) GetStandings(ctx context.Context, sport string) (any, error) {
	path, ok := sportPath[sport]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport)
	}

	url := fmt.Sprintf("%s/apis/v2/sports/%s/standings", c.baseURL, path)
	var doc any
	if err := c.doJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch standings sport=%s: %w", sport, err)
	}
	return doc, nil
}

// GetTeamInfo is best-effort: any failure yields nil, nil so callers
// can render without the enrichment.
func (c *Client) GetTeamInfo(ctx context.Context, sport, teamID string) (map[string]any, error) {
	return c.teamDoc(ctx, sport, teamID, "")
}

func (c *Client) GetTeamRoster(ctx context.Context, sport, teamID string) (map[string]any, error) {
	return c.teamDoc(ctx, sport, teamID, "/roster")
}

func (c *Client) GetTeamSchedule(ctx context.Context, sport, teamID string) (map[string]any, error) {
	return c.teamDoc(ctx, sport, teamID, "/schedule")
}

func (c *Client) teamDoc(ctx context.Context, sport, teamID, suffix string) (map[string]any, error) {
	path, ok := sportPath[sport]
	if !ok || strings.TrimSpace(teamID) == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/apis/site/v2/sports/%s/teams/%s%s", c.baseURL, path, teamID, suffix)
	var doc map[string]any
	if err := c.doJSON(ctx, url, &doc); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "team document fetch failed, continuing without it",
			"sport", sport,
			"team_id", teamID,
			"error", err,
		)
		return nil, nil
	}
	return doc, nil
}

func (c *Client) doJSON(ctx context.Context, url string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(url, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, url)
		if c.circuitEnabled {
			if reqErr != nil && isESPNCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", url, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseSize)); err != nil {
		return nil, err
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func isESPNCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errESPNTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func parseEventDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04Z07:00", time.RFC3339, "2006-01-02T15:04:05Z07:00"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
