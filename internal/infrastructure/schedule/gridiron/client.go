package gridiron

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/domain/team"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
	"github.com/agsmith/run-my-pool/internal/platform/resilience"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

const defaultBaseURL = "https://api.gridiron-feeds.com/v1"

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errGridironTransient = crerr.New("gridiron transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Season         int
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls weekly game schedules and results from the gridiron
// feed. Reads are idempotent, so failed attempts retry with a linear
// backoff, and sustained failures trip the circuit breaker.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	season         int
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
		httpClient = &http.Client{Timeout: cfg.Timeout}
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
		apiKey:         strings.TrimSpace(cfg.APIKey),
		season:         cfg.Season,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchWeekGames(ctx context.Context, week int) ([]schedule.Game, error) {
	if week <= 0 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	path := "/games"
	query := map[string]string{
		"season": strconv.Itoa(c.season),
		"week":   strconv.Itoa(week),
	}

	var envelope gamesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch games week=%d: %w", week, err)
	}

	out := make([]schedule.Game, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		game, err := mapGame(week, item)
		if err != nil {
			c.logger.WarnContext(ctx, "skip malformed provider game",
				"week", week,
				"game_id", item.ID,
				"error", err,
			)
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gridiron circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isGridironCircuitFailure(reqErr) {
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
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errGridironTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errGridironTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d", errGridironTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
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
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gridiron request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
}

type gamePayload struct {
	ID       string `json:"id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Kickoff  string `json:"kickoff"`
	Status   string `json:"status"`
	Winner   string `json:"winner"`
}

func mapGame(week int, item gamePayload) (schedule.Game, error) {
	home := team.NormalizeCode(item.HomeTeam)
	away := team.NormalizeCode(item.AwayTeam)
	if !team.IsValidCode(home) || !team.IsValidCode(away) {
		return schedule.Game{}, fmt.Errorf("unknown matchup %q at %q", item.AwayTeam, item.HomeTeam)
	}

	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.Kickoff))
	if err != nil {
		return schedule.Game{}, fmt.Errorf("parse kickoff %q: %w", item.Kickoff, err)
	}

	id := strings.TrimSpace(item.ID)
	if id == "" {
		id = fmt.Sprintf("w%02d-%s-%s", week, away, home)
	}

	winner := team.NormalizeCode(item.Winner)
	if !team.IsValidCode(winner) {
		winner = ""
	}

	return schedule.Game{
		ID:         id,
		Week:       week,
		HomeTeam:   home,
		AwayTeam:   away,
		KickoffAt:  kickoff.UTC(),
		Status:     schedule.NormalizeStatus(item.Status),
		WinnerTeam: winner,
	}, nil
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func isGridironCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errGridironTransient)
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func redactAPIURL(value string) string {
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}
