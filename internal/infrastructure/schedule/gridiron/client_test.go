package gridiron

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agsmith/run-my-pool/internal/platform/logging"
	"github.com/agsmith/run-my-pool/internal/platform/resilience"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

func newTestClient(srv *httptest.Server, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		APIKey:         "secret-key",
		Season:         2025,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClientFetchWeekGames_ParsesAndNormalizes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("season") != "2025" || q.Get("week") != "3" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("api_key") != "secret-key" {
			t.Errorf("expected api key in query, got %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"g-1","home_team":"lv","away_team":"kc","kickoff":"2025-09-21T17:00:00Z","status":"FT","winner":"kc"},
			{"id":"g-2","home_team":"cle","away_team":"bal","kickoff":"2025-09-21T20:25:00Z","status":"scheduled","winner":""},
			{"id":"g-3","home_team":"???","away_team":"kc","kickoff":"2025-09-21T17:00:00Z","status":"FT","winner":""}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 0, resilience.CircuitBreakerConfig{})

	games, err := client.FetchWeekGames(context.Background(), 3)
	if err != nil {
		t.Fatalf("fetch week games failed: %v", err)
	}

	// The malformed third row is skipped, not fatal.
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	first := games[0]
	if first.HomeTeam != "LV" || first.AwayTeam != "KC" {
		t.Fatalf("expected normalized team codes, got %+v", first)
	}
	if !first.IsFinal() || first.WinnerTeam != "KC" {
		t.Fatalf("expected finalized KC win, got %+v", first)
	}
	if first.Week != 3 {
		t.Fatalf("expected week 3, got %d", first.Week)
	}

	second := games[1]
	if second.IsFinal() || second.WinnerTeam != "" {
		t.Fatalf("expected scheduled game without winner, got %+v", second)
	}
}

func TestClientFetchWeekGames_RetriesTransientStatuses(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 1, resilience.CircuitBreakerConfig{})

	games, err := client.FetchWeekGames(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected empty week, got %d games", len(games))
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClientFetchWeekGames_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv, 3, resilience.CircuitBreakerConfig{})

	_, err := client.FetchWeekGames(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("a 404 must not retry, got %d attempts", got)
	}
}

func TestClientFetchWeekGames_CircuitBreakerTrips(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchWeekGames(context.Background(), i+1); err == nil {
			t.Fatalf("attempt %d: expected provider error", i)
		}
	}

	_, err := client.FetchWeekGames(context.Background(), 3)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
}

func TestClientFetchWeekGames_RejectsNonPositiveWeek(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.FetchWeekGames(context.Background(), 0); err == nil {
		t.Fatal("expected error for week 0")
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`Get "https://feed/games?week=1&api_key=secret-key": timeout`, "secret-key")
	if strings.Contains(got, "secret-key") {
		t.Fatalf("api key leaked: %s", got)
	}
	if !strings.Contains(got, "api_key=REDACTED") {
		t.Fatalf("expected redaction marker, got %s", got)
	}

	if got := redactAPIURL("https://feed/games?season=2025&api_key=abc123"); strings.Contains(got, "abc123") {
		t.Fatalf("api key leaked in url: %s", got)
	}
}
