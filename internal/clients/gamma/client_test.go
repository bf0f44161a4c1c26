package gamma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
)

type fakeGammaServer struct {
	t        *testing.T
	statuses []statusResponse
	polls    int
	lastBody generateRequest
}

func (s *fakeGammaServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generations", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") == "" {
			s.t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&s.lastBody); err != nil {
			s.t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{GenerationID: "gen-123"})
	})
	mux.HandleFunc("GET /generations/gen-123", func(w http.ResponseWriter, r *http.Request) {
		idx := s.polls
		if idx >= len(s.statuses) {
			idx = len(s.statuses) - 1
		}
		s.polls++
		json.NewEncoder(w).Encode(s.statuses[idx])
	})
	return mux
}

func testClient(t *testing.T, baseURL string) *client {
	t.Helper()
	return &client{
		log:          logger.NewNop().With("client", "GammaClient"),
		baseURL:      baseURL,
		apiKey:       "test-key",
		themeID:      "gamma",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		pollInterval: time.Millisecond,
		maxPolls:     5,
	}
}

func TestCreatePresentationTerminalCasings(t *testing.T) {
	cases := []struct {
		status  string
		wantURL string
	}{
		{"COMPLETED", "https://gamma.app/docs/deck"},
		{"SUCCESS", "https://gamma.app/docs/deck"},
		{"completed", "https://gamma.app/docs/deck"},
		{"success", "https://gamma.app/docs/deck"},
	}
	for _, tc := range cases {
		srv := &fakeGammaServer{t: t, statuses: []statusResponse{
			{Status: "pending"},
			{Status: tc.status, GammaURL: tc.wantURL},
		}}
		ts := httptest.NewServer(srv.handler())

		c := testClient(t, ts.URL)
		url, err := c.CreatePresentation(context.Background(), "Deck", "input text")
		ts.Close()
		if err != nil {
			t.Fatalf("status %q: %v", tc.status, err)
		}
		if url != tc.wantURL {
			t.Fatalf("status %q: url=%q", tc.status, url)
		}
	}
}

func TestCreatePresentationPrefersGammaURL(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{
		{Status: "completed", GammaURL: "https://gamma.app/docs/primary", URL: "https://gamma.app/docs/fallback"},
	}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	url, err := testClient(t, ts.URL).CreatePresentation(context.Background(), "Deck", "input")
	if err != nil {
		t.Fatalf("CreatePresentation: %v", err)
	}
	if url != "https://gamma.app/docs/primary" {
		t.Fatalf("url: got %q", url)
	}
}

func TestCreatePresentationFallsBackToPlainURL(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{
		{Status: "completed", URL: "https://gamma.app/docs/fallback"},
	}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	url, err := testClient(t, ts.URL).CreatePresentation(context.Background(), "Deck", "input")
	if err != nil {
		t.Fatalf("CreatePresentation: %v", err)
	}
	if url != "https://gamma.app/docs/fallback" {
		t.Fatalf("url: got %q", url)
	}
}

func TestCreatePresentationFailedStatus(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{
		{Status: "pending"},
		{Status: "FAILED"},
	}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	_, err := testClient(t, ts.URL).CreatePresentation(context.Background(), "Deck", "input")
	if err == nil || !strings.Contains(err.Error(), "failed") {
		t.Fatalf("expected failure error, got %v", err)
	}
}

func TestCreatePresentationPollBudgetExhausted(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{{Status: "pending"}}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	c := testClient(t, ts.URL)
	_, err := c.CreatePresentation(context.Background(), "Deck", "input")
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if srv.polls != c.maxPolls {
		t.Fatalf("polls: want=%d got=%d", c.maxPolls, srv.polls)
	}
}

func TestCreatePresentationTruncatesOversizedInput(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{
		{Status: "completed", GammaURL: "https://gamma.app/docs/deck"},
	}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	oversized := strings.Repeat("x", maxInputChars+500)
	if _, err := testClient(t, ts.URL).CreatePresentation(context.Background(), "Deck", oversized); err != nil {
		t.Fatalf("CreatePresentation: %v", err)
	}
	if got := len(srv.lastBody.InputText); got != maxInputChars {
		t.Fatalf("submitted input length: want=%d got=%d", maxInputChars, got)
	}
}

func TestCreatePresentationContextCancelled(t *testing.T) {
	srv := &fakeGammaServer{t: t, statuses: []statusResponse{{Status: "pending"}}}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := testClient(t, ts.URL)
	c.maxPolls = 1000
	c.pollInterval = 10 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		_, err := c.CreatePresentation(ctx, "Deck", "input")
		done <- err
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "context canceled") {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for cancellation")
	}
}
