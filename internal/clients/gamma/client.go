package gamma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/utils"
)

// The slide service truncates nothing itself; overlong input is rejected,
// so the request body is capped client-side.
const maxInputChars = 15000

// Client submits a deck-generation job and polls it to a terminal state.
type Client interface {
	CreatePresentation(ctx context.Context, title, input string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	themeID    string
	httpClient *http.Client

	pollInterval time.Duration
	maxPolls     int
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := os.Getenv("GAMMA_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GAMMA_API_KEY")
	}

	baseURL := os.Getenv("GAMMA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://public-api.gamma.app/v1.0"
	}
	themeID := utils.GetEnv("GAMMA_THEME_ID", "gamma", log)

	return &client{
		log:          log.With("client", "GammaClient"),
		baseURL:      baseURL,
		apiKey:       apiKey,
		themeID:      themeID,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: 2 * time.Second,
		maxPolls:     60,
	}, nil
}

type generateRequest struct {
	InputText      string         `json:"inputText"`
	Format         string         `json:"format"`
	ThemeID        string         `json:"themeId"`
	NumCards       int            `json:"numCards"`
	TextMode       string         `json:"textMode"`
	CardSplit      string         `json:"cardSplit"`
	CardOptions    map[string]any `json:"cardOptions"`
	TextOptions    map[string]any `json:"textOptions"`
	ImageOptions   map[string]any `json:"imageOptions"`
	SharingOptions map[string]any `json:"sharingOptions"`
}

type generateResponse struct {
	GenerationID string `json:"generationId"`
}

type statusResponse struct {
	Status   string `json:"status"`
	URL      string `json:"url"`
	GammaURL string `json:"gammaUrl"`
}

// CreatePresentation submits the deck job and polls every pollInterval
// until the service reports a terminal status or the poll budget runs
// out. The service has been observed reporting completion under several
// casings and synonyms, so terminal matching is case-insensitive.
func (c *client) CreatePresentation(ctx context.Context, title, input string) (string, error) {
	if len(input) > maxInputChars {
		input = input[:maxInputChars]
	}

	c.log.Debug("Submitting slide generation job", "title", title, "input_len", len(input))

	req := generateRequest{
		InputText: input,
		Format:    "presentation",
		ThemeID:   c.themeID,
		NumCards:  10,
		TextMode:  "condense",
		CardSplit: "auto",
		CardOptions: map[string]any{
			"dimensions": "fluid",
		},
		TextOptions: map[string]any{
			"tone":     "Professional",
			"amount":   "medium",
			"audience": "Staff",
			"language": "en",
		},
		ImageOptions: map[string]any{
			"source": "aiGenerated",
		},
		SharingOptions: map[string]any{
			"externalAccess":             "view",
			"enableSearchEngineIndexing": false,
		},
	}

	var sub generateResponse
	if err := c.post(ctx, "/generations", req, &sub); err != nil {
		return "", fmt.Errorf("submit slide job: %w", err)
	}
	if sub.GenerationID == "" {
		return "", fmt.Errorf("slide service returned no generation id")
	}

	for attempt := 0; attempt < c.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}

		var st statusResponse
		if err := c.get(ctx, "/generations/"+sub.GenerationID, &st); err != nil {
			// Transient poll failures just consume an attempt.
			c.log.Warn("Slide status poll failed", "generation_id", sub.GenerationID, "error", err)
			continue
		}

		switch strings.ToLower(st.Status) {
		case "completed", "success":
			if st.GammaURL != "" {
				return st.GammaURL, nil
			}
			return st.URL, nil
		case "failed":
			return "", fmt.Errorf("slide generation failed for job %s", sub.GenerationID)
		}
	}

	return "", fmt.Errorf("slide generation timed out after %d polls", c.maxPolls)
}

func (c *client) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	return c.send(req, out)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	return c.send(req, out)
}

func (c *client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gamma http %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
