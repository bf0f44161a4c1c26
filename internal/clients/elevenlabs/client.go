package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/utils"
)

const defaultVoiceID = "P4wGl87YTnsZgReoqa8D"

// Client converts narration text to speech in a single shot. There is no
// internal retry: a failed synthesis is reported to the caller, who treats
// narration as best-effort.
type Client interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing ELEVENLABS_API_KEY")
	}

	baseURL := os.Getenv("ELEVENLABS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}

	return &client{
		log:        log.With("client", "ElevenLabsClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		voiceID:    utils.GetEnv("ELEVENLABS_VOICE_ID", defaultVoiceID, log),
		modelID:    utils.GetEnv("ELEVENLABS_MODEL_ID", "eleven_turbo_v2_5", log),
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}, nil
}

type synthesizeRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings map[string]any `json:"voice_settings"`
}

func (c *client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	c.log.Debug("Synthesizing narration audio", "text_len", len(text))

	body := synthesizeRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: map[string]any{
			"stability":         0.5,
			"similarity_boost":  0.75,
			"use_speaker_boost": true,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/text-to-speech/"+c.voiceID, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs http %d: %s", resp.StatusCode, string(raw))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio payload: %w", err)
	}
	return audio, nil
}
