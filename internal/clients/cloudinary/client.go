package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
)

// ErrUnsignedPreset means the configured upload preset is set to "Signed"
// in the provider console. Retrying cannot fix this; the preset must be
// switched to "Unsigned".
var ErrUnsignedPreset = errors.New(`cloudinary upload preset is "Signed" but must be "Unsigned"; check the Cloudinary console`)

// Client uploads generated images to the CDN using an unsigned preset.
type Client interface {
	UploadImage(ctx context.Context, image []byte, topic string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	cloudName  string
	preset     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	preset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	if cloudName == "" || preset == "" {
		return nil, fmt.Errorf("missing CLOUDINARY_CLOUD_NAME or CLOUDINARY_UPLOAD_PRESET")
	}

	baseURL := os.Getenv("CLOUDINARY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}

	return &client{
		log:        log.With("client", "CloudinaryClient"),
		baseURL:    baseURL,
		cloudName:  cloudName,
		preset:     preset,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) UploadImage(ctx context.Context, image []byte, topic string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "thumbnail.png")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(image); err != nil {
		return "", err
	}
	_ = mw.WriteField("upload_preset", c.preset)
	_ = mw.WriteField("context", "caption="+topic)
	_ = mw.WriteField("tags", "course_thumbnail,"+strings.ReplaceAll(topic, " ", "_"))
	if err := mw.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	var parsed uploadResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		if strings.Contains(msg, "must be whitelisted for unsigned") {
			c.log.Error("Cloudinary preset misconfigured: set the upload preset to Unsigned", "preset", c.preset)
			return "", ErrUnsignedPreset
		}
		return "", fmt.Errorf("cloudinary upload failed: %s", msg)
	}

	if parsed.SecureURL == "" {
		return "", fmt.Errorf("cloudinary response missing secure_url")
	}
	return parsed.SecureURL, nil
}
