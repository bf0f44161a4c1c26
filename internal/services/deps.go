package services

import (
	"context"
	"encoding/json"
	"io"
)

// Narrow views of the external clients, declared here so every stage can
// be exercised against fakes.

type CompletionClient interface {
	CompleteJSON(ctx context.Context, system, user string) (json.RawMessage, error)
	CompleteText(ctx context.Context, system, user string) (string, error)
}

type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type SlideClient interface {
	CreatePresentation(ctx context.Context, title, input string) (string, error)
}

type SpeechClient interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type MediaStore interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	GetPublicURL(key string) string
}

type CDNUploader interface {
	UploadImage(ctx context.Context, image []byte, topic string) (string, error)
}

// ProgressFunc receives human-readable status lines during a run. It is
// fire-and-forget: panics are swallowed and the pipeline never waits on it.
type ProgressFunc func(message string)

func safeProgress(fn ProgressFunc) ProgressFunc {
	return func(message string) {
		if fn == nil {
			return
		}
		defer func() { _ = recover() }()
		fn(message)
	}
}
