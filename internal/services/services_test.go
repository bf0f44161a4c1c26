package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
)

// Shared fakes for the service tests. Each fake records its calls so the
// retry and settle-all behaviour can be asserted on counts.

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.NewNop()
}

type fakeCompletions struct {
	jsonResponses []string
	jsonErr       error
	jsonCalls     int

	textResponse string
	textErr      error
	textCalls    int
}

func (f *fakeCompletions) CompleteJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	f.jsonCalls++
	if f.jsonErr != nil {
		return nil, f.jsonErr
	}
	idx := f.jsonCalls - 1
	if idx >= len(f.jsonResponses) {
		idx = len(f.jsonResponses) - 1
	}
	return json.RawMessage(f.jsonResponses[idx]), nil
}

func (f *fakeCompletions) CompleteText(ctx context.Context, system, user string) (string, error) {
	f.textCalls++
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.textResponse, nil
}

type fakeSlides struct {
	url   string
	err   error
	calls int
}

func (f *fakeSlides) CreatePresentation(ctx context.Context, title, input string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeSpeech struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

type fakeStore struct {
	uploadErr   error
	uploads     int
	lastKey     string
	lastContent string
}

func (f *fakeStore) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	f.uploads++
	f.lastKey = key
	f.lastContent = contentType
	if f.uploadErr != nil {
		return f.uploadErr
	}
	return nil
}

func (f *fakeStore) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeImages struct {
	image []byte
	err   error
	calls int
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) UploadImage(ctx context.Context, image []byte, topic string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}
