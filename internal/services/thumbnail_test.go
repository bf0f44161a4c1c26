package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courseforge/courseforge-backend/internal/clients/cloudinary"
)

func noUploadDelay(t *testing.T) {
	t.Helper()
	prev := thumbUploadDelay
	thumbUploadDelay = 0
	t.Cleanup(func() { thumbUploadDelay = prev })
}

func TestThumbnailGenerate(t *testing.T) {
	noUploadDelay(t)
	ai := &fakeCompletions{textResponse: "a red extension ladder leaning against a brick wall"}
	images := &fakeImages{image: []byte("png-bytes")}
	uploader := &fakeUploader{url: "https://res.cloudinary.com/demo/thumb.png"}
	svc := NewThumbnailService(testLogger(t), ai, images, uploader)

	url, err := svc.Generate(context.Background(), "ladder safety")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if url != "https://res.cloudinary.com/demo/thumb.png" {
		t.Fatalf("url: got %q", url)
	}
	if images.calls != 1 || uploader.calls != 1 {
		t.Fatalf("calls: images=%d uploads=%d", images.calls, uploader.calls)
	}
}

func TestThumbnailGenerateDescriberFailureUsesRawQuery(t *testing.T) {
	noUploadDelay(t)
	ai := &fakeCompletions{textErr: errors.New("describer down")}
	images := &fakeImages{image: []byte("png-bytes")}
	uploader := &fakeUploader{url: "https://res.cloudinary.com/demo/thumb.png"}
	svc := NewThumbnailService(testLogger(t), ai, images, uploader)

	url, err := svc.Generate(context.Background(), "ladder safety")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if url == "" {
		t.Fatalf("expected url despite describer failure")
	}
}

func TestThumbnailGenerateExhaustsFullRetryMatrix(t *testing.T) {
	noUploadDelay(t)
	ai := &fakeCompletions{textResponse: "subject"}
	images := &fakeImages{image: []byte("png-bytes")}
	uploader := &fakeUploader{err: errors.New("upload rejected")}
	svc := NewThumbnailService(testLogger(t), ai, images, uploader)

	start := time.Now()
	_, err := svc.Generate(context.Background(), "ladder safety")
	if err == nil {
		t.Fatalf("expected error after exhausted retry matrix")
	}
	if images.calls != 3 {
		t.Fatalf("image generations: want=3 got=%d", images.calls)
	}
	if uploader.calls != 9 {
		t.Fatalf("upload attempts: want=9 got=%d", uploader.calls)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("retry matrix took too long: %s", elapsed)
	}
}

func TestThumbnailGenerateUnsignedPresetAbortsImmediately(t *testing.T) {
	noUploadDelay(t)
	ai := &fakeCompletions{textResponse: "subject"}
	images := &fakeImages{image: []byte("png-bytes")}
	uploader := &fakeUploader{err: cloudinary.ErrUnsignedPreset}
	svc := NewThumbnailService(testLogger(t), ai, images, uploader)

	_, err := svc.Generate(context.Background(), "ladder safety")
	if !errors.Is(err, cloudinary.ErrUnsignedPreset) {
		t.Fatalf("error: want=%v got=%v", cloudinary.ErrUnsignedPreset, err)
	}
	if images.calls != 1 {
		t.Fatalf("image generations: want=1 got=%d", images.calls)
	}
	if uploader.calls != 1 {
		t.Fatalf("upload attempts: want=1 got=%d", uploader.calls)
	}
}

func TestThumbnailGenerateRecoversOnSecondImage(t *testing.T) {
	noUploadDelay(t)
	ai := &fakeCompletions{textResponse: "subject"}
	images := &failOnceImages{image: []byte("png-bytes")}
	uploader := &fakeUploader{url: "https://res.cloudinary.com/demo/thumb.png"}
	svc := NewThumbnailService(testLogger(t), ai, images, uploader)

	url, err := svc.Generate(context.Background(), "ladder safety")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if url == "" {
		t.Fatalf("expected url after recovery")
	}
	if images.calls != 2 {
		t.Fatalf("image generations: want=2 got=%d", images.calls)
	}
}

type failOnceImages struct {
	image []byte
	calls int
}

func (f *failOnceImages) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("content policy retry")
	}
	return f.image, nil
}
