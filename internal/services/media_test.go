package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSynthesizeBothBranchesSucceed(t *testing.T) {
	slides := &fakeSlides{url: "https://gamma.app/docs/abc"}
	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	store := &fakeStore{}
	svc := NewMediaService(testLogger(t), slides, speech, store)

	result := svc.Synthesize(context.Background(), "Inspection Basics", "slide script", "narration script")
	if result.SlideURL != "https://gamma.app/docs/abc" {
		t.Fatalf("slide url: got %q", result.SlideURL)
	}
	if !strings.HasPrefix(result.AudioURL, "https://cdn.example.com/audio/lesson_") {
		t.Fatalf("audio url: got %q", result.AudioURL)
	}
	if !strings.HasSuffix(store.lastKey, ".mp3") {
		t.Fatalf("upload key: got %q", store.lastKey)
	}
	if store.lastContent != "audio/mpeg" {
		t.Fatalf("content type: got %q", store.lastContent)
	}
}

func TestSynthesizeSlideFailureKeepsAudio(t *testing.T) {
	slides := &fakeSlides{err: errors.New("gamma timeout")}
	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	store := &fakeStore{}
	svc := NewMediaService(testLogger(t), slides, speech, store)

	result := svc.Synthesize(context.Background(), "Inspection Basics", "slide script", "narration script")
	if result.SlideURL != "" {
		t.Fatalf("slide url should be empty, got %q", result.SlideURL)
	}
	if result.AudioURL == "" {
		t.Fatalf("audio url should survive slide failure")
	}
}

func TestSynthesizeAudioFailureKeepsSlides(t *testing.T) {
	slides := &fakeSlides{url: "https://gamma.app/docs/abc"}
	speech := &fakeSpeech{err: errors.New("tts quota")}
	store := &fakeStore{}
	svc := NewMediaService(testLogger(t), slides, speech, store)

	result := svc.Synthesize(context.Background(), "Inspection Basics", "slide script", "narration script")
	if result.AudioURL != "" {
		t.Fatalf("audio url should be empty, got %q", result.AudioURL)
	}
	if result.SlideURL != "https://gamma.app/docs/abc" {
		t.Fatalf("slide url should survive audio failure, got %q", result.SlideURL)
	}
	if store.uploads != 0 {
		t.Fatalf("no upload expected after synthesis failure, got %d", store.uploads)
	}
}

func TestSynthesizeUploadFailureFallsBackToInlineAudio(t *testing.T) {
	slides := &fakeSlides{url: "https://gamma.app/docs/abc"}
	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	store := &fakeStore{uploadErr: errors.New("bucket unavailable")}
	svc := NewMediaService(testLogger(t), slides, speech, store)

	result := svc.Synthesize(context.Background(), "Inspection Basics", "slide script", "narration script")
	if !strings.HasPrefix(result.AudioURL, "data:audio/mpeg;base64,") {
		t.Fatalf("expected inline audio fallback, got %q", result.AudioURL)
	}
}

func TestSynthesizeBothBranchesFail(t *testing.T) {
	slides := &fakeSlides{err: errors.New("gamma down")}
	speech := &fakeSpeech{err: errors.New("tts down")}
	svc := NewMediaService(testLogger(t), slides, speech, &fakeStore{})

	result := svc.Synthesize(context.Background(), "Inspection Basics", "slide script", "narration script")
	if result.SlideURL != "" || result.AudioURL != "" {
		t.Fatalf("both urls should be empty: %+v", result)
	}
}
