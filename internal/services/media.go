package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
)

// MediaResult carries the per-branch outcomes of media synthesis. An
// empty URL means that branch failed; neither branch can fail the other.
type MediaResult struct {
	SlideURL string
	AudioURL string
}

// MediaService runs slide and narration generation for one lesson
// concurrently and joins them with settle-all semantics: the result is
// returned only once both branches have finished, and a branch failure
// resolves to an empty URL instead of propagating.
type MediaService interface {
	Synthesize(ctx context.Context, lessonTitle, slideScript, narrationScript string) MediaResult
}

type mediaService struct {
	log    *logger.Logger
	slides SlideClient
	speech SpeechClient
	store  MediaStore
}

func NewMediaService(log *logger.Logger, slides SlideClient, speech SpeechClient, store MediaStore) MediaService {
	return &mediaService{
		log:    log.With("service", "MediaService"),
		slides: slides,
		speech: speech,
		store:  store,
	}
}

func (s *mediaService) Synthesize(ctx context.Context, lessonTitle, slideScript, narrationScript string) MediaResult {
	var (
		wg       sync.WaitGroup
		slideURL string
		audioURL string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		url, err := s.slides.CreatePresentation(ctx, lessonTitle, slideScript)
		if err != nil {
			s.log.Warn("Slide generation failed", "lesson", lessonTitle, "error", err)
			return
		}
		slideURL = url
	}()
	go func() {
		defer wg.Done()
		audioURL = s.synthesizeNarration(ctx, narrationScript)
	}()
	wg.Wait()

	return MediaResult{SlideURL: slideURL, AudioURL: audioURL}
}

// synthesizeNarration converts the script to speech and persists it. A
// failed upload falls back to an ephemeral data URL so the audio is still
// playable for the current session; a failed synthesis yields nothing.
func (s *mediaService) synthesizeNarration(ctx context.Context, script string) string {
	audio, err := s.speech.Synthesize(ctx, script)
	if err != nil {
		s.log.Warn("Narration synthesis failed", "error", err)
		return ""
	}

	key := fmt.Sprintf("audio/lesson_%d_%s.mp3", time.Now().UnixNano(), uuid.NewString()[:8])
	if err := s.store.UploadFile(ctx, key, bytes.NewReader(audio), "audio/mpeg"); err != nil {
		s.log.Warn("Narration upload failed, falling back to inline audio", "key", key, "error", err)
		return "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(audio)
	}

	return s.store.GetPublicURL(key)
}
