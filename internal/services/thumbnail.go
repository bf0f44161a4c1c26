package services

import (
	"context"
	"errors"
	"time"

	"github.com/courseforge/courseforge-backend/internal/clients/cloudinary"
	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/pkg/retry"
)

const (
	thumbGenerationAttempts = 3
	thumbUploadAttempts     = 3
)

// Variable so tests can drop the pause between upload attempts.
var thumbUploadDelay = time.Second

// ThumbnailService produces and persists the course thumbnail under a
// nested retry matrix: up to three generated images, up to three upload
// attempts each. Exhausting an image's uploads discards it and generates
// a fresh one rather than re-sending the same bytes.
type ThumbnailService interface {
	Generate(ctx context.Context, query string) (string, error)
}

type thumbnailService struct {
	log      *logger.Logger
	ai       CompletionClient
	images   ImageClient
	uploader CDNUploader
}

func NewThumbnailService(log *logger.Logger, ai CompletionClient, images ImageClient, uploader CDNUploader) ThumbnailService {
	return &thumbnailService{
		log:      log.With("service", "ThumbnailService"),
		ai:       ai,
		images:   images,
		uploader: uploader,
	}
}

// notConfigError keeps retrying everything except the unsigned-preset
// misconfiguration, which no retry can fix.
func notConfigError(err error) bool {
	return !errors.Is(err, cloudinary.ErrUnsignedPreset)
}

func (s *thumbnailService) Generate(ctx context.Context, query string) (string, error) {
	outer := retry.Policy{MaxAttempts: thumbGenerationAttempts, Retryable: notConfigError}
	inner := retry.Policy{MaxAttempts: thumbUploadAttempts, Delay: thumbUploadDelay, Retryable: notConfigError}

	return retry.Do(ctx, outer, func(genAttempt int) (string, error) {
		s.log.Info("Generating thumbnail", "attempt", genAttempt, "query", query)

		subject := s.describeSubject(ctx, query)
		prompt := thumbnailStylePrefix + " " + subject + thumbnailStyleSuffix

		image, err := s.images.GenerateImage(ctx, prompt)
		if err != nil {
			return "", err
		}

		return retry.Do(ctx, inner, func(uploadAttempt int) (string, error) {
			url, err := s.uploader.UploadImage(ctx, image, query)
			if err != nil {
				s.log.Warn("Thumbnail upload failed", "gen_attempt", genAttempt, "upload_attempt", uploadAttempt, "error", err)
				return "", err
			}
			return url, nil
		})
	})
}

// describeSubject asks for a concrete physical object to photograph,
// falling back to the raw query when that call fails.
func (s *thumbnailService) describeSubject(ctx context.Context, query string) string {
	subject, err := s.ai.CompleteText(ctx, visualDescriberPrompt, "Topic: "+query)
	if err != nil || subject == "" {
		s.log.Warn("Visual description failed, using raw query", "error", err)
		return query
	}
	return subject
}
