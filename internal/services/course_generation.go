package services

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/types"
)

// CourseGenerationService runs the whole pipeline for one topic: outline,
// activity balancing, sequential per-lesson content + media, thumbnail,
// final assembly. Only an outline failure aborts the run; every later
// stage degrades in place and the run continues.
type CourseGenerationService interface {
	Generate(ctx context.Context, topic, supportingDocs string, onProgress ProgressFunc) (*types.GeneratedCourse, error)
}

type courseGenerationService struct {
	log      *logger.Logger
	outline  OutlineService
	balancer *ActivityBalancer
	writer   LessonWriter
	media    MediaService
	thumbs   ThumbnailService
}

func NewCourseGenerationService(
	log *logger.Logger,
	outline OutlineService,
	balancer *ActivityBalancer,
	writer LessonWriter,
	media MediaService,
	thumbs ThumbnailService,
) CourseGenerationService {
	return &courseGenerationService{
		log:      log.With("service", "CourseGenerationService"),
		outline:  outline,
		balancer: balancer,
		writer:   writer,
		media:    media,
		thumbs:   thumbs,
	}
}

func (s *courseGenerationService) Generate(ctx context.Context, topic, supportingDocs string, onProgress ProgressFunc) (*types.GeneratedCourse, error) {
	progress := safeProgress(onProgress)

	s.log.Info("Starting course generation", "topic", topic)
	progress(fmt.Sprintf("Analysing topic: %q...", topic))
	progress("Drafting course outline...")

	outline, err := s.outline.Generate(ctx, topic, supportingDocs)
	if err != nil {
		return nil, fmt.Errorf("generate outline: %w", err)
	}

	total := outline.TotalLessons()
	progress(fmt.Sprintf("Outline confirmed: %s. Generated %d modules with %d total lessons.", outline.Title, len(outline.Modules), total))

	s.balancer.Assign(outline.FlatLessons())

	genCtx := &types.GenerationContext{
		Topic:          topic,
		SupportingDocs: supportingDocs,
		TotalLessons:   total,
	}

	for _, module := range outline.Modules {
		for _, lesson := range module.Lessons {
			genCtx.LessonNumber++
			prefix := fmt.Sprintf("[%d/%d]", genCtx.LessonNumber, total)
			progress(fmt.Sprintf("%s Writing lesson: %q...", prefix, lesson.Title))

			content, err := s.writer.Write(ctx, outline, module.Title, lesson, genCtx)
			if err != nil {
				s.log.Error("Lesson generation failed after retries", "lesson", lesson.Title, "error", err)
				lesson.ContentMD = FailedLessonPlaceholder
				lesson.Quiz = nil
				lesson.Activity = nil
				progress(fmt.Sprintf("%s FAILED %q - content generation error.", prefix, lesson.Title))
				continue
			}

			progress(fmt.Sprintf("%s Generating audio & slides for %q...", prefix, lesson.Title))

			result := s.media.Synthesize(ctx, lesson.Title, content.PresentationInput, content.AudioSummary)
			lesson.SlideURL = result.SlideURL
			lesson.AudioURL = result.AudioURL

			progress(fmt.Sprintf("%s Finished %q.", prefix, lesson.Title))
		}
	}

	progress("Generating course thumbnail...")
	query := outline.ThumbnailQuery
	if query == "" {
		query = outline.Title
	}
	thumbnail, err := s.thumbs.Generate(ctx, query)
	if err != nil {
		// Non-fatal: the course ships without a thumbnail.
		s.log.Error("Thumbnail generation failed", "error", err)
		progress("Thumbnail generation failed: " + err.Error())
		thumbnail = ""
	}

	progress("Finalising course...")
	return &types.GeneratedCourse{
		Title:        outline.Title,
		Description:  outline.Description,
		ThumbnailURL: thumbnail,
		Modules:      outline.Modules,
	}, nil
}
