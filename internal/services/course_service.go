package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/courseforge/courseforge-backend/internal/data/repos"
	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/sse"
	"github.com/courseforge/courseforge-backend/internal/types"
)

// CourseService owns the persisted course rows around a generation run:
// it creates the placeholder, streams progress over SSE on the course's
// channel, and saves the assembled document when the pipeline settles.
type CourseService interface {
	StartGeneration(ctx context.Context, topic, supportingDocs string) (*types.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*types.Course, error)
}

type courseService struct {
	db        *gorm.DB
	log       *logger.Logger
	repo      repos.CourseRepo
	sseHub    *sse.SSEHub
	generator CourseGenerationService
}

func NewCourseService(db *gorm.DB, log *logger.Logger, repo repos.CourseRepo, sseHub *sse.SSEHub, generator CourseGenerationService) CourseService {
	return &courseService{
		db:        db,
		log:       log.With("service", "CourseService"),
		repo:      repo,
		sseHub:    sseHub,
		generator: generator,
	}
}

func (cs *courseService) StartGeneration(ctx context.Context, topic, supportingDocs string) (*types.Course, error) {
	course := &types.Course{
		ID:          uuid.New(),
		Title:       "Generating course…",
		Description: "We’re analysing your topic and building your course.",
		Status:      types.CourseStatusGenerating,
		Topic:       topic,
		Metadata:    datatypes.JSON([]byte(`{}`)),
	}
	if _, err := cs.repo.Create(ctx, nil, []*types.Course{course}); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	cs.broadcast(course.ID, sse.SSEEventCourseCreated, map[string]any{"course": course})

	// The run outlives the request; it gets its own context.
	go cs.runGeneration(context.Background(), course.ID, topic, supportingDocs)

	return course, nil
}

func (cs *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	return cs.repo.GetByID(ctx, nil, id)
}

func (cs *courseService) runGeneration(ctx context.Context, courseID uuid.UUID, topic, supportingDocs string) {
	log := cs.log.With("course_id", courseID)

	progress := func(message string) {
		log.Info("Generation progress", "message", message)
		cs.broadcast(courseID, sse.SSEEventGenerationProgress, map[string]any{
			"course_id": courseID,
			"message":   message,
		})
	}

	doc, err := cs.generator.Generate(ctx, topic, supportingDocs, progress)
	if err != nil {
		log.Error("Course generation failed", "error", err)
		_ = cs.repo.UpdateFields(ctx, nil, courseID, map[string]any{
			"status": types.CourseStatusFailed,
		})
		cs.broadcast(courseID, sse.SSEEventGenerationFailed, map[string]any{
			"course_id": courseID,
			"error":     err.Error(),
		})
		return
	}

	if err := cs.saveGenerated(ctx, courseID, doc); err != nil {
		log.Error("Failed to persist generated course", "error", err)
		_ = cs.repo.UpdateFields(ctx, nil, courseID, map[string]any{
			"status": types.CourseStatusFailed,
		})
		cs.broadcast(courseID, sse.SSEEventGenerationFailed, map[string]any{
			"course_id": courseID,
			"error":     err.Error(),
		})
		return
	}

	cs.broadcast(courseID, sse.SSEEventGenerationDone, map[string]any{"course_id": courseID})
}

func (cs *courseService) saveGenerated(ctx context.Context, courseID uuid.UUID, doc *types.GeneratedCourse) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules := make([]*types.CourseModule, 0, len(doc.Modules))
		lessons := make([]*types.Lesson, 0)

		for mi, m := range doc.Modules {
			module := &types.CourseModule{
				ID:       uuid.New(),
				CourseID: courseID,
				Index:    mi,
				Title:    m.Title,
			}
			modules = append(modules, module)

			for li, l := range m.Lessons {
				lesson := &types.Lesson{
					ID:        uuid.New(),
					ModuleID:  module.ID,
					Index:     li,
					Title:     l.Title,
					Concept:   l.Concept,
					ContentMD: l.ContentMD,
					SlideURL:  l.SlideURL,
					AudioURL:  l.AudioURL,
				}
				if len(l.Quiz) > 0 {
					quizJSON, err := json.Marshal(l.Quiz)
					if err != nil {
						return fmt.Errorf("marshal quiz for %q: %w", l.Title, err)
					}
					lesson.Quiz = datatypes.JSON(quizJSON)
				}
				if l.Activity != nil {
					activityJSON, err := json.Marshal(l.Activity)
					if err != nil {
						return fmt.Errorf("marshal activity for %q: %w", l.Title, err)
					}
					lesson.ActivityType = string(l.Activity.Type)
					lesson.ActivityConfig = datatypes.JSON(activityJSON)
				}
				lessons = append(lessons, lesson)
			}
		}

		if err := cs.repo.CreateModules(ctx, tx, modules); err != nil {
			return err
		}
		if err := cs.repo.CreateLessons(ctx, tx, lessons); err != nil {
			return err
		}
		return cs.repo.UpdateFields(ctx, tx, courseID, map[string]any{
			"title":         doc.Title,
			"description":   doc.Description,
			"thumbnail_url": doc.ThumbnailURL,
			"status":        types.CourseStatusReady,
		})
	})
}

func (cs *courseService) broadcast(courseID uuid.UUID, event sse.SSEEvent, data any) {
	cs.sseHub.Broadcast(sse.SSEMessage{
		Channel: courseID.String(),
		Event:   event,
		Data:    data,
	})
}
