package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/pkg/retry"
	"github.com/courseforge/courseforge-backend/internal/types"
)

// Two attempts total per lesson; after that the lesson is marked failed
// and the run moves on.
const lessonMaxAttempts = 2

// FailedLessonPlaceholder is stored as the content of a lesson whose
// generation exhausted its attempts.
const FailedLessonPlaceholder = "Lesson content failed to generate after retries."

// LessonContent is the full per-lesson payload the completion service
// returns: slide script, narration script, reading content, quiz and the
// embedded interactive activity.
type LessonContent struct {
	PresentationInput string                `json:"presentation_input"`
	AudioSummary      string                `json:"audio_summary"`
	MarkdownContent   string                `json:"markdown_content"`
	Quiz              []types.QuizItem      `json:"quiz"`
	Activity          *types.ActivityConfig `json:"ai_component"`
}

// LessonWriter turns one lesson stub into full content, mutating the stub
// in place on success.
type LessonWriter interface {
	Write(ctx context.Context, outline *types.Outline, moduleTitle string, lesson *types.OutlineLesson, gen *types.GenerationContext) (*LessonContent, error)
}

type lessonWriter struct {
	log *logger.Logger
	ai  CompletionClient
}

func NewLessonWriter(log *logger.Logger, ai CompletionClient) LessonWriter {
	return &lessonWriter{
		log: log.With("service", "LessonWriter"),
		ai:  ai,
	}
}

func (w *lessonWriter) Write(ctx context.Context, outline *types.Outline, moduleTitle string, lesson *types.OutlineLesson, gen *types.GenerationContext) (*LessonContent, error) {
	system := lessonSystemPrompt(outline, moduleTitle, lesson, gen.SupportingDocs)
	user := "Concept to teach: " + lesson.Concept

	content, err := retry.Do(ctx, retry.Policy{MaxAttempts: lessonMaxAttempts}, func(attempt int) (*LessonContent, error) {
		if attempt > 1 {
			w.log.Warn("Retrying lesson generation", "lesson", lesson.Title, "attempt", attempt)
		}

		raw, err := w.ai.CompleteJSON(ctx, system, user)
		if err != nil {
			return nil, fmt.Errorf("lesson completion: %w", err)
		}

		var parsed LessonContent
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("lesson response is not valid JSON: %w", err)
		}

		// A redline activity without items cannot be rendered; treat it
		// as a failed attempt so the retry can produce a usable one.
		if parsed.Activity != nil && parsed.Activity.Type == types.ActivityRedline {
			if err := parsed.Activity.Validate(); err != nil {
				return nil, fmt.Errorf("activity validation: %w", err)
			}
		}

		return &parsed, nil
	})
	if err != nil {
		return nil, err
	}

	content.MarkdownContent = unescapeNewlines(content.MarkdownContent)
	content.AudioSummary = unescapeNewlines(content.AudioSummary)

	lesson.ContentMD = renderLessonMarkdown(content)
	lesson.Quiz = content.Quiz
	lesson.Activity = content.Activity

	return content, nil
}

// unescapeNewlines normalises literal "\n" sequences the model sometimes
// emits inside JSON strings.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// renderLessonMarkdown appends the activity as a fenced block the course
// player dispatches on, under an "Interactive Activity" heading when the
// model did not write one itself.
func renderLessonMarkdown(content *LessonContent) string {
	out := content.MarkdownContent
	if content.Activity == nil || content.Activity.Type == "" {
		return out
	}

	var cfg bytes.Buffer
	if err := json.Indent(&cfg, content.Activity.Config, "", "  "); err != nil {
		cfg.Reset()
		cfg.Write(content.Activity.Config)
	}
	block := fmt.Sprintf("\n\n```%s\n%s\n```", content.Activity.Type, cfg.String())

	if !strings.Contains(out, "### Interactive Activity") {
		out += "\n\n### Interactive Activity" + block
	} else {
		out += block
	}
	return out
}
