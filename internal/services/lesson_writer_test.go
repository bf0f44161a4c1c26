package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/courseforge/courseforge-backend/internal/types"
)

const validLessonJSON = `{
	"presentation_input": "# Choosing the Right Ladder\nSlide script here.",
	"audio_summary": "In this lesson we cover ladder selection.",
	"markdown_content": "## Choosing the Right Ladder\n\nAlways match the ladder to the job.",
	"quiz": [
		{"question": "Q1", "options": ["a", "b", "c", "d"], "correct_index": 1, "explanation": "because"},
		{"question": "Q2", "options": ["a", "b", "c", "d"], "correct_index": 0, "explanation": "because"},
		{"question": "Q3", "options": ["a", "b", "c", "d"], "correct_index": 2, "explanation": "because"}
	],
	"ai_component": {
		"type": "ai-swipe",
		"config": {
			"title": "Safe or Unsafe?",
			"cards": [{"text": "Leaning ladder on wet grass", "isCorrect": false}],
			"labels": {"left": "Unsafe", "right": "Safe"}
		}
	}
}`

func testLessonInputs() (*types.Outline, *types.OutlineLesson, *types.GenerationContext) {
	lesson := &types.OutlineLesson{
		Title:        "Choosing the Right Ladder",
		Concept:      "Ladder types and duty ratings",
		ActivityType: types.ActivitySwipe,
	}
	outline := &types.Outline{
		Title:   "Ladder Safety Essentials",
		Modules: []*types.OutlineModule{{Title: "Before You Climb", Lessons: []*types.OutlineLesson{lesson}}},
	}
	gen := &types.GenerationContext{Topic: "ladder safety", TotalLessons: 1, LessonNumber: 1}
	return outline, lesson, gen
}

func TestLessonWrite(t *testing.T) {
	ai := &fakeCompletions{jsonResponses: []string{validLessonJSON}}
	w := NewLessonWriter(testLogger(t), ai)
	outline, lesson, gen := testLessonInputs()

	content, err := w.Write(context.Background(), outline, "Before You Climb", lesson, gen)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if ai.jsonCalls != 1 {
		t.Fatalf("completion calls: want=1 got=%d", ai.jsonCalls)
	}
	if len(lesson.Quiz) != 3 {
		t.Fatalf("quiz length: want=3 got=%d", len(lesson.Quiz))
	}
	if lesson.Activity == nil || lesson.Activity.Type != types.ActivitySwipe {
		t.Fatalf("activity not attached: %+v", lesson.Activity)
	}
	if !strings.Contains(lesson.ContentMD, "```ai-swipe") {
		t.Fatalf("content missing activity fence:\n%s", lesson.ContentMD)
	}
	if !strings.Contains(lesson.ContentMD, "### Interactive Activity") {
		t.Fatalf("content missing activity heading:\n%s", lesson.ContentMD)
	}
	if content.PresentationInput == "" || content.AudioSummary == "" {
		t.Fatalf("media scripts missing: %+v", content)
	}
}

func TestLessonWriteUnescapesLiteralNewlines(t *testing.T) {
	raw := `{
		"presentation_input": "slides",
		"audio_summary": "line one\\nline two",
		"markdown_content": "## Heading\\n\\nBody text.",
		"quiz": []
	}`
	ai := &fakeCompletions{jsonResponses: []string{raw}}
	w := NewLessonWriter(testLogger(t), ai)
	outline, lesson, gen := testLessonInputs()

	content, err := w.Write(context.Background(), outline, "Before You Climb", lesson, gen)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(content.MarkdownContent, `\n`) {
		t.Fatalf("markdown still has literal escapes: %q", content.MarkdownContent)
	}
	if !strings.Contains(content.MarkdownContent, "## Heading\n\nBody text.") {
		t.Fatalf("markdown not normalised: %q", content.MarkdownContent)
	}
	if !strings.Contains(content.AudioSummary, "line one\nline two") {
		t.Fatalf("audio summary not normalised: %q", content.AudioSummary)
	}
}

func TestLessonWriteRetriesOnceThenFails(t *testing.T) {
	ai := &fakeCompletions{jsonErr: errors.New("model unavailable")}
	w := NewLessonWriter(testLogger(t), ai)
	outline, lesson, gen := testLessonInputs()

	_, err := w.Write(context.Background(), outline, "Before You Climb", lesson, gen)
	if err == nil {
		t.Fatalf("expected error after exhausted attempts")
	}
	if ai.jsonCalls != 2 {
		t.Fatalf("completion calls: want=2 got=%d", ai.jsonCalls)
	}
	if lesson.ContentMD != "" {
		t.Fatalf("failed write must not mutate lesson, got content %q", lesson.ContentMD)
	}
}

func TestLessonWriteRejectsEmptyRedlineThenRecovers(t *testing.T) {
	emptyRedline := `{
		"presentation_input": "slides",
		"audio_summary": "audio",
		"markdown_content": "content",
		"quiz": [],
		"ai_component": {"type": "ai-redline", "config": {"title": "Spot the Risk", "items": []}}
	}`
	goodRedline := `{
		"presentation_input": "slides",
		"audio_summary": "audio",
		"markdown_content": "content",
		"quiz": [],
		"ai_component": {"type": "ai-redline", "config": {"title": "Spot the Risk", "items": [{"content": "No harness above 2m", "isRisk": true}]}}
	}`
	ai := &fakeCompletions{jsonResponses: []string{emptyRedline, goodRedline}}
	w := NewLessonWriter(testLogger(t), ai)
	outline, lesson, gen := testLessonInputs()
	lesson.ActivityType = types.ActivityRedline

	content, err := w.Write(context.Background(), outline, "Before You Climb", lesson, gen)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if ai.jsonCalls != 2 {
		t.Fatalf("completion calls: want=2 got=%d", ai.jsonCalls)
	}
	if content.Activity == nil || content.Activity.Type != types.ActivityRedline {
		t.Fatalf("activity: %+v", content.Activity)
	}
}
