package services

import (
	"context"
	"errors"
	"testing"
)

const validOutlineJSON = `{
	"title": "Ladder Safety Essentials",
	"description": "A practical course on safe ladder use.",
	"thumbnail_query": "extension ladder against a wall",
	"modules": [
		{
			"title": "Before You Climb",
			"lessons": [
				{"title": "Choosing the Right Ladder", "concept": "Ladder types and duty ratings"},
				{"title": "Inspection Basics", "concept": "Pre-use inspection checklist"}
			]
		},
		{
			"title": "On the Ladder",
			"lessons": [
				{"title": "Three Points of Contact", "concept": "Maintaining stability while climbing"}
			]
		}
	]
}`

func TestOutlineGenerate(t *testing.T) {
	ai := &fakeCompletions{jsonResponses: []string{validOutlineJSON}}
	svc := NewOutlineService(testLogger(t), ai)

	outline, err := svc.Generate(context.Background(), "ladder safety", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if outline.Title != "Ladder Safety Essentials" {
		t.Fatalf("title: got %q", outline.Title)
	}
	if len(outline.Modules) != 2 {
		t.Fatalf("modules: want=2 got=%d", len(outline.Modules))
	}
	if got := outline.TotalLessons(); got != 3 {
		t.Fatalf("total lessons: want=3 got=%d", got)
	}
	if outline.ThumbnailQuery != "extension ladder against a wall" {
		t.Fatalf("thumbnail query: got %q", outline.ThumbnailQuery)
	}
}

func TestOutlineGenerateCompletionError(t *testing.T) {
	ai := &fakeCompletions{jsonErr: errors.New("upstream down")}
	svc := NewOutlineService(testLogger(t), ai)

	if _, err := svc.Generate(context.Background(), "ladder safety", ""); err == nil {
		t.Fatalf("expected error when completion fails")
	}
}

func TestOutlineGenerateRejectsEmptyModules(t *testing.T) {
	ai := &fakeCompletions{jsonResponses: []string{`{"title": "Empty", "modules": []}`}}
	svc := NewOutlineService(testLogger(t), ai)

	if _, err := svc.Generate(context.Background(), "anything", ""); err == nil {
		t.Fatalf("expected error for outline without modules")
	}
}

func TestOutlineGenerateRejectsMalformedJSON(t *testing.T) {
	ai := &fakeCompletions{jsonResponses: []string{`not json at all`}}
	svc := NewOutlineService(testLogger(t), ai)

	if _, err := svc.Generate(context.Background(), "anything", ""); err == nil {
		t.Fatalf("expected error for malformed outline")
	}
}
