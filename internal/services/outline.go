package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/types"
)

// OutlineService drafts the course skeleton. A malformed response here is
// fatal for the whole run: without an outline there is nothing to build.
type OutlineService interface {
	Generate(ctx context.Context, topic, supportingDocs string) (*types.Outline, error)
}

type outlineService struct {
	log *logger.Logger
	ai  CompletionClient
}

func NewOutlineService(log *logger.Logger, ai CompletionClient) OutlineService {
	return &outlineService{
		log: log.With("service", "OutlineService"),
		ai:  ai,
	}
}

func (s *outlineService) Generate(ctx context.Context, topic, supportingDocs string) (*types.Outline, error) {
	raw, err := s.ai.CompleteJSON(ctx, outlineSystemPrompt(supportingDocs), "Topic: "+topic)
	if err != nil {
		return nil, fmt.Errorf("outline completion: %w", err)
	}

	var outline types.Outline
	if err := json.Unmarshal(raw, &outline); err != nil {
		return nil, fmt.Errorf("outline response is not valid JSON: %w", err)
	}
	if len(outline.Modules) == 0 {
		return nil, fmt.Errorf("outline response has no modules")
	}

	// The title/description length constraints live in the prompt only;
	// model output is not re-validated against them.
	s.log.Info("Outline generated",
		"title", outline.Title,
		"modules", len(outline.Modules),
		"lessons", outline.TotalLessons(),
	)
	return &outline, nil
}
