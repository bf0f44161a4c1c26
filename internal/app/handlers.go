package app

import (
	"github.com/courseforge/courseforge-backend/internal/handlers"
	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/sse"
)

type Handlers struct {
	Course *handlers.CourseHandler
	SSE    *handlers.SSEHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Course: handlers.NewCourseHandler(serviceset.Courses),
		SSE:    handlers.NewSSEHandler(log, hub),
	}
}
