package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courseforge/courseforge-backend/internal/services"
)

type CourseHandler struct {
	svc services.CourseService
}

func NewCourseHandler(svc services.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

type generateCourseRequest struct {
	Topic          string `json:"topic"`
	SupportingDocs string `json:"supporting_docs"`
}

// POST /api/courses/generate
func (h *CourseHandler) Generate(c *gin.Context) {
	var req generateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		RespondError(c, http.StatusBadRequest, "missing_topic", errors.New("topic is required"))
		return
	}

	course, err := h.svc.StartGeneration(c.Request.Context(), req.Topic, req.SupportingDocs)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "generation_start_failed", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"course": course})
}

// GET /api/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", errors.New("invalid course id"))
		return
	}

	course, err := h.svc.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", errors.New("course not found"))
			return
		}
		RespondError(c, http.StatusInternalServerError, "course_load_failed", err)
		return
	}

	RespondOK(c, gin.H{"course": course})
}
