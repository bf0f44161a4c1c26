package app

import (
	"gorm.io/gorm"

	"github.com/courseforge/courseforge-backend/internal/data/repos"
	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/services"
	"github.com/courseforge/courseforge-backend/internal/sse"
)

type Repos struct {
	Course repos.CourseRepo
}

type Services struct {
	Outline    services.OutlineService
	Balancer   *services.ActivityBalancer
	Lessons    services.LessonWriter
	Media      services.MediaService
	Thumbnails services.ThumbnailService
	Generation services.CourseGenerationService
	Courses    services.CourseService
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course: repos.NewCourseRepo(db, log),
	}
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients, hub *sse.SSEHub) Services {
	log.Info("Wiring services...")

	outline := services.NewOutlineService(log, clients.Openai)
	balancer := services.NewActivityBalancer(log, nil)
	lessons := services.NewLessonWriter(log, clients.Openai)
	media := services.NewMediaService(log, clients.Gamma, clients.Elevenlabs, clients.GcpBucket)
	thumbnails := services.NewThumbnailService(log, clients.Openai, clients.Openai, clients.Cloudinary)
	generation := services.NewCourseGenerationService(log, outline, balancer, lessons, media, thumbnails)
	courses := services.NewCourseService(db, log, reposet.Course, hub, generation)

	return Services{
		Outline:    outline,
		Balancer:   balancer,
		Lessons:    lessons,
		Media:      media,
		Thumbnails: thumbnails,
		Generation: generation,
		Courses:    courses,
	}
}
