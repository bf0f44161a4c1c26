package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
	"github.com/courseforge/courseforge-backend/internal/types"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	CreateModules(ctx context.Context, tx *gorm.DB, modules []*types.CourseModule) error
	CreateLessons(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: log.With("repo", "CourseRepo")}
}

func (r *courseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return courses, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, fmt.Errorf("create courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	var course types.Course
	err := r.conn(tx).WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("index ASC") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("index ASC") }).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", id, err)
	}
	return &course, nil
}

func (r *courseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	err := r.conn(tx).WithContext(ctx).Model(&types.Course{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update course %s: %w", id, err)
	}
	return nil
}

func (r *courseRepo) CreateModules(ctx context.Context, tx *gorm.DB, modules []*types.CourseModule) error {
	if len(modules) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&modules).Error; err != nil {
		return fmt.Errorf("create modules: %w", err)
	}
	return nil
}

func (r *courseRepo) CreateLessons(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&lessons).Error; err != nil {
		return fmt.Errorf("create lessons: %w", err)
	}
	return nil
}
