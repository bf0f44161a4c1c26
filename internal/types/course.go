package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CourseStatusGenerating = "generating"
	CourseStatusReady      = "ready"
	CourseStatusFailed     = "failed"
)

type Course struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string          `gorm:"column:title;not null" json:"title"`
	Description  string          `gorm:"column:description" json:"description"`
	ThumbnailURL string          `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Status       string          `gorm:"column:status;not null;default:'generating'" json:"status"`
	Topic        string          `gorm:"column:topic" json:"topic"`
	Metadata     datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
	Modules      []*CourseModule `gorm:"foreignKey:CourseID;references:ID" json:"modules,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

type CourseModule struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Index     int       `gorm:"column:index;not null" json:"index"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Lessons   []*Lesson `gorm:"foreignKey:ModuleID;references:ID" json:"lessons,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseModule) TableName() string { return "course_module" }

type Lesson struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModuleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"module_id"`
	Module         *CourseModule  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Index          int            `gorm:"column:index;not null" json:"index"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Concept        string         `gorm:"column:concept" json:"concept"`
	ContentMD      string         `gorm:"column:content_md" json:"content_md"`
	Quiz           datatypes.JSON `gorm:"column:quiz;type:jsonb" json:"quiz"`
	SlideURL       string         `gorm:"column:slide_url" json:"slide_url"`
	AudioURL       string         `gorm:"column:audio_url" json:"audio_url"`
	ActivityType   string         `gorm:"column:activity_type" json:"activity_type"`
	ActivityConfig datatypes.JSON `gorm:"column:activity_config;type:jsonb" json:"activity_config"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }
