package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityTemplate struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string             `gorm:"not null;index;column:name" json:"name"`
	Description   string             `gorm:"column:description" json:"description"`
	TemplateTodos []TemplateTodoItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template_todos"`
	CreatedAt     time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (ActivityTemplate) TableName() string {
	return "activity_template"
}

type TemplateTodoItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Description string         `gorm:"not null;column:description" json:"description"`
	TemplateID  uuid.UUID      `gorm:"type:uuid;not null;index;column:template_id" json:"template_id"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TemplateTodoItem) TableName() string {
	return "template_todo_item"
}
