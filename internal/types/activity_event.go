package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventActivityCreated = "activity_created"
	EventActivityUpdated = "activity_updated"
	EventReviewEntered   = "review_entered"
	EventTodoResolved    = "todo_resolved"
	EventTodoReopened    = "todo_reopened"
)

// ActivityEvent is the append-only audit trail for an activity. The Data
// payload holds the event-specific fields (changed columns, todo id, ...).
type ActivityEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActivityID uuid.UUID      `gorm:"type:uuid;not null;index;column:activity_id" json:"activity_id"`
	Activity   *Activity      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	ActorID    *uuid.UUID     `gorm:"type:uuid;index;column:actor_id" json:"actor_id,omitempty"`
	Actor      *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:ActorID;references:ID" json:"actor,omitempty"`
	Type       string         `gorm:"not null;index;column:type" json:"type"`
	Data       datatypes.JSON `gorm:"type:jsonb;column:data" json:"data"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ActivityEvent) TableName() string {
	return "activity_event"
}
