package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityStatus is the coarse persisted tag. Reporting never trusts it:
// the effective status is always re-derived from the todos (internal/stats).
type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityDone       ActivityStatus = "done"
)

type Activity struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string         `gorm:"not null;index;column:name" json:"name"`
	Status        ActivityStatus `gorm:"not null;default:'pending';column:status" json:"status"`
	InReview      bool           `gorm:"not null;default:false;column:in_review" json:"in_review"`
	ScheduledDate *time.Time     `gorm:"index;column:scheduled_date" json:"scheduled_date,omitempty"`
	FinishedDate  *time.Time     `gorm:"column:finished_date" json:"finished_date,omitempty"`
	CreatedByID   *uuid.UUID     `gorm:"type:uuid;index;column:created_by_id" json:"created_by_id,omitempty"`
	CreatedBy     *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	AssignedToID  uuid.UUID      `gorm:"type:uuid;not null;index;column:assigned_to_id" json:"assigned_to_id"`
	AssignedTo    *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignedToID;references:ID" json:"assigned_to,omitempty"`
	Todos         []TodoItem     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"todos"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string {
	return "activity"
}
