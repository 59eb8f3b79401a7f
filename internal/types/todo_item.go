package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoStatus replaced the old is_done boolean. For status derivation the
// distinction that matters is pending vs not pending; done and skipped both
// count as resolved.
type TodoStatus string

const (
	TodoPending TodoStatus = "pending"
	TodoDone    TodoStatus = "done"
	TodoSkipped TodoStatus = "skipped"
)

type TodoItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Description string         `gorm:"not null;column:description" json:"description"`
	Status      TodoStatus     `gorm:"not null;default:'pending';column:status" json:"status"`
	ActivityID  uuid.UUID      `gorm:"type:uuid;not null;index;column:activity_id" json:"activity_id"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TodoItem) TableName() string {
	return "todo_item"
}

// Resolved reports whether the item left the pending state.
func (t TodoItem) Resolved() bool {
	return t.Status != TodoPending
}
