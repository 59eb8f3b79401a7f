package types

import (
	"time"

	"github.com/google/uuid"
)

// SupervisorAssignment is the single directed edge between a supervisor and
// the preventionist they report to. The unique index on supervisor_id keeps
// the edge exclusive: re-assignment overwrites, it never adds a second row.
type SupervisorAssignment struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SupervisorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:supervisor_id" json:"supervisor_id"`
	Supervisor      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SupervisorID;references:ID" json:"supervisor,omitempty"`
	PreventionistID uuid.UUID `gorm:"type:uuid;not null;index;column:preventionist_id" json:"preventionist_id"`
	Preventionist   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PreventionistID;references:ID" json:"preventionist,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SupervisorAssignment) TableName() string {
	return "supervisor_assignment"
}
