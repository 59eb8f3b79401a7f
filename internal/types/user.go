package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed set. Authorization points switch over it exhaustively
// and treat anything outside the set as invalid rather than falling through.
type Role string

const (
	RolePreventionist Role = "preventionist"
	RoleSupervisor    Role = "supervisor"
	RoleAdmin         Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePreventionist:
		return RolePreventionist, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RolePreventionist, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string         `gorm:"not null;index;column:username" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Role      Role           `gorm:"not null;index;column:role" json:"role"`
	Password  string         `gorm:"not null;column:password" json:"-"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "user"
}
