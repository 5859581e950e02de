package user

import (
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
)

// Roles a registered user may hold.
const (
	RoleOwner = "owner"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is a registered owner or agent. Listings reference users through
// owner_id / agent_id.
type User struct {
	common.BaseModel
	FirstName string  `gorm:"type:varchar(100)"`
	LastName  string  `gorm:"type:varchar(100)"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone     *string `gorm:"type:varchar(50)"`
	Role      string  `gorm:"type:varchar(50);not null;default:'owner'"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, skipping blanks.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
