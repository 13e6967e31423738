package models

import "time"

// Role names that grant society-wide visibility regardless of
// institute-scoped assignments.
const (
	RoleNamePresident     = "President"
	RoleNameVicePresident = "Vice President"
)

// DefaultRoles is the static reference data seeded at startup.
var DefaultRoles = []string{
	"Chairman",
	"President",
	"Vice President",
	"Member",
	"Secretary",
}

type Role struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
