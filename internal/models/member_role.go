package models

import (
	"time"

	"gorm.io/gorm"
)

type MemberRoleStatus string

const (
	MemberRoleActive   MemberRoleStatus = "active"
	MemberRoleInactive MemberRoleStatus = "inactive"
)

// MemberRole assigns a Role to a Member, optionally scoped to an Institute.
// A nil InstituteID marks a society-wide board role. The composite unique
// index backs the insert-or-update semantics of role assignment; it runs over
// InstituteKey rather than InstituteID because unique indexes treat NULLs as
// distinct, which would let society-wide duplicates through.
type MemberRole struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	MemberID     uint64           `gorm:"not null;uniqueIndex:idx_member_role_institute" json:"member_id"`
	RoleID       uint64           `gorm:"not null;uniqueIndex:idx_member_role_institute" json:"role_id"`
	InstituteID  *uint64          `json:"institute_id"`
	InstituteKey uint64           `gorm:"not null;default:0;uniqueIndex:idx_member_role_institute" json:"-"`
	Level        string           `gorm:"type:varchar(50)" json:"level"`
	Tenure       string           `gorm:"type:varchar(100)" json:"tenure"`
	Status       MemberRoleStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relations
	Member    Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Role      Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Institute *Institute `gorm:"foreignKey:InstituteID" json:"institute,omitempty"`
}

// BeforeSave derives InstituteKey from InstituteID, with 0 standing in for
// the society-wide NULL.
func (mr *MemberRole) BeforeSave(tx *gorm.DB) error {
	if mr.InstituteID != nil {
		mr.InstituteKey = *mr.InstituteID
	} else {
		mr.InstituteKey = 0
	}
	return nil
}
