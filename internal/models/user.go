package models

import "time"

type UserType int

const (
	UserTypeAdmin          UserType = 1
	UserTypeInstituteAdmin UserType = 2
	UserTypeMember         UserType = 3
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType  `gorm:"not null;default:3" json:"usertype"`
	InstituteID  *uint64   `json:"institute_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Institute *Institute `gorm:"foreignKey:InstituteID" json:"institute,omitempty"`
	Member    *Member    `gorm:"foreignKey:UserID" json:"member,omitempty"`
}
