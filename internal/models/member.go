package models

import "time"

type Member struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Roles []MemberRole `gorm:"foreignKey:MemberID" json:"roles,omitempty"`
}
