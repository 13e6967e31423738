package models

import "time"

type Institute struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Code      string    `gorm:"type:varchar(20)" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users         []User         `gorm:"foreignKey:InstituteID" json:"-"`
	GCResolutions []GCResolution `gorm:"foreignKey:InstituteID" json:"-"`
	MemberRoles   []MemberRole   `gorm:"foreignKey:InstituteID" json:"-"`
}
