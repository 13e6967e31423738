package models

import "time"

// AGM records an annual general meeting. A nil InstituteID marks a
// society-wide meeting visible to everyone within their usual scope.
type AGM struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	MeetingDate time.Time `gorm:"type:date;not null;index" json:"meeting_date"`
	InstituteID *uint64   `gorm:"index" json:"institute_id"`
	Agenda      string    `gorm:"type:text;not null" json:"agenda"`
	Venue       string    `gorm:"type:varchar(255)" json:"venue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Institute *Institute `gorm:"foreignKey:InstituteID" json:"institute,omitempty"`
}
