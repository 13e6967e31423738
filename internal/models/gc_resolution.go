package models

import "time"

type GCResolution struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Agenda      string    `gorm:"type:text;not null" json:"agenda"`
	Resolution  string    `gorm:"type:text;not null" json:"resolution"`
	Compliance  string    `gorm:"type:text" json:"compliance"`
	InstituteID uint64    `gorm:"not null;index" json:"institute_id"`
	GCDate      time.Time `gorm:"type:date;not null;index" json:"gc_date"`
	GCNo        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"gc_no"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Institute      Institute       `gorm:"foreignKey:InstituteID" json:"institute,omitempty"`
	BOMResolutions []BOMResolution `gorm:"foreignKey:GCResolutionID" json:"-"`
}
