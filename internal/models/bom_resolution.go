package models

import "time"

type BOMResolution struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Agenda         string    `gorm:"type:text;not null" json:"agenda"`
	Resolution     string    `gorm:"type:text;not null" json:"resolution"`
	Compliance     string    `gorm:"type:text" json:"compliance"`
	GCResolutionID uint64    `gorm:"not null;index" json:"gc_resolution_id"`
	BOMDate        time.Time `gorm:"type:date;not null;index" json:"bom_date"`
	BOMNo          string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"bom_no"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	GCResolution GCResolution `gorm:"foreignKey:GCResolutionID" json:"gc_resolution,omitempty"`
}
