package models

import "time"

// ResolutionSequence holds the last meeting/group number handed out for a
// numbering scope ("gc:<institute id>" or "bom"). It replaces the old habit
// of regex-parsing a sibling row's rendered number to recover the counter;
// the rendered format stays the same.
type ResolutionSequence struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ScopeKey  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"scope_key"`
	GroupNo   int       `gorm:"not null" json:"group_no"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
