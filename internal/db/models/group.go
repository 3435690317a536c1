package models

import "time"

// Group is a named container owning an ordered list of inputs.
// Names are unique across all groups.
type Group struct {
	// ID is assigned by the store and never changes.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is trimmed and non-empty.
	Name string `gorm:"size:255;not null;uniqueIndex:idx_group_name" json:"name"`
	// CreatedAt is set once on insert (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// ModifiedAt is refreshed whenever the group's own fields change.
	// Changes to the group's inputs do not touch it.
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modifiedAt"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "dbGroup"
}
