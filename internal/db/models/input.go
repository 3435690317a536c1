package models

import "time"

// InputStatus is the lifecycle state of an input row.
type InputStatus string

const (
	// InputStatusActive is a visible input.
	InputStatusActive InputStatus = "active"
	// InputStatusDeleted is a soft-deleted input kept for history.
	InputStatusDeleted InputStatus = "deleted"
)

// StatusFromDeleted maps the wire level isDeleted flag to a status.
func StatusFromDeleted(deleted bool) InputStatus {
	if deleted {
		return InputStatusDeleted
	}

	return InputStatusActive
}

// Input is a single selectable text entry of a group.
//
// Inputs are never physically removed by the application, deletion only flips
// Status to InputStatusDeleted. Within a group they are ordered by OrderNum and
// then by ID.
//
// GroupID references Group.ID without a database foreign key: deleting a group
// removes the group row while its soft-deleted inputs stay as history. The
// controllers only insert inputs under an existing group.
type Input struct {
	ID         uint        `gorm:"primaryKey"`
	GroupID    uint        `gorm:"not null;index:idx_input_group_order,priority:1"`
	Name       string      `gorm:"size:255;not null"`
	IsSelected bool        `gorm:"not null;default:false"`
	Status     InputStatus `gorm:"type:varchar(20);not null;default:active"`
	OrderNum   int         `gorm:"not null;default:0;index:idx_input_group_order,priority:2"`
	CreatedAt  time.Time
	ModifiedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for the Input model.
func (Input) TableName() string {
	return "dbInputs"
}

// IsDeleted reports whether the input is soft-deleted.
func (i Input) IsDeleted() bool {
	return i.Status == InputStatusDeleted
}
