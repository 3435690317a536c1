// Package input provides the store operations for the inputs of a group:
// listing, single row CRUD with soft deletion and the bulk reconciliation.
package input

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/apperr"
	"github.com/manojkumarbalamurugan16/task/internal/db/controller"
	"github.com/manojkumarbalamurugan16/task/internal/db/controller/group"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
)

const (
	colName       = "name"
	colIsSelected = "is_selected"
	colStatus     = "status"
	colOrderNum   = "order_num"
)

var (
	// ErrInputNotFound is returned when no input has the given id.
	ErrInputNotFound = apperr.NotFound("Input not found")
	// ErrInputNameEmpty is returned when an input name is empty after trimming.
	ErrInputNameEmpty = apperr.Validation("Input name is required")
	// ErrGroupIDRequired is returned when an operation is called without a group id.
	ErrGroupIDRequired = apperr.Validation("Group ID is required")
	// ErrInputsRequired is returned when reconcile gets no input list at all.
	ErrInputsRequired = apperr.Validation("Group ID and inputs array are required")
	// ErrNoFieldsToUpdate is returned for an empty patch.
	ErrNoFieldsToUpdate = apperr.Validation("No fields to update")
)

// NewInput holds the fields of an input created on its own.
type NewInput struct {
	GroupID    uint
	Name       string
	IsSelected bool
	IsDeleted  bool
	OrderNum   int
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name       *string
	IsSelected *bool
	IsDeleted  *bool
	OrderNum   *int
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.IsSelected == nil && p.IsDeleted == nil && p.OrderNum == nil
}

func (p Patch) columns() (map[string]any, error) {
	cols := make(map[string]any, 4)

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrInputNameEmpty
		}

		cols[colName] = name
	}

	if p.IsSelected != nil {
		cols[colIsSelected] = *p.IsSelected
	}

	if p.IsDeleted != nil {
		cols[colStatus] = models.StatusFromDeleted(*p.IsDeleted)
	}

	if p.OrderNum != nil {
		cols[colOrderNum] = *p.OrderNum
	}

	return cols, nil
}

// ListByGroup returns every input of the group, soft-deleted ones included,
// ordered by order number and then by id.
func ListByGroup(db *gorm.DB, groupID uint) ([]models.Input, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	inputs := make([]models.Input, 0)

	err := db.Where("group_id = ?", groupID).
		Order("order_num ASC").
		Order("id ASC").
		Find(&inputs).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list inputs")
	}

	return inputs, nil
}

// GetByID retrieves an input by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Input, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var in models.Input
	if err := db.First(&in, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInputNotFound
		}

		return nil, pkgerrors.Wrap(err, "get input")
	}

	return &in, nil
}

// Create inserts a single input under an existing group.
func Create(db *gorm.DB, n NewInput) (*models.Input, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if n.GroupID == 0 {
		return nil, ErrGroupIDRequired
	}

	name := strings.TrimSpace(n.Name)
	if name == "" {
		return nil, ErrInputNameEmpty
	}

	ok, err := group.Exists(db, n.GroupID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, group.ErrGroupNotFound
	}

	in := &models.Input{
		GroupID:    n.GroupID,
		Name:       name,
		IsSelected: n.IsSelected,
		Status:     models.StatusFromDeleted(n.IsDeleted),
		OrderNum:   n.OrderNum,
	}

	if err = db.Create(in).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create input")
	}

	return in, nil
}

// Update applies a partial update and returns the stored row.
func Update(db *gorm.DB, id uint, p Patch) (*models.Input, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if p.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	cols, err := p.columns()
	if err != nil {
		return nil, err
	}

	in, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if err = db.Model(in).Updates(cols).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update input")
	}

	return GetByID(db, id)
}

// SoftDelete marks an input as deleted. The row stays in the store.
func SoftDelete(db *gorm.DB, id uint) error {
	if db == nil {
		return controller.ErrDBNil
	}

	in, err := GetByID(db, id)
	if err != nil {
		return err
	}

	if err = db.Model(in).Update(colStatus, models.InputStatusDeleted).Error; err != nil {
		return pkgerrors.Wrap(err, "soft delete input")
	}

	return nil
}
