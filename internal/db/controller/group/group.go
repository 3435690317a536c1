// Package group provides the store operations for groups: CRUD, name uniqueness and
// name search for autocomplete.
package group

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/apperr"
	"github.com/manojkumarbalamurugan16/task/internal/db/controller"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"

	// SearchLimit caps the number of names returned by SearchNames.
	SearchLimit = 5

	// likeEscape is used instead of a backslash, which mysql and postgres quote differently.
	likeEscape = "!"
)

var (
	// ErrGroupNotFound is returned when no group has the given id.
	ErrGroupNotFound = apperr.NotFound("Group not found")
	// ErrGroupNameEmpty is returned when the name is empty after trimming.
	ErrGroupNameEmpty = apperr.Validation("Group name is required")
	// ErrGroupNameExists is returned when another group already uses the name.
	ErrGroupNameExists = apperr.Conflict("Group name already exists")
)

// GetAll returns all groups, most recently modified first.
func GetAll(db *gorm.DB) ([]models.Group, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	groups := make([]models.Group, 0)
	if err := db.Order("modified_at DESC").Order("id DESC").Find(&groups).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list groups")
	}

	return groups, nil
}

// GetByID retrieves a group by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Group, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var g models.Group
	if err := db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, pkgerrors.Wrap(err, "get group")
	}

	return &g, nil
}

// Exists reports whether a group with the given id exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	if db == nil {
		return false, controller.ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, pkgerrors.Wrap(err, "check group id")
	}

	return count > 0, nil
}

// SearchNames returns up to SearchLimit group names containing fragment.
// A name equal to fragment is left out, it needs no suggestion.
func SearchNames(db *gorm.DB, fragment string) ([]string, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	names := make([]string, 0, SearchLimit)
	if fragment == "" {
		return names, nil
	}

	err := db.Model(&models.Group{}).
		Where("name LIKE ? ESCAPE '"+likeEscape+"' AND name <> ?", "%"+escapeLike(fragment)+"%", fragment).
		Limit(SearchLimit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "search group names")
	}

	return names, nil
}

// NameExists checks for a group with exactly this name and returns its id.
func NameExists(db *gorm.DB, name string) (bool, *uint, error) {
	if db == nil {
		return false, nil, controller.ErrDBNil
	}

	var ids []uint
	if err := db.Model(&models.Group{}).Where(nameQueryPattern, name).Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, nil, pkgerrors.Wrap(err, "check group name")
	}

	if len(ids) == 0 {
		return false, nil, nil
	}

	return true, &ids[0], nil
}

// Create inserts a group with the trimmed name.
func Create(db *gorm.DB, name string) (*models.Group, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	exists, _, err := NameExists(db, name)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrGroupNameExists
	}

	g := &models.Group{Name: name}
	if err = db.Create(g).Error; err != nil {
		return nil, translateWriteError(err, "create group")
	}

	return g, nil
}

// Rename changes the name of an existing group.
// A name owned by another group is reported before a missing id.
func Rename(db *gorm.DB, id uint, newName string) (*models.Group, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrGroupNameEmpty
	}

	var taken int64
	if err := db.Model(&models.Group{}).Where("name = ? AND id <> ?", newName, id).Count(&taken).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "check group name")
	}

	if taken > 0 {
		return nil, ErrGroupNameExists
	}

	g, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if err = db.Model(g).Update("name", newName).Error; err != nil {
		return nil, translateWriteError(err, "rename group")
	}

	// reload to pick up modified_at as written by the store
	return GetByID(db, id)
}

// Delete soft-deletes all inputs of the group and then removes the group row.
// The group row is deleted first-hand, a missing group is detected from the
// affected row count and rolls the input update back.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Input{}).
			Where("group_id = ?", id).
			Update("status", models.InputStatusDeleted).Error
		if err != nil {
			return pkgerrors.Wrap(err, "soft delete group inputs")
		}

		result := tx.Delete(&models.Group{}, id)
		if result.Error != nil {
			return pkgerrors.Wrap(result.Error, "delete group")
		}

		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}

func translateWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrGroupNameExists
	}

	return pkgerrors.Wrap(err, msg)
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}
