package input

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/db/controller"
	"github.com/manojkumarbalamurugan16/task/internal/db/controller/group"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
)

// ErrReconcileFailed wraps any store failure during a reconcile. The transaction
// is rolled back when it is returned.
var ErrReconcileFailed = errors.New("failed to reconcile inputs")

// Target is one entry of the desired input list of a group.
// A zero ID means the entry has no identity yet.
type Target struct {
	ID         uint
	Name       string
	IsSelected bool
	IsDeleted  bool
	OrderNum   int
}

// ReconcileResult lists the ids touched by a reconcile, per action.
type ReconcileResult struct {
	Inserted    []uint
	Updated     []uint
	SoftDeleted []uint
}

// Reconcile makes the stored inputs of a group match targets in one transaction.
//
// Stored rows whose id is not carried by any target are soft-deleted. Targets whose
// id belongs to the group update that row, every other target is inserted as a new
// row, a foreign or stale id is ignored. A nil targets slice is rejected, an empty
// one soft-deletes the whole group. Names are validated before anything is written.
func Reconcile(db *gorm.DB, groupID uint, targets []Target) (*ReconcileResult, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if groupID == 0 {
		return nil, ErrGroupIDRequired
	}

	if targets == nil {
		return nil, ErrInputsRequired
	}

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = strings.TrimSpace(t.Name)
		if names[i] == "" {
			return nil, ErrInputNameEmpty
		}
	}

	res := &ReconcileResult{
		Inserted:    make([]uint, 0),
		Updated:     make([]uint, 0),
		SoftDeleted: make([]uint, 0),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		ok, err := group.Exists(tx, groupID)
		if err != nil {
			return err
		}

		if !ok {
			return group.ErrGroupNotFound
		}

		var existing []models.Input
		if err = tx.Select("id", colStatus).Where("group_id = ?", groupID).Find(&existing).Error; err != nil {
			return pkgerrors.Wrap(err, "load existing inputs")
		}

		stored := make(map[uint]models.InputStatus, len(existing))
		for _, in := range existing {
			stored[in.ID] = in.Status
		}

		kept := make(map[uint]struct{}, len(targets))
		for _, t := range targets {
			if _, ok := stored[t.ID]; ok {
				kept[t.ID] = struct{}{}
			}
		}

		for _, in := range existing {
			if _, ok := kept[in.ID]; ok || in.Status == models.InputStatusDeleted {
				continue
			}

			res.SoftDeleted = append(res.SoftDeleted, in.ID)
		}

		if len(res.SoftDeleted) > 0 {
			err = tx.Model(&models.Input{}).
				Where("id IN ?", res.SoftDeleted).
				Update(colStatus, models.InputStatusDeleted).Error
			if err != nil {
				return pkgerrors.Wrap(err, "soft delete removed inputs")
			}
		}

		for i, t := range targets {
			if _, ok := stored[t.ID]; ok {
				err = tx.Model(&models.Input{ID: t.ID}).Updates(map[string]any{
					colName:       names[i],
					colIsSelected: t.IsSelected,
					colStatus:     models.StatusFromDeleted(t.IsDeleted),
					colOrderNum:   t.OrderNum,
				}).Error
				if err != nil {
					return pkgerrors.Wrapf(err, "update input %d", t.ID)
				}

				res.Updated = append(res.Updated, t.ID)

				continue
			}

			in := models.Input{
				GroupID:    groupID,
				Name:       names[i],
				IsSelected: t.IsSelected,
				Status:     models.StatusFromDeleted(t.IsDeleted),
				OrderNum:   t.OrderNum,
			}
			if err = tx.Create(&in).Error; err != nil {
				return pkgerrors.Wrap(err, "insert input")
			}

			res.Inserted = append(res.Inserted, in.ID)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) || errors.Is(err, controller.ErrDBNil) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrReconcileFailed, err)
	}

	observe(res)

	return res, nil
}
