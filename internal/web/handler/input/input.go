// Package input implements the /api/inputs routes, including the bulk save
// that reconciles the inputs of a group.
package input

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/apperr"
	"github.com/manojkumarbalamurugan16/task/internal/config"
	controller "github.com/manojkumarbalamurugan16/task/internal/db/controller/input"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler"
)

const (
	// Path is the route group of the input endpoints.
	Path = handler.APIPath + "/inputs"

	msgFetchAll = "Failed to fetch inputs"
	msgFetch    = "Failed to fetch input"
	msgCreate   = "Failed to create input"
	msgUpdate   = "Failed to update input"
	msgDelete   = "Failed to delete input"
	msgSave     = "Failed to save inputs"

	// MsgDeleted is returned after an input was soft-deleted.
	MsgDeleted = "Input deleted successfully"

	// MsgSaved is returned after a bulk save.
	MsgSaved = "Inputs saved successfully"
)

// ErrCreateRequired is returned when a create request lacks group id or name.
var ErrCreateRequired = apperr.Validation("Group ID and Name are required")

// Response is the wire form of an input.
type Response struct {
	ID         uint      `json:"id"`
	GroupID    uint      `json:"groupId"`
	Name       string    `json:"name"`
	IsSelected bool      `json:"isSelected"`
	IsDeleted  bool      `json:"isDeleted"`
	OrderNum   int       `json:"orderNum"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// CreateRequest is the body of POST /api/inputs.
type CreateRequest struct {
	GroupID    uint   `json:"groupId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	IsSelected bool   `json:"isSelected"`
	IsDeleted  bool   `json:"isDeleted"`
	OrderNum   int    `json:"orderNum"`
}

// UpdateRequest is the body of PUT /api/inputs/:id. Absent keys stay unchanged.
type UpdateRequest struct {
	Name       *string `json:"name"`
	IsSelected *bool   `json:"isSelected"`
	IsDeleted  *bool   `json:"isDeleted"`
	OrderNum   *int    `json:"orderNum"`
}

// BulkItem is one input of a bulk save. A missing id creates a new input.
type BulkItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	IsSelected bool   `json:"isSelected"`
	IsDeleted  bool   `json:"isDeleted"`
	OrderNum   int    `json:"orderNum"`
}

// BulkRequest is the body of POST /api/inputs/bulk.
type BulkRequest struct {
	GroupID uint       `json:"groupId" validate:"required"`
	Inputs  []BulkItem `json:"inputs" validate:"required"`
}

// BulkResponse is returned by a successful bulk save.
type BulkResponse struct {
	Message string     `json:"message"`
	Inputs  []Response `json:"inputs"`
}

// Service is the input handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Init registers the input routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Post("/bulk", s.Bulk)
		router.Get("/group/:groupId", s.ListByGroup)
		router.Post(handler.RouterRootPath, s.Create)
		router.Get("/:id", s.Get)
		router.Put("/:id", s.Update)
		router.Delete("/:id", s.Delete)
	})

	return nil
}

func (s *Service) tx(c *fiber.Ctx) *gorm.DB {
	return s.db.WithContext(c.UserContext())
}

// ListByGroup returns every input of a group in display order.
func (s *Service) ListByGroup(c *fiber.Ctx) error {
	groupID, err := handler.ParseID(c, "groupId")
	if err != nil {
		return handler.SendError(c, err, msgFetchAll)
	}

	inputs, err := controller.ListByGroup(s.tx(c), groupID)
	if err != nil {
		return handler.SendError(c, err, msgFetchAll)
	}

	return c.JSON(toResponses(inputs))
}

// Get returns a single input, soft-deleted or not.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgFetch)
	}

	in, err := controller.GetByID(s.tx(c), id)
	if err != nil {
		return handler.SendError(c, err, msgFetch)
	}

	return c.JSON(toResponse(in))
}

// Create adds a single input to a group.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, ErrCreateRequired, msgCreate)
	}

	if err := s.validator.Struct(req); err != nil {
		log.Debug().Err(err).Msg("invalid input create request")

		return handler.SendError(c, ErrCreateRequired, msgCreate)
	}

	in, err := controller.Create(s.tx(c), controller.NewInput{
		GroupID:    req.GroupID,
		Name:       req.Name,
		IsSelected: req.IsSelected,
		IsDeleted:  req.IsDeleted,
		OrderNum:   req.OrderNum,
	})
	if err != nil {
		return handler.SendError(c, err, msgCreate)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(in))
}

// Update applies the fields present in the body.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgUpdate)
	}

	var req UpdateRequest
	if len(c.Body()) > 0 {
		if err = c.BodyParser(&req); err != nil {
			return handler.SendError(c, apperr.Validation(handler.MsgInvalidBody), msgUpdate)
		}
	}

	in, err := controller.Update(s.tx(c), id, controller.Patch{
		Name:       req.Name,
		IsSelected: req.IsSelected,
		IsDeleted:  req.IsDeleted,
		OrderNum:   req.OrderNum,
	})
	if err != nil {
		return handler.SendError(c, err, msgUpdate)
	}

	return c.JSON(toResponse(in))
}

// Delete soft-deletes an input.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgDelete)
	}

	if err = controller.SoftDelete(s.tx(c), id); err != nil {
		return handler.SendError(c, err, msgDelete)
	}

	return c.JSON(handler.MessageResponse{Message: MsgDeleted})
}

// Bulk makes the stored inputs of a group match the posted list.
func (s *Service) Bulk(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, controller.ErrInputsRequired, msgSave)
	}

	if err := s.validator.Struct(req); err != nil {
		log.Debug().Err(err).Msg("invalid bulk save request")

		return handler.SendError(c, controller.ErrInputsRequired, msgSave)
	}

	targets := make([]controller.Target, len(req.Inputs))
	for i, item := range req.Inputs {
		targets[i] = controller.Target{
			ID:         item.ID,
			Name:       item.Name,
			IsSelected: item.IsSelected,
			IsDeleted:  item.IsDeleted,
			OrderNum:   item.OrderNum,
		}
	}

	res, err := controller.Reconcile(s.tx(c), req.GroupID, targets)
	if err != nil {
		return handler.SendError(c, err, msgSave)
	}

	log.Info().
		Uint("group_id", req.GroupID).
		Int("inserted", len(res.Inserted)).
		Int("updated", len(res.Updated)).
		Int("soft_deleted", len(res.SoftDeleted)).
		Msg("inputs reconciled")

	inputs, err := controller.ListByGroup(s.tx(c), req.GroupID)
	if err != nil {
		return handler.SendError(c, err, msgSave)
	}

	return c.JSON(BulkResponse{Message: MsgSaved, Inputs: toResponses(inputs)})
}

func toResponse(in *models.Input) Response {
	return Response{
		ID:         in.ID,
		GroupID:    in.GroupID,
		Name:       in.Name,
		IsSelected: in.IsSelected,
		IsDeleted:  in.IsDeleted(),
		OrderNum:   in.OrderNum,
		CreatedAt:  in.CreatedAt,
		ModifiedAt: in.ModifiedAt,
	}
}

func toResponses(inputs []models.Input) []Response {
	out := make([]Response, len(inputs))
	for i := range inputs {
		out[i] = toResponse(&inputs[i])
	}

	return out
}
