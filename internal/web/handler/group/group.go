// Package group implements the /api/groups routes.
package group

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	controller "github.com/manojkumarbalamurugan16/task/internal/db/controller/group"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler"
)

const (
	// Path is the route group of the group endpoints.
	Path = handler.APIPath + "/groups"

	msgFetchAll = "Failed to fetch groups"
	msgFetch    = "Failed to fetch group"
	msgSearch   = "Failed to search groups"
	msgCheck    = "Failed to check group name"
	msgCreate   = "Failed to create group"
	msgUpdate   = "Failed to update group"
	msgDelete   = "Failed to delete group"

	// MsgDeleted is returned after a group was deleted.
	MsgDeleted = "Group deleted successfully"
)

// Request is the body of create and rename. groupName is the legacy key.
type Request struct {
	Name      string `json:"name"`
	GroupName string `json:"groupName"`
}

func (r Request) name() string {
	if r.Name != "" {
		return r.Name
	}

	return r.GroupName
}

// Response is returned by create and rename.
type Response struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CheckResponse is returned by the name check.
type CheckResponse struct {
	Exists bool  `json:"exists"`
	ID     *uint `json:"id"`
}

// Service is the group handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Init registers the group routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	// static segments first, :id would swallow them
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, s.Create)
		router.Get("/search/:fragment?", s.Search)
		router.Get("/check/:name", s.Check)
		router.Get("/:id", s.Get)
		router.Put("/:id", s.Rename)
		router.Delete("/:id", s.Delete)
	})

	return nil
}

func (s *Service) tx(c *fiber.Ctx) *gorm.DB {
	return s.db.WithContext(c.UserContext())
}

// List returns all groups, most recently modified first.
func (s *Service) List(c *fiber.Ctx) error {
	groups, err := controller.GetAll(s.tx(c))
	if err != nil {
		return handler.SendError(c, err, msgFetchAll)
	}

	return c.JSON(groups)
}

// Get returns a single group.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgFetch)
	}

	g, err := controller.GetByID(s.tx(c), id)
	if err != nil {
		return handler.SendError(c, err, msgFetch)
	}

	return c.JSON(g)
}

// Search returns up to five group names containing the fragment.
func (s *Service) Search(c *fiber.Ctx) error {
	names, err := controller.SearchNames(s.tx(c), c.Params("fragment"))
	if err != nil {
		return handler.SendError(c, err, msgSearch)
	}

	return c.JSON(names)
}

// Check reports whether a group with exactly this name exists.
func (s *Service) Check(c *fiber.Ctx) error {
	exists, id, err := controller.NameExists(s.tx(c), c.Params("name"))
	if err != nil {
		return handler.SendError(c, err, msgCheck)
	}

	return c.JSON(CheckResponse{Exists: exists, ID: id})
}

// Create adds a new group.
func (s *Service) Create(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, controller.ErrGroupNameEmpty, msgCreate)
	}

	g, err := controller.Create(s.tx(c), req.name())
	if err != nil {
		return handler.SendError(c, err, msgCreate)
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(g))
}

// Rename changes the name of a group.
func (s *Service) Rename(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgUpdate)
	}

	var req Request
	if err = c.BodyParser(&req); err != nil {
		return handler.SendError(c, controller.ErrGroupNameEmpty, msgUpdate)
	}

	g, err := controller.Rename(s.tx(c), id, req.name())
	if err != nil {
		return handler.SendError(c, err, msgUpdate)
	}

	return c.JSON(toResponse(g))
}

// Delete soft-deletes the inputs of a group and removes the group.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		return handler.SendError(c, err, msgDelete)
	}

	if err = controller.Delete(s.tx(c), id); err != nil {
		return handler.SendError(c, err, msgDelete)
	}

	return c.JSON(handler.MessageResponse{Message: MsgDeleted})
}

func toResponse(g *models.Group) Response {
	return Response{ID: g.ID, Name: g.Name}
}
