// Package handler holds what the JSON API handlers share: the Service
// contract, error rendering and path parameter parsing.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}
