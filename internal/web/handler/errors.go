package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/manojkumarbalamurugan16/task/internal/apperr"
)

// ErrInvalidID is returned by ParseID for anything but a positive integer.
var ErrInvalidID = apperr.Validation(MsgInvalidID)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of delete and bulk operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Status maps an error to its http status code.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// SendError renders err as ErrorResponse. Classified errors carry their own
// message, anything else is logged and answered with fallback.
func SendError(c *fiber.Ctx, err error, fallback string) error {
	status := Status(err)

	msg, ok := apperr.Message(err)
	if !ok || status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(fallback)

		msg = fallback
	}

	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// ErrorHandler is the fiber error handler of the API. Fiber errors keep their
// code and message, everything else goes through SendError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
	}

	return SendError(c, err, MsgInternal)
}

// ParseID reads a positive integer path parameter.
func ParseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}
