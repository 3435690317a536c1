package handler

const (
	// APIPath is the prefix of all JSON routes.
	APIPath = "/api"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// MsgInternal is the fallback message of unexpected failures.
	MsgInternal = "Internal server error"

	// MsgInvalidBody is returned when the request body is not valid JSON.
	MsgInvalidBody = "Invalid request body"

	// MsgInvalidID is returned when a path id is not a positive integer.
	MsgInvalidID = "Invalid id"
)
