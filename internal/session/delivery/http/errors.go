package http

import (
	"net/http"

	"social-realtime/internal/session"
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"
)

var errMap = response.ErrorMapping{
	session.ErrMissingCredentials: errors.NewHTTPError(http.StatusConflict, "Session has no credentials"),
}
