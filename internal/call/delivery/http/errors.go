package http

import (
	"net/http"

	"social-realtime/internal/call"
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"
)

var errMap = response.ErrorMapping{
	call.ErrNoIncomingCall: errors.NewHTTPError(http.StatusNotFound, "No incoming call"),
	call.ErrNotInCall:      errors.NewHTTPError(http.StatusConflict, "Not in a call"),
	call.ErrBusy:           errors.NewHTTPError(http.StatusConflict, "A call is already in progress"),
	call.ErrInvalidChat:    errors.NewHTTPError(http.StatusBadRequest, "Invalid chat id"),
}
