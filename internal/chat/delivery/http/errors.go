package http

import (
	"net/http"

	"social-realtime/internal/chat"
	"social-realtime/pkg/errors"
	"social-realtime/pkg/response"
)

var errMap = response.ErrorMapping{
	chat.ErrInvalidChat:    errors.NewHTTPError(http.StatusBadRequest, "Invalid chat id"),
	chat.ErrInvalidMessage: errors.NewHTTPError(http.StatusBadRequest, "Invalid message id"),
	chat.ErrEmptyContent:   errors.NewHTTPError(http.StatusBadRequest, "Message content is empty"),
}
