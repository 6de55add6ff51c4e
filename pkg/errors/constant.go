package errors

import "net/http"

const (
	StatusUnauthorized = http.StatusUnauthorized
	StatusNotFound     = http.StatusNotFound
	StatusConflict     = http.StatusConflict
)

const (
	MessageUnauthorized = "Unauthorized"
	MessageNotFound     = "Not found"
)
