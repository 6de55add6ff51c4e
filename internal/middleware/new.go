package middleware

import (
	"social-realtime/pkg/log"
)

type Middleware struct {
	logger log.Logger
}

func New(logger log.Logger) Middleware {
	return Middleware{logger: logger}
}
