package http

import (
	"social-realtime/internal/call"
)

type startReq struct {
	ChatID int64 `json:"chat_id" binding:"required,gt=0"`
}

type startResp struct {
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id"`
}

type viewReq struct {
	Open *bool `json:"open" binding:"required"`
}

type watchReq struct {
	ChatID int64 `uri:"chatId" binding:"required,gt=0"`
}

type snapshotResp struct {
	call.Snapshot
}
