package dto

import (
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/repository/memory"
)

type BroadcastRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type BroadcastResponse struct {
	Delivered int `json:"delivered"`
}

type LiveSessionsResponse struct {
	Connections int                  `json:"connections"`
	Sessions    []memory.LiveSession `json:"sessions"`
}

type LogListResponse struct {
	Logs []logger.LogEntry `json:"logs"`
}
