package service

import (
	"strings"

	"alignai-be/internal/dto"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/memory"
)

// Broadcaster is the part of the session registry admins can reach.
type Broadcaster interface {
	Broadcast(message []byte) int
	Count() int
}

type LiveSessionLister interface {
	List() []memory.LiveSession
}

type IAdminService interface {
	Broadcast(req *dto.BroadcastRequest) (*dto.BroadcastResponse, error)
	LiveSessions() *dto.LiveSessionsResponse
	Logs(level string, limit, offset int) (*dto.LogListResponse, error)
}

type adminService struct {
	hub      Broadcaster
	sessions LiveSessionLister
	encode   func(message string) []byte
	logger   logger.ILogger
}

// NewAdminService takes the announcement encoder from the websocket layer so
// this package does not depend on it.
func NewAdminService(hub Broadcaster, sessions LiveSessionLister, encode func(string) []byte, log logger.ILogger) IAdminService {
	return &adminService{hub: hub, sessions: sessions, encode: encode, logger: log}
}

func (s *adminService) Broadcast(req *dto.BroadcastRequest) (*dto.BroadcastResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, serverutils.Validation("message must not be blank")
	}
	delivered := s.hub.Broadcast(s.encode(msg))
	s.logger.Info("AdminService", "Announcement broadcast", map[string]interface{}{"delivered": delivered})
	return &dto.BroadcastResponse{Delivered: delivered}, nil
}

func (s *adminService) LiveSessions() *dto.LiveSessionsResponse {
	return &dto.LiveSessionsResponse{
		Connections: s.hub.Count(),
		Sessions:    s.sessions.List(),
	}
}

func (s *adminService) Logs(level string, limit, offset int) (*dto.LogListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, serverutils.Internal("Failed to read logs", err)
	}
	return &dto.LogListResponse{Logs: entries}, nil
}
