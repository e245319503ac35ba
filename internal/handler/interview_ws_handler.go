package handler

import (
	"context"

	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/serverutils"
	internalWS "alignai-be/internal/websocket"
	"alignai-be/pkg/voice"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type InterviewWsHandler struct {
	// sessions end when ctx is cancelled
	ctx            context.Context
	deps           internalWS.Deps
	jwtSecret      string
	defaultProfile voice.Profile
	logger         logger.ILogger
}

func NewInterviewWsHandler(ctx context.Context, deps internalWS.Deps, jwtSecret string, defaultProfile voice.Profile, log logger.ILogger) *InterviewWsHandler {
	return &InterviewWsHandler{
		ctx:            ctx,
		deps:           deps,
		jwtSecret:      jwtSecret,
		defaultProfile: defaultProfile,
		logger:         log,
	}
}

// ServeWs authenticates the handshake, then upgrades and runs the session.
// The token comes from the "token" query parameter (browsers) or the
// Authorization header (tooling).
func (h *InterviewWsHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	claims, err := serverutils.ParseAccessToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("InterviewWsHandler", "Invalid token in handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// a malformed id is reported over the channel like any unknown interview
	sessionID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		sessionID = uuid.Nil
	}
	profile := h.defaultProfile
	if v := c.Query("voice"); v != "" {
		profile = voice.ParseProfile(v)
	}
	userID := claims.UserID

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("InterviewWsHandler", "Interview channel opened", map[string]interface{}{"session_id": sessionID, "user_id": userID, "voice": profile})
		state := internalWS.ServeInterview(h.ctx, h.deps, conn, sessionID, userID, profile)
		h.logger.Info("InterviewWsHandler", "Interview channel closed", map[string]interface{}{"session_id": sessionID, "state": state})
	})(c)
}

func (h *InterviewWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ai-interview/ws/:interview_id", h.ServeWs)
}
