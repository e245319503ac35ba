package websocket

import (
	"context"

	"alignai-be/pkg/voice"

	"github.com/google/uuid"
)

// ServeInterview runs one interview session on an upgraded connection and
// returns after the outbound queue has been flushed.
func ServeInterview(ctx context.Context, deps Deps, conn Conn, sessionID, userID uuid.UUID, profile voice.Profile) State {
	client := NewClient(conn, sessionID, userID, deps.Logger)
	session := NewSession(deps, client, profile)
	session.Run(ctx)
	client.Wait(writeWait)
	return session.State()
}
