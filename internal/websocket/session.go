package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/memory"
	"alignai-be/pkg/conversation"
	"alignai-be/pkg/voice"

	"github.com/google/uuid"
)

type State string

const (
	StateAwaitingGreeting State = "awaiting_greeting"
	StateActive           State = "active"
	StateFinalizing       State = "finalizing"
	StateClosed           State = "closed"
	StateErrored          State = "errored"
)

// SessionStore is the persistence side of a live interview.
type SessionStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*entity.Interview, error)
	CompleteSession(ctx context.Context, id uuid.UUID, completedAt time.Time, feedback string) error
}

type Generator interface {
	Greeting(ctx context.Context, d conversation.Descriptor) string
	Respond(ctx context.Context, c *conversation.Context, utterance string) string
	Feedback(ctx context.Context, c *conversation.Context) string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, profile voice.Profile) *string
}

// SessionTracker receives snapshots of open sessions for the admin view.
type SessionTracker interface {
	Save(s memory.LiveSession)
	Delete(interviewID uuid.UUID)
}

type SessionConfig struct {
	// MaxDuration caps every session regardless of its planned length.
	MaxDuration time.Duration
	// Grace is added to the planned length before the session is ended.
	Grace time.Duration
}

type Deps struct {
	Hub         *Hub
	Store       SessionStore
	Generator   Generator
	Synthesizer Synthesizer
	Tracker     SessionTracker
	Logger      logger.ILogger
	Config      SessionConfig
}

// Session drives one interview conversation over one client.
type Session struct {
	deps    Deps
	client  *Client
	profile voice.Profile

	state    State
	conv     *conversation.Context
	openedAt time.Time
	now      func() time.Time
}

var errDisconnected = errors.New("client disconnected")

func NewSession(deps Deps, client *Client, profile voice.Profile) *Session {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &Session{
		deps:    deps,
		client:  client,
		profile: profile,
		state:   StateAwaitingGreeting,
		now:     time.Now,
	}
}

func (s *Session) State() State {
	return s.state
}

// Run plays the conversation to its end and always unregisters the client.
// The client joins the hub only once the greeting is queued, so broadcasts
// never overtake it. Run returns once the session is over; the caller should
// then Wait on the client so queued events are flushed.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	defer s.deps.Hub.Unregister(s.client)
	if s.deps.Tracker != nil {
		defer s.deps.Tracker.Delete(s.client.SessionID)
	}

	go s.client.writePump()

	inbound := make(chan []byte, 16)
	stop := make(chan struct{})
	defer close(stop)
	go s.client.readPump(inbound, stop)

	defer func() {
		if r := recover(); r != nil {
			s.deps.Logger.Error("Session", "Recovered from panic", map[string]interface{}{
				"session_id": s.client.SessionID,
				"panic":      fmt.Sprint(r),
			})
			s.fail("Internal server error")
		}
	}()

	iv, ok := s.open(ctx)
	if !ok {
		return
	}
	s.loop(ctx, iv, inbound)
}

func (s *Session) open(ctx context.Context) (*entity.Interview, bool) {
	iv, err := s.deps.Store.GetSession(ctx, s.client.SessionID)
	switch {
	case err != nil && !serverutils.IsNotFound(err):
		s.deps.Logger.Error("Session", "Failed to load interview", map[string]interface{}{"session_id": s.client.SessionID, "error": err.Error()})
		s.fail("Failed to load interview")
		return nil, false
	case err != nil || iv == nil || iv.UserId != s.client.UserID:
		s.fail("Interview not found")
		return nil, false
	case iv.Status != entity.InterviewStatusInProgress:
		s.fail("Interview is not in progress")
		return nil, false
	}

	s.openedAt = s.now()
	s.conv = conversation.New(conversation.Descriptor{
		SessionID:   iv.Id,
		Category:    iv.Category,
		Subcategory: iv.Subcategory,
		Title:       iv.Title,
		Difficulty:  iv.Difficulty,
		Duration:    iv.Duration,
	})

	greeting := s.deps.Generator.Greeting(ctx, s.conv.Descriptor)
	if err := s.say(ctx, greeting); err != nil {
		s.state = StateClosed
		return nil, false
	}

	s.state = StateActive
	s.deps.Hub.Register(s.client)
	s.track(iv)
	s.deps.Logger.Info("Session", "Interview opened", map[string]interface{}{"session_id": iv.Id, "user_id": iv.UserId})
	return iv, true
}

func (s *Session) loop(ctx context.Context, iv *entity.Interview, inbound <-chan []byte) {
	timer := time.NewTimer(s.limit(iv))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.state = StateClosed
			return

		case <-timer.C:
			s.deps.Logger.Info("Session", "Interview time limit reached", map[string]interface{}{"session_id": iv.Id})
			s.finalize(ctx)
			return

		case raw, ok := <-inbound:
			if !ok {
				s.deps.Logger.Info("Session", "Client disconnected", map[string]interface{}{"session_id": iv.Id, "state": s.state})
				s.state = StateClosed
				return
			}

			var ev InboundEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				s.fail("Invalid message format")
				return
			}

			switch ev.Type {
			case EventUserMessage:
				text := strings.TrimSpace(ev.Message)
				if text == "" {
					s.fail("Message cannot be empty")
					return
				}
				if err := s.respond(ctx, text); err != nil {
					s.state = StateClosed
					return
				}
				s.track(iv)
			case EventEndInterview:
				s.finalize(ctx)
				return
			default:
				s.deps.Logger.Warn("Session", "Ignoring unknown event type", map[string]interface{}{"session_id": iv.Id, "type": ev.Type})
			}
		}
	}
}

func (s *Session) respond(ctx context.Context, text string) error {
	s.conv.AppendUser(text)
	reply := s.deps.Generator.Respond(ctx, s.conv, text)
	s.conv.AppendAssistant(reply)
	return s.say(ctx, reply)
}

func (s *Session) finalize(ctx context.Context) {
	s.state = StateFinalizing
	feedback := s.deps.Generator.Feedback(ctx, s.conv)

	if err := s.deps.Store.CompleteSession(ctx, s.client.SessionID, s.now().UTC(), feedback); err != nil {
		s.deps.Logger.Error("Session", "Failed to complete interview", map[string]interface{}{"session_id": s.client.SessionID, "error": err.Error()})
		s.fail("Failed to save interview results")
		return
	}

	s.client.Enqueue(encodeComplete(feedback))
	s.state = StateClosed
	s.deps.Logger.Info("Session", "Interview completed", map[string]interface{}{"session_id": s.client.SessionID, "user_turns": s.conv.UserTurns()})
}

func (s *Session) say(ctx context.Context, text string) error {
	var ref *string
	if s.deps.Synthesizer != nil {
		ref = s.deps.Synthesizer.Synthesize(ctx, text, s.profile)
	}
	if !s.client.Enqueue(encodeAIMessage(text, ref)) {
		return errDisconnected
	}
	return nil
}

func (s *Session) fail(message string) {
	s.state = StateErrored
	s.client.Enqueue(encodeError(message))
}

// limit is the planned length plus grace, capped by the configured maximum.
func (s *Session) limit(iv *entity.Interview) time.Duration {
	max := s.deps.Config.MaxDuration
	if max <= 0 {
		max = time.Hour
	}
	planned := time.Duration(iv.Duration)*time.Minute + s.deps.Config.Grace
	if iv.Duration <= 0 || planned > max {
		return max
	}
	return planned
}

func (s *Session) track(iv *entity.Interview) {
	if s.deps.Tracker == nil {
		return
	}
	s.deps.Tracker.Save(memory.LiveSession{
		InterviewID:  iv.Id,
		UserID:       iv.UserId,
		Title:        iv.Title,
		State:        string(s.state),
		UserTurns:    s.conv.UserTurns(),
		TotalTurns:   s.conv.Len(),
		OpenedAt:     s.openedAt,
		LastActivity: s.now(),
	})
}
