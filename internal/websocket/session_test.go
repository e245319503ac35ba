package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/memory"
	"alignai-be/pkg/conversation"
	"alignai-be/pkg/voice"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	in chan []byte

	mu         sync.Mutex
	frames     [][]byte
	closeFrame bool

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn(inbound ...string) *fakeConn {
	c := &fakeConn{in: make(chan []byte, 32), closed: make(chan struct{})}
	for _, m := range inbound {
		c.in <- []byte(m)
	}
	return c
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case m, ok := <-c.in:
		if !ok {
			return 0, nil, io.EOF
		}
		return websocket.TextMessage, m, nil
	case <-c.closed:
		return 0, nil, io.ErrClosedPipe
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch messageType {
	case websocket.TextMessage:
		c.frames = append(c.frames, append([]byte(nil), data...))
	case websocket.CloseMessage:
		c.closeFrame = true
	}
	return nil
}

func (c *fakeConn) SetReadLimit(int64)                   {}
func (c *fakeConn) SetReadDeadline(time.Time) error      { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error     { return nil }
func (c *fakeConn) SetPongHandler(func(string) error)    {}
func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) events(t *testing.T) []map[string]interface{} {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]interface{}, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	return out
}

func types(evs []map[string]interface{}) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i], _ = e["type"].(string)
	}
	return out
}

type fakeStore struct {
	mu          sync.Mutex
	interviews  map[uuid.UUID]*entity.Interview
	completions map[uuid.UUID]string
	getErr      error
	completeErr error
}

func newFakeStore(ivs ...*entity.Interview) *fakeStore {
	s := &fakeStore{interviews: map[uuid.UUID]*entity.Interview{}, completions: map[uuid.UUID]string{}}
	for _, iv := range ivs {
		s.interviews[iv.Id] = iv
	}
	return s
}

func (s *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*entity.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	iv, ok := s.interviews[id]
	if !ok {
		return nil, serverutils.NotFound("Interview not found")
	}
	cp := *iv
	return &cp, nil
}

func (s *fakeStore) CompleteSession(_ context.Context, id uuid.UUID, completedAt time.Time, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return s.completeErr
	}
	iv := s.interviews[id]
	if iv == nil || iv.Status != entity.InterviewStatusInProgress {
		return serverutils.Conflict("Interview is not in progress")
	}
	iv.Status = entity.InterviewStatusCompleted
	iv.CompletedAt = &completedAt
	iv.Feedback = &feedback
	s.completions[id] = feedback
	return nil
}

type echoGenerator struct {
	panicOnRespond bool
}

func (g *echoGenerator) Greeting(_ context.Context, d conversation.Descriptor) string {
	return "Welcome to your " + d.Title + " interview."
}

func (g *echoGenerator) Respond(_ context.Context, _ *conversation.Context, utterance string) string {
	if g.panicOnRespond {
		panic("boom")
	}
	return "re: " + utterance
}

func (g *echoGenerator) Feedback(_ context.Context, c *conversation.Context) string {
	return "Good job after " + string(rune('0'+c.UserTurns())) + " answers"
}

type stubSynth struct{}

func (stubSynth) Synthesize(_ context.Context, text string, profile voice.Profile) *string {
	if strings.HasPrefix(text, "re: silent") {
		return nil
	}
	ref := "/api/voice/audio_" + string(profile) + "_" + voice.Fingerprint(text, profile) + ".mp3"
	return &ref
}

func inProgress(userID uuid.UUID, duration int) *entity.Interview {
	return &entity.Interview{
		Id:          uuid.New(),
		UserId:      userID,
		Category:    "Software",
		Subcategory: "Stacks vs Queues",
		Title:       "Stacks vs Queues",
		Duration:    duration,
		Difficulty:  "Medium",
		Status:      entity.InterviewStatusInProgress,
	}
}

type harness struct {
	hub     *Hub
	store   *fakeStore
	tracker *memory.LiveSessionRepository
	deps    Deps
}

func newHarness(store *fakeStore, gen Generator) *harness {
	h := &harness{hub: NewHub(nil, nil), store: store, tracker: memory.NewLiveSessionRepository(time.Minute)}
	h.deps = Deps{
		Hub:         h.hub,
		Store:       store,
		Generator:   gen,
		Synthesizer: stubSynth{},
		Tracker:     h.tracker,
		Config:      SessionConfig{MaxDuration: time.Hour, Grace: time.Minute},
	}
	return h
}

func (h *harness) serve(t *testing.T, conn *fakeConn, sessionID, userID uuid.UUID) State {
	t.Helper()
	done := make(chan State, 1)
	go func() {
		done <- ServeInterview(context.Background(), h.deps, conn, sessionID, userID, voice.ProfileFemale)
	}()
	select {
	case st := <-done:
		return st
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
		return ""
	}
}

func TestFullConversation(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	h := newHarness(newFakeStore(iv), &echoGenerator{})

	conn := newFakeConn(
		`{"type":"user_message","message":"A stack is LIFO"}`,
		`{"type":"user_message","message":"re"}`,
		`{"type":"user_message","message":"silent one"}`,
		`{"type":"end_interview"}`,
		`{"type":"user_message","message":"too late"}`,
	)
	state := h.serve(t, conn, iv.Id, user)
	assert.Equal(t, StateClosed, state)

	evs := conn.events(t)
	require.Equal(t, []string{EventAIMessage, EventAIMessage, EventAIMessage, EventAIMessage, EventInterviewComplete}, types(evs))

	assert.Contains(t, evs[0]["message"], "Stacks vs Queues")
	assert.Equal(t, "re: A stack is LIFO", evs[1]["message"])
	assert.Equal(t, "re: re", evs[2]["message"])

	// voice_url is always present, null when there is no audio
	for _, e := range evs[:4] {
		_, ok := e["voice_url"]
		assert.True(t, ok)
	}
	assert.Nil(t, evs[3]["voice_url"])
	assert.NotEmpty(t, evs[4]["feedback"])

	assert.True(t, conn.closeFrame)
	assert.Equal(t, entity.InterviewStatusCompleted, h.store.interviews[iv.Id].Status)
	assert.NotNil(t, h.store.interviews[iv.Id].CompletedAt)
	assert.Len(t, h.store.completions, 1)
	assert.Zero(t, h.hub.Count())
	assert.Empty(t, h.tracker.List())
}

func TestOpenFailures(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name    string
		setup   func() (*fakeStore, uuid.UUID)
		user    uuid.UUID
		message string
	}{
		{
			name:    "unknown interview",
			setup:   func() (*fakeStore, uuid.UUID) { return newFakeStore(), uuid.New() },
			user:    owner,
			message: "Interview not found",
		},
		{
			name: "someone else's interview",
			setup: func() (*fakeStore, uuid.UUID) {
				iv := inProgress(owner, 5)
				return newFakeStore(iv), iv.Id
			},
			user:    uuid.New(),
			message: "Interview not found",
		},
		{
			name: "not started",
			setup: func() (*fakeStore, uuid.UUID) {
				iv := inProgress(owner, 5)
				iv.Status = entity.InterviewStatusScheduled
				return newFakeStore(iv), iv.Id
			},
			user:    owner,
			message: "Interview is not in progress",
		},
		{
			name: "store unavailable",
			setup: func() (*fakeStore, uuid.UUID) {
				s := newFakeStore()
				s.getErr = errors.New("connection refused")
				return s, uuid.New()
			},
			user:    owner,
			message: "Failed to load interview",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, id := tt.setup()
			h := newHarness(store, &echoGenerator{})
			conn := newFakeConn(`{"type":"user_message","message":"hi"}`)

			state := h.serve(t, conn, id, tt.user)

			assert.Equal(t, StateErrored, state)
			evs := conn.events(t)
			require.Equal(t, []string{EventError}, types(evs))
			assert.Equal(t, tt.message, evs[0]["message"])
			assert.Empty(t, store.completions)
			assert.Zero(t, h.hub.Count())
		})
	}
}

func TestInvalidInboundClosesWithoutPersisting(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		message string
	}{
		{"malformed json", `{"type":`, "Invalid message format"},
		{"empty message", `{"type":"user_message","message":"   "}`, "Message cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := uuid.New()
			iv := inProgress(user, 5)
			h := newHarness(newFakeStore(iv), &echoGenerator{})
			conn := newFakeConn(tt.frame, `{"type":"end_interview"}`)

			assert.Equal(t, StateErrored, h.serve(t, conn, iv.Id, user))
			assert.Equal(t, []string{EventAIMessage, EventError}, types(conn.events(t)))
			assert.Equal(t, entity.InterviewStatusInProgress, h.store.interviews[iv.Id].Status)
		})
	}
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	h := newHarness(newFakeStore(iv), &echoGenerator{})
	conn := newFakeConn(`{"type":"typing"}`, `{"type":"end_interview"}`)

	assert.Equal(t, StateClosed, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []string{EventAIMessage, EventInterviewComplete}, types(conn.events(t)))
}

func TestDisconnectLeavesInterviewUntouched(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	h := newHarness(newFakeStore(iv), &echoGenerator{})
	conn := newFakeConn(`{"type":"user_message","message":"hello"}`)
	close(conn.in)

	assert.Equal(t, StateClosed, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []string{EventAIMessage, EventAIMessage}, types(conn.events(t)))
	assert.Equal(t, entity.InterviewStatusInProgress, h.store.interviews[iv.Id].Status)
	assert.Zero(t, h.hub.Count())
}

func TestPersistenceFailureOnComplete(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	store := newFakeStore(iv)
	store.completeErr = errors.New("deadlock")
	h := newHarness(store, &echoGenerator{})
	conn := newFakeConn(`{"type":"end_interview"}`)

	assert.Equal(t, StateErrored, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []string{EventAIMessage, EventError}, types(conn.events(t)))
	assert.Equal(t, entity.InterviewStatusInProgress, store.interviews[iv.Id].Status)
}

func TestTimeLimitFinalizes(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 0)
	h := newHarness(newFakeStore(iv), &echoGenerator{})
	h.deps.Config.MaxDuration = 50 * time.Millisecond
	conn := newFakeConn()

	assert.Equal(t, StateClosed, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []string{EventAIMessage, EventInterviewComplete}, types(conn.events(t)))
	assert.Equal(t, entity.InterviewStatusCompleted, h.store.interviews[iv.Id].Status)
}

func TestPanicIsRecovered(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	h := newHarness(newFakeStore(iv), &echoGenerator{panicOnRespond: true})
	conn := newFakeConn(`{"type":"user_message","message":"hello"}`)

	assert.Equal(t, StateErrored, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []string{EventAIMessage, EventError}, types(conn.events(t)))
	assert.Zero(t, h.hub.Count())
	assert.Equal(t, entity.InterviewStatusInProgress, h.store.interviews[iv.Id].Status)
}

func TestSessionLimit(t *testing.T) {
	s := NewSession(Deps{Config: SessionConfig{MaxDuration: time.Hour, Grace: 2 * time.Minute}}, nil, voice.ProfileFemale)

	assert.Equal(t, 32*time.Minute, s.limit(&entity.Interview{Duration: 30}))
	assert.Equal(t, time.Hour, s.limit(&entity.Interview{Duration: 90}))
	assert.Equal(t, time.Hour, s.limit(&entity.Interview{Duration: 0}))
}

type gatedGenerator struct {
	echoGenerator
	entered chan struct{}
	release chan struct{}
}

func (g *gatedGenerator) Greeting(ctx context.Context, d conversation.Descriptor) string {
	close(g.entered)
	<-g.release
	return g.echoGenerator.Greeting(ctx, d)
}

func TestBroadcastDuringGreetingIsNotDelivered(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	gen := &gatedGenerator{entered: make(chan struct{}), release: make(chan struct{})}
	h := newHarness(newFakeStore(iv), gen)
	conn := newFakeConn()

	done := make(chan State, 1)
	go func() {
		done <- ServeInterview(context.Background(), h.deps, conn, iv.Id, user, voice.ProfileFemale)
	}()

	<-gen.entered
	assert.Zero(t, h.hub.Broadcast(AnnouncementMessage("Maintenance at noon")))
	close(gen.release)

	require.Eventually(t, func() bool { return h.hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, h.hub.Broadcast(AnnouncementMessage("Back online")))
	conn.in <- []byte(`{"type":"end_interview"}`)

	select {
	case st := <-done:
		assert.Equal(t, StateClosed, st)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}

	evs := conn.events(t)
	require.Equal(t, []string{EventAIMessage, EventAnnouncement, EventInterviewComplete}, types(evs))
	assert.Equal(t, "Back online", evs[1]["message"])
}

type transcriptGenerator struct {
	echoGenerator
	mu   sync.Mutex
	lens []int
}

func (g *transcriptGenerator) Respond(ctx context.Context, c *conversation.Context, utterance string) string {
	g.mu.Lock()
	g.lens = append(g.lens, c.Len())
	g.mu.Unlock()
	return g.echoGenerator.Respond(ctx, c, utterance)
}

func TestGreetingStaysOutOfTranscript(t *testing.T) {
	user := uuid.New()
	iv := inProgress(user, 5)
	gen := &transcriptGenerator{}
	h := newHarness(newFakeStore(iv), gen)
	conn := newFakeConn(
		`{"type":"user_message","message":"A stack is LIFO"}`,
		`{"type":"user_message","message":"A queue is FIFO"}`,
		`{"type":"end_interview"}`,
	)

	assert.Equal(t, StateClosed, h.serve(t, conn, iv.Id, user))
	assert.Equal(t, []int{1, 3}, gen.lens)
}
