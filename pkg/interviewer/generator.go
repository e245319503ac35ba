package interviewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alignai-be/internal/pkg/logger"
	"alignai-be/pkg/conversation"
	"alignai-be/pkg/llm"

	"github.com/avast/retry-go/v4"
)

type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLive:
		return ModeLive, nil
	case ModeMock:
		return ModeMock, nil
	}
	return "", fmt.Errorf("unknown interviewer mode %q", s)
}

type Config struct {
	Mode              Mode
	Timeout           time.Duration // per attempt
	Retries           int           // extra attempts after the first
	RetryDelay        time.Duration
	HistoryWindow     int
	FallbackResponses []string
	FallbackPolicy    FallbackPolicy
	Seed              int64
}

// Generator produces interviewer utterances. None of its methods fail: any
// backend problem is logged and replaced with fallback content.
type Generator struct {
	cfg      Config
	provider llm.LLMProvider
	pool     *responsePool
	logger   logger.ILogger
}

func NewGenerator(cfg Config, provider llm.LLMProvider, log logger.ILogger) (*Generator, error) {
	if cfg.Mode == ModeLive && provider == nil {
		return nil, errors.New("live interviewer mode needs an LLM provider")
	}
	if cfg.Mode != ModeLive {
		cfg.Mode = ModeMock
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Generator{
		cfg:      cfg,
		provider: provider,
		pool:     newResponsePool(cfg.FallbackResponses, cfg.FallbackPolicy, cfg.Seed),
		logger:   log,
	}, nil
}

func (g *Generator) Mode() Mode {
	return g.cfg.Mode
}

func (g *Generator) Greeting(ctx context.Context, d conversation.Descriptor) string {
	if g.cfg.Mode == ModeMock {
		return fallbackGreeting(d)
	}
	out, err := g.call(ctx, greetingPrompt(d), llm.WithMaxTokens(150), llm.WithTemperature(0.7))
	if err != nil {
		g.logger.Warn("Interviewer", "Greeting fell back to template", map[string]interface{}{"session_id": d.SessionID, "error": err.Error()})
		return fallbackGreeting(d)
	}
	return out
}

// Respond answers the latest user utterance, which the caller has already
// appended to c.
func (g *Generator) Respond(ctx context.Context, c *conversation.Context, utterance string) string {
	if g.cfg.Mode == ModeMock {
		return g.pool.pick()
	}
	messages := respondPrompt(c, g.cfg.HistoryWindow)
	if last := c.Window(1); len(last) == 0 || last[0].Role != conversation.RoleUser || last[0].Text != utterance {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: utterance})
	}

	out, err := g.call(ctx, messages, llm.WithMaxTokens(200), llm.WithTemperature(0.7))
	if err != nil {
		g.logger.Warn("Interviewer", "Response fell back to pool", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
		return g.pool.pick()
	}
	return out
}

func (g *Generator) Feedback(ctx context.Context, c *conversation.Context) string {
	if g.cfg.Mode == ModeMock {
		return fallbackFeedback(c)
	}
	out, err := g.call(ctx, feedbackPrompt(c), llm.WithMaxTokens(300), llm.WithTemperature(0.5))
	if err != nil {
		g.logger.Warn("Interviewer", "Feedback fell back to template", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
		return fallbackFeedback(c)
	}
	return out
}

var errEmptyCompletion = errors.New("empty completion")

func (g *Generator) call(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	var out string
	err := retry.Do(func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()

		text, err := g.provider.Chat(attemptCtx, messages, opts...)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return errEmptyCompletion
		}
		out = text
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(uint(g.cfg.Retries+1)),
		retry.Delay(g.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	return out, err
}
