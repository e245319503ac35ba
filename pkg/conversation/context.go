package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// Descriptor is the immutable part of an interview that prompts are built from.
type Descriptor struct {
	SessionID   uuid.UUID
	Category    string
	Subcategory string
	Title       string
	Difficulty  string
	Duration    int // minutes
}

// Context is the live transcript of one interview. It is owned by a single
// session goroutine and is not safe for concurrent mutation.
type Context struct {
	Descriptor
	turns []Turn
	now   func() time.Time
}

func New(d Descriptor) *Context {
	return &Context{Descriptor: d, now: time.Now}
}

func (c *Context) AppendUser(text string) Turn {
	return c.append(RoleUser, text)
}

func (c *Context) AppendAssistant(text string) Turn {
	return c.append(RoleAssistant, text)
}

func (c *Context) append(role Role, text string) Turn {
	t := Turn{Role: role, Text: text, Timestamp: c.now()}
	c.turns = append(c.turns, t)
	return t
}

// Turns returns a copy of the transcript in insertion order.
func (c *Context) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Window returns at most the last n turns.
func (c *Context) Window(n int) []Turn {
	if n <= 0 || n >= len(c.turns) {
		return c.Turns()
	}
	out := make([]Turn, n)
	copy(out, c.turns[len(c.turns)-n:])
	return out
}

func (c *Context) Len() int {
	return len(c.turns)
}

func (c *Context) UserTurns() int {
	return c.count(RoleUser)
}

func (c *Context) AssistantTurns() int {
	return c.count(RoleAssistant)
}

func (c *Context) count(role Role) int {
	n := 0
	for _, t := range c.turns {
		if t.Role == role {
			n++
		}
	}
	return n
}

// AverageUserWords is the mean word count of the user's answers, 0 when there are none.
func (c *Context) AverageUserWords() float64 {
	words, answers := 0, 0
	for _, t := range c.turns {
		if t.Role != RoleUser {
			continue
		}
		words += len(strings.Fields(t.Text))
		answers++
	}
	if answers == 0 {
		return 0
	}
	return float64(words) / float64(answers)
}
