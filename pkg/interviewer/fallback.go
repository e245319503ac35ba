package interviewer

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"alignai-be/pkg/conversation"
)

type FallbackPolicy string

const (
	FallbackRandom     FallbackPolicy = "random"
	FallbackSequential FallbackPolicy = "sequential"
)

// ParseFallbackPolicy accepts "sequential" and its "round_robin" alias;
// anything else is random.
func ParseFallbackPolicy(s string) FallbackPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "round_robin", "round-robin":
		return FallbackSequential
	default:
		return FallbackRandom
	}
}

var DefaultFallbackResponses = []string{
	"That's interesting! Can you tell me more about that experience?",
	"Great answer! How did you handle challenges in that situation?",
	"I see. What would you do differently if you faced that again?",
	"Excellent point. Can you give me a specific example?",
	"That's helpful context. What are your thoughts on current trends in this field?",
	"Good insight. How do you stay updated with new technologies?",
	"Interesting approach. What was the outcome of that decision?",
	"That makes sense. How do you prioritize when you have multiple deadlines?",
	"Good answer! What's your approach to learning new skills?",
	"That's valuable experience. How do you handle feedback and criticism?",
}

// responsePool hands out canned replies. Shared by every session, so it locks.
type responsePool struct {
	mu        sync.Mutex
	responses []string
	policy    FallbackPolicy
	next      int
	rnd       *rand.Rand
}

func newResponsePool(responses []string, policy FallbackPolicy, seed int64) *responsePool {
	if len(responses) == 0 {
		responses = DefaultFallbackResponses
	}
	if policy != FallbackSequential {
		policy = FallbackRandom
	}
	pool := make([]string, len(responses))
	copy(pool, responses)
	return &responsePool{
		responses: pool,
		policy:    policy,
		rnd:       rand.New(rand.NewSource(seed)),
	}
}

func (p *responsePool) pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.policy == FallbackSequential {
		r := p.responses[p.next%len(p.responses)]
		p.next++
		return r
	}
	return p.responses[p.rnd.Intn(len(p.responses))]
}

func fallbackGreeting(d conversation.Descriptor) string {
	title := d.Title
	if title == "" {
		title = "mock"
	}
	return fmt.Sprintf("Hello! Welcome to your %s interview. I'm your AI interviewer today. "+
		"Let's start with some questions about your background and experience. Are you ready to begin?", title)
}

func fallbackFeedback(c *conversation.Context) string {
	category := c.Category
	if category == "" {
		category = "general"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for completing the %s interview!\n\n", category)
	b.WriteString("Overall Assessment:\n")
	fmt.Fprintf(&b, "You provided %d responses during this interview, ", c.UserTurns())
	fmt.Fprintf(&b, "averaging %.1f words per response. ", c.AverageUserWords())
	b.WriteString("You showed a good grasp of the fundamentals and communicated your ideas clearly.\n\n")
	b.WriteString("Strengths:\n")
	b.WriteString("- Clear communication and structured answers\n")
	b.WriteString("- Willingness to engage with follow-up questions\n\n")
	b.WriteString("Areas for Improvement:\n")
	b.WriteString("- Support answers with specific, measurable examples\n")
	b.WriteString("- Go deeper on trade-offs when comparing approaches\n\n")
	b.WriteString("Recommendations:\n")
	b.WriteString("- Practice the STAR method for behavioral questions\n")
	fmt.Fprintf(&b, "- Review core %s concepts and rehearse explaining them aloud\n\n", category)
	fmt.Fprintf(&b, "Conversation summary: Total responses: %d, Average response length: %.1f words", c.UserTurns(), c.AverageUserWords())
	return b.String()
}
