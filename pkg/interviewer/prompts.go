package interviewer

import (
	"fmt"
	"strings"

	"alignai-be/pkg/conversation"
	"alignai-be/pkg/llm"
)

func greetingPrompt(d conversation.Descriptor) []llm.Message {
	system := fmt.Sprintf(`You are an experienced, friendly interviewer conducting a %s interview.
Topic: %s (%s). Difficulty: %s. Planned length: %d minutes.
Greet the candidate warmly, mention the interview title "%s", briefly explain the format
and ask whether they are ready to begin. Keep it under 80 words.`,
		orDefault(d.Category, "general"), orDefault(d.Subcategory, d.Title), d.Title,
		orDefault(d.Difficulty, "Medium"), d.Duration, d.Title)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: "Please start the interview."},
	}
}

func respondPrompt(c *conversation.Context, window int) []llm.Message {
	system := fmt.Sprintf(`You are conducting a %s interview focused on %s (difficulty: %s).
Interview ID: %s.
Ask one question at a time. React briefly to the candidate's last answer, then ask a
relevant follow-up or move on to the next topic. Be encouraging but probing.
Keep responses under 100 words.`,
		orDefault(c.Category, "general"), orDefault(c.Subcategory, c.Title),
		orDefault(c.Difficulty, "Medium"), c.SessionID)

	messages := []llm.Message{{Role: llm.RoleSystem, Content: system}}
	for _, t := range c.Window(window) {
		messages = append(messages, llm.Message{Role: roleOf(t.Role), Content: t.Text})
	}
	return messages
}

func feedbackPrompt(c *conversation.Context) []llm.Message {
	var transcript strings.Builder
	for _, t := range c.Turns() {
		speaker := "Candidate"
		if t.Role == conversation.RoleAssistant {
			speaker = "Interviewer"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", speaker, t.Text)
	}

	system := `You are an expert interview coach. Using the transcript, write structured feedback with:
1. Overall assessment
2. Communication skills
3. Technical knowledge
4. Specific recommendations
5. A final recommendation of Strong, Good or Needs Improvement.`

	user := fmt.Sprintf("Interview: %s (%s / %s)\n\nTranscript:\n%s",
		c.Title, orDefault(c.Category, "general"), orDefault(c.Subcategory, "-"), transcript.String())

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

func roleOf(r conversation.Role) llm.Role {
	if r == conversation.RoleAssistant {
		return llm.RoleAssistant
	}
	return llm.RoleUser
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
