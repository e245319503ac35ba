package websocket

import "encoding/json"

const (
	EventUserMessage       = "user_message"
	EventEndInterview      = "end_interview"
	EventAIMessage         = "ai_message"
	EventInterviewComplete = "interview_complete"
	EventError             = "error"
	EventAnnouncement      = "announcement"
)

// InboundEvent is what the candidate's client sends.
type InboundEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type aiMessageEvent struct {
	Type     string  `json:"type"`
	Message  string  `json:"message"`
	VoiceURL *string `json:"voice_url"` // always present, null without audio
}

type completeEvent struct {
	Type     string `json:"type"`
	Feedback string `json:"feedback"`
}

type textEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeAIMessage(text string, voiceURL *string) []byte {
	b, _ := json.Marshal(aiMessageEvent{Type: EventAIMessage, Message: text, VoiceURL: voiceURL})
	return b
}

func encodeComplete(feedback string) []byte {
	b, _ := json.Marshal(completeEvent{Type: EventInterviewComplete, Feedback: feedback})
	return b
}

func encodeError(message string) []byte {
	b, _ := json.Marshal(textEvent{Type: EventError, Message: message})
	return b
}

// AnnouncementMessage builds the payload admins broadcast to every open channel.
func AnnouncementMessage(message string) []byte {
	b, _ := json.Marshal(textEvent{Type: EventAnnouncement, Message: message})
	return b
}
