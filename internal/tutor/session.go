package tutor

import (
	"context"
	"errors"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

const (
	Greeting = "Hi! I am your physics tutor. Ask me why you steer into a lean, " +
		"how speed changes the balance, or what just happened in the simulator."
	NetworkErrorText = "Sorry, the connection seems to be having trouble. Please try again later."
	NoKeyText        = "The tutor is not configured. Set GEMINI_API_KEY to enable it."
)

// Message is one entry of the visible chat log.
type Message struct {
	Role    Role
	Text    string
	IsError bool
}

// Session is the chat log shown to the user. A nil client gives a session
// that only explains why the tutor is unavailable.
type Session struct {
	client   Client
	messages []Message
}

// NewSession starts a chat with the greeting, or with an inline error when
// client is nil.
func NewSession(client Client) *Session {
	s := &Session{client: client}
	if client == nil {
		s.messages = append(s.messages, Message{Role: RoleModel, Text: NoKeyText, IsError: true})
	} else {
		s.messages = append(s.messages, Message{Role: RoleModel, Text: Greeting})
	}
	return s
}

// Ready reports whether questions can be sent.
func (s *Session) Ready() bool { return s.client != nil }

// Client returns the underlying client.
func (s *Session) Client() Client { return s.client }

// Messages returns a copy of the log.
func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

// AddQuestion appends a user turn.
func (s *Session) AddQuestion(text string) {
	s.messages = append(s.messages, Message{Role: RoleUser, Text: text})
}

// AddReply appends the outcome of a send. Errors become an inline message.
func (s *Session) AddReply(reply string, err error) Message {
	msg := Message{Role: RoleModel, Text: reply}
	if err != nil {
		msg.IsError = true
		msg.Text = NetworkErrorText
		if errors.Is(err, ErrNoAPIKey) {
			msg.Text = NoKeyText
		}
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Send asks text synchronously and returns the appended reply message.
func (s *Session) Send(ctx context.Context, text string) Message {
	s.AddQuestion(text)
	if s.client == nil {
		return s.AddReply("", ErrNoAPIKey)
	}
	reply, err := s.client.SendMessage(ctx, text)
	return s.AddReply(reply, err)
}
