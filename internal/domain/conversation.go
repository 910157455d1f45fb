package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one message in a writing conversation.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// WritingConversation is the append-only chat thread of an idea.
// At most one exists per idea.
type WritingConversation struct {
	ID        uuid.UUID     `db:"id"`
	IdeaID    uuid.UUID     `db:"idea_id"`
	Messages  []ChatMessage `db:"messages"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}
