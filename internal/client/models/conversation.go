package models

import (
	"net/url"
	"strconv"
	"time"
)

type ConversationStatus string

const (
	ConversationActive    ConversationStatus = "active"
	ConversationCompleted ConversationStatus = "completed"
	ConversationArchived  ConversationStatus = "archived"
	ConversationFailed    ConversationStatus = "failed"
)

type Conversation struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	AgentID          string             `json:"agent_id"`
	Title            string             `json:"title,omitempty"`
	ConversationType string             `json:"conversation_type"`
	Metadata         map[string]any     `json:"metadata,omitempty"`
	Status           ConversationStatus `json:"status"`
	Response         string             `json:"response,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type ConversationCreate struct {
	AgentID          string         `json:"agent_id"`
	Title            string         `json:"title,omitempty"`
	ConversationType string         `json:"conversation_type"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type ConversationUpdate struct {
	Title    *string             `json:"title,omitempty"`
	Status   *ConversationStatus `json:"status,omitempty"`
	Metadata map[string]any      `json:"metadata,omitempty"`
}

// ConversationFilter narrows GET /conversations. Zero values are omitted.
type ConversationFilter struct {
	AgentID string
	Status  ConversationStatus
	Limit   int
	Offset  int
}

// Query renders the filter as URL query parameters.
func (f ConversationFilter) Query() url.Values {
	q := url.Values{}
	if f.AgentID != "" {
		q.Set("agent_id", f.AgentID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

type ChatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AddMessageResponse is returned by POST /conversations/{id}/messages.
type AddMessageResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}
