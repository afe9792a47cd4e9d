package models

import "time"

type AgentType string

const (
	AgentTypeSupport          AgentType = "support"
	AgentTypeQA               AgentType = "qa"
	AgentTypeReporting        AgentType = "reporting"
	AgentTypeVirtualAssistant AgentType = "virtual_assistant"
	AgentTypeLeadProspector   AgentType = "lead_prospector"
	AgentTypeCustom           AgentType = "custom"
)

type AgentStatus string

const (
	AgentStatusInactive    AgentStatus = "inactive"
	AgentStatusActive      AgentStatus = "active"
	AgentStatusTraining    AgentStatus = "training"
	AgentStatusError       AgentStatus = "error"
	AgentStatusMaintenance AgentStatus = "maintenance"
)

// Agent is an AI worker configured by the user.
type Agent struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	Name               string         `json:"name"`
	AgentType          AgentType      `json:"agent_type"`
	Description        string         `json:"description,omitempty"`
	Config             map[string]any `json:"config,omitempty"`
	Status             AgentStatus    `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          *time.Time     `json:"updated_at,omitempty"`
	LastActive         *time.Time     `json:"last_active,omitempty"`
	TotalConversations int            `json:"total_conversations"`
	SuccessRate        float64        `json:"success_rate"`
}

type AgentCreate struct {
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	AgentType   AgentType      `json:"agent_type"`
	Description string         `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

type AgentUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Status      *AgentStatus   `json:"status,omitempty"`
}

// ChatRequest is the POST /agents/{id}/chat payload.
type ChatRequest struct {
	Message          string         `json:"message"`
	ConversationType string         `json:"conversation_type"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}
