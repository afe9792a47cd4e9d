package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// AgentService manages the user's AI agents.
type AgentService interface {
	List(ctx context.Context) ([]models.Agent, error)
	Get(ctx context.Context, id string) (*models.Agent, error)
	Create(ctx context.Context, in models.AgentCreate) (*models.Agent, error)
	Update(ctx context.Context, id string, in models.AgentUpdate) (*models.Agent, error)
	Delete(ctx context.Context, id string) error
	Chat(ctx context.Context, id string, req models.ChatRequest) (*models.Conversation, error)
}

type agentService struct {
	client APIClient
}

func NewAgentService(c APIClient) AgentService {
	return &agentService{client: c}
}

func agentPath(id string, rest ...string) string {
	p := "/agents/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (s *agentService) List(ctx context.Context) ([]models.Agent, error) {
	var out []models.Agent
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/agents"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *agentService) Get(ctx context.Context, id string) (*models.Agent, error) {
	var out models.Agent
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: agentPath(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *agentService) Create(ctx context.Context, in models.AgentCreate) (*models.Agent, error) {
	var out models.Agent
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/agents", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *agentService) Update(ctx context.Context, id string, in models.AgentUpdate) (*models.Agent, error) {
	var out models.Agent
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodPut, Path: agentPath(id), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *agentService) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, &client.Request{Method: http.MethodDelete, Path: agentPath(id)}, nil)
}

// Chat sends one message to the agent. An empty ConversationType defaults to
// "custom".
func (s *agentService) Chat(ctx context.Context, id string, req models.ChatRequest) (*models.Conversation, error) {
	if req.ConversationType == "" {
		req.ConversationType = string(models.AgentTypeCustom)
	}
	var out models.Conversation
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: agentPath(id, "chat"), Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
