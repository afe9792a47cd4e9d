package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

type ConversationService interface {
	List(ctx context.Context, f models.ConversationFilter) ([]models.Conversation, error)
	Get(ctx context.Context, id string) (*models.Conversation, error)
	Create(ctx context.Context, in models.ConversationCreate) (*models.Conversation, error)
	Update(ctx context.Context, id string, in models.ConversationUpdate) (*models.Conversation, error)
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, id string, limit, offset int) ([]models.ChatMessage, error)
	AddMessage(ctx context.Context, id string, msg models.ChatMessage) (*models.AddMessageResponse, error)
	Complete(ctx context.Context, id string) error
}

type conversationService struct {
	client APIClient
}

func NewConversationService(c APIClient) ConversationService {
	return &conversationService{client: c}
}

func conversationPath(id string, rest string) string {
	p := "/conversations/" + url.PathEscape(id)
	if rest != "" {
		p += "/" + rest
	}
	return p
}

func (s *conversationService) List(ctx context.Context, f models.ConversationFilter) ([]models.Conversation, error) {
	var out []models.Conversation
	err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/conversations", Query: f.Query()}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *conversationService) Get(ctx context.Context, id string) (*models.Conversation, error) {
	var out models.Conversation
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: conversationPath(id, "")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *conversationService) Create(ctx context.Context, in models.ConversationCreate) (*models.Conversation, error) {
	var out models.Conversation
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/conversations", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *conversationService) Update(ctx context.Context, id string, in models.ConversationUpdate) (*models.Conversation, error) {
	var out models.Conversation
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodPut, Path: conversationPath(id, ""), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *conversationService) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, &client.Request{Method: http.MethodDelete, Path: conversationPath(id, "")}, nil)
}

func (s *conversationService) Messages(ctx context.Context, id string, limit, offset int) ([]models.ChatMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var out []models.ChatMessage
	err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: conversationPath(id, "messages"), Query: q}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *conversationService) AddMessage(ctx context.Context, id string, msg models.ChatMessage) (*models.AddMessageResponse, error) {
	body := struct {
		Role     string         `json:"role"`
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}{msg.Role, msg.Content, msg.Metadata}

	var out models.AddMessageResponse
	err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: conversationPath(id, "messages"), Body: body}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *conversationService) Complete(ctx context.Context, id string) error {
	return s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: conversationPath(id, "complete")}, nil)
}
