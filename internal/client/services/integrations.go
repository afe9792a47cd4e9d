package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// IntegrationService manages Slack, Google Sheets and Jira connections.
// Connecting an already connected platform replaces its config.
type IntegrationService interface {
	List(ctx context.Context) ([]models.Integration, error)
	Connect(ctx context.Context, platform models.IntegrationPlatform, config map[string]any) error
	Disconnect(ctx context.Context, platform models.IntegrationPlatform) error
	Status(ctx context.Context) (map[models.IntegrationPlatform]models.IntegrationStatus, error)
}

type integrationService struct {
	client APIClient
}

func NewIntegrationService(c APIClient) IntegrationService {
	return &integrationService{client: c}
}

// connectPaths maps a platform to its configure route.
var connectPaths = map[models.IntegrationPlatform]string{
	models.PlatformSlack:        "/integrations/slack",
	models.PlatformGoogleSheets: "/integrations/google-sheets",
	models.PlatformJira:         "/integrations/jira",
}

func (s *integrationService) List(ctx context.Context) ([]models.Integration, error) {
	var out []models.Integration
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/integrations/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *integrationService) Connect(ctx context.Context, platform models.IntegrationPlatform, config map[string]any) error {
	path, ok := connectPaths[platform]
	if !ok {
		return fmt.Errorf("unsupported integration platform %q", platform)
	}
	if config == nil {
		config = map[string]any{}
	}
	return s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: path, Body: config}, nil)
}

func (s *integrationService) Disconnect(ctx context.Context, platform models.IntegrationPlatform) error {
	path := "/integrations/" + url.PathEscape(string(platform))
	return s.client.Do(ctx, &client.Request{Method: http.MethodDelete, Path: path}, nil)
}

func (s *integrationService) Status(ctx context.Context) (map[models.IntegrationPlatform]models.IntegrationStatus, error) {
	var out map[models.IntegrationPlatform]models.IntegrationStatus
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/integrations/status"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
