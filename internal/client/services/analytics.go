package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// DefaultTimeframe is used when a timeframe argument is empty.
const DefaultTimeframe = "30d"

type AnalyticsService interface {
	Overview(ctx context.Context) (*models.AnalyticsOverview, error)
	Conversations(ctx context.Context, timeframe string) (*models.ConversationAnalytics, error)
	Costs(ctx context.Context, timeframe string) (*models.CostAnalytics, error)
	ROI(ctx context.Context, timeframe string) (*models.ROIAnalytics, error)
	AgentPerformance(ctx context.Context, agentID string) (json.RawMessage, error)
}

type analyticsService struct {
	client APIClient
}

func NewAnalyticsService(c APIClient) AnalyticsService {
	return &analyticsService{client: c}
}

func timeframeQuery(tf string) url.Values {
	if tf == "" {
		tf = DefaultTimeframe
	}
	return url.Values{"timeframe": {tf}}
}

func (s *analyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	var out models.AnalyticsOverview
	if err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/analytics/overview"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Conversations(ctx context.Context, timeframe string) (*models.ConversationAnalytics, error) {
	var out models.ConversationAnalytics
	err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/analytics/conversations", Query: timeframeQuery(timeframe)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) Costs(ctx context.Context, timeframe string) (*models.CostAnalytics, error) {
	var out models.CostAnalytics
	err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/analytics/costs", Query: timeframeQuery(timeframe)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *analyticsService) ROI(ctx context.Context, timeframe string) (*models.ROIAnalytics, error) {
	var out models.ROIAnalytics
	err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/analytics/roi", Query: timeframeQuery(timeframe)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AgentPerformance returns the backend's free-form performance document.
func (s *analyticsService) AgentPerformance(ctx context.Context, agentID string) (json.RawMessage, error) {
	return s.client.Raw(ctx, &client.Request{
		Method: http.MethodGet,
		Path:   "/analytics/agents/" + url.PathEscape(agentID) + "/performance",
	})
}
