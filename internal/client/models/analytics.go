package models

type AnalyticsOverview struct {
	TotalAgents             int     `json:"total_agents"`
	ActiveAgents            int     `json:"active_agents"`
	TotalConversations      int     `json:"total_conversations"`
	SuccessfulConversations int     `json:"successful_conversations"`
	SuccessRate             float64 `json:"success_rate"`
	TimeSavedHours          float64 `json:"time_saved_hours"`
	CostSavings             float64 `json:"cost_savings"`
	Period                  string  `json:"period"`
}

type ConversationAnalytics struct {
	Timeframe              string         `json:"timeframe"`
	TotalConversations     int            `json:"total_conversations"`
	CompletedConversations int            `json:"completed_conversations"`
	FailedConversations    int            `json:"failed_conversations"`
	ActiveConversations    int            `json:"active_conversations"`
	SuccessRate            float64        `json:"success_rate"`
	ConversationsByType    map[string]int `json:"conversations_by_type"`
	DailyConversations     map[string]int `json:"daily_conversations"`
}

type CostAnalytics struct {
	Timeframe              string             `json:"timeframe"`
	TotalCost              float64            `json:"total_cost"`
	AvgCostPerConversation float64            `json:"avg_cost_per_conversation"`
	TotalConversations     int                `json:"total_conversations"`
	CostByAgent            map[string]float64 `json:"cost_by_agent"`
	DailyCosts             map[string]float64 `json:"daily_costs"`
}

type ROIAnalytics struct {
	Timeframe                string  `json:"timeframe"`
	TotalCost                float64 `json:"total_cost"`
	TimeSavedHours           float64 `json:"time_saved_hours"`
	CostSavings              float64 `json:"cost_savings"`
	NetSavings               float64 `json:"net_savings"`
	ROIPercentage            float64 `json:"roi_percentage"`
	ConversationsToBreakEven int     `json:"conversations_to_break_even"`
	TotalConversations       int     `json:"total_conversations"`
	IsProfitable             bool    `json:"is_profitable"`
}
