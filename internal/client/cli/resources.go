package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

func (a *App) Agents(ctx context.Context) error {
	list, err := a.agents.List(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No agents yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tCONVERSATIONS\tSUCCESS")
	for _, ag := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0f%%\n",
			ag.ID, ag.Name, ag.AgentType, ag.Status, ag.TotalConversations, ag.SuccessRate*100)
	}
	return w.Flush()
}

func (a *App) Agent(ctx context.Context, id string) error {
	ag, err := a.agents.Get(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", ag.Name, ag.AgentType)
	fmt.Fprintf(a.out, "Status: %s\n", ag.Status)
	if ag.Description != "" {
		fmt.Fprintln(a.out, ag.Description)
	}
	fmt.Fprintf(a.out, "Conversations: %d, success rate %.0f%%\n", ag.TotalConversations, ag.SuccessRate*100)
	return nil
}

// Chat sends message to agent id. An empty message is read interactively.
func (a *App) Chat(ctx context.Context, id, message string) error {
	if message == "" {
		var err error
		message, err = GetMultiline(a.reader, "Message", a.out)
		if err != nil {
			return err
		}
		if message == "" {
			return nil
		}
	}

	conv, err := a.agents.Chat(ctx, id, models.ChatRequest{Message: message})
	if err != nil {
		a.report(err)
		return err
	}
	if conv.Response != "" {
		fmt.Fprintln(a.out, conv.Response)
	} else {
		fmt.Fprintf(a.out, "Conversation %s is %s\n", conv.ID, conv.Status)
	}
	return nil
}

func (a *App) Conversations(ctx context.Context) error {
	list, err := a.conversations.List(ctx, models.ConversationFilter{Limit: 20})
	if err != nil {
		a.report(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No conversations yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAGENT\tTYPE\tSTATUS\tUPDATED")
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.AgentID, c.ConversationType, c.Status, c.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *App) Analytics(ctx context.Context, timeframe string) error {
	ov, err := a.analytics.Overview(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	roi, err := a.analytics.ROI(ctx, timeframe)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Agents: %d (%d active)\n", ov.TotalAgents, ov.ActiveAgents)
	fmt.Fprintf(a.out, "Conversations: %d, success rate %.0f%%\n", ov.TotalConversations, ov.SuccessRate*100)
	fmt.Fprintf(a.out, "Time saved: %.1fh, cost savings $%.2f\n", ov.TimeSavedHours, ov.CostSavings)
	fmt.Fprintf(a.out, "ROI (%s): %.1f%%, net $%.2f\n", roi.Timeframe, roi.ROIPercentage, roi.NetSavings)
	return nil
}

// Stats prints the client's own request counters.
func (a *App) Stats(ctx context.Context) error {
	if a.metrics == nil {
		return nil
	}
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	lines := make([]string, 0)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := strings.TrimPrefix(mf.GetName(), "agentsynergy_client_")
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet.")
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}
