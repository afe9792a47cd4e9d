package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// Integrations lists connected platforms with their last known status.
func (a *App) Integrations(ctx context.Context) error {
	list, err := a.integrations.List(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No integrations connected.")
		return nil
	}
	status, err := a.integrations.Status(ctx)
	if err != nil {
		a.report(err)
		return err
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Platform < list[j].Platform })
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tSTATUS\tLAST CHECKED")
	for _, in := range list {
		st, checked := in.Status, "-"
		if s, ok := status[in.Platform]; ok {
			st = s.Status
			if s.LastChecked != nil {
				checked = s.LastChecked.Format(time.DateTime)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", in.Platform, st, checked)
	}
	return w.Flush()
}

// Connect configures platform from key=value arguments.
func (a *App) Connect(ctx context.Context, platform string, args []string) error {
	p, ok := models.ParsePlatform(platform)
	if !ok {
		fmt.Fprintln(a.out, "Unknown platform, use slack, google-sheets or jira.")
		return nil
	}
	cfg := make(map[string]any, len(args))
	for _, kv := range args {
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			fmt.Fprintf(a.out, "Expected key=value, got %q\n", kv)
			return nil
		}
		cfg[k] = v
	}

	if err := a.integrations.Connect(ctx, p, cfg); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "%s connected.\n", p)
	return nil
}

func (a *App) Disconnect(ctx context.Context, platform string) error {
	p, ok := models.ParsePlatform(platform)
	if !ok {
		fmt.Fprintln(a.out, "Unknown platform, use slack, google-sheets or jira.")
		return nil
	}
	if err := a.integrations.Disconnect(ctx, p); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "%s disconnected.\n", p)
	return nil
}
