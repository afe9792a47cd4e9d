package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
)

// State prints what is kept in local storage. Token values are never shown.
func (a *App) State(ctx context.Context) error {
	all, err := a.repo.List(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(a.out, "Local storage is empty.")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := all[k]
		switch k {
		case credentials.KeyUser:
			fmt.Fprintf(a.out, "%s: %s\n", k, v)
		default:
			fmt.Fprintf(a.out, "%s: %d bytes\n", k, len(v))
		}
	}
	return nil
}

// Reset wipes local storage. It refuses while a user is signed in so the
// session and the store cannot disagree.
func (a *App) Reset(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log out first.")
		return nil
	}
	if err := a.repo.Clear(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Local storage cleared.")
	return nil
}
