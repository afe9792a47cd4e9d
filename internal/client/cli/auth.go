package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details, creates the account and signs in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	company, err := getSimpleText(a.reader, "Company name (optional)", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		CompanyName:     company,
	}
	if err := a.authService.Register(ctx, req); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you are logged in.")
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.authService.Session().CurrentUser.DisplayName())
	return nil
}

// Logout always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	return nil
}

// Whoami prints the current user and the access token lifetime.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.authService.RefreshCurrentUser(ctx); err != nil {
		a.report(err)
		return err
	}

	u := a.authService.Session().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	if u.CompanyName != "" {
		fmt.Fprintf(a.out, "Company: %s %s\n", u.CompanyName, u.CompanySize)
	}
	fmt.Fprintf(a.out, "Verified: %t, member since %s\n", u.IsVerified, u.CreatedAt.Format(time.DateOnly))

	if token, err := a.creds.AccessToken(ctx); err == nil {
		if exp, ok := client.TokenExpiry(token); ok {
			fmt.Fprintf(a.out, "Access token expires in %s\n", time.Until(exp).Round(time.Second))
		}
	}
	return nil
}

// Profile edits the current user. Empty answers leave fields unchanged.
func (a *App) Profile(ctx context.Context) error {
	var upd models.UserUpdate
	prompts := []struct {
		label string
		dst   **string
	}{
		{"First name", &upd.FirstName},
		{"Last name", &upd.LastName},
		{"Company name", &upd.CompanyName},
		{"Company size", &upd.CompanySize},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label+" (empty to keep)", a.out)
		if err != nil {
			return err
		}
		*p.dst = optional(v)
	}

	if err := a.authService.UpdateProfile(ctx, upd); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// DeleteAccount removes the account after an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type 'delete' to remove your account permanently", a.out)
	if err != nil {
		return err
	}
	if answer != "delete" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.authService.DeleteAccount(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
