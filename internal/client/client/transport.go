package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/common"
)

const refreshTimeout = 15 * time.Second

// attempt is the per-request recovery state. retried flips false to true at
// most once.
type attempt struct {
	anonymous  bool
	retried    bool
	refreshErr error
}

type attemptKey struct{}

func withAttempt(ctx context.Context, a *attempt) context.Context {
	return context.WithValue(ctx, attemptKey{}, a)
}

func attemptFrom(ctx context.Context) *attempt {
	a, _ := ctx.Value(attemptKey{}).(*attempt)
	return a
}

// credentialsError marks a failure to read the local credential store so it
// is not reported as a network error.
type credentialsError struct{ Err error }

func (e *credentialsError) Error() string { return e.Err.Error() }
func (e *credentialsError) Unwrap() error { return e.Err }

// authTransport injects the bearer token and recovers from a 401 once.
type authTransport struct {
	client *Client
	next   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	st := attemptFrom(ctx)
	if st == nil || st.anonymous {
		return t.next.RoundTrip(req)
	}
	if !t.client.sameOrigin(req.URL) {
		// redirected off the API host: no token, no recovery
		return t.next.RoundTrip(withToken(req, ""))
	}

	creds := t.client.creds
	token, err := creds.AccessToken(ctx)
	if err != nil {
		return nil, &credentialsError{Err: fmt.Errorf("read access token: %w", err)}
	}

	resp, err := t.next.RoundTrip(withToken(req, token))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if st.retried {
		t.expire(ctx, token, "replay rejected")
		return resp, nil
	}

	refresh, err := creds.RefreshToken(ctx)
	if err != nil {
		return nil, &credentialsError{Err: fmt.Errorf("read refresh token: %w", err)}
	}
	if refresh == "" {
		t.expire(ctx, token, "no refresh token")
		return resp, nil
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		// body cannot be replayed
		t.expire(ctx, token, "request not replayable")
		return resp, nil
	}

	// keep the 401 body readable in case recovery fails
	buffered, err := bufferBody(resp)
	if err != nil {
		return nil, err
	}

	newToken, err := t.renew(ctx, token, refresh)
	if err != nil {
		st.refreshErr = err
		t.expire(ctx, token, "refresh failed")
		return buffered, nil
	}

	st.retried = true
	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay body: %w", err)
		}
		retry.Body = body
	}
	t.client.logger.Debug(ctx, "retrying with refreshed token",
		"path", req.URL.Path, "request_id", req.Header.Get(common.RequestIDHeaderName))

	resp, err = t.next.RoundTrip(withToken(retry, newToken))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.expire(ctx, newToken, "replay rejected")
	}
	return resp, nil
}

// renew returns a fresh access token. If another request already replaced
// the token that was rejected, that one is reused. Concurrent callers share
// one exchange.
func (t *authTransport) renew(ctx context.Context, rejected, refresh string) (string, error) {
	if current, err := t.client.creds.AccessToken(ctx); err == nil && current != "" && current != rejected {
		return current, nil
	}

	ch := t.client.refreshGroup.DoChan(refresh, func() (any, error) {
		// shared by several callers; one caller's cancellation must not fail the rest
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return t.exchange(rctx, refresh)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// exchange posts the refresh token through the base transport, bypassing
// recovery, and persists the result.
func (t *authTransport) exchange(ctx context.Context, refresh string) (string, error) {
	c := t.client
	b, err := json.Marshal(models.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.prefix, c.refreshPath, nil), bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		c.metrics.refreshed(false)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.refreshed(false)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed,
			&HTTPError{Status: resp.StatusCode, Detail: detail(body), Body: body})
	}

	var tr models.TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		c.metrics.refreshed(false)
		return "", fmt.Errorf("%w: malformed token response", ErrRefreshFailed)
	}

	if err := c.creds.SetTokens(ctx, tr.AccessToken, tr.RefreshToken); err != nil {
		c.metrics.refreshed(false)
		return "", fmt.Errorf("%w: persist tokens: %w", ErrRefreshFailed, err)
	}
	c.metrics.refreshed(true)
	c.logger.Info(ctx, "access token refreshed", "rotated", tr.RefreshToken != "")
	return tr.AccessToken, nil
}

// expire clears the credentials and notifies handlers. Nothing is cleared
// when the stored token is no longer the rejected one: a newer session
// replaced it while the request was in flight.
func (t *authTransport) expire(ctx context.Context, rejected, reason string) {
	c := t.client
	ctx = context.WithoutCancel(ctx)
	if current, err := c.creds.AccessToken(ctx); err == nil && current != "" && current != rejected {
		c.logger.Debug(ctx, "stale 401 ignored", "reason", reason)
		return
	}
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear credentials", "error", err)
	}
	c.metrics.cleared()
	c.logger.Warn(ctx, "credentials cleared", "reason", reason)

	c.hooksMu.RLock()
	hooks := make([]CredentialsClearedHandler, len(c.hooks))
	copy(hooks, c.hooks)
	c.hooksMu.RUnlock()

	for _, h := range hooks {
		h(ctx)
	}
}

func withToken(req *http.Request, token string) *http.Request {
	r := req.Clone(req.Context())
	if token == "" {
		r.Header.Del(common.AuthorizationHeaderName)
		return r
	}
	r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return r
}

func bufferBody(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("read 401 body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(b))
	return resp, nil
}
