package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
)

// fakeReply is what fakeClient answers for a "METHOD /path" key.
type fakeReply struct {
	Body any
	Err  error
}

// fakeClient implements APIClient for unit tests. Replies are looked up by
// "METHOD /path"; unknown routes fail with a 404 HTTPError.
type fakeClient struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []*client.Request
	hooks   []client.CredentialsClearedHandler

	PingResp *models.HealthStatus
	PingErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{replies: map[string]fakeReply{}}
}

func (f *fakeClient) on(method, path string, body any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = fakeReply{Body: body, Err: err}
}

func (f *fakeClient) Do(_ context.Context, r *client.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, r)
	reply, ok := f.replies[r.Method+" "+r.Path]
	f.mu.Unlock()

	if !ok {
		return &client.HTTPError{Status: 404, Detail: "Not Found"}
	}
	if reply.Err != nil {
		return reply.Err
	}
	if out == nil || reply.Body == nil {
		return nil
	}
	b, err := json.Marshal(reply.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeClient) Raw(ctx context.Context, r *client.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := f.Do(ctx, r, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (f *fakeClient) Ping(context.Context) (*models.HealthStatus, error) {
	return f.PingResp, f.PingErr
}

func (f *fakeClient) OnCredentialsCleared(h client.CredentialsClearedHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, h)
}

// fireCleared simulates the client giving up on a 401.
func (f *fakeClient) fireCleared(ctx context.Context) {
	f.mu.Lock()
	hooks := append([]client.CredentialsClearedHandler(nil), f.hooks...)
	f.mu.Unlock()
	for _, h := range hooks {
		h(ctx)
	}
}

func (f *fakeClient) requests() []*client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*client.Request(nil), f.calls...)
}

var errNetwork = &client.NetworkError{Method: "POST", URL: "http://x", Err: errors.New("connection refused")}
