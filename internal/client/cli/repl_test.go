package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return nil
}
func (f *fakeExec) Register(context.Context) error {
	f.loggedIn = true
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Whoami(context.Context) error        { return f.record("whoami") }
func (f *fakeExec) Profile(context.Context) error       { return f.record("profile") }
func (f *fakeExec) Agents(context.Context) error        { return f.record("agents") }
func (f *fakeExec) Conversations(context.Context) error { return f.record("conversations") }
func (f *fakeExec) Stats(context.Context) error         { return f.record("stats") }
func (f *fakeExec) Agent(_ context.Context, id string) error {
	return f.record("agent " + id)
}
func (f *fakeExec) Chat(_ context.Context, id, msg string) error {
	return f.record(fmt.Sprintf("chat %s %q", id, msg))
}
func (f *fakeExec) Analytics(_ context.Context, tf string) error {
	return f.record("analytics " + tf)
}
func (f *fakeExec) Integrations(context.Context) error { return f.record("integrations") }
func (f *fakeExec) Connect(_ context.Context, platform string, args []string) error {
	return f.record(strings.TrimSpace("connect " + platform + " " + strings.Join(args, " ")))
}
func (f *fakeExec) Disconnect(_ context.Context, platform string) error {
	return f.record("disconnect " + platform)
}
func (f *fakeExec) DeleteAccount(context.Context) error {
	f.loggedIn = false
	return f.record("delete-account")
}
func (f *fakeExec) State(context.Context) error { return f.record("state") }
func (f *fakeExec) Reset(context.Context) error { return f.record("reset") }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"agents",
		"help",
		"login",
		"help",
		"",
		"whoami",
		"agents",
		"agent a1",
		"chat a1 hello there",
		"conversations",
		"analytics 7d",
		"profile",
		"stats",
		"foobar",
		"logout",
		"exit",
		"agents",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login", "whoami", "agents", "agent a1", `chat a1 "hello there"`,
		"conversations", "analytics 7d", "profile", "stats", "logout",
	}, exec.calls)

	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, "Available commands: register, login, stats, state, reset, exit")
	assert.Contains(t, *out, "Unknown command:foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "as status> ")
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("agent\nchat\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: agent <id>")
	assert.Contains(t, *out, "Usage: chat <id> [message]")
}

func TestRunREPL_IntegrationsAndAccount(t *testing.T) {
	out := capturePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"integrations",
		"state",
		"reset",
		"login",
		"integrations",
		"connect",
		"connect slack channel=#ops",
		"disconnect",
		"disconnect jira",
		"delete-account",
		"integrations",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"state", "reset", "login", "integrations", "connect slack channel=#ops",
		"disconnect jira", "delete-account",
	}, exec.calls)
	assert.Contains(t, *out, "Usage: connect <slack|google-sheets|jira> [key=value...]")
	assert.Contains(t, *out, "Usage: disconnect <platform>")
}

func TestRequiresLogin(t *testing.T) {
	for _, cmd := range []string{"whoami", "agents", "chat", "logout", "integrations", "connect", "disconnect", "delete-account"} {
		assert.True(t, requiresLogin(cmd), cmd)
	}
	for _, cmd := range []string{"help", "login", "register", "stats", "state", "reset", "exit"} {
		assert.False(t, requiresLogin(cmd), cmd)
	}
}
