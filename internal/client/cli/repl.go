package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Agents(ctx context.Context) error
	Agent(ctx context.Context, id string) error
	Chat(ctx context.Context, id, message string) error
	Conversations(ctx context.Context) error
	Analytics(ctx context.Context, timeframe string) error
	Stats(ctx context.Context) error
	Integrations(ctx context.Context) error
	Connect(ctx context.Context, platform string, args []string) error
	Disconnect(ctx context.Context, platform string) error
	DeleteAccount(ctx context.Context) error
	State(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF or exit/quit.
//
//	Always:     help, stats, state, exit | quit
//	Logged out: register, login, reset
//	Logged in:  whoami, profile, agents, agent <id>, chat <id> [message],
//	            conversations, analytics [timeframe], integrations,
//	            connect <platform> [key=value...], disconnect <platform>,
//	            delete-account, logout
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("as %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, agents, agent <id>, chat <id> [message], conversations, analytics [timeframe], integrations, connect <platform> [key=value...], disconnect <platform>, delete-account, stats, state, logout, exit")
			} else {
				printlnFn("Available commands: register, login, stats, state, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "agents":
			_ = a.Agents(ctx)

		case "agent":
			if len(args) == 0 {
				printlnFn("Usage: agent <id>")
				continue
			}
			_ = a.Agent(ctx, args[0])

		case "chat":
			if len(args) == 0 {
				printlnFn("Usage: chat <id> [message]")
				continue
			}
			_ = a.Chat(ctx, args[0], strings.Join(args[1:], " "))

		case "conversations":
			_ = a.Conversations(ctx)

		case "analytics":
			tf := ""
			if len(args) > 0 {
				tf = args[0]
			}
			_ = a.Analytics(ctx, tf)

		case "stats":
			_ = a.Stats(ctx)

		case "integrations":
			_ = a.Integrations(ctx)

		case "connect":
			if len(args) == 0 {
				printlnFn("Usage: connect <slack|google-sheets|jira> [key=value...]")
				continue
			}
			_ = a.Connect(ctx, args[0], args[1:])

		case "disconnect":
			if len(args) == 0 {
				printlnFn("Usage: disconnect <platform>")
				continue
			}
			_ = a.Disconnect(ctx, args[0])

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "state":
			_ = a.State(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "whoami", "profile", "agents", "agent", "chat", "conversations", "analytics",
		"integrations", "connect", "disconnect", "delete-account", "logout":
		return true
	}
	return false
}
