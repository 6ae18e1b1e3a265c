package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Balance(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Cards(ctx context.Context, args []string) error
	AddCard(ctx context.Context) error
	EditCard(ctx context.Context, args []string) error
	ToggleCard(ctx context.Context, args []string) error
	PayInvoice(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the FinKeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                      show available commands
//	  - register                  create an account
//	  - login                     authenticate
//	  - exit | quit               leave the program
//
//	Logged in:
//	  - whoami                    show the signed-in user
//	  - saldo                     refresh and show the balance
//	  - profile                   edit name, profile and balance
//	  - cards [uuid]              card overview for this month
//	  - addcard                   add a credit card
//	  - editcard <uuid>           rename a card or change its limit
//	  - togglecard <uuid> on|off  activate or deactivate a card
//	  - payinvoice <cardId>       pay this month's invoice
//	  - dashboard [month year]    financial summary
//	  - logout                    log out
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("fk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, saldo, profile, cards, addcard, editcard, togglecard, payinvoice, dashboard, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if isKnownCommand(cmd) {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "saldo", "balance":
			_ = a.Balance(ctx)
		case "profile":
			_ = a.EditProfile(ctx)
		case "cards":
			_ = a.Cards(ctx, args)
		case "addcard":
			_ = a.AddCard(ctx)
		case "editcard":
			_ = a.EditCard(ctx, args)
		case "togglecard":
			_ = a.ToggleCard(ctx, args)
		case "payinvoice":
			_ = a.PayInvoice(ctx, args)
		case "dashboard":
			_ = a.Dashboard(ctx, args)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var sessionCommands = []string{
	"whoami", "saldo", "balance", "profile", "cards", "addcard", "editcard",
	"togglecard", "payinvoice", "dashboard", "logout",
}

func isKnownCommand(cmd string) bool {
	return slices.Contains(sessionCommands, cmd)
}
