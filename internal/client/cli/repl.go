package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Setup(ctx context.Context) error
	Browse(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Show(ctx context.Context, assetID string) error
	Sell(ctx context.Context) error
	Buy(ctx context.Context, listingID string) error
	Listings(ctx context.Context) error
	Mine(ctx context.Context) error
	History(ctx context.Context) error
	Profile(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the marketplace CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vrm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: browse, search <term>, show <asset>, sell, buy <listing>, listings, mine, history, profile, setup, stats, logout, exit")
			} else {
				printlnFn("Available commands: browse, search <term>, show <asset>, stats, login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "setup":
			_ = a.Setup(ctx)

		case "b", "browse", "list":
			_ = a.Browse(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <asset-id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "sell":
			_ = a.Sell(ctx)

		case "buy":
			if len(args) == 0 {
				printlnFn("Usage: buy <listing-id>")
				continue
			}
			_ = a.Buy(ctx, args[0])

		case "listings":
			_ = a.Listings(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "history":
			_ = a.History(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
