package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Feed(ctx context.Context) error
	Refresh(ctx context.Context) error
	LoadMore(ctx context.Context) error
	Like(ctx context.Context, pos int) error
	Save(ctx context.Context, pos int) error
	Pin(ctx context.Context, pos int) error
	Delete(ctx context.Context, pos int) error
	Report(ctx context.Context, pos int) error
	Post(ctx context.Context) error
	Retry(ctx context.Context) error
	Abandon(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the feed client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the posting status (from statusFn) and accepts commands:
//
//	help             — show available commands
//	feed | f         — print the feed as currently loaded
//	refresh | r      — reload the feed from page 1
//	more | m         — load the next page
//	like <n>         — toggle like on the post at position n
//	save <n>         — toggle save on the post at position n
//	pin <n>          — toggle pin on the post at position n
//	del <n>          — delete the post at position n
//	report <n>       — report the post at position n
//	post             — compose a new post (interactive)
//	retry            — retry a failed upload or submission
//	abandon          — discard the pending draft
//	exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("feed> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		// Commands addressing a post take its 1-based feed position.
		pos := func() (int, bool) {
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <position>", cmd))
				return 0, false
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				printlnFn("not a position:", args[0])
				return 0, false
			}
			return n, true
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (f)eed, (r)efresh, (m)ore, like <n>, save <n>, pin <n>, del <n>, report <n>, post, retry, abandon, exit")

		case "f", "feed":
			_ = a.Feed(ctx)

		case "r", "refresh":
			_ = a.Refresh(ctx)

		case "m", "more":
			_ = a.LoadMore(ctx)

		case "like":
			if n, ok := pos(); ok {
				_ = a.Like(ctx, n)
			}

		case "save":
			if n, ok := pos(); ok {
				_ = a.Save(ctx, n)
			}

		case "pin":
			if n, ok := pos(); ok {
				_ = a.Pin(ctx, n)
			}

		case "del":
			if n, ok := pos(); ok {
				_ = a.Delete(ctx, n)
			}

		case "report":
			if n, ok := pos(); ok {
				_ = a.Report(ctx, n)
			}

		case "post":
			_ = a.Post(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "abandon":
			_ = a.Abandon(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
