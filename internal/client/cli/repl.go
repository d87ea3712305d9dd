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
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Cancel(ctx context.Context) error
	Save(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Status(ctx context.Context) error
}

const helpText = "Available commands: (l)ist, refresh, new, edit <id>, cancel, save, delete <id>, show <id>, status, exit"

// runREPL reads commands line by line and dispatches them to a. The loop
// exits on EOF, on "exit"/"quit", or when ctx is done.
//
// promptFn renders the prompt; an empty string means no prompt is printed,
// which is how non-interactive input is handled.
//
// reader is shared with the commands that prompt for more input, so lines
// are read one at a time without buffering ahead.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "new":
			_ = a.New(ctx)

		case "edit":
			if withID(cmd, args) {
				_ = a.Edit(ctx, args[0])
			}

		case "cancel":
			_ = a.Cancel(ctx)

		case "save":
			_ = a.Save(ctx)

		case "delete":
			if withID(cmd, args) {
				_ = a.Delete(ctx, args[0])
			}

		case "show":
			if withID(cmd, args) {
				_ = a.Show(ctx, args[0])
			}

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func withID(cmd string, args []string) bool {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return false
	}
	return true
}
