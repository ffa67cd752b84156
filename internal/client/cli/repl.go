package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Routes(ctx context.Context) error
	Show(ctx context.Context) error
	Set(ctx context.Context, field, value string) error
	Submit(ctx context.Context) error
	Filter(ctx context.Context, field, value string) error
	More(ctx context.Context) error
	Page(ctx context.Context, n string) error
	Refresh(ctx context.Context) error
	Update(ctx context.Context, ref, status string) error
	Respond(ctx context.Context, ref, text string) error
}

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

const helpLoggedOut = `Available commands:
  login [email]              authenticate
  show                       show the current screen
  exit | quit                leave the program`

const helpLoggedIn = `Available commands:
  routes                     list the screens you can open
  go <path>                  open a screen, e.g. go /orders
  show                       show the current screen
  set <field> <value>        fill a form field
  submit                     submit the current form
  filter <name> <value>      status | q | sector | name; "filter clear" resets
  more | page <n>            show more rows or jump to a page
  refresh                    reload the current list now
  update <row|id> <status>   change a status (open, in_progress, done)
  respond <row|id> [text]    answer a request
  logout                     log out
  exit | quit                leave the program`

// runREPL starts a simple read–eval–print loop for the request desk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors are printed and the loop carries on.
// The loop exits on EOF, when ctx is done or when the user types "exit" or
// "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("rd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, rest); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, rest string) error {
	args := strings.Fields(rest)

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil

	case "login":
		return a.Login(ctx, args)

	case "show", "s":
		return a.Show(ctx)
	}

	if !a.isLoggedIn() {
		return fmt.Errorf("unknown command %q; log in first", cmd)
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)

	case "routes":
		return a.Routes(ctx)

	case "go":
		if len(args) != 1 {
			return usage("go <path>")
		}
		return a.Go(ctx, args[0])

	case "set":
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			return usage("set <field> <value>")
		}
		return a.Set(ctx, field, strings.TrimSpace(value))

	case "submit":
		return a.Submit(ctx)

	case "filter", "f":
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			return usage("filter <status|q|sector|name> <value> | filter clear")
		}
		return a.Filter(ctx, field, strings.TrimSpace(value))

	case "more":
		return a.More(ctx)

	case "page":
		if len(args) != 1 {
			return usage("page <n>")
		}
		return a.Page(ctx, args[0])

	case "refresh", "r":
		return a.Refresh(ctx)

	case "update":
		if len(args) != 2 {
			return usage("update <row|id> <status>")
		}
		return a.Update(ctx, args[0], args[1])

	case "respond":
		if len(args) == 0 {
			return usage("respond <row|id> [text]")
		}
		ref, text, _ := strings.Cut(rest, " ")
		return a.Respond(ctx, ref, strings.TrimSpace(text))
	}

	return fmt.Errorf("unknown command %q; type 'help'", cmd)
}
