package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		return fmt.Errorf("%s failed", f.failOn)
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login " + strings.Join(args, ","))
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Go(_ context.Context, p string) error { return f.record("go " + p) }
func (f *fakeExec) Routes(context.Context) error          { return f.record("routes") }
func (f *fakeExec) Show(context.Context) error            { return f.record("show") }
func (f *fakeExec) Set(_ context.Context, field, value string) error {
	return f.record("set " + field + "=" + value)
}
func (f *fakeExec) Submit(context.Context) error { return f.record("submit") }
func (f *fakeExec) Filter(_ context.Context, field, value string) error {
	return f.record("filter " + field + "=" + value)
}
func (f *fakeExec) More(context.Context) error            { return f.record("more") }
func (f *fakeExec) Page(_ context.Context, n string) error { return f.record("page " + n) }
func (f *fakeExec) Refresh(context.Context) error         { return f.record("refresh") }
func (f *fakeExec) Update(_ context.Context, ref, status string) error {
	return f.record("update " + ref + "=" + status)
}
func (f *fakeExec) Respond(_ context.Context, ref, text string) error {
	return f.record("respond " + ref + "=" + text)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func run(t *testing.T, exec *fakeExec, input ...string) []string {
	t.Helper()
	out := captureOutput(t)
	r := bufio.NewReader(strings.NewReader(strings.Join(input, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r)
	return *out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	run(t, exec,
		"help",
		"go /orders",
		"login a@b",
		"go /orders",
		"filter status em_andamento",
		"filter q   paper towels",
		"set note  two boxes ",
		"submit",
		"more",
		"page 2",
		"update 1 done",
		"respond 2 on the way",
		"refresh",
		"logout",
		"exit",
		"show",
	)

	assert.Equal(t, []string{
		"login a@b",
		"go /orders",
		"filter status=em_andamento",
		"filter q=paper towels",
		"set note=two boxes",
		"submit",
		"more",
		"page 2",
		"update 1=done",
		"respond 2=on the way",
		"refresh",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	out := run(t, exec, "go", "page", "update 1", "respond", "bogus", "quit")

	assert.Empty(t, exec.calls)
	joined := strings.Join(out, "\n")
	assert.Contains(t, joined, "usage: go <path>")
	assert.Contains(t, joined, "usage: page <n>")
	assert.Contains(t, joined, `unknown command "bogus"`)
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_ErrorsDoNotStopTheLoop(t *testing.T) {
	exec := &fakeExec{loggedIn: true, failOn: "submit"}
	out := run(t, exec, "submit", "show")

	require.Equal(t, []string{"submit", "show"}, exec.calls)
	assert.Contains(t, strings.Join(out, "\n"), "Error: submit failed")
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{loggedIn: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("show\n")))
	assert.Empty(t, exec.calls)
}
