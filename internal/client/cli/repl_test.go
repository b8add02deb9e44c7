package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	pos   []int
}

func (f *fakeExec) Feed(ctx context.Context) error     { f.calls = append(f.calls, "feed"); return nil }
func (f *fakeExec) Refresh(ctx context.Context) error  { f.calls = append(f.calls, "refresh"); return nil }
func (f *fakeExec) LoadMore(ctx context.Context) error { f.calls = append(f.calls, "more"); return nil }
func (f *fakeExec) Post(ctx context.Context) error     { f.calls = append(f.calls, "post"); return nil }
func (f *fakeExec) Retry(ctx context.Context) error    { f.calls = append(f.calls, "retry"); return nil }
func (f *fakeExec) Abandon(ctx context.Context) error  { f.calls = append(f.calls, "abandon"); return nil }

func (f *fakeExec) withPos(name string, pos int) error {
	f.calls = append(f.calls, name)
	f.pos = append(f.pos, pos)
	return nil
}

func (f *fakeExec) Like(ctx context.Context, pos int) error   { return f.withPos("like", pos) }
func (f *fakeExec) Save(ctx context.Context, pos int) error   { return f.withPos("save", pos) }
func (f *fakeExec) Pin(ctx context.Context, pos int) error    { return f.withPos("pin", pos) }
func (f *fakeExec) Delete(ctx context.Context, pos int) error { return f.withPos("del", pos) }
func (f *fakeExec) Report(ctx context.Context, pos int) error { return f.withPos("report", pos) }

func TestRunREPL_CommandDispatch(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"refresh",
		"feed",
		"m",
		"like 2",
		"save 1",
		"pin 3",
		"post",
		"retry",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "ready" }, sc)

	wantOrder := []string{"refresh", "feed", "more", "like", "save", "pin", "post", "retry"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	wantPos := []int{2, 1, 3}
	if len(exec.pos) != len(wantPos) {
		t.Fatalf("positions mismatch: got %v, want %v", exec.pos, wantPos)
	}
	for i := range wantPos {
		if exec.pos[i] != wantPos[i] {
			t.Fatalf("positions mismatch: got %v, want %v", exec.pos, wantPos)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	// A positional command without its argument, and one with a non-numeric
	// argument, must not reach the handlers.
	input := strings.NewReader("like\ndel abc\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
