package interp

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/zurustar/streamlang/pkg/compiler"
	"github.com/zurustar/streamlang/pkg/player"
)

// fakePlayer records transport calls and plays for a fixed number of waits.
type fakePlayer struct {
	calls    []string
	waits    int64
	playLeft int64
	position int64
	duration int64
	ended    bool
	failWith error
}

func (f *fakePlayer) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakePlayer) Open(path string) error { return f.record("open " + path) }
func (f *fakePlayer) Play() error            { return f.record("play") }
func (f *fakePlayer) Pause() error           { return f.record("pause") }
func (f *fakePlayer) Stop() error            { return f.record("stop") }

func (f *fakePlayer) Seek(pos int64) error {
	f.position = pos
	return f.record(fmt.Sprintf("seek %d", pos))
}

func (f *fakePlayer) Forward(delta int64) error {
	f.position += delta
	return f.record(fmt.Sprintf("forward %d", delta))
}

func (f *fakePlayer) Rewind(delta int64) error {
	f.position -= delta
	return f.record(fmt.Sprintf("rewind %d", delta))
}

func (f *fakePlayer) Wait(seconds int64) error {
	f.waits++
	if f.playLeft > 0 {
		f.playLeft--
	}
	return f.record(fmt.Sprintf("wait %d", seconds))
}

func (f *fakePlayer) Position() int64 { return f.position }
func (f *fakePlayer) Duration() int64 { return f.duration }
func (f *fakePlayer) Ended() bool     { return f.ended }
func (f *fakePlayer) IsPlaying() bool { return f.playLeft > 0 }

// run compiles and executes source against the given player, capturing print
// output.
func run(t *testing.T, p player.Player, source string) (string, error) {
	t.Helper()

	program, err := compiler.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	var out bytes.Buffer
	in := New(p)
	in.SetOutput(&out)
	err = in.Run(program)
	return out.String(), err
}

func runOK(t *testing.T, p player.Player, source string) string {
	t.Helper()

	program, err := compiler.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	var out bytes.Buffer
	in := New(p)
	in.SetOutput(&out)
	if err := in.Run(program); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out.String()
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print 42;`, "42\n"},
		{`print -3 + 2;`, "-1\n"},
		{`print 2 - -3;`, "5\n"},
		{`print 1 + 2 * 3;`, "7\n"},
		{`print (1 + 2) * 3;`, "9\n"},
		{`print 10 - 2 - 3;`, "5\n"},
		{`print 7 / 2;`, "3\n"},
		{`print "hello";`, "hello\n"},
		{`print 1 < 2;`, "true\n"},
		{`print 2 <= 1;`, "false\n"},
		{`print 3 == 3;`, "true\n"},
		{`print "a" == "b";`, "false\n"},
		{`print "a" != "b";`, "true\n"},
	}

	for _, tt := range tests {
		got := runOK(t, &fakePlayer{}, tt.input)
		if got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestDivisionRoundsTowardNegativeInfinity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print 7 / 2;`, "3\n"},
		{`print -7 / 2;`, "-4\n"},
		{`print 7 / -2;`, "-4\n"},
		{`print -7 / -2;`, "3\n"},
		{`print -6 / 2;`, "-3\n"},
		{`print 6 / -2;`, "-3\n"},
		{`print -1 / 2;`, "-1\n"},
	}

	for _, tt := range tests {
		got := runOK(t, &fakePlayer{}, tt.input)
		if got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestVariableAssignment(t *testing.T) {
	got := runOK(t, &fakePlayer{}, `x = 5; x = x + 1; print x;`)
	if got != "6\n" {
		t.Errorf("expected %q, got %q", "6\n", got)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := run(t, &fakePlayer{}, `x = 1; print y;`)

	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Kind != ErrorUndefinedVar {
		t.Errorf("expected kind %s, got %s", ErrorUndefinedVar, rtErr.Kind)
	}
	if rtErr.Line != 1 {
		t.Errorf("expected line 1, got %d", rtErr.Line)
	}
}

func TestDivisionByZeroStopsExecution(t *testing.T) {
	out, err := run(t, &fakePlayer{}, "print 1;\nprint 10 / 0;\nprint 2;")

	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Kind != ErrorDivisionByZero {
		t.Errorf("expected kind %s, got %s", ErrorDivisionByZero, rtErr.Kind)
	}
	if rtErr.Line != 2 {
		t.Errorf("expected line 2, got %d", rtErr.Line)
	}
	if out != "1\n" {
		t.Errorf("no output may follow the failing statement; got %q", out)
	}
}

func TestDanglingElse(t *testing.T) {
	got := runOK(t, &fakePlayer{}, `if (1) if (0) print "x"; else print "y";`)
	if got != "y\n" {
		t.Errorf("else must bind to the inner if; expected %q, got %q", "y\n", got)
	}
}

func TestIfElseBranches(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`if (1) print "then"; else print "else";`, "then\n"},
		{`if (0) print "then"; else print "else";`, "else\n"},
		{`if (1 < 2) { print "a"; print "b"; }`, "a\nb\n"},
		{`if (2 < 1) print "never";`, ""},
	}

	for _, tt := range tests {
		got := runOK(t, &fakePlayer{}, tt.input)
		if got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestWhileLoop(t *testing.T) {
	got := runOK(t, &fakePlayer{}, `i = 0; while (i < 3) { print i; i = i + 1; }`)
	if got != "0\n1\n2\n" {
		t.Errorf("expected %q, got %q", "0\n1\n2\n", got)
	}
}

func TestWhilePlayingWaits(t *testing.T) {
	p := &fakePlayer{playLeft: 3}
	runOK(t, p, `while (is_playing()) wait(1);`)

	if p.waits != 3 {
		t.Errorf("expected exactly 3 waits, got %d", p.waits)
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string plus integer", `print "a" + 1;`},
		{"string ordering", `print 1 < "a";`},
		{"boolean equality", `print (1 < 2) == (3 < 4);`},
		{"string condition", `if ("s") print 1;`},
		{"negated string", `print -"a";`},
		{"seek with string", `seek("x");`},
		{"open with integer", `open(42);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, &fakePlayer{}, tt.input)

			var rtErr *RuntimeError
			if !errors.As(err, &rtErr) {
				t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
			}
			if rtErr.Kind != ErrorTypeMismatch {
				t.Errorf("expected kind %s, got %s", ErrorTypeMismatch, rtErr.Kind)
			}
		})
	}
}

func TestCommandOrder(t *testing.T) {
	p := &fakePlayer{}
	runOK(t, p, `open("a.mp4"); play; seek(10); pause; stop;`)

	expected := []string{"open a.mp4", "play", "seek 10", "pause", "stop"}
	if len(p.calls) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(p.calls), p.calls)
	}
	for i, call := range expected {
		if p.calls[i] != call {
			t.Errorf("call %d: expected %q, got %q", i, call, p.calls[i])
		}
	}
}

func TestPlayerErrorWrapped(t *testing.T) {
	cause := errors.New("device gone")
	_, err := run(t, &fakePlayer{failWith: cause}, `play;`)

	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Kind != ErrorPlayer {
		t.Errorf("expected kind %s, got %s", ErrorPlayer, rtErr.Kind)
	}
	if !errors.Is(err, cause) {
		t.Error("runtime error must wrap the player failure")
	}
}

func TestQueriesAgainstSim(t *testing.T) {
	got := runOK(t, player.NewSim(), `open("clip.mp4"); seek(10); print position();`)
	if got != "10\n" {
		t.Errorf("expected %q, got %q", "10\n", got)
	}
}

func TestPlayToEndAgainstSim(t *testing.T) {
	sim := player.NewSim()
	sim.SetDuration(3)

	got := runOK(t, sim, `
		open("clip.mp4");
		play;
		while (is_playing()) wait(1);
		print ended;
		print position == duration;
	`)
	if got != "true\ntrue\n" {
		t.Errorf("expected %q, got %q", "true\ntrue\n", got)
	}
}

func TestRunIsSingleShot(t *testing.T) {
	program, err := compiler.Compile(`x = 1;`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	in := New(&fakePlayer{})
	if in.State() != StateIdle {
		t.Fatalf("expected state %s, got %s", StateIdle, in.State())
	}
	if err := in.Run(program); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if in.State() != StateFinished {
		t.Errorf("expected state %s, got %s", StateFinished, in.State())
	}
	if err := in.Run(program); err == nil {
		t.Error("expected an error running a finished interpreter again")
	}
}

func TestFailedRunState(t *testing.T) {
	program, err := compiler.Compile(`print 1 / 0;`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	in := New(&fakePlayer{})
	if err := in.Run(program); err == nil {
		t.Fatal("expected a runtime error")
	}
	if in.State() != StateFailed {
		t.Errorf("expected state %s, got %s", StateFailed, in.State())
	}
}

func TestSharedEnvironment(t *testing.T) {
	env := NewEnvironment()
	p := &fakePlayer{}

	first, err := compiler.Compile(`x = 41;`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if err := NewWithEnvironment(p, env).Run(first); err != nil {
		t.Fatalf("run error: %v", err)
	}

	second, err := compiler.Compile(`print x + 1;`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	var out bytes.Buffer
	in := NewWithEnvironment(p, env)
	in.SetOutput(&out)
	if err := in.Run(second); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("expected %q, got %q", "42\n", out.String())
	}
}
