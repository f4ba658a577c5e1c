//nolint:testpackage // using package name 'parg' to access unexported fields for testing
package parg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNavigation tests the basic cursor movement over arguments
func TestNavigation(t *testing.T) {
	p := New([]string{"a", "b", "c"})

	if arg, ok := p.Peek(); !ok || arg != "a" {
		t.Errorf("Peek() = %q, %v", arg, ok)
	}
	if _, ok := p.Cur(); ok {
		t.Error("Cur before Next must report no argument")
	}

	if arg, ok := p.Next(); !ok || arg != "a" {
		t.Errorf("Next() = %q, %v", arg, ok)
	}
	if arg, ok := p.Cur(); !ok || arg != "a" {
		t.Errorf("Cur() = %q, %v", arg, ok)
	}
	if idx, ok := p.CurIdx(); !ok || idx != 0 {
		t.Errorf("CurIdx() = %d, %v", idx, ok)
	}
	if idx, ok := p.NextIdx(); !ok || idx != 1 {
		t.Errorf("NextIdx() = %d, %v", idx, ok)
	}

	if diff := cmp.Diff([]string{"b", "c"}, p.Remaining()); diff != "" {
		t.Errorf("Remaining() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, p.CurRemaining()); diff != "" {
		t.Errorf("CurRemaining() mismatch (-want +got):\n%s", diff)
	}
}

// TestJumpSkipReset tests cursor repositioning
func TestJumpSkipReset(t *testing.T) {
	p := New([]string{"a", "b", "c"})

	if arg, ok := p.Skip(2); !ok || arg != "b" {
		t.Errorf("Skip(2) = %q, %v", arg, ok)
	}
	if arg, ok := p.SkipAll(); !ok || arg != "c" {
		t.Errorf("SkipAll() = %q, %v", arg, ok)
	}

	p.Reset()
	if _, ok := p.Cur(); ok {
		t.Error("Reset must move before the first argument")
	}

	if arg, ok := p.Jump(2); !ok || arg != "b" {
		t.Errorf("Jump(2) = %q, %v", arg, ok)
	}
	if arg, ok := p.Jump(99); !ok || arg != "c" {
		t.Errorf("Jump past end = %q, %v", arg, ok)
	}

	defer func() {
		if recover() == nil {
			t.Error("negative jump must panic")
		}
	}()
	p.Jump(-1)
}

// TestNextArg tests typed consumption
func TestNextArg(t *testing.T) {
	p := New([]string{"-p", "8080"})

	if arg, ok := p.Next(); !ok || arg != "-p" {
		t.Fatalf("Next() = %q, %v", arg, ok)
	}
	port, err := NextArg[uint16](p)
	if err != nil {
		t.Fatalf("NextArg() = %v", err)
	}
	if port != 8080 {
		t.Errorf("port = %d, want 8080", port)
	}
}

// TestNextArgExhausted tests the error shape when arguments run out,
// which points just past the last argument
func TestNextArgExhausted(t *testing.T) {
	p := New([]string{"-p"})
	p.Next()

	_, err := NextArg[uint16](p)
	if err == nil {
		t.Fatal("exhausted navigator must fail")
	}
	if err.Kind() != KindNoMoreArguments {
		t.Errorf("kind = %q, want %q", err.Kind(), KindNoMoreArguments)
	}
	ctx := err.Ctx()
	if ctx.ErrIdx != 0 {
		t.Errorf("err idx = %d, want 0", ctx.ErrIdx)
	}
	if ctx.SpanStart != 2 || ctx.SpanEnd != 2 {
		t.Errorf("span = %d..%d, want 2..2", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestNextArgAttachesContext tests that parse failures of consumed
// arguments carry the full argument list
func TestNextArgAttachesContext(t *testing.T) {
	p := New([]string{"-p", "80x80"})
	p.Next()

	_, err := NextArg[uint16](p)
	if err == nil {
		t.Fatal("80x80 must not parse as uint16")
	}
	ctx := err.Ctx()
	if diff := cmp.Diff([]string{"-p", "80x80"}, ctx.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if ctx.ErrIdx != 1 {
		t.Errorf("err idx = %d, want 1", ctx.ErrIdx)
	}
}

// TestWrappedErrorKeepsArgStorage tests that re-pointing a navigator
// error at another argument never writes into the navigator's slice
func TestWrappedErrorKeepsArgStorage(t *testing.T) {
	args := []string{"-p", "80x80"}
	p := New(args)
	p.Next()

	_, err := NextArg[uint16](p)
	if err == nil {
		t.Fatal("80x80 must not parse as uint16")
	}
	ErrorFromInner(KindInvalidValue, err, "port value")

	if diff := cmp.Diff([]string{"-p", "80x80"}, args); diff != "" {
		t.Errorf("argument storage mutated (-want +got):\n%s", diff)
	}
	if arg, ok := p.Cur(); !ok || arg != "80x80" {
		t.Errorf("Cur() = %q, %v after wrapping the error", arg, ok)
	}
}

// TestSetLimit tests the consumption ceiling
func TestSetLimit(t *testing.T) {
	p := New([]string{"in.txt", "out.txt", "extra.txt"})
	p.SetLimit(2)

	if _, err := NextArg[string](p); err != nil {
		t.Fatalf("first = %v", err)
	}
	if _, err := NextArg[string](p); err != nil {
		t.Fatalf("second = %v", err)
	}

	_, err := NextArg[string](p)
	if err == nil {
		t.Fatal("third argument must exceed the cap")
	}
	if err.Kind() != KindTooManyArguments {
		t.Errorf("kind = %q, want %q", err.Kind(), KindTooManyArguments)
	}
	if err.Ctx().ErrIdx != 2 {
		t.Errorf("err idx = %d, want 2", err.Ctx().ErrIdx)
	}

	p.SetLimit(-1)
	if _, err := NextArg[string](p); err != nil {
		t.Errorf("removing the cap must allow consumption again: %v", err)
	}
}

// TestCurValOrNext tests both shapes of a flag with a value
func TestCurValOrNext(t *testing.T) {
	p := New([]string{"--color=always"})
	p.Next()
	v, err := CurValOrNext[string](p, '=')
	if err != nil || v != "always" {
		t.Errorf("inline value = %q, %v", v, err)
	}

	p = New([]string{"--color", "always"})
	p.Next()
	v, err = CurValOrNext[string](p, '=')
	if err != nil || v != "always" {
		t.Errorf("split value = %q, %v", v, err)
	}
	if _, ok := p.Peek(); ok {
		t.Error("split form must consume the value argument")
	}
}

// TestCurArgPanics tests that reading the current argument before any
// was consumed is a bug
func TestCurArgPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CurArg before Next must panic")
		}
	}()
	CurArg[string](New([]string{"a"}))
}

// TestTrySetNext tests single occurrence options
func TestTrySetNext(t *testing.T) {
	p := New([]string{"80", "90"})

	var port *uint16
	if err := TrySetNext(p, &port); err != nil {
		t.Fatalf("first set = %v", err)
	}
	if port == nil || *port != 80 {
		t.Fatalf("port = %v", port)
	}

	err := TrySetNext(p, &port)
	if err == nil {
		t.Fatal("second set must fail")
	}
	if err.Kind() != KindTooManyArguments {
		t.Errorf("kind = %q, want %q", err.Kind(), KindTooManyArguments)
	}
}

// TestRemainingArgs tests draining the rest of the arguments
func TestRemainingArgs(t *testing.T) {
	p := New([]string{"skip", "1", "2", "3"})
	p.Next()

	vs, err := RemainingArgs[int](p)
	if err != nil {
		t.Fatalf("RemainingArgs() = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, vs); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := p.Peek(); ok {
		t.Error("all arguments must be consumed")
	}
}

// TestRefSharesCursor tests that Ref advances the owner and Clone does
// not
func TestRefSharesCursor(t *testing.T) {
	p := New([]string{"a", "b"})
	r := p.Ref()

	if !r.SharesCursor(p.Ref()) {
		t.Error("refs of one Parg must share the cursor")
	}
	r.Next()
	if arg, ok := p.Cur(); !ok || arg != "a" {
		t.Errorf("owner cur after ref Next = %q, %v", arg, ok)
	}

	c := r.Clone()
	c.Next()
	if arg, ok := p.Cur(); !ok || arg != "a" {
		t.Errorf("owner cur after clone Next = %q, %v", arg, ok)
	}
	if c.SharesCursor(r) {
		t.Error("clone must have its own cursor")
	}
}

// TestNextKeyVal tests key value consumption through the navigator
func TestNextKeyVal(t *testing.T) {
	p := New([]string{"rate=0.25"})

	k, v, err := NextKeyVal[string, float64](p, '=')
	if err != nil {
		t.Fatalf("NextKeyVal() = %v", err)
	}
	if k != "rate" || v != 0.25 {
		t.Errorf("parsed %q=%v", k, v)
	}
}

// TestNextBool tests custom boolean literals on the navigator
func TestNextBool(t *testing.T) {
	p := New([]string{"Always", "never", "auto"})

	v, err := p.NextBool("always", "never")
	if err != nil || !v {
		t.Errorf("NextBool() = %v, %v", v, err)
	}
	v, err = p.NextBool("always", "never")
	if err != nil || v {
		t.Errorf("NextBool() = %v, %v", v, err)
	}

	o, err := p.NextOptBool("always", "never", "auto")
	if err != nil || o != nil {
		t.Errorf("NextOptBool() = %v, %v", o, err)
	}
}

// TestErrUnknownArgument tests the fuzzy did you mean hint
func TestErrUnknownArgument(t *testing.T) {
	p := New([]string{"--hepl"})
	p.Next()

	err := p.ErrUnknownArgument("--help", "--version")
	if err.Kind() != KindUnknownArgument {
		t.Errorf("kind = %q", err.Kind())
	}
	if !strings.Contains(err.Ctx().Hint, "--help") {
		t.Errorf("hint = %q, want a --help suggestion", err.Ctx().Hint)
	}

	p = New([]string{"--gibberish-nonsense"})
	p.Next()
	if hint := p.ErrUnknownArgument("--help").Ctx().Hint; hint != "" {
		t.Errorf("far off argument must get no hint, got %q", hint)
	}
}

// TestErrInvalidValue tests that the span finds the value inside the
// current argument
func TestErrInvalidValue(t *testing.T) {
	p := New([]string{"--mode=warp"})
	p.Next()

	err := p.ErrInvalidValue("warp")
	ctx := err.Ctx()
	if ctx.SpanStart != 7 || ctx.SpanEnd != 11 {
		t.Errorf("span = %d..%d, want 7..11", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestNextManual tests consumption with a custom parser
func TestNextManual(t *testing.T) {
	p := New([]string{"on"})

	v, err := NextManual(p, func(arg string) (bool, *Error) {
		return BoolArg("on", "off", arg)
	})
	if err != nil || !v {
		t.Errorf("NextManual() = %v, %v", v, err)
	}
}
