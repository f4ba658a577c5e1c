//nolint:testpackage // using package name 'parg' to access unexported fields for testing
package parg

import (
	"errors"
	"io"
	"testing"
)

// TestErrorFromMsg tests that fresh errors span the whole argument
func TestErrorFromMsg(t *testing.T) {
	e := ErrorFromMsg(KindParseFailed, "bad value", "abc")

	if e.Kind() != KindParseFailed {
		t.Errorf("kind = %q, want %q", e.Kind(), KindParseFailed)
	}
	if e.Error() != "bad value" {
		t.Errorf("Error() = %q, want %q", e.Error(), "bad value")
	}
	ctx := e.Ctx()
	if len(ctx.Args) != 1 || ctx.Args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", ctx.Args)
	}
	if ctx.SpanStart != 0 || ctx.SpanEnd != 3 {
		t.Errorf("span = %d..%d, want 0..3", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestErrorMessagePrecedence tests Long over Inline over the kind default
func TestErrorMessagePrecedence(t *testing.T) {
	e := NewError(KindNoValue)
	if e.Error() != "No value." {
		t.Errorf("default message = %q", e.Error())
	}
	e.WithInline("short")
	if e.Error() != "short" {
		t.Errorf("inline message = %q", e.Error())
	}
	e.WithLong("long explanation")
	if e.Error() != "long explanation" {
		t.Errorf("long message = %q", e.Error())
	}
}

// TestPartOf tests re-pointing an error at an enclosing argument
func TestPartOf(t *testing.T) {
	e := ParseFailedError("bad", "value").PartOf("key=value")

	ctx := e.Ctx()
	if ctx.Args[0] != "key=value" {
		t.Errorf("arg = %q, want key=value", ctx.Args[0])
	}
	if ctx.SpanStart != 4 || ctx.SpanEnd != 9 {
		t.Errorf("span = %d..%d, want 4..9", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestPostfixOf tests re-pointing an error at an argument it ended
func TestPostfixOf(t *testing.T) {
	e := ParseFailedError("bad", "443").PostfixOf("8080:443")

	ctx := e.Ctx()
	if ctx.SpanStart != 5 || ctx.SpanEnd != 8 {
		t.Errorf("span = %d..%d, want 5..8", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestShiftSpan tests moving a span into an enclosing argument
func TestShiftSpan(t *testing.T) {
	e := ParseFailedError("bad", "x").ShiftSpan(2, "1,x,3")

	ctx := e.Ctx()
	if ctx.Args[0] != "1,x,3" {
		t.Errorf("arg = %q", ctx.Args[0])
	}
	if ctx.SpanStart != 2 || ctx.SpanEnd != 3 {
		t.Errorf("span = %d..%d, want 2..3", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestWithArgsFollowsFragment tests that the span tracks the fragment
// when the full argument list is attached
func TestWithArgsFollowsFragment(t *testing.T) {
	e := ParseFailedError("bad", "443").
		WithArgs([]string{"serve", "8080:443"}, 1)

	ctx := e.Ctx()
	if ctx.ErrIdx != 1 {
		t.Errorf("err idx = %d, want 1", ctx.ErrIdx)
	}
	if ctx.SpanStart != 5 || ctx.SpanEnd != 8 {
		t.Errorf("span = %d..%d, want 5..8", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestWithArgsClampsIndex tests out of range indexes fall back to the last
func TestWithArgsClampsIndex(t *testing.T) {
	e := NewError(KindNoMoreArguments).WithArgs([]string{"a", "b"}, 9)
	if e.Ctx().ErrIdx != 1 {
		t.Errorf("err idx = %d, want 1", e.Ctx().ErrIdx)
	}
}

// TestErrorFromInner tests wrapping foreign errors and unwrapping them
func TestErrorFromInner(t *testing.T) {
	inner := io.ErrUnexpectedEOF
	e := ErrorFromInner(KindParseFailed, inner, "arg")

	if !errors.Is(e, io.ErrUnexpectedEOF) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	if e.Error() != inner.Error() {
		t.Errorf("Error() = %q, want the cause's message", e.Error())
	}
}

// TestErrorFromInnerKeepsSpan tests that wrapping one of our own errors
// preserves its context
func TestErrorFromInnerKeepsSpan(t *testing.T) {
	inner := ParseFailedError("bad", "443")
	e := ErrorFromInner(KindInvalidValue, inner, "8080:443")

	ctx := e.Ctx()
	if e.Kind() != KindInvalidValue {
		t.Errorf("kind = %q", e.Kind())
	}
	if ctx.SpanStart != 5 || ctx.SpanEnd != 8 {
		t.Errorf("span = %d..%d, want 5..8", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestSpanStartClamped tests that SpanStart cannot pass the end
func TestSpanStartClamped(t *testing.T) {
	e := ParseFailedError("bad", "abc").Spanned(0, 2).SpanStart(5)
	if e.Ctx().SpanStart != 2 {
		t.Errorf("span start = %d, want clamped 2", e.Ctx().SpanStart)
	}
}

// TestErrOrNil tests that a nil typed error converts to a nil interface
func TestErrOrNil(t *testing.T) {
	if errOrNil(nil) != nil {
		t.Error("errOrNil(nil) must be a nil interface")
	}
	if errOrNil(NewError(KindNoValue)) == nil {
		t.Error("errOrNil must keep non-nil errors")
	}
}
