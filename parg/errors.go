package parg

import (
	"strings"
)

// ErrKind represents error categories for argument parsing.
// The kind drives the default message and lets callers route on the
// failure class without string matching.
type ErrKind string

const (
	// KindParseFailed indicates a token or substring could not be
	// converted into the target type.
	KindParseFailed ErrKind = "parse_failed"
	// KindInvalidValue indicates a value parsed fine but failed a
	// semantic check.
	KindInvalidValue ErrKind = "invalid_value"
	// KindFormatMismatch indicates literal text in a format string did
	// not match the input.
	KindFormatMismatch ErrKind = "format_mismatch"
	// KindTooManyArguments indicates a caller-imposed argument ceiling
	// was exceeded, or a single-occurrence value was set twice.
	KindTooManyArguments ErrKind = "too_many_arguments"
	// KindNoMoreArguments indicates another argument was expected but the
	// sequence was exhausted.
	KindNoMoreArguments ErrKind = "no_more_arguments"
	// KindNoValue indicates a key=value pair was expected but the
	// separator was missing.
	KindNoValue ErrKind = "no_value"
	// KindUnknownArgument indicates an argument that the caller does not
	// recognize.
	KindUnknownArgument ErrKind = "unknown_argument"
)

// Message returns the default human-readable message for the kind.
func (k ErrKind) Message() string {
	switch k {
	case KindParseFailed:
		return "Failed to parse."
	case KindInvalidValue:
		return "Invalid value."
	case KindFormatMismatch:
		return "Input doesn't match the expected format."
	case KindTooManyArguments:
		return "Too many arguments."
	case KindNoMoreArguments:
		return "Expected more arguments."
	case KindNoValue:
		return "No value."
	case KindUnknownArgument:
		return "Unknown argument."
	default:
		return "Argument error."
	}
}

// DefaultAnnounce controls whether newly created errors print the
// `argument error:` prefix when rendered. Applications that produce their
// own framing can flip this off globally instead of calling Quiet on
// every error.
var DefaultAnnounce = true

// ErrCtx holds everything needed to render a precise diagnostic: the
// error kind, the argument list the error points into, a byte span within
// the erroneous argument, the messages and the display policy.
type ErrCtx struct {
	Kind ErrKind
	// Args are the source tokens the span indexes into. For errors
	// produced by a Reader over a plain string this holds that single
	// string.
	Args []string
	// ErrIdx is the index of the erroneous argument in Args.
	ErrIdx int
	// SpanStart and SpanEnd are byte offsets into Args[ErrIdx] locating
	// the invalid range.
	SpanStart, SpanEnd int
	// Inline is the short message shown at the span location.
	Inline string
	// Long is the extended explanation shown in the header line.
	Long string
	// Hint suggests how to fix the error.
	Hint string
	// Color determines when ANSI decoration is used.
	Color ColorMode
	// Prefix determines whether `argument error:` is prefixed.
	Prefix bool

	cause     error
	announced bool
}

// Error is an argument parsing error. It owns exactly one ErrCtx; the
// pointer indirection keeps the success path of Result-style returns
// small. All With* methods mutate the context in place and return the
// receiver so constructors chain fluently.
type Error struct {
	ctx *ErrCtx
}

// NewError creates a default error for the given kind with no message or
// span.
func NewError(kind ErrKind) *Error {
	return &Error{ctx: &ErrCtx{
		Kind:   kind,
		Color:  DefaultColorMode,
		Prefix: DefaultAnnounce,
	}}
}

// ErrorFromMsg creates an error with an inline message and the erroneous
// argument, spanning the whole argument.
func ErrorFromMsg(kind ErrKind, msg, arg string) *Error {
	e := NewError(kind)
	e.ctx.Args = []string{arg}
	e.ctx.SpanEnd = len(arg)
	e.ctx.Inline = msg
	return e
}

// ErrorFromInner wraps a lower-level failure. When inner is itself an
// *Error its context (and span) is preserved and only re-pointed at arg;
// otherwise inner's message becomes the inline message and inner is kept
// as the cause for errors.Is/As.
func ErrorFromInner(kind ErrKind, inner error, arg string) *Error {
	if ie, ok := inner.(*Error); ok {
		ie.ctx.Kind = kind
		return ie.PartOf(arg)
	}
	e := ErrorFromMsg(kind, inner.Error(), arg)
	e.ctx.cause = inner
	return e
}

// Ctx exposes the underlying context for inspection.
func (e *Error) Ctx() *ErrCtx { return e.ctx }

// Kind returns the error kind.
func (e *Error) Kind() ErrKind { return e.ctx.Kind }

// Error implements the error interface with the short textual form; the
// full diagnostic comes from Announce or fmt verbs.
func (e *Error) Error() string {
	if e.ctx.Long != "" {
		return e.ctx.Long
	}
	if e.ctx.Inline != "" {
		return e.ctx.Inline
	}
	return e.ctx.Kind.Message()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.ctx.cause }

// WithInline sets the short message rendered at the span location.
func (e *Error) WithInline(msg string) *Error {
	e.ctx.Inline = msg
	return e
}

// WithLong sets the extended message rendered in the header line.
func (e *Error) WithLong(msg string) *Error {
	e.ctx.Long = msg
	return e
}

// WithHint sets the fix suggestion rendered after the diagnostic.
func (e *Error) WithHint(hint string) *Error {
	e.ctx.Hint = hint
	return e
}

// Spanned replaces the byte span within the erroneous argument.
func (e *Error) Spanned(start, end int) *Error {
	e.ctx.SpanStart = start
	e.ctx.SpanEnd = end
	return e
}

// SpanStart moves the start of the span, clamped to the current end.
func (e *Error) SpanStart(start int) *Error {
	e.ctx.SpanStart = min(start, e.ctx.SpanEnd)
	return e
}

// ShiftSpan moves the span right by cnt bytes and replaces the erroneous
// argument with newArg. Used when a sub-string parse failed and the error
// must point into the enclosing argument.
func (e *Error) ShiftSpan(cnt int, newArg string) *Error {
	e.ctx.SpanStart += cnt
	e.ctx.SpanEnd += cnt
	e.setArg(newArg)
	return e
}

// PartOf replaces the erroneous argument with arg. If the original
// argument is a substring of arg the span is adjusted to keep pointing at
// the same bytes.
func (e *Error) PartOf(arg string) *Error {
	cur := e.arg()
	if len(cur) == len(arg) {
		e.setArg(arg)
		return e
	}
	if shift := strings.Index(arg, cur); shift >= 0 {
		e.ctx.SpanStart += shift
		e.ctx.SpanEnd += shift
	} else {
		e.ctx.SpanStart = 0
		e.ctx.SpanEnd = len(arg)
	}
	e.setArg(arg)
	return e
}

// PostfixOf replaces the erroneous argument with arg, of which the
// current argument was a suffix.
func (e *Error) PostfixOf(arg string) *Error {
	cur := e.arg()
	switch {
	case len(cur) < len(arg):
		return e.ShiftSpan(len(arg)-len(cur), arg)
	case len(cur) > len(arg):
		d := len(cur) - len(arg)
		e.ctx.SpanStart += d
		e.ctx.SpanEnd += d
		e.setArg(arg)
	}
	return e
}

// WithArgs attaches the full argument list, pointing the error at index
// idx. If the previously recorded argument is a substring of args[idx]
// the span follows it, so errors built from a token fragment stay
// precise after the navigator adds its context.
//
// The list is copied. Later builders such as PartOf rewrite the
// erroneous argument in place, and that must never reach back into the
// caller's slice.
func (e *Error) WithArgs(args []string, idx int) *Error {
	if idx < 0 || idx >= len(args) {
		idx = max(0, len(args)-1)
	}
	cur := e.arg()
	if len(args) > 0 && len(cur) != len(args[idx]) {
		if shift := strings.Index(args[idx], cur); shift >= 0 {
			e.ctx.SpanStart += shift
			e.ctx.SpanEnd += shift
		}
	}
	e.ctx.Args = append([]string(nil), args...)
	e.ctx.ErrIdx = idx
	return e
}

// WithColorMode sets the color policy used when rendering.
func (e *Error) WithColorMode(mode ColorMode) *Error {
	e.ctx.Color = mode
	return e
}

// NoColor disables ANSI decoration for this error.
func (e *Error) NoColor() *Error {
	return e.WithColorMode(ColorNever)
}

// Quiet drops the `argument error:` prefix from the rendered diagnostic.
func (e *Error) Quiet() *Error {
	e.ctx.Prefix = false
	return e
}

// MapCtx applies f to the wrapped context and returns the receiver.
func (e *Error) MapCtx(f func(*ErrCtx)) *Error {
	f(e.ctx)
	return e
}

// Announced reports whether this error's diagnostic was rendered already.
func (e *Error) Announced() bool { return e.ctx.announced }

func (e *Error) arg() string {
	if e.ctx.ErrIdx < len(e.ctx.Args) {
		return e.ctx.Args[e.ctx.ErrIdx]
	}
	return ""
}

func (e *Error) setArg(arg string) {
	if e.ctx.ErrIdx < len(e.ctx.Args) {
		e.ctx.Args[e.ctx.ErrIdx] = arg
		return
	}
	e.ctx.Args = []string{arg}
	e.ctx.ErrIdx = 0
}

// Convenience constructors for the common kinds.

// ParseFailedError creates a KindParseFailed error with the given inline
// message and erroneous argument.
func ParseFailedError(msg, arg string) *Error {
	return ErrorFromMsg(KindParseFailed, msg, arg)
}

// InvalidValueError creates a KindInvalidValue error with the given
// inline message and erroneous argument.
func InvalidValueError(msg, arg string) *Error {
	return ErrorFromMsg(KindInvalidValue, msg, arg)
}

// TooManyArgumentsError creates a KindTooManyArguments error.
func TooManyArgumentsError(msg, arg string) *Error {
	return ErrorFromMsg(KindTooManyArguments, msg, arg)
}

// FormatMismatchError creates a KindFormatMismatch error.
func FormatMismatchError(msg, arg string) *Error {
	return ErrorFromMsg(KindFormatMismatch, msg, arg)
}

// errOrNil converts a typed *Error into a plain error without producing a
// non-nil interface around a nil pointer.
func errOrNil(e *Error) error {
	if e == nil {
		return nil
	}
	return e
}

// asError normalizes an arbitrary error into *Error, wrapping foreign
// errors as parse failures.
func asError(err error, arg string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return ErrorFromInner(KindParseFailed, err, arg)
}
