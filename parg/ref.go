package parg

import (
	"strings"

	"github.com/parg-dev/go-parg/internal/fuzzy"
)

// PargRef is a view of an argument list with a cursor. Refs created with
// Parg.Ref share the cursor with the owning Parg, so advancing one
// advances the other; Clone detaches the cursor.
//
// The cursor designates the boundary between consumed and upcoming
// arguments. At zero no argument has been returned yet and the current
// argument does not exist.
type PargRef struct {
	args  []string
	cur   *int
	limit *int
}

// NewRef creates a detached ref over args with the cursor before the
// first argument.
func NewRef(args []string) *PargRef {
	cur, limit := 0, -1
	return &PargRef{args: args, cur: &cur, limit: &limit}
}

func (p *PargRef) ref() *PargRef { return p }

// Clone returns a copy with its own cursor. Mutating the clone never
// affects the original.
func (p *PargRef) Clone() *PargRef {
	cur, limit := *p.cur, *p.limit
	return &PargRef{args: p.args, cur: &cur, limit: &limit}
}

// SharesCursor reports whether this ref shares its cursor with o.
func (p *PargRef) SharesCursor(o *PargRef) bool { return p.cur == o.cur }

// Next returns the next argument and advances the cursor. ok is false
// when all arguments were consumed.
func (p *PargRef) Next() (arg string, ok bool) {
	if *p.cur >= len(p.args) {
		return "", false
	}
	arg = p.args[*p.cur]
	*p.cur++
	return arg, true
}

// Cur returns the last returned argument. ok is false before the first
// call to Next.
func (p *PargRef) Cur() (arg string, ok bool) {
	if *p.cur == 0 {
		return "", false
	}
	return p.args[*p.cur-1], true
}

// Get returns the argument at the given index.
func (p *PargRef) Get(idx int) (arg string, ok bool) {
	if idx < 0 || idx >= len(p.args) {
		return "", false
	}
	return p.args[idx], true
}

// Peek returns the argument that the next call to Next would return.
func (p *PargRef) Peek() (arg string, ok bool) {
	return p.Get(*p.cur)
}

// Remaining returns the arguments after the current one.
func (p *PargRef) Remaining() []string {
	return p.args[*p.cur:]
}

// CurRemaining returns the remaining arguments including the current.
func (p *PargRef) CurRemaining() []string {
	return p.args[max(0, *p.cur-1):]
}

// AllArgs returns the whole argument list.
func (p *PargRef) AllArgs() []string { return p.args }

// Jump moves the cursor so that the argument at idx is the next one, and
// returns the argument before it. Negative indexes are a caller bug and
// panic; indexes past the end clamp to it.
func (p *PargRef) Jump(idx int) (arg string, ok bool) {
	if idx < 0 {
		panic("parg: negative jump index")
	}
	*p.cur = min(idx, len(p.args))
	return p.Cur()
}

// Skip is equivalent to calling Next cnt times, returning the last
// skipped argument.
func (p *PargRef) Skip(cnt int) (arg string, ok bool) {
	return p.Jump(*p.cur + cnt)
}

// SkipAll consumes all remaining arguments and returns the last one.
func (p *PargRef) SkipAll() (arg string, ok bool) {
	return p.Jump(len(p.args))
}

// Reset moves the cursor back before the first argument.
func (p *PargRef) Reset() { *p.cur = 0 }

// NextIdx returns the index of the argument the next call to Next would
// return.
func (p *PargRef) NextIdx() (int, bool) {
	if *p.cur >= len(p.args) {
		return 0, false
	}
	return *p.cur, true
}

// CurIdx returns the index of the current argument.
func (p *PargRef) CurIdx() (int, bool) {
	if *p.cur == 0 || *p.cur > len(p.args) {
		return 0, false
	}
	return *p.cur - 1, true
}

// SetLimit caps how many arguments may be consumed by the typed
// operations. Consuming past the cap fails with a too many arguments
// error pointing at the first argument over it. A negative n removes
// the cap.
func (p *PargRef) SetLimit(n int) { *p.limit = n }

// nextChecked consumes the next argument for a typed operation,
// enforcing the consumption cap.
func (p *PargRef) nextChecked() (string, *Error) {
	if *p.cur >= len(p.args) {
		return "", p.ErrNoMoreArguments()
	}
	if l := *p.limit; l >= 0 && *p.cur >= l {
		arg := p.args[*p.cur]
		return "", ErrorFromMsg(KindTooManyArguments,
			"unexpected argument `"+arg+"`", arg).
			WithLong("Too many arguments.").
			WithArgs(p.args, *p.cur).
			WithHint("Remove the argument `" + arg + "`.")
	}
	arg := p.args[*p.cur]
	*p.cur++
	return arg, nil
}

// curChecked returns the current argument for a typed operation. Calling
// it before anything was consumed is a caller bug and panics.
func (p *PargRef) curChecked() string {
	arg, ok := p.Cur()
	if !ok {
		panic("parg: no current argument")
	}
	return arg
}

// NextBool consumes the next argument and interprets t as true and f as
// false, comparing case insensitively.
func (p *PargRef) NextBool(t, f string) (bool, *Error) {
	arg, err := p.nextChecked()
	if err != nil {
		return false, err
	}
	v, berr := BoolArg(t, f, arg)
	return v, p.MapErr(berr)
}

// CurBool is NextBool on the current argument.
func (p *PargRef) CurBool(t, f string) (bool, *Error) {
	v, err := BoolArg(t, f, p.curChecked())
	return v, p.MapErr(err)
}

// NextOptBool consumes the next argument and interprets t as true, f as
// false and n as neither, comparing case insensitively. The result is
// nil for n.
func (p *PargRef) NextOptBool(t, f, n string) (*bool, *Error) {
	arg, err := p.nextChecked()
	if err != nil {
		return nil, err
	}
	v, berr := OptBoolArg(t, f, n, arg)
	return v, p.MapErr(berr)
}

// CurOptBool is NextOptBool on the current argument.
func (p *PargRef) CurOptBool(t, f, n string) (*bool, *Error) {
	v, err := OptBoolArg(t, f, n, p.curChecked())
	return v, p.MapErr(err)
}

// MapErr attaches the full argument list and the current index to the
// error, so that the rendered diagnostic shows the error in context.
// Returns nil for a nil error.
func (p *PargRef) MapErr(e *Error) *Error {
	if e == nil {
		return nil
	}
	return e.WithArgs(p.args, max(0, *p.cur-1))
}

// ErrUnknownArgument creates an error saying the current argument is not
// recognized. When the known arguments are given, a close match becomes
// a did you mean hint.
func (p *PargRef) ErrUnknownArgument(known ...string) *Error {
	arg, _ := p.Cur()
	e := NewError(KindUnknownArgument).
		WithInline("unknown argument").
		WithLong("Unknown argument `"+arg+"`.").
		WithArgs(p.args, max(0, *p.cur-1)).
		Spanned(0, len(arg))
	if len(known) != 0 {
		if m := fuzzy.FindBestFlag(arg, known, 3); m != "" {
			e.WithHint("Did you mean `" + m + "`?")
		}
	}
	return e
}

// ErrInvalid creates an error saying the current argument has an invalid
// value, spanning the whole argument.
func (p *PargRef) ErrInvalid() *Error {
	arg, _ := p.Cur()
	return p.ErrInvalidSpan(0, len(arg))
}

// ErrInvalidValue creates an error saying value inside the current
// argument is invalid. The span points at value when it occurs in the
// argument.
func (p *PargRef) ErrInvalidValue(value string) *Error {
	e := InvalidValueError("Invalid value for argument.", value)
	arg, ok := p.Cur()
	if ok {
		if idx := strings.Index(arg, value); idx >= 0 {
			e.ShiftSpan(idx, arg)
		}
	}
	return p.MapErr(e)
}

// ErrInvalidSpan is ErrInvalid with an explicit byte span into the
// current argument. Spans outside the argument fall back to the whole
// argument.
func (p *PargRef) ErrInvalidSpan(start, end int) *Error {
	arg, _ := p.Cur()
	if start > len(arg) || end > len(arg) || start < 0 || start > end {
		start, end = 0, len(arg)
	}
	return p.MapErr(InvalidValueError("Invalid value for argument.", arg).
		Spanned(start, end))
}

// ErrNoMoreArguments creates an error saying more arguments were
// expected, pointing just past the last one.
func (p *PargRef) ErrNoMoreArguments() *Error {
	e := NewError(KindNoMoreArguments).
		WithInline("expected more arguments").
		WithLong("Expected more arguments.")
	if len(p.args) == 0 {
		return e
	}
	last := p.args[len(p.args)-1]
	return e.
		WithLong("Expected more arguments after the argument `"+last+"`.").
		WithArgs(p.args, len(p.args)-1).
		Spanned(len(last), len(last))
}
