package parg

import "os"

// Parg owns a list of command line arguments and a cursor over them.
// It is the usual entry point of the package:
//
//	p := parg.FromEnv()
//	for arg, ok := p.Next(); ok; arg, ok = p.Next() {
//		switch arg {
//		case "-p", "--port":
//			port, err := parg.NextArg[uint16](p)
//			...
//		}
//	}
//
// All navigation lives on the embedded PargRef, which can also be handed
// out with Ref to code that parses a part of the arguments.
type Parg struct {
	args  []string
	cur   int
	limit int

	PargRef
}

// New creates a Parg over the given arguments. The first argument is
// not skipped.
func New(args []string) *Parg {
	p := &Parg{args: args, limit: -1}
	p.PargRef = PargRef{args: p.args, cur: &p.cur, limit: &p.limit}
	return p
}

// FromEnv creates a Parg over os.Args with the program name skipped.
func FromEnv() *Parg {
	p := New(os.Args)
	p.cur = 1
	return p
}

// Ref returns a view sharing this Parg's cursor. Advancing the ref
// advances the Parg and vice versa.
func (p *Parg) Ref() *PargRef { return &p.PargRef }

// Nav is either *Parg or *PargRef. The typed operations are functions
// rather than methods because Go methods cannot have their own type
// parameters.
type Nav interface {
	ref() *PargRef
}

// NextArg consumes the next argument and parses it as T. See ParseArg
// for the supported types.
func NextArg[T any](n Nav) (T, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zero T
		return zero, err
	}
	v, perr := ParseArg[T](arg)
	return v, p.MapErr(perr)
}

// CurArg parses the current argument as T. Calling it before anything
// was consumed is a caller bug and panics.
func CurArg[T any](n Nav) (T, *Error) {
	p := n.ref()
	v, err := ParseArg[T](p.curChecked())
	return v, p.MapErr(err)
}

// NextManual consumes the next argument and parses it with f. Errors
// get the full argument context attached.
func NextManual[T any](n Nav, f func(arg string) (T, *Error)) (T, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zero T
		return zero, err
	}
	v, perr := f(arg)
	return v, p.MapErr(perr)
}

// CurManual parses the current argument with f. Errors get the full
// argument context attached.
func CurManual[T any](n Nav, f func(arg string) (T, *Error)) (T, *Error) {
	p := n.ref()
	v, err := f(p.curChecked())
	return v, p.MapErr(err)
}

// NextKeyMVal consumes the next argument of the form `key<sep>value` and
// parses both sides. Without the separator the whole argument is the key
// and the value is nil.
func NextKeyMVal[K, V any](n Nav, sep rune) (K, *V, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zero K
		return zero, nil, err
	}
	k, v, perr := KeyMVal[K, V](arg, sep)
	return k, v, p.MapErr(perr)
}

// CurKeyMVal is NextKeyMVal on the current argument.
func CurKeyMVal[K, V any](n Nav, sep rune) (K, *V, *Error) {
	p := n.ref()
	k, v, err := KeyMVal[K, V](p.curChecked(), sep)
	return k, v, p.MapErr(err)
}

// NextKeyVal consumes the next argument of the form `key<sep>value` and
// parses both sides. A missing separator is an error.
func NextKeyVal[K, V any](n Nav, sep rune) (K, V, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zk K
		var zv V
		return zk, zv, err
	}
	k, v, perr := KeyVal[K, V](arg, sep)
	return k, v, p.MapErr(perr)
}

// CurKeyVal is NextKeyVal on the current argument.
func CurKeyVal[K, V any](n Nav, sep rune) (K, V, *Error) {
	p := n.ref()
	k, v, err := KeyVal[K, V](p.curChecked(), sep)
	return k, v, p.MapErr(err)
}

// NextKey consumes the next argument and parses the part before sep,
// or the whole argument when sep is absent.
func NextKey[T any](n Nav, sep rune) (T, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zero T
		return zero, err
	}
	v, perr := Key[T](arg, sep)
	return v, p.MapErr(perr)
}

// CurKey is NextKey on the current argument.
func CurKey[T any](n Nav, sep rune) (T, *Error) {
	p := n.ref()
	v, err := Key[T](p.curChecked(), sep)
	return v, p.MapErr(err)
}

// NextVal consumes the next argument and parses the part after sep. A
// missing separator is an error.
func NextVal[T any](n Nav, sep rune) (T, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		var zero T
		return zero, err
	}
	v, perr := Val[T](arg, sep)
	return v, p.MapErr(perr)
}

// CurVal is NextVal on the current argument.
func CurVal[T any](n Nav, sep rune) (T, *Error) {
	p := n.ref()
	v, err := Val[T](p.curChecked(), sep)
	return v, p.MapErr(err)
}

// NextMVal consumes the next argument and parses the part after sep, or
// returns nil when sep is absent.
func NextMVal[T any](n Nav, sep rune) (*T, *Error) {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		return nil, err
	}
	v, perr := MVal[T](arg, sep)
	return v, p.MapErr(perr)
}

// CurMVal is NextMVal on the current argument.
func CurMVal[T any](n Nav, sep rune) (*T, *Error) {
	p := n.ref()
	v, err := MVal[T](p.curChecked(), sep)
	return v, p.MapErr(err)
}

// CurValOrNext parses the value after sep in the current argument, or
// consumes and parses the next argument when the current has no
// separator. This is the usual shape of `--flag=value` versus
// `--flag value`.
func CurValOrNext[T any](n Nav, sep rune) (T, *Error) {
	v, err := CurMVal[T](n, sep)
	if err != nil {
		var zero T
		return zero, err
	}
	if v != nil {
		return *v, nil
	}
	return NextArg[T](n)
}

// TrySetNext consumes the next argument, parses it as T and stores it in
// *dst, which must be nil. A non nil *dst means the option was already
// given and fails with a too many arguments error.
func TrySetNext[T any](n Nav, dst **T) *Error {
	return TrySetNextWith(n, dst, ParseArg[T])
}

// TrySetCur is TrySetNext on the current argument.
func TrySetCur[T any](n Nav, dst **T) *Error {
	return TrySetCurWith(n, dst, ParseArg[T])
}

// TrySetNextWith is TrySetNext parsing with f instead of ParseArg.
func TrySetNextWith[T any](n Nav, dst **T, f func(arg string) (T, *Error)) *Error {
	p := n.ref()
	arg, err := p.nextChecked()
	if err != nil {
		return err
	}
	return p.MapErr(TrySetArgWith(dst, arg, f))
}

// TrySetCurWith is TrySetCur parsing with f instead of ParseArg.
func TrySetCurWith[T any](n Nav, dst **T, f func(arg string) (T, *Error)) *Error {
	p := n.ref()
	return p.MapErr(TrySetArgWith(dst, p.curChecked(), f))
}

// RemainingArgs consumes and parses all remaining arguments as T.
func RemainingArgs[T any](n Nav) ([]T, *Error) {
	p := n.ref()
	res := make([]T, 0, len(p.Remaining()))
	for {
		if _, ok := p.Peek(); !ok {
			return res, nil
		}
		v, err := NextArg[T](p)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
}
