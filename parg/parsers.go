package parg

import (
	"strings"
	"unicode/utf8"
)

// KeyMVal splits arg by the first sep and parses both sides. Without the
// separator the whole argument is the key and the value is nil.
//
//	k, v, err := parg.KeyMVal[string, float64]("rate=0.25", '=')
func KeyMVal[K, V any](arg string, sep rune) (K, *V, *Error) {
	k, v, ok := strings.Cut(arg, string(sep))
	if !ok {
		key, err := ParseArg[K](arg)
		return key, nil, err
	}

	key, err := ParseArg[K](k)
	if err != nil {
		var zero K
		return zero, nil, err.ShiftSpan(0, arg)
	}
	val, err := ParseArg[V](v)
	if err != nil {
		return key, nil, err.ShiftSpan(len(k)+utf8.RuneLen(sep), arg)
	}
	return key, &val, nil
}

// KeyVal splits arg by the first sep and parses both sides. A missing
// separator is an error.
func KeyVal[K, V any](arg string, sep rune) (K, V, *Error) {
	key, val, err := KeyMVal[K, V](arg, sep)
	if err != nil {
		var zv V
		return key, zv, err
	}
	if val == nil {
		var zv V
		s := string(sep)
		return key, zv, NewError(KindNoValue).
			WithInline("missing separator `" + s + "`").
			WithLong("Missing separator `" + s + "` for key value pair.").
			WithHint("Use the separator `" + s +
				"` to split the argument into key and value.").
			MapCtx(func(c *ErrCtx) {
				c.Args = []string{arg}
				c.SpanEnd = len(arg)
			})
	}
	return key, *val, nil
}

// Key parses the part of arg before sep, or all of arg when sep is
// absent.
func Key[T any](arg string, sep rune) (T, *Error) {
	k, _, err := KeyMVal[T, string](arg, sep)
	return k, err
}

// Val parses the part of arg after sep. A missing separator is an error.
func Val[T any](arg string, sep rune) (T, *Error) {
	_, v, err := KeyVal[string, T](arg, sep)
	return v, err
}

// MVal parses the part of arg after sep, or returns nil when sep is
// absent.
func MVal[T any](arg string, sep rune) (*T, *Error) {
	_, v, err := KeyMVal[string, T](arg, sep)
	return v, err
}

// BoolArg interprets arg as t for true or f for false, comparing case
// insensitively. Anything else is an error listing both choices.
//
//	v, err := parg.BoolArg("always", "never", "never")
func BoolArg(t, f, arg string) (bool, *Error) {
	lower := strings.ToLower(arg)
	switch lower {
	case strings.ToLower(t):
		return true, nil
	case strings.ToLower(f):
		return false, nil
	}
	return false, ParseFailedError("invalid value", arg).
		WithLong("Invalid value `" + arg + "`.").
		WithHint("Expected `" + t + "` or `" + f + "`.")
}

// OptBoolArg is BoolArg with a third choice n meaning neither, for which
// the result is nil.
func OptBoolArg(t, f, n, arg string) (*bool, *Error) {
	lower := strings.ToLower(arg)
	var v bool
	switch lower {
	case strings.ToLower(t):
		v = true
	case strings.ToLower(f):
		v = false
	case strings.ToLower(n):
		return nil, nil
	default:
		return nil, ParseFailedError("invalid value", arg).
			WithLong("Invalid value `" + arg + "`.").
			WithHint("Expected `" + t + "`, `" + f + "` or `" + n + "`.")
	}
	return &v, nil
}

// TrySetArg parses arg as T into *dst, which must be nil. A non nil
// *dst fails with a too many arguments error, the shape of an option
// that may be given only once.
func TrySetArg[T any](dst **T, arg string) *Error {
	return TrySetArgWith(dst, arg, ParseArg[T])
}

// TrySetArgWith is TrySetArg parsing with f instead of ParseArg.
func TrySetArgWith[T any](dst **T, arg string, f func(arg string) (T, *Error)) *Error {
	if *dst != nil {
		return TooManyArgumentsError(
			"argument sets value that can be set only once", arg)
	}
	v, err := f(arg)
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

// SplitArg splits arg by sep and parses every piece as T. Errors span
// the failing piece within the whole argument.
//
//	vs, err := parg.SplitArg[int]("1,2,3", ",")
func SplitArg[T any](arg, sep string) ([]T, *Error) {
	parts := strings.Split(arg, sep)
	res := make([]T, 0, len(parts))
	pos := 0
	for _, s := range parts {
		v, err := ParseArg[T](s)
		if err != nil {
			return nil, err.ShiftSpan(pos, arg)
		}
		res = append(res, v)
		pos += len(s) + len(sep)
	}
	return res, nil
}

// ArgList parses values of T separated by sep from arg, reading through
// T's SetFromRead. Unlike SplitArg the values are parsed first and the
// separator expected after each one, so values may themselves contain
// the separator.
func ArgList[T any](arg, sep string) ([]T, *Error) {
	var res []T
	r := NewReader(arg)
	for {
		var v T
		if _, err := ReadInto(r, &v, emptyFmt); err != nil {
			return nil, err
		}
		res = append(res, v)
		if _, ok, err := r.Peek(); err != nil {
			return nil, err
		} else if !ok {
			return res, nil
		}
		if err := r.Expect(sep); err != nil {
			return nil, err
		}
	}
}

// StartsAny reports whether s starts with any of the prefixes.
func StartsAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// HasAnyKey reports whether s is one of the keys, either exactly or
// followed by sep. Useful for matching `--flag` as well as `--flag=val`.
func HasAnyKey(s string, sep rune, keys ...string) bool {
	for _, k := range keys {
		if v, ok := strings.CutPrefix(s, k); ok {
			if v == "" || strings.HasPrefix(v, string(sep)) {
				return true
			}
		}
	}
	return false
}
