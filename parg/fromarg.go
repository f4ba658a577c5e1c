package parg

import (
	"encoding"
	"net/netip"
	"strconv"
	"time"
	"unicode/utf8"
)

// FromArg is implemented by types that parse from a whole argument.
// Implementations set the receiver and may return *Error for span aware
// diagnostics or any other error, which gets wrapped.
type FromArg interface {
	FromArg(arg string) error
}

// ParseArg parses the whole argument into a new value of type T.
//
// Errors carry the argument and span the part that failed, so they can
// be re-pointed at the surrounding context with PartOf or WithArgs.
func ParseArg[T any](arg string) (T, *Error) {
	var v T
	if err := setFromArg(&v, arg); err != nil {
		return v, err
	}
	return v, nil
}

// setFromArg parses arg into the pointer dst. Supported are pointers to
// primitives, time.Duration, netip addresses, []byte, and any type
// implementing FromArg, SetFromRead or encoding.TextUnmarshaler. An
// unsupported destination is a caller bug and panics.
func setFromArg(dst any, arg string) *Error {
	switch d := dst.(type) {
	case *string:
		*d = arg
	case *[]byte:
		*d = []byte(arg)
	case *bool:
		switch arg {
		case "true":
			*d = true
		case "false":
			*d = false
		default:
			return ErrorFromMsg(KindParseFailed,
				"failed to parse `"+arg+"` as bool", arg).
				WithHint("Value must be `true` or `false`.")
		}
	case *Rune:
		if utf8.RuneCountInString(arg) != 1 {
			return ErrorFromMsg(KindParseFailed,
				"failed to parse `"+arg+"` as char", arg).
				WithHint("Value must be a single character.")
		}
		c, _ := utf8.DecodeRuneInString(arg)
		*d = Rune(c)
	case *int:
		return setIntArg(d, arg, strconv.IntSize)
	case *int8:
		return setIntArg(d, arg, 8)
	case *int16:
		return setIntArg(d, arg, 16)
	case *int32:
		return setIntArg(d, arg, 32)
	case *int64:
		return setIntArg(d, arg, 64)
	case *uint:
		return setUintArg(d, arg, strconv.IntSize)
	case *uint8:
		return setUintArg(d, arg, 8)
	case *uint16:
		return setUintArg(d, arg, 16)
	case *uint32:
		return setUintArg(d, arg, 32)
	case *uint64:
		return setUintArg(d, arg, 64)
	case *float32:
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return numArgError("float32", arg, err)
		}
		*d = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return numArgError("float64", arg, err)
		}
		*d = v
	case *time.Duration:
		v, err := time.ParseDuration(arg)
		if err != nil {
			return ErrorFromMsg(KindParseFailed,
				"failed to parse `"+arg+"` as duration", arg).
				WithHint("Use a value such as `300ms`, `1.5h` or `2h45m`.")
		}
		*d = v
	case *netip.Addr:
		v, err := netip.ParseAddr(arg)
		if err != nil {
			return ErrorFromMsg(KindParseFailed,
				"failed to parse `"+arg+"` as ip address", arg)
		}
		*d = v
	case *netip.AddrPort:
		v, err := netip.ParseAddrPort(arg)
		if err != nil {
			return ErrorFromMsg(KindParseFailed,
				"failed to parse `"+arg+"` as ip address and port", arg)
		}
		*d = v
	case FromArg:
		if err := d.FromArg(arg); err != nil {
			return asError(err, arg)
		}
	case SetFromRead:
		return argFromRead(d, arg)
	case encoding.TextUnmarshaler:
		if err := d.UnmarshalText([]byte(arg)); err != nil {
			return asError(err, arg)
		}
	default:
		panic("parg: unsupported destination type for argument parsing")
	}
	return nil
}

func setIntArg[T int | int8 | int16 | int32 | int64](
	d *T, arg string, bits int,
) *Error {
	v, err := strconv.ParseInt(arg, 10, bits)
	if err != nil {
		return numArgError("int"+strconv.Itoa(bits), arg, err)
	}
	*d = T(v)
	return nil
}

func setUintArg[T uint | uint8 | uint16 | uint32 | uint64](
	d *T, arg string, bits int,
) *Error {
	v, err := strconv.ParseUint(arg, 10, bits)
	if err != nil {
		return numArgError("uint"+strconv.Itoa(bits), arg, err)
	}
	*d = T(v)
	return nil
}

func numArgError(typ, arg string, cause error) *Error {
	e := ErrorFromMsg(KindParseFailed,
		"failed to parse `"+arg+"` as "+typ, arg)
	e.ctx.cause = cause
	if ne, ok := cause.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		e.ctx.Kind = KindInvalidValue
		e.WithHint("The value is out of range of " + typ + ".")
	}
	return e
}

// argFromRead parses a whole argument through the type's SetFromRead,
// requiring all of the argument to be consumed.
func argFromRead(d SetFromRead, arg string) *Error {
	r := NewReader(arg)
	trailing, err := d.SetFromRead(r, emptyFmt)
	if err != nil {
		return err.PartOf(arg)
	}
	if _, ok, perr := r.Peek(); perr != nil {
		return perr.PartOf(arg)
	} else if ok {
		if trailing != nil {
			return trailing.PartOf(arg)
		}
		return r.ErrParsePeek("unused input").PartOf(arg)
	}
	return nil
}
