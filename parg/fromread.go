package parg

import (
	"math"
	"net/netip"
	"strconv"
	"strings"

	"github.com/parg-dev/go-parg/internal/pool"
)

// Rune is a rune destination for format driven parsing. A distinct type
// is needed because *rune and *int32 are the same type in a type switch.
type Rune rune

// SetFromRead is implemented by types that can parse themselves from a
// reader, possibly consuming only part of the input.
//
// trailing is the soft error: it is non nil when the value parsed fine
// but stopped short of something that could not belong to it. Callers
// that require the whole input to be consumed report it; callers that
// continue parsing after the value ignore it. err is the hard error,
// when it is non nil the value was not parsed.
type SetFromRead interface {
	SetFromRead(r *Reader, f *Fmt) (trailing *Error, err *Error)
}

// ReadInto parses a value from the reader into dst. dst must be a
// pointer to one of the supported primitive types or implement
// SetFromRead. Unsupported destination types are a caller bug and panic.
func ReadInto(r *Reader, dst any, f *Fmt) (trailing *Error, err *Error) {
	if f == nil {
		f = emptyFmt
	}
	switch d := dst.(type) {
	case *int:
		return readIntTo(r, f, d, strconv.IntSize)
	case *int8:
		return readIntTo(r, f, d, 8)
	case *int16:
		return readIntTo(r, f, d, 16)
	case *int32:
		return readIntTo(r, f, d, 32)
	case *int64:
		return readIntTo(r, f, d, 64)
	case *uint:
		return readUintTo(r, f, d, strconv.IntSize)
	case *uint8:
		return readUintTo(r, f, d, 8)
	case *uint16:
		return readUintTo(r, f, d, 16)
	case *uint32:
		return readUintTo(r, f, d, 32)
	case *uint64:
		return readUintTo(r, f, d, 64)
	case *float32:
		v, trailing, err := readFloat(r, f, 32)
		if err == nil {
			*d = float32(v)
		}
		return trailing, err
	case *float64:
		v, trailing, err := readFloat(r, f, 64)
		if err == nil {
			*d = v
		}
		return trailing, err
	case *bool:
		return nil, readBool(r, f, d)
	case *Rune:
		return nil, readRuneTo(r, f, d)
	case *string:
		return readString(r, f, d)
	case *netip.Addr:
		return nil, readAddr(r, f, d)
	case *netip.AddrPort:
		return nil, readAddrPort(r, f, d)
	case SetFromRead:
		return d.SetFromRead(r, f)
	default:
		panic("parg: unsupported destination type for reading")
	}
}

func readIntTo[T int | int8 | int16 | int32 | int64](
	r *Reader, f *Fmt, dst *T, bits int,
) (trailing *Error, err *Error) {
	if err := r.TrimLeft(f); err != nil {
		return nil, err
	}

	neg, err := r.IsNextRune('-')
	if err != nil {
		return nil, err
	}
	if !neg {
		if _, err := r.IsNextRune('+'); err != nil {
			return nil, err
		}
	}

	mag, trailing, err := readDigits(r, f)
	if err != nil {
		return nil, err
	}

	limit := uint64(1) << (bits - 1)
	if !neg {
		limit--
	}
	if mag > limit {
		return nil, intRangeError(r, bits, true)
	}

	if neg {
		*dst = T(-int64(mag))
	} else {
		*dst = T(int64(mag))
	}
	if err := r.TrimRight(f); err != nil {
		return nil, err
	}
	return trailing, nil
}

func readUintTo[T uint | uint8 | uint16 | uint32 | uint64](
	r *Reader, f *Fmt, dst *T, bits int,
) (trailing *Error, err *Error) {
	if err := r.TrimLeft(f); err != nil {
		return nil, err
	}
	if _, err := r.IsNextRune('+'); err != nil {
		return nil, err
	}

	mag, trailing, err := readDigits(r, f)
	if err != nil {
		return nil, err
	}

	if bits < 64 && mag > uint64(1)<<bits-1 {
		return nil, intRangeError(r, bits, false)
	}

	*dst = T(mag)
	if err := r.TrimRight(f); err != nil {
		return nil, err
	}
	return trailing, nil
}

// readDigits consumes a digit sequence in the format's base. An empty
// sequence is a hard error with an empty span at the current position.
// The soft error points at the first rune that is not a digit.
func readDigits(r *Reader, f *Fmt) (v uint64, trailing *Error, err *Error) {
	base := f.Base
	if base == 0 {
		base = 10
	}

	cnt := 0
	for {
		c, ok, err := r.Peek()
		if err != nil {
			return 0, nil, err
		}
		if !ok {
			break
		}
		d, ok := digitVal(c, base)
		if !ok {
			trailing = r.ErrParsePeek("invalid digit in string")
			break
		}
		if v > (math.MaxUint64-uint64(d))/uint64(base) {
			return 0, nil, r.ErrParse("number is too large").
				WithHint("the value does not fit the target type")
		}
		v = v*uint64(base) + uint64(d)
		cnt++
		if _, _, err := r.Next(); err != nil {
			return 0, nil, err
		}
	}

	if cnt == 0 {
		return 0, nil, r.ErrParsePeek("invalid digit in string").
			WithLong("Expected a number.")
	}
	return v, trailing, nil
}

func digitVal(c rune, base int) (int, bool) {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return 0, false
	}
	if d >= base {
		return 0, false
	}
	return d, true
}

func intRangeError(r *Reader, bits int, signed bool) *Error {
	var lo, hi string
	if signed {
		lo = strconv.FormatInt(-(int64(1) << (bits - 1)), 10)
		hi = strconv.FormatInt(int64(1)<<(bits-1)-1, 10)
	} else {
		lo = "0"
		if bits == 64 {
			hi = strconv.FormatUint(math.MaxUint64, 10)
		} else {
			hi = strconv.FormatUint(uint64(1)<<bits-1, 10)
		}
	}
	return r.ErrParse("number doesn't fit the target type").
		WithHint("Value must be in range from `" + lo + "` to `" + hi + "`.")
}

// readFloat greedily consumes the longest prefix that looks like a
// decimal floating point number and hands it to strconv.
func readFloat(r *Reader, f *Fmt, bits int) (float64, *Error, *Error) {
	if err := r.TrimLeft(f); err != nil {
		return 0, nil, err
	}

	var sb strings.Builder
	take := func(p func(rune) bool) (bool, *Error) {
		c, ok, err := r.Peek()
		if err != nil {
			return false, err
		}
		if !ok || !p(c) {
			return false, nil
		}
		if _, _, err := r.Next(); err != nil {
			return false, err
		}
		sb.WriteRune(c)
		return true, nil
	}
	isDigit := func(c rune) bool { return c >= '0' && c <= '9' }
	digits := func() (int, *Error) {
		n := 0
		for {
			ok, err := take(isDigit)
			if err != nil {
				return n, err
			}
			if !ok {
				return n, nil
			}
			n++
		}
	}

	if _, err := take(func(c rune) bool { return c == '+' || c == '-' }); err != nil {
		return 0, nil, err
	}
	whole, err := digits()
	if err != nil {
		return 0, nil, err
	}
	frac := 0
	dot, err := take(func(c rune) bool { return c == '.' })
	if err != nil {
		return 0, nil, err
	}
	if dot {
		if frac, err = digits(); err != nil {
			return 0, nil, err
		}
	}

	if whole == 0 && frac == 0 {
		if dot {
			r.Unnext('.')
		}
		return 0, nil, r.ErrParsePeek("invalid number").
			WithLong("Expected a number.")
	}

	// The exponent marker belongs to the number only when digits follow.
	expOk, err := take(func(c rune) bool { return c == 'e' || c == 'E' })
	if err != nil {
		return 0, nil, err
	}
	if expOk {
		sign, err := take(func(c rune) bool { return c == '+' || c == '-' })
		if err != nil {
			return 0, nil, err
		}
		n, err := digits()
		if err != nil {
			return 0, nil, err
		}
		if n == 0 {
			s := sb.String()
			cut := 1
			if sign {
				cut = 2
			}
			r.Prepend(s[len(s)-cut:])
			sb.Reset()
			sb.WriteString(s[:len(s)-cut])
		}
	}

	v, perr := strconv.ParseFloat(sb.String(), bits)
	if perr != nil {
		return 0, nil, r.ErrParse("invalid number `" + sb.String() + "`")
	}
	if err := r.TrimRight(f); err != nil {
		return 0, nil, err
	}
	return v, r.ErrParsePeek("invalid digit in number"), nil
}

func readBool(r *Reader, f *Fmt, dst *bool) *Error {
	if err := r.TrimLeft(f); err != nil {
		return err
	}
	c, ok, err := r.Peek()
	if err != nil {
		return err
	}
	switch {
	case ok && c == 't':
		if err := r.Expect("true"); err != nil {
			return err
		}
		*dst = true
	case ok && c == 'f':
		if err := r.Expect("false"); err != nil {
			return err
		}
		*dst = false
	default:
		return r.ErrParsePeek("expected `true` or `false`")
	}
	return r.TrimRight(f)
}

func readRuneTo(r *Reader, f *Fmt, dst *Rune) *Error {
	if err := r.TrimLeft(f); err != nil {
		return err
	}
	c, ok, err := r.Next()
	if err != nil {
		return err
	}
	if !ok {
		return r.ErrParsePeek("unexpected end of input").
			WithLong("Expected a character.")
	}
	*dst = Rune(c)
	return r.TrimRight(f)
}

func readString(r *Reader, f *Fmt, dst *string) (trailing *Error, err *Error) {
	if err := r.TrimLeft(f); err != nil {
		return nil, err
	}

	minLen, maxLen := 0, math.MaxInt
	if f.HasLen {
		minLen, maxLen = f.MinLen, f.MaxLen
	}

	sb := pool.GetBuilder()
	defer pool.PutBuilder(sb)
	if err := r.ReadTo(sb, minLen); err != nil {
		return nil, err
	}
	if sb.Len() < minLen {
		return nil, r.ErrParse("expected at least `" + strconv.Itoa(minLen) +
			"` characters but there were only `" +
			strconv.Itoa(sb.Len()) + "` characters")
	}
	if maxLen == math.MaxInt {
		if err := r.ReadAll(sb); err != nil {
			return nil, err
		}
	} else if err := r.ReadTo(sb, maxLen-minLen); err != nil {
		return nil, err
	}

	s := sb.String()
	if f.Trim.Right() {
		tail := s[minLen:]
		if f.TrimChar != 0 {
			tail = strings.TrimRight(tail, string(f.TrimChar))
		} else {
			tail = strings.TrimRight(tail, " \t\n\x0c\r")
		}
		s = s[:minLen] + tail
	}

	*dst = s
	return r.ErrParse("string is too long, expected at most `" +
		strconv.Itoa(maxLen) + "` characters"), nil
}

// readAddr reads a dotted quad IPv4 address. Other address forms are
// supported only by whole argument parsing, where the address does not
// have to be separated from surrounding text.
func readAddr(r *Reader, f *Fmt, dst *netip.Addr) *Error {
	if err := r.TrimLeft(f); err != nil {
		return err
	}
	var b [4]byte
	for i := range b {
		if i > 0 {
			if err := r.Expect("."); err != nil {
				return err
			}
		}
		var o uint8
		if _, err := readUintTo(r, emptyFmt, &o, 8); err != nil {
			return err
		}
		b[i] = o
	}
	*dst = netip.AddrFrom4(b)
	return r.TrimRight(f)
}

func readAddrPort(r *Reader, f *Fmt, dst *netip.AddrPort) *Error {
	if err := r.TrimLeft(f); err != nil {
		return err
	}
	var addr netip.Addr
	if err := readAddr(r, emptyFmt, &addr); err != nil {
		return err
	}
	if err := r.Expect(":"); err != nil {
		return err
	}
	var port uint16
	if _, err := readUintTo(r, emptyFmt, &port, 16); err != nil {
		return err
	}
	*dst = netip.AddrPortFrom(addr, port)
	return r.TrimRight(f)
}
