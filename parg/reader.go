package parg

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Reader is a position tracked cursor over characters. It is the engine
// behind format driven parsing: FromRead implementations pull runes from
// it and report failures with byte precise spans into the source.
//
// Sources may be a string, an io.Reader decoded as strict UTF-8, or an
// arbitrary rune producing function. Only string sources can enrich
// errors with the full input and a span; the other sources report
// position only.
type Reader struct {
	str    string
	isStr  bool
	rd     io.Reader
	iter   func() (rune, bool, error)
	undone []rune
	pos    int
}

// NewReader creates a reader over a string.
func NewReader(s string) *Reader {
	return &Reader{str: s, isStr: true}
}

// NewReaderIO creates a reader that decodes r as strict UTF-8. Invalid
// encodings surface as parse errors rather than replacement characters.
func NewReaderIO(r io.Reader) *Reader {
	return &Reader{rd: r}
}

// NewReaderFunc creates a reader pulling runes from next. next reports
// the end of input by returning false.
func NewReaderFunc(next func() (rune, bool, error)) *Reader {
	return &Reader{iter: next}
}

// Pos returns the byte position just after the last returned rune.
func (r *Reader) Pos() int { return r.pos }

// BytesSizeHint gives a low estimate of the remaining bytes.
func (r *Reader) BytesSizeHint() int {
	if r.isStr {
		return len(r.str) - r.pos + len(r.undone)
	}
	return len(r.undone)
}

// MapErr attaches the reader's source and position to the error. The
// span points at the last returned rune. Non string sources are left
// untouched since there is no argument to span into.
func (r *Reader) MapErr(e *Error) *Error {
	if !r.isStr {
		return e
	}
	start := max(0, r.pos-1)
	return e.ShiftSpan(start, r.str).Spanned(start, r.pos)
}

// MapErrPeek is MapErr with the span starting at the next rune instead
// of the last returned one.
func (r *Reader) MapErrPeek(e *Error) *Error {
	if !r.isStr {
		return e
	}
	return e.ShiftSpan(r.pos, r.str).Spanned(r.pos, r.pos)
}

// ErrParse creates a parse error with the given message located at the
// last returned rune.
func (r *Reader) ErrParse(msg string) *Error {
	return r.MapErr(ParseFailedError(msg, ""))
}

// ErrValue creates an invalid value error with the given message located
// at the last returned rune.
func (r *Reader) ErrValue(msg string) *Error {
	return r.MapErr(InvalidValueError(msg, ""))
}

// ErrParsePeek creates a parse error located at the next rune.
func (r *Reader) ErrParsePeek(msg string) *Error {
	return r.MapErrPeek(ParseFailedError(msg, ""))
}

// ErrValuePeek creates an invalid value error located at the next rune.
func (r *Reader) ErrValuePeek(msg string) *Error {
	return r.MapErrPeek(InvalidValueError(msg, ""))
}

// Peek returns the next rune without consuming it. ok is false at the
// end of input.
func (r *Reader) Peek() (c rune, ok bool, err *Error) {
	if len(r.undone) == 0 {
		c, ok, err = r.nextInner()
		if err != nil || !ok {
			return 0, false, err
		}
		r.undone = append(r.undone, c)
	}
	return r.undone[len(r.undone)-1], true, nil
}

// Next consumes and returns the next rune. ok is false at the end of
// input.
func (r *Reader) Next() (c rune, ok bool, err *Error) {
	if n := len(r.undone); n != 0 {
		c = r.undone[n-1]
		r.undone = r.undone[:n-1]
	} else {
		c, ok, err = r.nextInner()
		if err != nil || !ok {
			return 0, false, err
		}
	}
	r.pos += utf8.RuneLen(c)
	return c, true, nil
}

// Expect consumes runes matching s exactly, failing with a format
// mismatch that spans the first offending rune.
func (r *Reader) Expect(s string) *Error {
	for _, p := range s {
		c, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return r.MapErr(NewError(KindFormatMismatch)).
				WithLong("Unexpected end of input.").
				WithInline("expected `" + string(p) + "` to form `" + s + "`")
		}
		if c != p {
			return r.MapErr(NewError(KindFormatMismatch)).
				WithLong("Unexpected character `" + string(c) + "`.").
				WithInline("expected `" + string(p) + "` to form `" + s + "`")
		}
	}
	return nil
}

// SkipWhile consumes runes as long as f matches.
func (r *Reader) SkipWhile(f func(rune) bool) *Error {
	for {
		c, ok, err := r.Peek()
		if err != nil {
			return err
		}
		if !ok || !f(c) {
			return nil
		}
		if _, _, err := r.Next(); err != nil {
			return err
		}
	}
}

// IsNextRune consumes the next rune if it equals c and reports whether
// it did.
func (r *Reader) IsNextRune(c rune) (bool, *Error) {
	return r.IsNext(func(v rune, ok bool) bool { return ok && v == c })
}

// IsNext consumes the next rune if the predicate matches it and reports
// whether it did. The predicate sees ok == false at the end of input.
func (r *Reader) IsNext(p func(c rune, ok bool) bool) (bool, *Error) {
	c, ok, err := r.Peek()
	if err != nil {
		return false, err
	}
	if !p(c, ok) {
		return false, nil
	}
	if ok {
		if _, _, err := r.Next(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ReadTo appends at most max bytes worth of runes to sb.
func (r *Reader) ReadTo(sb *strings.Builder, max int) *Error {
	target := sb.Len() + max
	for sb.Len() < target {
		c, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		sb.WriteRune(c)
	}
	return nil
}

// ReadAll appends all remaining runes to sb.
func (r *Reader) ReadAll(sb *strings.Builder) *Error {
	sb.Grow(r.BytesSizeHint())
	for {
		c, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		sb.WriteRune(c)
	}
}

// TrimLeft skips leading runes when the format asks for left trimming.
func (r *Reader) TrimLeft(f *Fmt) *Error {
	if f == nil || !f.Trim.Left() {
		return nil
	}
	return r.SkipWhile(f.trimMatcher())
}

// TrimRight skips trailing runes when the format asks for right
// trimming. The reader has no lookahead past the value, so this is
// called by FromRead implementations once the value itself has ended.
func (r *Reader) TrimRight(f *Fmt) *Error {
	if f == nil || !f.Trim.Right() {
		return nil
	}
	return r.SkipWhile(f.trimMatcher())
}

// Unnext pushes c back so it is returned by the next call to Next.
func (r *Reader) Unnext(c rune) {
	r.pos = max(0, r.pos-utf8.RuneLen(c))
	r.undone = append(r.undone, c)
}

// Prepend pushes all runes of s back in order.
func (r *Reader) Prepend(s string) {
	rs := []rune(s)
	for i := len(rs) - 1; i >= 0; i-- {
		r.Unnext(rs[i])
	}
}

func (r *Reader) nextInner() (rune, bool, *Error) {
	switch {
	case r.isStr:
		if r.pos >= len(r.str) {
			return 0, false, nil
		}
		c, _ := utf8.DecodeRuneInString(r.str[r.pos:])
		return c, true, nil
	case r.rd != nil:
		c, ok, err := readRune(r.rd)
		if err != nil {
			return 0, false, err
		}
		return c, ok, nil
	default:
		c, ok, err := r.iter()
		if err != nil {
			return 0, false, r.MapErr(asError(err, ""))
		}
		return c, ok, nil
	}
}

// readRune decodes one rune from r, rejecting overlong encodings,
// surrogates and truncated sequences.
func readRune(r io.Reader) (rune, bool, *Error) {
	var bts [4]byte
	n, err := io.ReadFull(r, bts[:1])
	if n != 1 {
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, asError(err, "")
		}
		return 0, false, nil
	}

	ln, res, perr := utf8Len(bts[0])
	if perr != nil {
		return 0, false, perr
	}
	if ln == 1 {
		return rune(res), true, nil
	}
	if _, err := io.ReadFull(r, bts[1:ln]); err != nil {
		return 0, false, ParseFailedError("utf-8 expected more bytes", "")
	}

	if bts[0] == 0xC0 || bts[0] == 0xC1 ||
		(bts[0] == 0xE0 && bts[1] < 0xA0) ||
		(bts[0] == 0xF4 && bts[1] < 0x90) {
		return 0, false, ParseFailedError("utf-8 overlong encoding", "")
	}

	for _, b := range bts[1:ln] {
		if b&0xC0 != 0x80 {
			return 0, false, ParseFailedError("invalid utf-8 trailing byte", "")
		}
		res = res<<6 | uint32(b&0x3F)
	}

	c := rune(res)
	if !utf8.ValidRune(c) {
		return 0, false, ParseFailedError("invalid utf-8 code point", "")
	}
	return c, true, nil
}

func utf8Len(b byte) (int, uint32, *Error) {
	switch {
	case b&0x80 == 0:
		return 1, uint32(b), nil
	case b&0xE0 == 0xC0:
		return 2, uint32(b & 0x1F), nil
	case b&0xF0 == 0xE0:
		return 3, uint32(b & 0x0F), nil
	case b&0xF8 == 0xF0:
		return 4, uint32(b & 0x07), nil
	default:
		return 0, 0, ParseFailedError("invalid leading utf-8 byte", "")
	}
}
