package parg

import (
	"math"
	"strings"
)

// TrimSide says which sides of a value get trimmed before and after
// reading it.
type TrimSide int

const (
	TrimNone TrimSide = iota
	TrimLeading
	TrimTrailing
	TrimBoth
)

// trimSideOf maps the alignment characters of a format specifier to the
// side that gets trimmed. `<` aligns the value left, so the trim happens
// on the right, and vice versa.
func trimSideOf(c rune) (TrimSide, bool) {
	switch c {
	case '<':
		return TrimTrailing, true
	case '^':
		return TrimBoth, true
	case '>':
		return TrimLeading, true
	default:
		return TrimNone, false
	}
}

// Left reports whether leading characters are trimmed.
func (t TrimSide) Left() bool { return t == TrimLeading || t == TrimBoth }

// Right reports whether trailing characters are trimmed.
func (t TrimSide) Right() bool { return t == TrimTrailing || t == TrimBoth }

// Fmt is a parsed format specifier, the part after `:` in a `{:...}`
// placeholder. The specifier is, in order:
//
//   - optional trim: `<`, `^` or `>`, optionally preceded by the
//     character to trim (whitespace when absent),
//   - optional length: `N` for exactly N bytes or `min..max` for a
//     range, both bounds optional,
//   - optional numeric base: `d`, `x` or `o`,
//   - anything left over, available to custom FromRead implementations
//     via Custom.
type Fmt struct {
	// Spec is the raw specifier this was parsed from.
	Spec string
	// Trim says which sides to trim.
	Trim TrimSide
	// TrimChar is the character to trim. Zero means ASCII whitespace.
	TrimChar rune
	// MinLen and MaxLen bound the byte length of the value. Valid only
	// when HasLen is set; an open upper bound is math.MaxInt.
	MinLen, MaxLen int
	HasLen         bool
	// Base is the numeric base, 0 when the specifier does not give one.
	Base int
	// Custom is the unrecognized tail of the specifier.
	Custom string
}

// emptyFmt is used where no specifier was given.
var emptyFmt = &Fmt{}

// ParseFmt parses a format specifier. Unknown leading characters are not
// an error, they just end up in Custom.
func ParseFmt(spec string) *Fmt {
	f := &Fmt{Spec: spec}
	rest := spec

	rs := []rune(rest)
	switch {
	case len(rs) >= 2:
		if t, ok := trimSideOf(rs[1]); ok {
			f.Trim = t
			f.TrimChar = rs[0]
			rest = string(rs[2:])
		} else if t, ok := trimSideOf(rs[0]); ok {
			f.Trim = t
			rest = string(rs[1:])
		}
	case len(rs) == 1:
		if t, ok := trimSideOf(rs[0]); ok {
			f.Trim = t
			rest = ""
		}
	}

	start, hasStart, rest := takeUint(rest)
	if tail, ok := strings.CutPrefix(rest, ".."); ok {
		end, hasEnd, t := takeUint(tail)
		rest = t
		if !hasEnd {
			end = math.MaxInt
		}
		f.MinLen, f.MaxLen = start, end
		f.HasLen = true
	} else if hasStart {
		f.MinLen, f.MaxLen = start, start
		f.HasLen = true
	}

	if rest != "" {
		switch rest[0] | 0x20 {
		case 'd':
			f.Base = 10
			rest = rest[1:]
		case 'x':
			f.Base = 16
			rest = rest[1:]
		case 'o':
			f.Base = 8
			rest = rest[1:]
		}
	}

	f.Custom = rest
	return f
}

// KeepBase returns a format preserving only the numeric base. Composite
// values parse their numeric components with this so that length and
// trim apply to the whole value only.
func (f *Fmt) KeepBase() *Fmt {
	return &Fmt{Base: f.Base}
}

func (f *Fmt) trimMatcher() func(rune) bool {
	if f.TrimChar != 0 {
		c := f.TrimChar
		return func(a rune) bool { return a == c }
	}
	return func(a rune) bool {
		switch a {
		case ' ', '\t', '\n', '\x0c', '\r':
			return true
		}
		return false
	}
}

func takeUint(s string) (v int, ok bool, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + int(s[i]-'0')
		i++
	}
	return v, i > 0, s[i:]
}
