package parg

import "strings"

// fmtSeg is one piece of a compiled format string, either a literal to
// match or a placeholder to parse into.
type fmtSeg struct {
	lit   string
	spec  *Fmt
	isArg bool
}

// compileFormat splits a format string into literal and placeholder
// segments. `{}` is a placeholder, `{:spec}` a placeholder with a format
// specifier, `{{` and `}}` escape the braces. A malformed format is a
// caller bug and panics.
func compileFormat(format string) []fmtSeg {
	var segs []fmtSeg
	p := format
	for p != "" {
		pos := strings.IndexAny(p, "{}")
		if pos < 0 {
			segs = append(segs, fmtSeg{lit: p})
			break
		}

		if strings.HasPrefix(p[pos:], "{{") || strings.HasPrefix(p[pos:], "}}") {
			segs = append(segs, fmtSeg{lit: p[:pos+1]})
			p = p[pos+2:]
			continue
		}
		if p[pos] == '}' {
			panic("parg: invalid closing bracket in format string")
		}

		if pos > 0 {
			segs = append(segs, fmtSeg{lit: p[:pos]})
		}
		p = p[pos+1:]

		end := strings.IndexByte(p, '}')
		if end < 0 {
			panic("parg: missing closing `}` in format string")
		}
		inner := p[:end]
		p = p[end+1:]

		spec := ""
		if id, s, ok := strings.Cut(inner, ":"); ok {
			if strings.TrimSpace(id) != "" {
				panic("parg: placeholders are positional, found `" + inner + "`")
			}
			spec = s
		} else if strings.TrimSpace(inner) != "" {
			panic("parg: placeholders are positional, found `" + inner + "`")
		}
		segs = append(segs, fmtSeg{spec: ParseFmt(spec), isArg: true})
	}
	return segs
}

// ParsefPart parses values from the reader according to the format
// string, filling the destinations in order. Literal parts of the format
// must match the input exactly; each `{}` parses into the next
// destination, which must be a pointer to a supported type (see
// ReadInto).
//
// The input may continue past the format. trailing is the soft error of
// the last placeholder, useful when the caller itself wants to report
// where parsing stopped. The number of destinations must match the
// number of placeholders or the call panics.
func ParsefPart(r *Reader, format string, dst ...any) (trailing *Error, err *Error) {
	segs := compileFormat(format)

	n := 0
	for _, s := range segs {
		if s.isArg {
			n++
		}
	}
	if n != len(dst) {
		panic("parg: format has a different number of placeholders than destinations")
	}

	di := 0
	for _, s := range segs {
		if !s.isArg {
			if err := r.Expect(s.lit); err != nil {
				return nil, err
			}
			trailing = nil
			continue
		}
		trailing, err = ReadInto(r, dst[di], s.spec)
		if err != nil {
			return nil, err
		}
		di++
	}
	return trailing, nil
}

// Parsef is ParsefPart that also requires the whole input to be
// consumed. When input remains, the soft error of the last placeholder
// says why the value could not continue; without one the leftover is
// reported as unused input.
func Parsef(r *Reader, format string, dst ...any) *Error {
	trailing, err := ParsefPart(r, format, dst...)
	if err != nil {
		return err
	}

	_, ok, perr := r.Peek()
	if perr != nil {
		return perr
	}
	if !ok {
		return nil
	}
	if trailing != nil {
		return trailing
	}
	return r.ErrParsePeek("unused input").WithLong("Unused input.")
}

// Sparsef parses the whole string s according to the format string.
//
//	var maj, min int
//	err := parg.Sparsef("1.22", "{}.{}", &maj, &min)
func Sparsef(s, format string, dst ...any) *Error {
	return Parsef(NewReader(s), format, dst...)
}
