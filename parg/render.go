package parg

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/parg-dev/go-parg/internal/pool"
)

// Rendered diagnostics fit in classic 80-column terminals; the argument
// window around the error is elided to stay under this.
const (
	renderMaxWidth = 80
	renderArgWidth = renderMaxWidth - 11
)

// painter bundles the styles used by the diagnostic renderer. Styles are
// forced on or off per render so the policy on the error wins over
// fatih/color's global tty detection. Painters are pooled, building five
// styles per rendered error adds up in argument loops.
type painter struct {
	red, bold, blue, cyan, gray *color.Color
}

var painters = pool.NewPool(func() *painter {
	return &painter{
		red:  color.New(color.FgRed),
		bold: color.New(color.Bold),
		blue: color.New(color.FgBlue),
		cyan: color.New(color.FgCyan),
		gray: color.New(color.FgHiBlack),
	}
})

func newPainter(enabled bool) *painter {
	p := painters.Get()
	for _, c := range [...]*color.Color{p.red, p.bold, p.blue, p.cyan, p.gray} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *painter) release() {
	painters.Put(p)
}

// Announce renders the full diagnostic to w exactly once. Subsequent
// calls on the same error are no-ops, so an error can be wrapped and
// re-raised through several layers without printing twice.
func (e *Error) Announce(w io.Writer) {
	if e.ctx.announced {
		return
	}
	e.ctx.announced = true
	e.render(w, e.ctx.Color.UseColor())
}

// Format implements fmt.Formatter. %v renders the diagnostic honoring the
// error's color mode; %+v forces color on and %-v forces it off.
// Formatting does not flip the announced flag; only Announce does.
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		use := e.ctx.Color.UseColor()
		if f.Flag('+') {
			use = true
		}
		if f.Flag('-') {
			use = false
		}
		e.render(f, use)
	default:
		fmt.Fprintf(f, "%%!%c(parg.Error=%s)", verb, e.Error())
	}
}

func (e *Error) render(w io.Writer, useColor bool) {
	p := newPainter(useColor)
	defer p.release()
	ctx := e.ctx

	longMsg := ctx.Long
	if longMsg == "" {
		longMsg = ctx.Inline
	}
	if longMsg == "" {
		longMsg = ctx.Kind.Message()
	}

	if len(ctx.Args) == 0 {
		if ctx.Prefix {
			fmt.Fprintf(w, "%s %s\n", p.red.Sprint("error:"), p.bold.Sprint(longMsg))
		} else {
			fmt.Fprintln(w, p.bold.Sprint(longMsg))
		}
		if ctx.Hint != "" {
			fmt.Fprintf(w, "%s %s\n", p.cyan.Sprint("hint:"), ctx.Hint)
		}
		return
	}

	errIdx := ctx.ErrIdx
	if errIdx >= len(ctx.Args) {
		errIdx = len(ctx.Args) - 1
	}
	arg := ctx.Args[errIdx]
	spanStart := min(ctx.SpanStart, len(arg))
	spanEnd := min(ctx.SpanEnd, len(arg))

	if ctx.Prefix {
		fmt.Fprintf(w, "%s %s\n", p.red.Sprint("argument error:"), p.bold.Sprint(longMsg))
	} else {
		fmt.Fprintln(w, p.bold.Sprint(longMsg))
	}
	fmt.Fprintf(w, "%s arg%d:%d..%d\n", p.blue.Sprint("-->"), errIdx, ctx.SpanStart, ctx.SpanEnd)
	fmt.Fprintln(w, p.blue.Sprint(" |"))

	startIdx, endIdx := e.argWindow(errIdx)

	var errPos int
	if startIdx == 0 {
		fmt.Fprintf(w, " %s ", p.blue.Sprint("$"))
		errPos = 3
	} else {
		fmt.Fprintf(w, " %s %s ", p.blue.Sprint("$"), p.gray.Sprint("..."))
		errPos = 7
	}

	for i := startIdx; i <= endIdx; i++ {
		switch {
		case i < errIdx:
			fmt.Fprintf(w, "%s ", ctx.Args[i])
			errPos += utf8.RuneCountInString(ctx.Args[i]) + 1
		case i == errIdx:
			fmt.Fprint(w, ctx.Args[i])
			errPos += utf8.RuneCountInString(arg[:spanStart])
		default:
			fmt.Fprintf(w, " %s", ctx.Args[i])
		}
	}

	if endIdx != len(ctx.Args)-1 {
		fmt.Fprintf(w, " %s\n", p.gray.Sprint("..."))
	} else {
		fmt.Fprintln(w)
	}

	errPos -= 2
	carets := strings.Repeat("^", max(1, spanEnd-spanStart))
	inline := ctx.Inline
	if inline == "" {
		inline = ctx.Kind.Message()
	}
	fmt.Fprintf(w, " %s%s%s\n",
		p.blue.Sprint("|"),
		strings.Repeat(" ", max(1, errPos)),
		p.red.Sprintf("%s %s", carets, inline),
	)

	if ctx.Hint != "" {
		fmt.Fprintf(w, "%s %s\n", p.cyan.Sprint("hint:"), ctx.Hint)
	}
}

// argWindow picks the range of arguments shown around the erroneous one,
// expanding to both sides until the line budget runs out.
func (e *Error) argWindow(errIdx int) (startIdx, endIdx int) {
	args := e.ctx.Args
	width := utf8.RuneCountInString(args[errIdx])
	startIdx, endIdx = errIdx, errIdx

	for {
		startEnd := false
		if startIdx > 0 {
			adLen := utf8.RuneCountInString(args[startIdx-1]) + 1
			if width+adLen > renderArgWidth {
				return
			}
			width += adLen
			startIdx--
		} else {
			startEnd = true
		}

		if endIdx+1 < len(args) {
			adLen := utf8.RuneCountInString(args[endIdx+1]) + 1
			if width+adLen > renderArgWidth {
				return
			}
			width += adLen
			endIdx++
		} else if startEnd {
			return
		}
	}
}
