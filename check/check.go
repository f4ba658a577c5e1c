// Package check provides value checks that compose with parsing, so
// that range and validity errors carry the same span aware diagnostics
// as parse errors.
package check

import (
	"cmp"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/parg-dev/go-parg/parg"
)

// Func checks an already parsed value.
type Func[T any] func(v T) *parg.Error

// InRange checks that the value is between lo and hi, both inclusive.
func InRange[T cmp.Ordered](lo, hi T) Func[T] {
	return func(v T) *parg.Error {
		if v < lo || v > hi {
			return rangeError(v, fmt.Sprintf(
				"in range from `%v` to `%v`", lo, hi))
		}
		return nil
	}
}

// Above checks that the value is strictly larger than lo.
func Above[T cmp.Ordered](lo T) Func[T] {
	return func(v T) *parg.Error {
		if v <= lo {
			return rangeError(v, fmt.Sprintf("larger than `%v`", lo))
		}
		return nil
	}
}

// AtLeast checks that the value is larger than or equal to lo.
func AtLeast[T cmp.Ordered](lo T) Func[T] {
	return func(v T) *parg.Error {
		if v < lo {
			return rangeError(v, fmt.Sprintf("larger or equal to `%v`", lo))
		}
		return nil
	}
}

// Below checks that the value is strictly smaller than hi.
func Below[T cmp.Ordered](hi T) Func[T] {
	return func(v T) *parg.Error {
		if v >= hi {
			return rangeError(v, fmt.Sprintf("smaller than `%v`", hi))
		}
		return nil
	}
}

// AtMost checks that the value is smaller than or equal to hi.
func AtMost[T cmp.Ordered](hi T) Func[T] {
	return func(v T) *parg.Error {
		if v > hi {
			return rangeError(v, fmt.Sprintf("smaller or equal to `%v`", hi))
		}
		return nil
	}
}

// OneOf checks that the value is one of the allowed ones.
func OneOf[T comparable](allowed ...T) Func[T] {
	return func(v T) *parg.Error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return parg.NewError(parg.KindInvalidValue).
			WithInline("invalid value").
			WithLong(fmt.Sprintf("Invalid value `%v`.", v)).
			WithHint(fmt.Sprintf("Value must be one of %s.", joinBackticked(allowed)))
	}
}

// Not inverts a check. Since the inverted check cannot say what would be
// valid, the error only names the value; wrap with WithHint for more.
func Not[T any](check Func[T]) Func[T] {
	return func(v T) *parg.Error {
		if check(v) != nil {
			return nil
		}
		return parg.NewError(parg.KindInvalidValue).
			WithInline("invalid value").
			WithLong(fmt.Sprintf("Invalid value `%v`.", v))
	}
}

// All combines several checks, failing on the first that does.
func All[T any](checks ...Func[T]) Func[T] {
	return func(v T) *parg.Error {
		for _, c := range checks {
			if err := c(v); err != nil {
				return err
			}
		}
		return nil
	}
}

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
)

// Tag checks the value against a go-playground/validator tag, such as
// `email`, `url` or `min=1,max=100`.
func Tag[T any](tag string) Func[T] {
	return func(v T) *parg.Error {
		tagValidatorOnce.Do(func() {
			tagValidator = validator.New()
		})
		err := tagValidator.Var(v, tag)
		if err == nil {
			return nil
		}
		e := parg.NewError(parg.KindInvalidValue).
			WithInline("invalid value").
			WithLong(fmt.Sprintf("Invalid value `%v`.", v))
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			e.WithHint(fmt.Sprintf("Value must satisfy `%s`.", verrs[0].Tag()))
		}
		return e
	}
}

func rangeError(v any, rangeDesc string) *parg.Error {
	return parg.NewError(parg.KindInvalidValue).
		WithInline("Value must be " + rangeDesc + ".").
		WithLong(fmt.Sprintf("Invalid value `%v`. Value must be %s.", v, rangeDesc))
}

func joinBackticked[T any](vals []T) string {
	s := ""
	for i, v := range vals {
		if i > 0 {
			if i == len(vals)-1 {
				s += " or "
			} else {
				s += ", "
			}
		}
		s += fmt.Sprintf("`%v`", v)
	}
	return s
}

// nav is the part of the navigator the wrappers need to attach context.
type nav interface {
	parg.Nav
	Cur() (string, bool)
	MapErr(*parg.Error) *parg.Error
}

// NextArg consumes and parses the next argument like parg.NextArg and
// then runs the checks on it. Check failures span the whole argument.
func NextArg[T any](n parg.Nav, checks ...Func[T]) (T, *parg.Error) {
	v, err := parg.NextArg[T](n)
	if err != nil {
		return v, err
	}
	return v, applyChecks(n, v, checks)
}

// CurArg parses the current argument like parg.CurArg and then runs the
// checks on it.
func CurArg[T any](n parg.Nav, checks ...Func[T]) (T, *parg.Error) {
	v, err := parg.CurArg[T](n)
	if err != nil {
		return v, err
	}
	return v, applyChecks(n, v, checks)
}

func applyChecks[T any](n parg.Nav, v T, checks []Func[T]) *parg.Error {
	nv, ok := n.(nav)
	for _, c := range checks {
		err := c(v)
		if err == nil {
			continue
		}
		if ok {
			if a, cok := nv.Cur(); cok {
				err = err.PartOf(a).Spanned(0, len(a))
			}
			return nv.MapErr(err)
		}
		return err
	}
	return nil
}

// Read wraps a destination so that the checks run right after the value
// parses. It implements parg.SetFromRead, so it can be a Parsef
// destination; the error then spans exactly the part of the input the
// value came from.
//
//	port := check.Read(&p, check.InRange[uint16](1, 1<<15))
//	err := parg.Sparsef(arg, "{}", port)
type Reading[T any] struct {
	Dst    *T
	Checks []Func[T]
}

// Read creates a checked destination for dst.
func Read[T any](dst *T, checks ...Func[T]) *Reading[T] {
	return &Reading[T]{Dst: dst, Checks: checks}
}

// SetFromRead parses into the wrapped destination and then checks it.
func (c *Reading[T]) SetFromRead(r *parg.Reader, f *parg.Fmt) (*parg.Error, *parg.Error) {
	start := r.Pos()
	trailing, err := parg.ReadInto(r, c.Dst, f)
	if err != nil {
		return nil, err
	}
	for _, ch := range c.Checks {
		if cerr := ch(*c.Dst); cerr != nil {
			return nil, r.MapErr(cerr).SpanStart(start)
		}
	}
	return trailing, nil
}
