//nolint:testpackage // using package name 'parg' to access unexported fields for testing
package parg

import (
	"net/netip"
	"strings"
	"testing"
	"time"
)

// TestParseArgPrimitives tests whole argument parsing of the primitive
// types
func TestParseArgPrimitives(t *testing.T) {
	if v, err := ParseArg[int]("8080"); err != nil || v != 8080 {
		t.Errorf("int = %d, %v", v, err)
	}
	if v, err := ParseArg[int]("-42"); err != nil || v != -42 {
		t.Errorf("int = %d, %v", v, err)
	}
	if v, err := ParseArg[float64]("0.25"); err != nil || v != 0.25 {
		t.Errorf("float64 = %v, %v", v, err)
	}
	if v, err := ParseArg[string]("hello"); err != nil || v != "hello" {
		t.Errorf("string = %q, %v", v, err)
	}
	if v, err := ParseArg[[]byte]("hi"); err != nil || string(v) != "hi" {
		t.Errorf("[]byte = %q, %v", v, err)
	}
	if v, err := ParseArg[Rune]("ž"); err != nil || v != 'ž' {
		t.Errorf("Rune = %q, %v", rune(v), err)
	}
}

// TestParseArgBool tests that whole argument booleans are strict
func TestParseArgBool(t *testing.T) {
	if v, err := ParseArg[bool]("true"); err != nil || !v {
		t.Errorf("true = %v, %v", v, err)
	}
	if v, err := ParseArg[bool]("false"); err != nil || v {
		t.Errorf("false = %v, %v", v, err)
	}

	_, err := ParseArg[bool]("yes")
	if err == nil {
		t.Fatal("yes must not parse as bool")
	}
	if err.Ctx().Hint == "" {
		t.Error("bool error must hint at the accepted literals")
	}
}

// TestParseArgEmpty tests that an empty argument reports an empty span
func TestParseArgEmpty(t *testing.T) {
	_, err := ParseArg[int]("")
	if err == nil {
		t.Fatal("empty argument must fail")
	}
	ctx := err.Ctx()
	if err.Kind() != KindParseFailed {
		t.Errorf("kind = %q", err.Kind())
	}
	if ctx.SpanStart != 0 || ctx.SpanEnd != 0 {
		t.Errorf("span = %d..%d, want 0..0", ctx.SpanStart, ctx.SpanEnd)
	}
}

// TestParseArgRange tests that out of range numbers are invalid values,
// not parse failures
func TestParseArgRange(t *testing.T) {
	_, err := ParseArg[uint8]("300")
	if err == nil {
		t.Fatal("300 must not fit uint8")
	}
	if err.Kind() != KindInvalidValue {
		t.Errorf("kind = %q, want %q", err.Kind(), KindInvalidValue)
	}
	if err.Ctx().Hint == "" {
		t.Error("range error must carry a hint")
	}
}

// TestParseArgDuration tests time.Duration arguments
func TestParseArgDuration(t *testing.T) {
	if v, err := ParseArg[time.Duration]("1.5h"); err != nil || v != 90*time.Minute {
		t.Errorf("duration = %v, %v", v, err)
	}

	_, err := ParseArg[time.Duration]("fast")
	if err == nil {
		t.Fatal("fast must not parse as duration")
	}
	if !strings.Contains(err.Ctx().Hint, "300ms") {
		t.Errorf("hint = %q", err.Ctx().Hint)
	}
}

// TestParseArgAddr tests that whole argument addresses accept any form
// the netip package does
func TestParseArgAddr(t *testing.T) {
	if v, err := ParseArg[netip.Addr]("::1"); err != nil || v != netip.IPv6Loopback() {
		t.Errorf("addr = %v, %v", v, err)
	}
	if v, err := ParseArg[netip.AddrPort]("127.0.0.1:80"); err != nil || v.Port() != 80 {
		t.Errorf("addr port = %v, %v", v, err)
	}
}

// verbosity parses from a whole argument on its own.
type verbosity int

func (v *verbosity) FromArg(arg string) error {
	switch arg {
	case "quiet":
		*v = 0
	case "normal":
		*v = 1
	case "loud":
		*v = 2
	default:
		return InvalidValueError("unknown verbosity `"+arg+"`", arg)
	}
	return nil
}

// TestParseArgFromArg tests dispatch to a FromArg implementation
func TestParseArgFromArg(t *testing.T) {
	if v, err := ParseArg[verbosity]("loud"); err != nil || v != 2 {
		t.Errorf("verbosity = %d, %v", v, err)
	}

	_, err := ParseArg[verbosity]("deafening")
	if err == nil {
		t.Fatal("unknown verbosity must fail")
	}
	if err.Kind() != KindInvalidValue {
		t.Errorf("kind = %q", err.Kind())
	}
}

// point parses from a reader as `x,y`.
type point struct{ x, y int }

func (p *point) SetFromRead(r *Reader, f *Fmt) (*Error, *Error) {
	return ParsefPart(r, "{},{}", &p.x, &p.y)
}

// TestParseArgFromRead tests dispatch through SetFromRead, which must
// consume the whole argument
func TestParseArgFromRead(t *testing.T) {
	v, err := ParseArg[point]("3,4")
	if err != nil {
		t.Fatalf("point = %v", err)
	}
	if v != (point{3, 4}) {
		t.Errorf("point = %+v", v)
	}

	if _, err := ParseArg[point]("3,4!"); err == nil {
		t.Error("leftover input must fail whole argument parsing")
	}
	if _, err := ParseArg[point]("3;4"); err == nil {
		t.Error("wrong separator must fail")
	}
}

// TestParseArgUnsupported tests the panic on unsupported types
func TestParseArgUnsupported(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unsupported type must panic")
		}
	}()
	ParseArg[struct{ a int }]("x")
}
