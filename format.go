package rational

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/govalues/rational/optional"
	"github.com/joeycumines/floater"
)

// Parse converts a string to a rational.
// The input string must be in one of the following formats:
//
//	3/4
//	-3/4
//	+6/8
//	42
//
// Only the numerator may carry a sign.
// A missing denominator means 1, and the result is reduced to lowest terms.
//
// Parse returns an error wrapping [ErrMalformedInput] if the string has any
// other shape, including an empty string or a zero denominator.
func Parse(s string) (Rational, error) {
	r, err := parse(s)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return r, nil
}

func parse(s string) (Rational, error) {
	numText, denText, hasDen := strings.Cut(s, "/")
	digits := numText
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	if !isDigits(digits) {
		return Rational{}, fmt.Errorf("%w: invalid numerator", ErrMalformedInput)
	}
	num, ok := new(big.Int).SetString(numText, 10)
	if !ok {
		return Rational{}, fmt.Errorf("%w: invalid numerator", ErrMalformedInput)
	}
	den := big.NewInt(1)
	if hasDen {
		if !isDigits(denText) {
			return Rational{}, fmt.Errorf("%w: invalid denominator", ErrMalformedInput)
		}
		if _, ok := den.SetString(denText, 10); !ok {
			return Rational{}, fmt.Errorf("%w: invalid denominator", ErrMalformedInput)
		}
		if den.Sign() == 0 {
			return Rational{}, fmt.Errorf("%w: zero denominator", ErrMalformedInput)
		}
	}
	return normalize(num, den)
}

// isDigits returns true if s is a non-empty string of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding rationals.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return r
}

// ParseOpt is like [Parse] but returns an absent option instead of an error.
func ParseOpt(s string) optional.Option[Rational] {
	r, err := parse(s)
	return optional.FromPair(r, err == nil)
}

// String implements the [fmt.Stringer] interface and returns the canonical
// representation "num/den".
// Whole numbers keep the explicit "/1" suffix, so the output is always
// accepted by [Parse] and round-trips exactly.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r Rational) String() string {
	return string(r.append(nil))
}

func (r Rational) append(buf []byte) []byte {
	buf = r.n().Append(buf, 10)
	buf = append(buf, '/')
	return r.d().Append(buf, 10)
}

// defaultFracDigits is the precision of %f when none is given.
const defaultFracDigits = 6

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example            | Description                   |
//	| ------ | ------------------ | ----------------------------- |
//	| %s, %v | 2/3                | Canonical form                |
//	| %q     | "2/3"              | Quoted canonical form         |
//	| %f     | 0.666667           | Decimal, rounded half to even |
//	| %g     | 0.6666666666666666 | Nearest float64               |
//
// The '-' format flag can be used with all verbs.
// The '+', ' ', '0' format flags can be used with %f and %g.
//
// Precision is only supported for the %f verb.
// The default precision is 6.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (r Rational) Format(state fmt.State, verb rune) {
	var body []byte
	var neg bool
	numeric := false

	switch verb {
	case 's', 'S', 'v', 'V':
		body = r.append(nil)
	case 'q', 'Q':
		body = strconv.AppendQuote(nil, r.String())
	case 'f', 'F':
		scale := defaultFracDigits
		if p, ok := state.Precision(); ok {
			scale = p
		}
		q := r.rounded(scale)
		neg = q.Sign() < 0
		body = floater.AppendDecimalRat(nil, q.Abs(q), scale, 0)
		numeric = true
	case 'g', 'G':
		f, _ := r.Float64()
		neg = f < 0
		if neg {
			f = -f
		}
		body = strconv.AppendFloat(nil, f, byte(verb), -1, 64)
		numeric = true
	default:
		//nolint:errcheck
		state.Write([]byte("%!" + string(verb) + "(rational.Rational=" + r.String() + ")"))
		return
	}

	// Arithmetic sign
	sign := ""
	if numeric {
		switch {
		case neg:
			sign = "-"
		case state.Flag('+'):
			sign = "+"
		case state.Flag(' '):
			sign = " "
		}
	}

	// Padding
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok {
		if pad := w - len(sign) - len(body); pad > 0 {
			switch {
			case state.Flag('-'):
				tspaces = pad
			case state.Flag('0') && numeric:
				lzeros = pad
			default:
				lspaces = pad
			}
		}
	}

	buf := make([]byte, 0, lspaces+len(sign)+lzeros+len(body)+tspaces)
	buf = append(buf, strings.Repeat(" ", lspaces)...)
	buf = append(buf, sign...)
	buf = append(buf, strings.Repeat("0", lzeros)...)
	buf = append(buf, body...)
	buf = append(buf, strings.Repeat(" ", tspaces)...)
	state.Write(buf) //nolint:errcheck
}
