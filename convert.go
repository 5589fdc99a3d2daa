package rational

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/govalues/decimal"
	"github.com/joeycumines/floater"
	bigdecimal "github.com/shopspring/decimal"
)

// IEEE 754 layouts.
const (
	f64MantBits = 52
	f64ExpBits  = 11
	f64Bias     = 1023

	f32MantBits = 23
	f32ExpBits  = 8
	f32Bias     = 127
)

// NewFromFloat64 returns a rational exactly equal to f.
// The binary representation of f is decomposed into an integer significand and
// a power of two, so every finite float64 converts without rounding.
// Negative zero converts to 0.
// See also method [Rational.Float64].
//
// NewFromFloat64 returns an error if f is NaN or an infinity.
func NewFromFloat64(f float64) (Rational, error) {
	r, err := newFromFloatBits(math.Float64bits(f), f64MantBits, f64ExpBits, f64Bias)
	if err != nil {
		return Rational{}, fmt.Errorf("converting float %v: %w", f, err)
	}
	return r, nil
}

// NewFromFloat32 returns a rational exactly equal to f.
// See also methods [NewFromFloat64] and [Rational.Float32].
//
// NewFromFloat32 returns an error if f is NaN or an infinity.
func NewFromFloat32(f float32) (Rational, error) {
	r, err := newFromFloatBits(uint64(math.Float32bits(f)), f32MantBits, f32ExpBits, f32Bias)
	if err != nil {
		return Rational{}, fmt.Errorf("converting float %v: %w", f, err)
	}
	return r, nil
}

// newFromFloatBits converts an IEEE 754 bit pattern to a rational.
func newFromFloatBits(b uint64, mantBits, expBits, bias int) (Rational, error) {
	expMask := uint64(1)<<expBits - 1
	mantMask := uint64(1)<<mantBits - 1

	neg := b>>(mantBits+expBits) != 0
	bexp := (b >> mantBits) & expMask
	mant := b & mantMask

	var exp int
	switch bexp {
	case expMask:
		// Inf or NaN
		return Rational{}, ErrUnrepresentableValue
	case 0:
		// Zero or subnormal, no implicit leading bit
		if mant == 0 {
			return Rational{}, nil
		}
		exp = 1 - bias - mantBits
	default:
		mant |= 1 << mantBits
		exp = int(bexp) - bias - mantBits //nolint:gosec
	}

	// f = mant * 2^exp, remove common factors of two upfront
	tz := bits.TrailingZeros64(mant)
	mant >>= tz
	exp += tz

	num := new(big.Int).SetUint64(mant)
	if neg {
		num.Neg(num)
	}
	den := big.NewInt(1)
	if exp >= 0 {
		num.Lsh(num, uint(exp))
	} else {
		den.Lsh(den, uint(-exp))
	}
	return normalize(num, den)
}

// NewFromDecimal returns a rational exactly equal to the decimal d,
// which is coef / 10^scale.
// See also method [Rational.Decimal].
func NewFromDecimal(d decimal.Decimal) Rational {
	q, ok := new(big.Rat).SetString(d.String())
	if !ok {
		panic(fmt.Sprintf("NewFromDecimal(%v) failed: unexpected decimal text", d))
	}
	return NewFromBigRat(q)
}

// NewFromBigDecimal returns a rational exactly equal to the arbitrary-precision
// decimal d.
// See also method [Rational.BigDecimal].
func NewFromBigDecimal(d bigdecimal.Decimal) Rational {
	q := d.Rat()
	return mustNormalize(q.Num(), q.Denom())
}

// MaxDecimalExponent is the largest magnitude of the exponent accepted by
// [ParseDecimal].
const MaxDecimalExponent = 10000

// ParseDecimal converts a decimal string, optionally in scientific notation,
// to an exactly equal rational.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	0.000001234
//	1.83e5
//	0.22e-9
//
// ParseDecimal returns an error if:
//   - the string is not a valid decimal number;
//   - the exponent of the number is outside [-MaxDecimalExponent, MaxDecimalExponent].
func ParseDecimal(s string) (Rational, error) {
	d, err := bigdecimal.NewFromString(s)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing decimal %q: %w: %v", s, ErrMalformedInput, err)
	}
	if e := d.Exponent(); e > MaxDecimalExponent || e < -MaxDecimalExponent {
		return Rational{}, fmt.Errorf("parsing decimal %q: %w: exponent %v out of range [%v, %v]", s, ErrMalformedInput, e, -MaxDecimalExponent, MaxDecimalExponent)
	}
	return NewFromBigDecimal(d), nil
}

// Float64 returns the nearest binary floating-point number rounded
// using [rounding half to even].
// The flag exact is true only if f represents r without loss.
// Magnitudes beyond the float64 range saturate to ±Inf, and magnitudes below
// the smallest subnormal round to ±0.
// See also constructor [NewFromFloat64].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Float64() (f float64, exact bool) {
	f, exact = r.BigRat().Float64()
	if f == 0 && !r.IsZero() {
		exact = false
	}
	return f, exact
}

// Float32 is like [Rational.Float64] but for float32.
func (r Rational) Float32() (f float32, exact bool) {
	f, exact = r.BigRat().Float32()
	if f == 0 && !r.IsZero() {
		exact = false
	}
	return f, exact
}

// Float returns r rounded to a [big.Float] with the given precision in bits
// and rounding mode.
// A precision of 0 selects the larger of the precisions needed to hold the
// numerator and the denominator.
func (r Rational) Float(prec uint, mode big.RoundingMode) *big.Float {
	x := new(big.Float).SetInt(r.n())
	y := new(big.Float).SetInt(r.d())
	return new(big.Float).SetPrec(prec).SetMode(mode).Quo(x, y)
}

// rounded returns r rounded half to even to the given number of digits after
// the decimal point. A negative scale rounds to the corresponding power of ten.
func (r Rational) rounded(scale int) *big.Rat {
	return floater.RoundRat(nil, r.BigRat(), scale)
}

// Decimal returns r rounded to the given number of digits after the decimal
// point using [rounding half to even].
// See also constructor [NewFromDecimal].
//
// Decimal returns an error if:
//   - the scale is negative or greater than [decimal.MaxScale];
//   - the coefficient of the result has more than [decimal.MaxPrec] digits.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Decimal(scale int) (decimal.Decimal, error) {
	if scale < 0 || scale > decimal.MaxScale {
		return decimal.Decimal{}, fmt.Errorf("converting %v: scale %v out of range [0, %v]", r, scale, decimal.MaxScale)
	}
	d, err := decimal.ParseExact(r.rounded(scale).FloatString(scale), scale)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", r, err)
	}
	return d, nil
}

// BigDecimal returns r rounded to the given number of digits after the decimal
// point using rounding half to even.
// A negative scale rounds to the corresponding power of ten.
// See also constructor [NewFromBigDecimal].
func (r Rational) BigDecimal(scale int32) bigdecimal.Decimal {
	q := r.rounded(int(scale))
	if scale <= 0 {
		// q is a multiple of 10^-scale
		return bigdecimal.NewFromBigInt(q.Num(), 0).Round(scale)
	}
	return bigdecimal.RequireFromString(q.FloatString(int(scale)))
}
