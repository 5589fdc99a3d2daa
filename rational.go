package rational

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/govalues/rational/hashcode"
	"github.com/govalues/rational/optional"
	"golang.org/x/exp/constraints"
)

var (
	// ErrDivisionByZero is returned when an operation would produce a zero
	// denominator.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnrepresentableValue is returned when converting infinities or NaN.
	ErrUnrepresentableValue = errors.New("unrepresentable value")
	// ErrMalformedInput is returned when text or encoded data does not
	// describe a rational number.
	ErrMalformedInput = errors.New("malformed input")
)

// Shared constants, never mutated.
var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Rational represents an exact rational number num/den.
// Its zero value corresponds to 0/1.
//
// Rational is always kept in canonical form: the denominator is positive,
// the numerator carries the sign, and both are coprime.
// Thus two values are numerically equal if and only if their numerators and
// denominators are equal.
//
// The integers backing a Rational are never modified after construction,
// so Rational is designed to be safe for concurrent use by multiple goroutines
// and can be freely copied.
// The == operator must not be used on Rational values, use [Rational.Equal]
// or [Rational.Cmp] instead.
type Rational struct {
	num *big.Int // nil means 0
	den *big.Int // nil means 1
}

// newRationalUnsafe creates a rational without normalization.
// Use it only if you are absolutely sure that the pair is canonical and that
// nobody else holds references to num and den.
func newRationalUnsafe(num, den *big.Int) Rational {
	if num.Sign() == 0 {
		return Rational{}
	}
	return Rational{num: num, den: den}
}

// normalize reduces num/den to canonical form.
// It takes ownership of num and den and may modify them.
func normalize(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	if num.Sign() == 0 {
		return Rational{}, nil
	}
	g := new(big.Int).GCD(nil, nil, num, den)
	if g.Cmp(bigOne) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return newRationalUnsafe(num, den), nil
}

// mustNormalize is like normalize but panics on a zero denominator.
// Use it only where the denominator is a product of valid denominators.
func mustNormalize(num, den *big.Int) Rational {
	r, err := normalize(num, den)
	if err != nil {
		panic(fmt.Sprintf("normalize(%v, %v) failed: %v", num, den, err))
	}
	return r
}

// NewFromBigInt returns a rational equal to num/den reduced to lowest terms.
// The arguments are copied and can be reused by the caller.
//
// NewFromBigInt returns an error if the denominator is 0.
func NewFromBigInt(num, den *big.Int) (Rational, error) {
	r, err := normalize(new(big.Int).Set(num), new(big.Int).Set(den))
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v/%v]: %w", num, den, err)
	}
	return r, nil
}

// New returns a rational equal to num/den reduced to lowest terms.
//
// New returns an error if the denominator is 0.
func New(num, den int64) (Rational, error) {
	r, err := normalize(big.NewInt(num), big.NewInt(den))
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v/%v]: %w", num, den, err)
	}
	return r, nil
}

// MustNew is like [New] but panics if the rational cannot be constructed.
// It simplifies safe initialization of global variables holding rationals.
func MustNew(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", num, den, err))
	}
	return r
}

// NewFromInt64 returns a rational equal to v.
func NewFromInt64(v int64) Rational {
	return newRationalUnsafe(big.NewInt(v), bigOne)
}

// NewFromInt returns a rational equal to an integer of any kind.
// Unsigned values beyond the range of int64 are represented exactly.
func NewFromInt[T constraints.Integer](v T) Rational {
	if v < 0 {
		return NewFromInt64(int64(v))
	}
	return newRationalUnsafe(new(big.Int).SetUint64(uint64(v)), bigOne)
}

// NewFromBigRat returns a rational equal to r.
// The argument is copied and can be reused by the caller.
func NewFromBigRat(r *big.Rat) Rational {
	return mustNormalize(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
}

// Zero returns a rational equal to 0.
func Zero() Rational {
	return Rational{}
}

// One returns a rational equal to 1.
func One() Rational {
	return NewFromInt64(1)
}

// n returns the numerator without copying it.
func (r Rational) n() *big.Int {
	if r.num == nil {
		return bigZero
	}
	return r.num
}

// d returns the denominator without copying it.
func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
// The sign of the rational is carried by the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.n())
}

// Denom returns a copy of the denominator.
// The denominator is always positive.
func (r Rational) Denom() *big.Int {
	return new(big.Int).Set(r.d())
}

// BigRat returns a new [big.Rat] equal to r.
func (r Rational) BigRat() *big.Rat {
	return new(big.Rat).SetFrac(r.n(), r.d())
}

// Sign returns:
//
//	-1 if r < 0
//	 0 if r = 0
//	+1 if r > 0
func (r Rational) Sign() int {
	return r.n().Sign()
}

// IsZero returns:
//
//	true  if r = 0
//	false otherwise
func (r Rational) IsZero() bool {
	return r.Sign() == 0
}

// IsOne returns:
//
//	true  if r = 1
//	false otherwise
func (r Rational) IsOne() bool {
	return r.IsInt() && r.n().Cmp(bigOne) == 0
}

// IsNeg returns:
//
//	true  if r < 0
//	false otherwise
func (r Rational) IsNeg() bool {
	return r.Sign() < 0
}

// IsPos returns:
//
//	true  if r > 0
//	false otherwise
func (r Rational) IsPos() bool {
	return r.Sign() > 0
}

// IsInt returns true if the denominator is 1.
func (r Rational) IsInt() bool {
	return r.d().Cmp(bigOne) == 0
}

// Abs returns the absolute value of r.
func (r Rational) Abs() Rational {
	if !r.IsNeg() {
		return r
	}
	return r.Neg()
}

// Neg returns a rational with the opposite sign.
func (r Rational) Neg() Rational {
	return newRationalUnsafe(new(big.Int).Neg(r.n()), r.d())
}

// Inv returns the reciprocal 1/r.
//
// Inv returns an error if r is 0.
func (r Rational) Inv() (Rational, error) {
	q, err := r.inv()
	if err != nil {
		return Rational{}, fmt.Errorf("computing [1/%v]: %w", r, err)
	}
	return q, nil
}

func (r Rational) inv() (Rational, error) {
	return normalize(new(big.Int).Set(r.d()), new(big.Int).Set(r.n()))
}

// Add returns the sum r + q.
func (r Rational) Add(q Rational) Rational {
	if r.d().Cmp(q.d()) == 0 {
		return mustNormalize(new(big.Int).Add(r.n(), q.n()), new(big.Int).Set(r.d()))
	}
	num := new(big.Int).Mul(r.n(), q.d())
	num.Add(num, new(big.Int).Mul(q.n(), r.d()))
	return mustNormalize(num, new(big.Int).Mul(r.d(), q.d()))
}

// Sub returns the difference r - q.
func (r Rational) Sub(q Rational) Rational {
	return r.Add(q.Neg())
}

// Mul returns the product r * q.
func (r Rational) Mul(q Rational) Rational {
	return mustNormalize(new(big.Int).Mul(r.n(), q.n()), new(big.Int).Mul(r.d(), q.d()))
}

// FMA returns the fused multiply-addition r * e + q.
// The result is normalized once.
func (r Rational) FMA(e, q Rational) Rational {
	// r*e = a/b, result = (a*q.d + q.n*b) / (b*q.d)
	a := new(big.Int).Mul(r.n(), e.n())
	b := new(big.Int).Mul(r.d(), e.d())
	num := new(big.Int).Mul(a, q.d())
	num.Add(num, new(big.Int).Mul(q.n(), b))
	return mustNormalize(num, b.Mul(b, q.d()))
}

// Quo returns the quotient r / q.
//
// Quo returns an error if the divisor is 0.
func (r Rational) Quo(q Rational) (Rational, error) {
	p, err := r.quo(q)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v / %v]: %w", r, q, err)
	}
	return p, nil
}

func (r Rational) quo(q Rational) (Rational, error) {
	return normalize(new(big.Int).Mul(r.n(), q.d()), new(big.Int).Mul(r.d(), q.n()))
}

// Pow returns r raised to the integer power k.
// By convention any rational raised to the power 0, including 0 itself,
// is equal to 1.
// A negative power is computed as the reciprocal raised to the power -k.
//
// Pow returns an error if r is 0 and k is negative.
func (r Rational) Pow(k int) (Rational, error) {
	p, err := r.pow(k)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v^%v]: %w", r, k, err)
	}
	return p, nil
}

func (r Rational) pow(k int) (Rational, error) {
	if k == 0 {
		return One(), nil
	}
	e := big.NewInt(int64(k))
	if k < 0 {
		var err error
		r, err = r.inv()
		if err != nil {
			return Rational{}, err
		}
		e.Neg(e)
	}
	num := new(big.Int).Exp(r.n(), e, nil)
	den := new(big.Int).Exp(r.d(), e, nil)
	return normalize(num, den)
}

// Sum returns the sum of all arguments, or 0 if there are none.
func Sum(rs ...Rational) Rational {
	s := Zero()
	for _, r := range rs {
		s = s.Add(r)
	}
	return s
}

// Prod returns the product of all arguments, or 1 if there are none.
func Prod(rs ...Rational) Rational {
	p := One()
	for _, r := range rs {
		p = p.Mul(r)
	}
	return p
}

// Floor returns the largest integer less than or equal to r.
// See also methods [Rational.Ceil], [Rational.Trunc], [Rational.Round].
func (r Rational) Floor() Rational {
	// Euclidean division with a positive divisor rounds toward negative infinity.
	return newRationalUnsafe(new(big.Int).Div(r.n(), r.d()), bigOne)
}

// Ceil returns the smallest integer greater than or equal to r.
func (r Rational) Ceil() Rational {
	return r.Neg().Floor().Neg()
}

// Trunc returns r with its fractional part removed, rounding toward zero.
func (r Rational) Trunc() Rational {
	return newRationalUnsafe(new(big.Int).Quo(r.n(), r.d()), bigOne)
}

// Round returns r rounded to the nearest integer using
// [rounding half to even] (banker's rounding).
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Round() Rational {
	return NewFromBigRat(r.rounded(0))
}

// Int64 returns r truncated toward zero.
// If the result cannot be represented as an int64, then false is returned.
func (r Rational) Int64() (int64, bool) {
	t := r.Trunc().n()
	if !t.IsInt64() {
		return 0, false
	}
	return t.Int64(), true
}

// Int64Opt is like [Rational.Int64] but returns an absent option when the
// result does not fit an int64.
func (r Rational) Int64Opt() optional.Option[int64] {
	v, ok := r.Int64()
	return optional.FromPair(v, ok)
}

// Cmp compares rationals and returns:
//
//	-1 if r < q
//	 0 if r = q
//	+1 if r > q
//
// See also methods [Rational.CmpAbs], [Rational.Equal].
func (r Rational) Cmp(q Rational) int {
	rs, qs := r.Sign(), q.Sign()
	switch {
	case rs < qs:
		return -1
	case rs > qs:
		return 1
	case rs == 0:
		return 0
	}
	// Denominators are positive, so comparing cross products preserves order.
	a := new(big.Int).Mul(r.n(), q.d())
	b := new(big.Int).Mul(q.n(), r.d())
	return a.Cmp(b)
}

// CmpAbs compares absolute values of rationals and returns:
//
//	-1 if |r| < |q|
//	 0 if |r| = |q|
//	+1 if |r| > |q|
func (r Rational) CmpAbs(q Rational) int {
	return r.Abs().Cmp(q.Abs())
}

// Equal returns true if r and q represent the same number.
// It agrees with [Rational.Cmp] returning 0.
func (r Rational) Equal(q Rational) bool {
	return r.n().Cmp(q.n()) == 0 && r.d().Cmp(q.d()) == 0
}

// Min returns the smaller rational.
func (r Rational) Min(q Rational) Rational {
	if r.Cmp(q) <= 0 {
		return r
	}
	return q
}

// Max returns the larger rational.
func (r Rational) Max(q Rational) Rational {
	if r.Cmp(q) >= 0 {
		return r
	}
	return q
}

// Clamp compares rationals and returns:
//
//	min if r < min
//	max if r > max
//	  r otherwise
//
// Clamp returns an error if min is greater than max.
func (r Rational) Clamp(min, max Rational) (Rational, error) {
	if min.Cmp(max) > 0 {
		return Rational{}, fmt.Errorf("clamping %v: invalid range [%v, %v]", r, min, max)
	}
	if r.Cmp(min) < 0 {
		return min, nil
	}
	if r.Cmp(max) > 0 {
		return max, nil
	}
	return r, nil
}

// AppendHashFields writes the canonical numerator and denominator to c.
// Equal rationals always write identical fields.
func (r Rational) AppendHashFields(c *hashcode.Combiner) {
	c.Int(r.n()).Int(r.d())
}

// Hash returns a stable 64-bit digest of the canonical form of r.
// Equal rationals have equal hashes.
func (r Rational) Hash() uint64 {
	c := hashcode.New()
	r.AppendHashFields(c)
	return c.Sum64()
}
