/*
Package rational implements exact rational numbers backed by arbitrary-precision
integers.
It is intended as a replacement for float64 and fixed-scale decimals wherever
chains of multiplications and divisions must stay exact, for example
(1 / 3) * 3 is exactly 1.

# Features

  - Immutable values, ensuring safe usage across multiple goroutines
  - Canonical lowest-terms form, so equal numbers have equal representations
  - No overflow, numerators and denominators grow as needed
  - Bit-exact conversion from float32 and float64
  - Exact conversion from [decimal.Decimal] and shopspring decimals
  - Correctly rounded conversion back to floats and decimals
  - Text, JSON, binary, BSON, msgpack and SQL encodings

# Representation

A [Rational] is a pair of [big.Int] values, the numerator and the denominator.
Every constructor and every arithmetic operation reduces the pair to its
canonical form:

  - the denominator is positive;
  - the sign is carried by the numerator;
  - the numerator and denominator are coprime;
  - zero is represented as 0/1.

The canonical text form is "num/den" with an explicit "/1" for whole numbers,
for example "-3/4" or "5/1".

# Special Values

Infinities, NaN and undefined quantities like 0/0 are not representable.
Conversions from such float values return [ErrUnrepresentableValue].

# Operations

Add, Sub, Mul, Neg, Abs and FMA never fail.
Quo and Inv return [ErrDivisionByZero] when the divisor is 0.
Pow accepts any integer exponent; by convention 0^0 = 1.
Cmp and Equal never fail and agree with each other.

# Rounding

Arithmetic is exact, values are only rounded when converting to a
representation with limited precision.
Float64, Float32, Decimal and BigDecimal use [rounding half to even];
Float lets the caller choose a precision and a [big.RoundingMode].
Floor, Ceil, Trunc and Round round a rational to an integer.

# Errors

Errors are returned for division by zero, unrepresentable floats, and
malformed text or encoded data.
All of them wrap one of [ErrDivisionByZero], [ErrUnrepresentableValue] or
[ErrMalformedInput], so callers can use [errors.Is].
Functions prefixed with Must panic instead, they simplify safe initialization
of global variables.
Partial operations are also available through the [optional] package
(see [ParseOpt] and [Rational.Int64Opt]), and fallible chains can be built
with the [result] package.

[rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
[optional]: https://pkg.go.dev/github.com/govalues/rational/optional
[result]: https://pkg.go.dev/github.com/govalues/rational/result
*/
package rational
