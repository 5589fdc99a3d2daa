// Package rpn evaluates rational expressions written in reverse Polish
// notation, for example "1/3 1/6 + 2 *".
package rpn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/rational"
	"github.com/govalues/rational/result"
	"github.com/joeycumines/logiface"
)

var (
	// ErrEmpty is returned when there are no tokens to evaluate.
	ErrEmpty = errors.New("empty expression")
	// ErrStackUnderflow is returned when an operator has fewer operands than it needs.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnbalanced is returned when more than one value is left after the last token.
	ErrUnbalanced = errors.New("unbalanced expression")
	// ErrNonIntegerExponent is returned when the right operand of "^" is not an integer.
	ErrNonIntegerExponent = errors.New("non-integer exponent")
	// ErrExponentRange is returned when the right operand of "^" exceeds [MaxExponent].
	ErrExponentRange = errors.New("exponent out of range")
)

// MaxExponent bounds the magnitude of exponents accepted by "^".
const MaxExponent = 1 << 16

// stack is never modified in place, every step returns a new one.
type stack []rational.Rational

func (s stack) push(r rational.Rational) stack {
	t := make(stack, len(s), len(s)+1)
	copy(t, s)
	return append(t, r)
}

func (s stack) pop(n int) (stack, []rational.Rational, error) {
	if len(s) < n {
		return nil, nil, fmt.Errorf("%w: need %v operands, have %v", ErrStackUnderflow, n, len(s))
	}
	k := len(s) - n
	return s[:k:k], s[k:], nil
}

type binaryOp func(x, y rational.Rational) (rational.Rational, error)

type unaryOp func(x rational.Rational) (rational.Rational, error)

func total(f func(x, y rational.Rational) rational.Rational) binaryOp {
	return func(x, y rational.Rational) (rational.Rational, error) {
		return f(x, y), nil
	}
}

var binaryOps = map[string]binaryOp{
	"+": total(rational.Rational.Add),
	"-": total(rational.Rational.Sub),
	"*": total(rational.Rational.Mul),
	"/": rational.Rational.Quo,
	"^": pow,
}

var unaryOps = map[string]unaryOp{
	"neg": func(x rational.Rational) (rational.Rational, error) { return x.Neg(), nil },
	"abs": func(x rational.Rational) (rational.Rational, error) { return x.Abs(), nil },
	"inv": rational.Rational.Inv,
}

func pow(x, y rational.Rational) (rational.Rational, error) {
	if !y.IsInt() {
		return rational.Rational{}, fmt.Errorf("%w: %v", ErrNonIntegerExponent, y)
	}
	k, ok := y.Int64()
	if !ok || k > MaxExponent || k < -MaxExponent {
		return rational.Rational{}, fmt.Errorf("%w: %v", ErrExponentRange, y)
	}
	return x.Pow(int(k))
}

// IsOperator returns true if tok is one of the supported operators.
func IsOperator(tok string) bool {
	_, bin := binaryOps[tok]
	_, un := unaryOps[tok]
	return bin || un
}

// ParseOperand converts a token to a rational.
// Both the canonical form ("3/4", "-5") and decimals ("0.75", "1e-3") are
// accepted.
func ParseOperand(tok string) (rational.Rational, error) {
	if r, ok := rational.ParseOpt(tok).Get(); ok {
		return r, nil
	}
	return rational.ParseDecimal(tok)
}

// Tokenize splits an expression on white space.
func Tokenize(expr string) []string {
	return strings.Fields(expr)
}

// Evaluator evaluates expressions.
// The zero value is ready to use and does not log.
type Evaluator struct {
	// Logger receives a debug event for every token, it may be nil.
	Logger *logiface.Logger[logiface.Event]
}

// Eval evaluates the tokens and returns the single value left on the stack.
func (e *Evaluator) Eval(tokens []string) (rational.Rational, error) {
	if len(tokens) == 0 {
		return rational.Rational{}, ErrEmpty
	}

	state := result.Ok(stack(nil))
	for i, tok := range tokens {
		state = result.FlatMap(state, func(s stack) result.Result[stack] {
			next, err := step(s, tok)
			if err != nil {
				return result.Fail[stack](fmt.Errorf("token %v %q: %w", i+1, tok, err))
			}
			return result.Ok(next)
		})
		if s, err := state.Get(); err == nil {
			e.Logger.Debug().
				Str("token", tok).
				Int("depth", len(s)).
				Stringer("top", s[len(s)-1]).
				Log("rpn step")
		}
	}

	final := result.FlatMap(state, func(s stack) result.Result[rational.Rational] {
		if len(s) != 1 {
			return result.Fail[rational.Rational](fmt.Errorf("%w: %v values left", ErrUnbalanced, len(s)))
		}
		return result.Ok(s[0])
	})
	return final.Get()
}

// Eval is a shortcut for evaluating tokens with a zero [Evaluator].
func Eval(tokens ...string) (rational.Rational, error) {
	var e Evaluator
	return e.Eval(tokens)
}

func step(s stack, tok string) (stack, error) {
	if op, ok := binaryOps[tok]; ok {
		rest, args, err := s.pop(2)
		if err != nil {
			return nil, err
		}
		r, err := op(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return rest.push(r), nil
	}
	if op, ok := unaryOps[tok]; ok {
		rest, args, err := s.pop(1)
		if err != nil {
			return nil, err
		}
		r, err := op(args[0])
		if err != nil {
			return nil, err
		}
		return rest.push(r), nil
	}
	r, err := ParseOperand(tok)
	if err != nil {
		return nil, err
	}
	return s.push(r), nil
}
