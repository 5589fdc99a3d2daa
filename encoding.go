package rational

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/vmihailenco/msgpack/v4"
)

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both quoted canonical strings ("3/4") and JSON numbers (0.75, 1e-3) are
// accepted, numbers are converted exactly.
// See also constructors [Parse] and [ParseDecimal].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (r *Rational) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var err error
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		*r, err = parse(string(data[1 : len(data)-1]))
	} else {
		*r, err = ParseDecimal(string(data))
	}
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a quoted canonical string, because JSON numbers
// cannot hold values like 1/3.
// See also method [Rational.String].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (r Rational) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 16)
	text = append(text, '"')
	text = r.append(text)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (r *Rational) UnmarshalText(text []byte) error {
	var err error
	*r, err = parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// See also method [Rational.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (r Rational) AppendText(text []byte) ([]byte, error) {
	return r.append(text), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Rational.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (r Rational) MarshalText() ([]byte, error) {
	return r.append(nil), nil
}

// Binary layout: a sign byte followed by the magnitudes of the numerator and
// the denominator, each as a uvarint length and big-endian bytes.
const (
	binaryZero byte = 0
	binaryPos  byte = 1
	binaryNeg  byte = 2
)

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// Non-canonical pairs are accepted and reduced.
// See also method [Rational.MarshalBinary].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (r *Rational) UnmarshalBinary(data []byte) error {
	var err error
	*r, err = parseBinary(data)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

func parseBinary(data []byte) (Rational, error) {
	if len(data) == 0 {
		return Rational{}, fmt.Errorf("%w: empty data", ErrMalformedInput)
	}
	sign := data[0]
	if sign > binaryNeg {
		return Rational{}, fmt.Errorf("%w: invalid sign byte %v", ErrMalformedInput, sign)
	}
	rest := data[1:]
	num, rest, err := readMagnitude(rest)
	if err != nil {
		return Rational{}, err
	}
	den, rest, err := readMagnitude(rest)
	if err != nil {
		return Rational{}, err
	}
	if len(rest) != 0 {
		return Rational{}, fmt.Errorf("%w: %v trailing bytes", ErrMalformedInput, len(rest))
	}
	if den.Sign() == 0 {
		return Rational{}, fmt.Errorf("%w: zero denominator", ErrMalformedInput)
	}
	if (sign == binaryZero) != (num.Sign() == 0) {
		return Rational{}, fmt.Errorf("%w: inconsistent sign", ErrMalformedInput)
	}
	if sign == binaryNeg {
		num.Neg(num)
	}
	return normalize(num, den)
}

func readMagnitude(data []byte) (*big.Int, []byte, error) {
	l, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: invalid length", ErrMalformedInput)
	}
	data = data[n:]
	if l > uint64(len(data)) {
		return nil, nil, fmt.Errorf("%w: length %v exceeds data", ErrMalformedInput, l)
	}
	return new(big.Int).SetBytes(data[:l]), data[l:], nil
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// See also method [Rational.MarshalBinary].
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (r Rational) AppendBinary(data []byte) ([]byte, error) {
	switch r.Sign() {
	case 0:
		data = append(data, binaryZero)
	case 1:
		data = append(data, binaryPos)
	default:
		data = append(data, binaryNeg)
	}
	for _, x := range [...]*big.Int{r.n(), r.d()} {
		b := x.Bytes()
		data = binary.AppendUvarint(data, uint64(len(b)))
		data = append(data, b...)
	}
	return data, nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// The encoding is a sign byte followed by the length-prefixed big-endian
// magnitudes of the numerator and the denominator.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (r Rational) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(nil)
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// Strings are parsed with [Parse], doubles are converted exactly,
// 32-bit and 64-bit integers are converted directly, null is ignored.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (r *Rational) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 1:
		*r, err = parseBSONDouble(data)
	case 2:
		*r, err = parseBSONString(data)
	case 10:
		// null, do nothing
	case 16:
		*r, err = parseBSONInt32(data)
	case 18:
		*r, err = parseBSONInt64(data)
	default:
		err = fmt.Errorf("%w: BSON type %d is not supported", ErrMalformedInput, typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Rational{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns a BSON string with the canonical form.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (r Rational) MarshalBSONValue() (typ byte, data []byte, err error) {
	return 2, r.bsonString(), nil
}

// parseBSONDouble parses a little-endian BSON double.
func parseBSONDouble(data []byte) (Rational, error) {
	if len(data) != 8 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", ErrMalformedInput, len(data))
	}
	return NewFromFloat64(math.Float64frombits(binary.LittleEndian.Uint64(data)))
}

// parseBSONInt32 parses a little-endian BSON int32.
func parseBSONInt32(data []byte) (Rational, error) {
	if len(data) != 4 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", ErrMalformedInput, len(data))
	}
	return NewFromInt(int32(binary.LittleEndian.Uint32(data))), nil //nolint:gosec
}

// parseBSONInt64 parses a little-endian BSON int64.
func parseBSONInt64(data []byte) (Rational, error) {
	if len(data) != 8 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", ErrMalformedInput, len(data))
	}
	return NewFromInt(int64(binary.LittleEndian.Uint64(data))), nil //nolint:gosec
}

// parseBSONString parses a BSON string: a little-endian int32 length that
// includes the null terminator, the bytes, and the terminator.
func parseBSONString(data []byte) (Rational, error) {
	if len(data) < 4 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", ErrMalformedInput, len(data))
	}
	l := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Rational{}, fmt.Errorf("%w: invalid string length %v", ErrMalformedInput, l)
	}
	if data[l+4-1] != 0 {
		return Rational{}, fmt.Errorf("%w: invalid null terminator %v", ErrMalformedInput, data[l+4-1])
	}
	return parse(string(data[4 : l+4-1]))
}

// bsonString returns the BSON string representation of the rational.
func (r Rational) bsonString() []byte {
	s := r.String()
	l := len(s) + 1
	data := make([]byte, 4, 4+l)
	binary.LittleEndian.PutUint32(data, uint32(l)) //nolint:gosec
	data = append(data, s...)
	return append(data, 0)
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
// The rational is encoded as a msgpack string with its canonical form.
//
// [msgpack.CustomEncoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#CustomEncoder
func (r Rational) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(r.String())
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
//
// [msgpack.CustomDecoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#CustomDecoder
func (r *Rational) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("decoding %T: %w", Rational{}, err)
	}
	*r, err = parse(s)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", Rational{}, err)
	}
	return nil
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices are parsed with [Parse], integers and floats are
// converted exactly.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (r *Rational) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*r, err = parse(value)
	case []byte:
		*r, err = parse(string(value))
	case int64:
		*r = NewFromInt64(value)
	case float64:
		*r, err = NewFromFloat64(value)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Rational{}, NullRational{}, Rational{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Rational{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The canonical form is stored, so that no precision is lost.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (r Rational) Value() (driver.Value, error) {
	return r.String(), nil
}

// NullRational represents a rational that can be null.
// Its zero value is null.
// NullRational is not thread-safe.
type NullRational struct {
	Rational Rational
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Rational.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullRational) Scan(value any) error {
	if value == nil {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Rational.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullRational) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Rational.Value()
}
