package rational

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/vmihailenco/msgpack/v4"
)

func TestRational_MarshalJSON(t *testing.T) {
	tests := []struct {
		r    string
		want string
	}{
		{"0/1", `"0/1"`},
		{"-3/4", `"-3/4"`},
		{"5/1", `"5/1"`},
	}
	for _, tt := range tests {
		r := MustParse(tt.r)
		got, err := json.Marshal(r)
		if err != nil {
			t.Errorf("json.Marshal(%q) failed: %v", r, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("json.Marshal(%q) = %s, want %s", r, got, tt.want)
		}
	}

	type payment struct {
		Share Rational `json:"share"`
	}
	got, err := json.Marshal(payment{Share: MustNew(1, 3)})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if want := `{"share":"1/3"}`; string(got) != want {
		t.Errorf("json.Marshal = %s, want %s", got, want)
	}
}

func TestRational_UnmarshalJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			data, want string
		}{
			{`"3/4"`, "3/4"},
			{`"-6/8"`, "-3/4"},
			{`"7"`, "7/1"},
			{`0.75`, "3/4"},
			{`1e-3`, "1/1000"},
			{`-5`, "-5/1"},
		}
		for _, tt := range tests {
			var got Rational
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Errorf("json.Unmarshal(%s) failed: %v", tt.data, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("json.Unmarshal(%s) = %q, want %q", tt.data, s, tt.want)
			}
		}
	})

	t.Run("null", func(t *testing.T) {
		got := MustNew(1, 2)
		if err := json.Unmarshal([]byte("null"), &got); err != nil {
			t.Fatalf("json.Unmarshal(null) failed: %v", err)
		}
		if s := got.String(); s != "1/2" {
			t.Errorf("json.Unmarshal(null) changed the value to %q", s)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{`""`, `"abc"`, `"1/0"`, `"0.5"`, `true`, `{}`, `1e50000000`, `-2e-2000000000`}
		for _, data := range tests {
			var got Rational
			err := got.UnmarshalJSON([]byte(data))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("UnmarshalJSON(%s) returned %v, want %v", data, err, ErrMalformedInput)
			}
		}
	})
}

func TestRational_Text(t *testing.T) {
	for _, s := range samples {
		r := MustParse(s)
		text, err := r.MarshalText()
		if err != nil {
			t.Errorf("%q.MarshalText() failed: %v", r, err)
			continue
		}
		var got Rational
		if err := got.UnmarshalText(text); err != nil {
			t.Errorf("UnmarshalText(%s) failed: %v", text, err)
			continue
		}
		if !got.Equal(r) {
			t.Errorf("UnmarshalText(%s) = %q, want %q", text, got, r)
		}
	}

	got, err := MustNew(1, 2).AppendText([]byte("x="))
	if err != nil {
		t.Fatalf("AppendText failed: %v", err)
	}
	if string(got) != "x=1/2" {
		t.Errorf("AppendText = %q, want %q", got, "x=1/2")
	}

	var r Rational
	if err := r.UnmarshalText([]byte("1/0")); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("UnmarshalText(1/0) returned %v, want %v", err, ErrMalformedInput)
	}
}

func TestRational_MarshalBinary(t *testing.T) {
	tests := []struct {
		r    string
		want []byte
	}{
		{"0/1", []byte{0, 0, 1, 1}},
		{"3/4", []byte{1, 1, 3, 1, 4}},
		{"-3/4", []byte{2, 1, 3, 1, 4}},
		{"256/1", []byte{1, 2, 1, 0, 1, 1}},
	}
	for _, tt := range tests {
		r := MustParse(tt.r)
		got, err := r.MarshalBinary()
		if err != nil {
			t.Errorf("%q.MarshalBinary() failed: %v", r, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("%q.MarshalBinary() = %v, want %v", r, got, tt.want)
		}
	}
}

func TestRational_UnmarshalBinary(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range samples {
			r := MustParse(s)
			data, err := r.MarshalBinary()
			if err != nil {
				t.Errorf("%q.MarshalBinary() failed: %v", r, err)
				continue
			}
			var got Rational
			if err := got.UnmarshalBinary(data); err != nil {
				t.Errorf("UnmarshalBinary(%v) failed: %v", data, err)
				continue
			}
			if !got.Equal(r) {
				t.Errorf("UnmarshalBinary(%v) = %q, want %q", data, got, r)
			}
		}
	})

	t.Run("non-canonical", func(t *testing.T) {
		var got Rational
		if err := got.UnmarshalBinary([]byte{2, 1, 6, 1, 8}); err != nil {
			t.Fatalf("UnmarshalBinary failed: %v", err)
		}
		if s := got.String(); s != "-3/4" {
			t.Errorf("UnmarshalBinary = %q, want %q", s, "-3/4")
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string][]byte{
			"empty":             {},
			"invalid sign":      {3, 1, 3, 1, 4},
			"missing num":       {1},
			"truncated varint":  {1, 0x80},
			"num too long":      {1, 5, 3},
			"missing den":       {1, 1, 3},
			"den too long":      {1, 1, 3, 2, 4},
			"trailing bytes":    {1, 1, 3, 1, 4, 0},
			"zero den":          {1, 1, 3, 0},
			"zero with nonzero": {0, 1, 3, 1, 4},
			"positive zero":     {1, 0, 1, 1},
		}
		for name, data := range tests {
			t.Run(name, func(t *testing.T) {
				var got Rational
				err := got.UnmarshalBinary(data)
				if !errors.Is(err, ErrMalformedInput) {
					t.Errorf("UnmarshalBinary(%v) returned %v, want %v", data, err, ErrMalformedInput)
				}
			})
		}
	})
}

func bsonDouble(f float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f))
}

func TestRational_UnmarshalBSONValue(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			typ  byte
			data []byte
			want string
		}{
			{1, bsonDouble(0.5), "1/2"},
			{1, bsonDouble(-0.1), "-3602879701896397/36028797018963968"},
			{2, []byte{4, 0, 0, 0, '1', '/', '2', 0}, "1/2"},
			{2, []byte{3, 0, 0, 0, '-', '7', 0}, "-7/1"},
			{16, binary.LittleEndian.AppendUint32(nil, 0xfffffff9), "-7/1"},
			{18, binary.LittleEndian.AppendUint64(nil, 1<<40), "1099511627776/1"},
		}
		for _, tt := range tests {
			var got Rational
			if err := got.UnmarshalBSONValue(tt.typ, tt.data); err != nil {
				t.Errorf("UnmarshalBSONValue(%v, %v) failed: %v", tt.typ, tt.data, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("UnmarshalBSONValue(%v, %v) = %q, want %q", tt.typ, tt.data, s, tt.want)
			}
		}
	})

	t.Run("null", func(t *testing.T) {
		got := MustNew(2, 3)
		if err := got.UnmarshalBSONValue(10, nil); err != nil {
			t.Fatalf("UnmarshalBSONValue(10, nil) failed: %v", err)
		}
		if s := got.String(); s != "2/3" {
			t.Errorf("UnmarshalBSONValue(10, nil) changed the value to %q", s)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			typ  byte
			data []byte
			want error
		}{
			"unsupported type": {3, nil, ErrMalformedInput},
			"short double":     {1, []byte{0, 0, 0}, ErrMalformedInput},
			"nan":              {1, bsonDouble(math.NaN()), ErrUnrepresentableValue},
			"inf":              {1, bsonDouble(math.Inf(1)), ErrUnrepresentableValue},
			"short string":     {2, []byte{1, 0}, ErrMalformedInput},
			"long string":      {2, []byte{9, 0, 0, 0, '1', 0}, ErrMalformedInput},
			"no terminator":    {2, []byte{2, 0, 0, 0, '1', '2'}, ErrMalformedInput},
			"zero den string":  {2, []byte{4, 0, 0, 0, '1', '/', '0', 0}, ErrMalformedInput},
			"short int32":      {16, []byte{1, 2}, ErrMalformedInput},
			"short int64":      {18, []byte{1, 2, 3, 4}, ErrMalformedInput},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				var got Rational
				err := got.UnmarshalBSONValue(tt.typ, tt.data)
				if !errors.Is(err, tt.want) {
					t.Errorf("UnmarshalBSONValue(%v, %v) returned %v, want %v", tt.typ, tt.data, err, tt.want)
				}
			})
		}
	})
}

func TestRational_MarshalBSONValue(t *testing.T) {
	for _, s := range samples {
		r := MustParse(s)
		typ, data, err := r.MarshalBSONValue()
		if err != nil {
			t.Errorf("%q.MarshalBSONValue() failed: %v", r, err)
			continue
		}
		if typ != 2 {
			t.Errorf("%q.MarshalBSONValue() type = %v, want 2", r, typ)
		}
		var got Rational
		if err := got.UnmarshalBSONValue(typ, data); err != nil {
			t.Errorf("UnmarshalBSONValue(%v, %v) failed: %v", typ, data, err)
			continue
		}
		if !got.Equal(r) {
			t.Errorf("UnmarshalBSONValue(%v, %v) = %q, want %q", typ, data, got, r)
		}
	}
}

func TestRational_Msgpack(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range samples {
			r := MustParse(s)
			data, err := msgpack.Marshal(r)
			if err != nil {
				t.Errorf("msgpack.Marshal(%q) failed: %v", r, err)
				continue
			}
			var got Rational
			if err := msgpack.Unmarshal(data, &got); err != nil {
				t.Errorf("msgpack.Unmarshal(%q) failed: %v", r, err)
				continue
			}
			if !got.Equal(r) {
				t.Errorf("msgpack.Unmarshal = %q, want %q", got, r)
			}
		}
	})

	t.Run("struct", func(t *testing.T) {
		type ledger struct {
			Rate  Rational
			Label string
		}
		want := ledger{Rate: MustNew(-22, 7), Label: "pi"}
		data, err := msgpack.Marshal(want)
		if err != nil {
			t.Fatalf("msgpack.Marshal failed: %v", err)
		}
		var got ledger
		if err := msgpack.Unmarshal(data, &got); err != nil {
			t.Fatalf("msgpack.Unmarshal failed: %v", err)
		}
		if !got.Rate.Equal(want.Rate) || got.Label != want.Label {
			t.Errorf("msgpack.Unmarshal = %+v, want %+v", got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		data, err := msgpack.Marshal("1/0")
		if err != nil {
			t.Fatalf("msgpack.Marshal failed: %v", err)
		}
		var got Rational
		if err := msgpack.Unmarshal(data, &got); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("msgpack.Unmarshal(%q) returned %v, want %v", "1/0", err, ErrMalformedInput)
		}

		data, err = msgpack.Marshal(true)
		if err != nil {
			t.Fatalf("msgpack.Marshal failed: %v", err)
		}
		if err := msgpack.Unmarshal(data, &got); err == nil {
			t.Errorf("msgpack.Unmarshal(true) did not fail")
		}
	})
}

func TestRational_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			value any
			want  string
		}{
			{"1/2", "1/2"},
			{[]byte("-6/4"), "-3/2"},
			{int64(42), "42/1"},
			{0.25, "1/4"},
		}
		for _, tt := range tests {
			var got Rational
			if err := got.Scan(tt.value); err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.value, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.value, s, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []any{nil, true, "1/0", math.Inf(1), int32(4)}
		for _, value := range tests {
			var got Rational
			if err := got.Scan(value); err == nil {
				t.Errorf("Scan(%v) did not fail", value)
			}
		}
	})
}

func TestRational_Value(t *testing.T) {
	got, err := MustNew(-2, 6).Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if got != "-1/3" {
		t.Errorf("Value() = %v, want %v", got, "-1/3")
	}
}

func TestNullRational(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		n := NullRational{Rational: MustNew(1, 2), Valid: true}
		if err := n.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) failed: %v", err)
		}
		if n.Valid || !n.Rational.IsZero() {
			t.Errorf("Scan(nil) = %+v, want invalid zero", n)
		}
		v, err := n.Value()
		if err != nil || v != nil {
			t.Errorf("Value() = [%v %v], want [<nil> <nil>]", v, err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		var n NullRational
		if err := n.Scan("5/10"); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if !n.Valid || n.Rational.String() != "1/2" {
			t.Errorf("Scan(%q) = %+v, want valid 1/2", "5/10", n)
		}
		v, err := n.Value()
		if err != nil || v != "1/2" {
			t.Errorf("Value() = [%v %v], want [1/2 <nil>]", v, err)
		}
	})

	t.Run("error", func(t *testing.T) {
		var n NullRational
		if err := n.Scan(false); err == nil {
			t.Errorf("Scan(false) did not fail")
		}
	})
}
