// Package hashcode folds a sequence of fields into a deterministic 64-bit digest.
//
// Every field is written with a length prefix, so that ("ab", "c") and
// ("a", "bc") produce different digests.
// The digest is computed with [xxhash] and is stable across processes and
// platforms, which makes it suitable for persisted keys and sharding.
//
// [xxhash]: https://github.com/cespare/xxhash
package hashcode

import (
	"encoding/binary"
	"math/big"

	"github.com/cespare/xxhash/v2"
)

// Field tags written ahead of every field.
const (
	tagBytes  byte = 'b'
	tagUint64 byte = 'u'
	tagIntPos byte = '+'
	tagIntNeg byte = '-'
	tagIntNil byte = '0'
)

// Combiner accumulates fields into a digest.
// The zero value is not usable, use [New].
// Combiner is not safe for concurrent use.
type Combiner struct {
	d   *xxhash.Digest
	buf [1 + binary.MaxVarintLen64]byte
}

// New returns an empty combiner.
func New() *Combiner {
	return &Combiner{d: xxhash.New()}
}

// Reset discards all fields written so far.
func (c *Combiner) Reset() {
	c.d.Reset()
}

func (c *Combiner) header(tag byte, n int) {
	c.buf[0] = tag
	l := binary.PutUvarint(c.buf[1:], uint64(n)) //nolint:gosec
	c.d.Write(c.buf[:1+l])                       //nolint:errcheck
}

// Bytes adds a byte slice field.
func (c *Combiner) Bytes(b []byte) *Combiner {
	c.header(tagBytes, len(b))
	c.d.Write(b) //nolint:errcheck
	return c
}

// String adds a string field.
// It produces the same digest as [Combiner.Bytes] with the same content.
func (c *Combiner) String(s string) *Combiner {
	c.header(tagBytes, len(s))
	c.d.WriteString(s) //nolint:errcheck
	return c
}

// Uint64 adds a fixed-width integer field.
func (c *Combiner) Uint64(u uint64) *Combiner {
	c.buf[0] = tagUint64
	binary.BigEndian.PutUint64(c.buf[1:9], u)
	c.d.Write(c.buf[:9]) //nolint:errcheck
	return c
}

// Int adds an arbitrary-precision integer field.
// A nil integer is treated as zero.
func (c *Combiner) Int(x *big.Int) *Combiner {
	switch {
	case x == nil || x.Sign() == 0:
		c.header(tagIntNil, 0)
	case x.Sign() < 0:
		b := x.Bytes()
		c.header(tagIntNeg, len(b))
		c.d.Write(b) //nolint:errcheck
	default:
		b := x.Bytes()
		c.header(tagIntPos, len(b))
		c.d.Write(b) //nolint:errcheck
	}
	return c
}

// Sum64 returns the digest of all fields written so far.
// It does not change the state of the combiner.
func (c *Combiner) Sum64() uint64 {
	return c.d.Sum64()
}

// Of returns the digest of the given byte fields.
func Of(fields ...[]byte) uint64 {
	c := New()
	for _, f := range fields {
		c.Bytes(f)
	}
	return c.Sum64()
}

// Combine folds already computed digests into a single one.
// The order of arguments matters.
func Combine(hashes ...uint64) uint64 {
	c := New()
	for _, h := range hashes {
		c.Uint64(h)
	}
	return c.Sum64()
}
