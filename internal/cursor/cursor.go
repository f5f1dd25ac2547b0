// Package cursor implements the forward-only, big-endian byte reader that
// every other decoding component in this module is built on top of. It is
// the streaming analogue of the offset-based structUnpack helper that a
// fixed-layout binary format (like a PE header) can get away with: class
// files are a sequence of variable-length, self-describing sections, so the
// cursor only ever knows "what's next", never "what's at offset N".
package cursor

import "errors"

// ErrTruncatedInput is returned whenever fewer bytes remain than a read
// requires, including when last_u1/last_u2/last_u4 is asked for history the
// cursor has not yet produced.
var ErrTruncatedInput = errors.New("classfile: truncated input")

// Cursor is a forward-only view over a byte slice. It never copies the
// underlying slice; Sub shares it with the parent.
type Cursor struct {
	data []byte
	pos  int
}

// New wraps data in a Cursor starting at offset 0.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.data) - c.pos }

// U1 reads one byte and advances.
func (c *Cursor) U1() (byte, error) {
	if c.Len() < 1 {
		return 0, ErrTruncatedInput
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// U2 reads a big-endian uint16 and advances.
func (c *Cursor) U2() (uint16, error) {
	if c.Len() < 2 {
		return 0, ErrTruncatedInput
	}
	v := uint16(c.data[c.pos])<<8 | uint16(c.data[c.pos+1])
	c.pos += 2
	return v, nil
}

// U4 reads a big-endian uint32 and advances.
func (c *Cursor) U4() (uint32, error) {
	if c.Len() < 4 {
		return 0, ErrTruncatedInput
	}
	v := uint32(c.data[c.pos])<<24 | uint32(c.data[c.pos+1])<<16 |
		uint32(c.data[c.pos+2])<<8 | uint32(c.data[c.pos+3])
	c.pos += 4
	return v, nil
}

// Bytes reads n raw bytes and advances. The returned slice aliases the
// cursor's backing array; callers that need to retain it past further
// mutation of the source buffer should copy it.
func (c *Cursor) Bytes(n uint32) ([]byte, error) {
	if uint32(c.Len()) < n {
		return nil, ErrTruncatedInput
	}
	b := c.data[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

// LastU1 returns the most recently consumed single byte without advancing.
func (c *Cursor) LastU1() (byte, error) {
	if c.pos < 1 {
		return 0, ErrTruncatedInput
	}
	return c.data[c.pos-1], nil
}

// LastU2 returns the most recently consumed two bytes, interpreted
// big-endian, without advancing.
func (c *Cursor) LastU2() (uint16, error) {
	if c.pos < 2 {
		return 0, ErrTruncatedInput
	}
	return uint16(c.data[c.pos-2])<<8 | uint16(c.data[c.pos-1]), nil
}

// LastU4 returns the most recently consumed four bytes, interpreted
// big-endian, without advancing.
func (c *Cursor) LastU4() (uint32, error) {
	if c.pos < 4 {
		return 0, ErrTruncatedInput
	}
	p := c.pos
	return uint32(c.data[p-4])<<24 | uint32(c.data[p-3])<<16 |
		uint32(c.data[p-2])<<8 | uint32(c.data[p-1]), nil
}

// Sub carves out a fresh cursor over the next length bytes and advances the
// outer cursor past them. A decoder handed the sub-cursor cannot read past
// those length bytes.
func (c *Cursor) Sub(length uint32) (*Cursor, error) {
	b, err := c.Bytes(length)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}
