package cbor

import (
	"encoding/binary"
	"math"
	"math/big"
)

var be = binary.BigEndian

// TagHandler decodes the item following a tag the application has
// registered for. The handler receives the decoder positioned just past
// the tag header and the tag number, and is responsible for consuming
// the tagged item and returning its interpretation.
type TagHandler func(d *Decoder, tag uint64) (any, error)

// Decoder is a cursor over a read-only byte buffer. It decodes one item
// per call, advancing monotonically from its start offset toward its
// exclusive limit. A Decoder is single-use per buffer region and must
// not be shared between goroutines; the buffer is never written to, so
// two decoders may alias the same storage over disjoint windows.
type Decoder struct {
	buf   []byte
	pos   int
	limit int

	handlers map[uint64]TagHandler

	// depth counts the container/tag nesting of the decode in flight so
	// adversarial nesting fails with ErrMaxDepthExceeded instead of
	// exhausting the stack.
	depth int

	// sub is the lazily-created decoder reused for embedded (tag 24)
	// payloads; it is rebound on every nested decode.
	sub *Decoder

	// scratch accumulates chunked string runs between resets.
	scratch *ByteBuffer
}

// NewDecoder constructs a Decoder over the whole of b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b, limit: len(b)}
}

// NewDecoderWindow constructs a Decoder over b[start:end). It panics if
// the window does not lie within b; that is a programming error, not a
// data error.
func NewDecoderWindow(b []byte, start, end int) *Decoder {
	if start < 0 || end > len(b) || start > end {
		panic("cbor: decoder window out of range")
	}
	return &Decoder{buf: b, pos: start, limit: end}
}

// RegisterTag installs a handler for a tag number. Tags without a
// handler and without a built-in interpretation decode transparently:
// the tagged item is returned as if the tag were absent.
func (d *Decoder) RegisterTag(tag uint64, h TagHandler) {
	if d.handlers == nil {
		d.handlers = make(map[uint64]TagHandler)
	}
	d.handlers[tag] = h
}

// Offset returns the current read offset within the backing buffer.
func (d *Decoder) Offset() int { return d.pos }

// Remaining returns the number of unread bytes in the window.
func (d *Decoder) Remaining() int { return d.limit - d.pos }

// Peek returns the byte at the cursor without consuming it.
func (d *Decoder) Peek() (byte, error) {
	if d.pos >= d.limit {
		return 0, ErrIncomplete
	}
	return d.buf[d.pos], nil
}

// EnsureAvailable fails with ErrIncomplete if fewer than n bytes remain.
// It never moves the cursor.
func (d *Decoder) EnsureAvailable(n int) error {
	if d.limit-d.pos < n {
		return ErrIncomplete
	}
	return nil
}

// Consume advances the cursor by n bytes unconditionally. Callers must
// have verified availability with EnsureAvailable first.
func (d *Decoder) Consume(n int) { d.pos += n }

// Drain returns an owned copy of all bytes between the cursor and the
// limit and advances the cursor to the limit.
func (d *Decoder) Drain() []byte {
	out := make([]byte, d.limit-d.pos)
	copy(out, d.buf[d.pos:d.limit])
	d.pos = d.limit
	return out
}

// Mark returns a checkpoint of the current cursor position. Composite
// reads are not atomic: a failure partway through a multi-field item
// leaves the cursor past whatever sub-items were fully read. Callers
// that need transactional retry snapshot with Mark and restore with
// ResetTo.
func (d *Decoder) Mark() int { return d.pos }

// ResetTo rolls the cursor back to a position previously obtained from
// Mark.
func (d *Decoder) ResetTo(mark int) { d.pos = mark }

// subDecoder rebinds the reusable nested decoder to a new buffer
// window. At most one nested decode is in flight per parent at a time.
func (d *Decoder) subDecoder(b []byte, start, end int) *Decoder {
	if d.sub == nil {
		d.sub = &Decoder{}
	}
	s := d.sub
	s.buf = b
	s.pos = start
	s.limit = end
	s.handlers = d.handlers
	s.depth = d.depth
	return s
}

// argument is the decoded length/value field of a type byte: either a
// native magnitude, an arbitrary-precision one when it exceeds
// maxSafeInt, or the indefinite-length marker.
type argument struct {
	u     uint64
	big   *big.Int
	indef bool
}

// uint64 returns the raw magnitude regardless of representation.
func (a argument) uint64() uint64 {
	if a.big != nil {
		return a.big.Uint64()
	}
	return a.u
}

// length narrows the magnitude to a native int for use as a byte count
// or element count.
func (a argument) length() (int, error) {
	u := a.uint64()
	if u > math.MaxInt {
		return 0, LengthOverflowError{Value: u}
	}
	return int(u), nil
}

// readArgument decodes the type byte at the cursor and its extension
// bytes. The major type must match expectMajor. Each branch consumes
// exactly 1 + extension bytes, and availability of that whole span is
// checked before any byte is consumed.
func (d *Decoder) readArgument(expectMajor uint8) (argument, error) {
	c, err := d.Peek()
	if err != nil {
		return argument{}, err
	}
	if major := getMajorType(c); major != expectMajor {
		return argument{}, badPrefix(major, expectMajor)
	}

	add := getAddInfo(c)
	switch {
	case add <= addInfoDirect:
		d.Consume(1)
		return argument{u: uint64(add)}, nil
	case add == addInfoUint8:
		if err := d.EnsureAvailable(2); err != nil {
			return argument{}, err
		}
		v := uint64(d.buf[d.pos+1])
		d.Consume(2)
		return argument{u: v}, nil
	case add == addInfoUint16:
		if err := d.EnsureAvailable(3); err != nil {
			return argument{}, err
		}
		v := uint64(be.Uint16(d.buf[d.pos+1:]))
		d.Consume(3)
		return argument{u: v}, nil
	case add == addInfoUint32:
		if err := d.EnsureAvailable(5); err != nil {
			return argument{}, err
		}
		v := uint64(be.Uint32(d.buf[d.pos+1:]))
		d.Consume(5)
		return argument{u: v}, nil
	case add == addInfoUint64:
		if err := d.EnsureAvailable(9); err != nil {
			return argument{}, err
		}
		hi := uint64(be.Uint32(d.buf[d.pos+1:]))
		lo := uint64(be.Uint32(d.buf[d.pos+5:]))
		d.Consume(9)
		v := hi<<32 | lo
		if v > maxSafeInt {
			return argument{big: new(big.Int).SetUint64(v)}, nil
		}
		return argument{u: v}, nil
	case add == addInfoIndefinite:
		// Only strings and containers have an indefinite-length form.
		switch expectMajor {
		case majorTypeBytes, majorTypeText, majorTypeArray, majorTypeMap:
			d.Consume(1)
			return argument{indef: true}, nil
		}
		return argument{}, InvalidAdditionalInfoError{Major: expectMajor, Info: add}
	default:
		// 28-30 are reserved in every major type.
		return argument{}, InvalidAdditionalInfoError{Major: expectMajor, Info: add}
	}
}
