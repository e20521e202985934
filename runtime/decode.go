package cbor

import (
	"math"
	"math/big"
)

var bigOne = big.NewInt(1)

// DecodeValue decodes whatever item is at the cursor, dispatching on
// its major type. See the package comment in value.go for the Go
// representations used. Every level of container and tag nesting
// passes through here, so this is where the recursion limit applies.
func (d *Decoder) DecodeValue() (any, error) {
	if d.depth >= recursionLimit {
		return nil, ErrMaxDepthExceeded
	}
	d.depth++
	v, err := d.decodeValue()
	d.depth--
	return v, err
}

func (d *Decoder) decodeValue() (any, error) {
	c, err := d.Peek()
	if err != nil {
		return nil, err
	}

	switch getMajorType(c) {
	case majorTypeUint, majorTypeNegInt:
		return d.DecodeInt()
	case majorTypeBytes:
		return d.DecodeBytes()
	case majorTypeText:
		return d.DecodeString()
	case majorTypeArray:
		return d.DecodeArray()
	case majorTypeMap:
		return d.DecodeMap()
	case majorTypeTag:
		return d.decodeTag()
	default: // majorTypeSimple
		return d.decodeSimple(c)
	}
}

func (d *Decoder) decodeSimple(c byte) (any, error) {
	switch add := getAddInfo(c); add {
	case simpleFalse:
		d.Consume(1)
		return false, nil
	case simpleTrue:
		d.Consume(1)
		return true, nil
	case simpleNull:
		d.Consume(1)
		return nil, nil
	case simpleUndefined:
		d.Consume(1)
		return Undefined, nil
	case simpleFloat16, simpleFloat32, simpleFloat64:
		return d.DecodeFloat()
	case simpleBreak:
		return nil, ErrUnexpectedBreak
	case addInfoUint8: // 0xf8 XX
		if err := d.EnsureAvailable(2); err != nil {
			return nil, err
		}
		v := SimpleValue(d.buf[d.pos+1])
		d.Consume(2)
		return v, nil
	default:
		if add < simpleFalse {
			d.Consume(1)
			return SimpleValue(add), nil
		}
		return nil, InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
	}
}

// DecodeBool decodes a boolean.
func (d *Decoder) DecodeBool() (bool, error) {
	c, err := d.Peek()
	if err != nil {
		return false, err
	}
	switch c {
	case makeByte(majorTypeSimple, simpleTrue):
		d.Consume(1)
		return true, nil
	case makeByte(majorTypeSimple, simpleFalse):
		d.Consume(1)
		return false, nil
	}
	return false, TypeError{Method: BoolType, Encoded: getType(c)}
}

// DecodeInt decodes a signed integer, returning int64 for magnitudes
// up to 2^53-1 and *big.Int beyond. A big-integer tag (2 or 3) at the
// cursor is accepted and delegated to DecodeBigInt.
func (d *Decoder) DecodeInt() (any, error) {
	c, err := d.Peek()
	if err != nil {
		return nil, err
	}

	switch getMajorType(c) {
	case majorTypeUint:
		a, err := d.readArgument(majorTypeUint)
		if err != nil {
			return nil, err
		}
		if a.big != nil {
			return a.big, nil
		}
		return int64(a.u), nil

	case majorTypeNegInt:
		// the wire stores -(value+1)
		a, err := d.readArgument(majorTypeNegInt)
		if err != nil {
			return nil, err
		}
		if a.big != nil {
			n := new(big.Int).Add(a.big, bigOne)
			return n.Neg(n), nil
		}
		return -1 - int64(a.u), nil

	case majorTypeTag:
		return d.DecodeBigInt()

	default:
		return nil, TypeError{Method: IntType, Encoded: getType(c)}
	}
}

// DecodeBigInt decodes a big-integer tag (2 or 3) over a byte string.
// The payload bytes are a big-endian unsigned magnitude; tag 3 yields
// -(magnitude+1).
func (d *Decoder) DecodeBigInt() (*big.Int, error) {
	c, err := d.Peek()
	if err != nil {
		return nil, err
	}
	if getMajorType(c) != majorTypeTag {
		return nil, InvalidTagError{Tag: uint64(c)}
	}

	mark := d.Mark()
	a, err := d.readArgument(majorTypeTag)
	if err != nil {
		return nil, err
	}
	tag := a.uint64()
	if tag != tagPosBignum && tag != tagNegBignum {
		d.ResetTo(mark)
		return nil, InvalidTagError{Tag: tag}
	}

	payload, err := d.DecodeBytes()
	if err != nil {
		return nil, err
	}
	mag := new(big.Int).SetBytes(payload)
	if tag == tagNegBignum {
		mag.Add(mag, bigOne)
		mag.Neg(mag)
	}
	return mag, nil
}

// DecodeFloat decodes a half-, single- or double-precision float as a
// float64.
func (d *Decoder) DecodeFloat() (float64, error) {
	c, err := d.Peek()
	if err != nil {
		return 0, err
	}
	if getMajorType(c) != majorTypeSimple {
		return 0, TypeError{Method: FloatType, Encoded: getType(c)}
	}

	switch getAddInfo(c) {
	case simpleFloat16:
		if err := d.EnsureAvailable(3); err != nil {
			return 0, err
		}
		bits := be.Uint16(d.buf[d.pos+1:])
		d.Consume(3)
		return float16BitsToFloat64(bits), nil
	case simpleFloat32:
		if err := d.EnsureAvailable(5); err != nil {
			return 0, err
		}
		bits := be.Uint32(d.buf[d.pos+1:])
		d.Consume(5)
		return float64(math.Float32frombits(bits)), nil
	case simpleFloat64:
		if err := d.EnsureAvailable(9); err != nil {
			return 0, err
		}
		bits := be.Uint64(d.buf[d.pos+1:])
		d.Consume(9)
		return math.Float64frombits(bits), nil
	default:
		return 0, TypeError{Method: FloatType, Encoded: getType(c)}
	}
}

// float16BitsToFloat64 converts IEEE 754 binary16 bits. There is no
// native half-precision primitive, so the layout is unpacked by hand:
// sign bit 15, 5-bit exponent, 10-bit mantissa.
func float16BitsToFloat64(h uint16) float64 {
	sign := 1.0
	if h&0x8000 != 0 {
		sign = -1.0
	}
	exp := int(h>>10) & 0x1f
	mant := int(h & 0x03ff)

	switch exp {
	case 0:
		// zero or subnormal: sign * 2^-24 * mant
		return sign * math.Ldexp(float64(mant), -24)
	case 0x1f:
		if mant != 0 {
			return math.NaN()
		}
		return sign * math.Inf(1)
	default:
		// sign * 2^(exp-25) * (1024+mant)
		return sign * math.Ldexp(float64(1024+mant), exp-25)
	}
}

// DecodeNumber decodes any numeric item: floats, integers, big-integer
// tags and decimal-fraction tags. Anything else fails with
// ErrNotANumber.
func (d *Decoder) DecodeNumber() (any, error) {
	c, err := d.Peek()
	if err != nil {
		return nil, err
	}

	switch getMajorType(c) {
	case majorTypeSimple:
		switch getAddInfo(c) {
		case simpleFloat16, simpleFloat32, simpleFloat64:
			return d.DecodeFloat()
		}
		return nil, ErrNotANumber

	case majorTypeUint, majorTypeNegInt:
		return d.DecodeInt()

	case majorTypeTag:
		mark := d.Mark()
		a, err := d.readArgument(majorTypeTag)
		if err != nil {
			return nil, err
		}
		d.ResetTo(mark)
		switch a.uint64() {
		case tagPosBignum, tagNegBignum:
			return d.DecodeBigInt()
		case tagDecimalFrac:
			return d.DecodeDecimal()
		}
		return nil, ErrNotANumber

	default:
		return nil, ErrNotANumber
	}
}

// DecodeDecimal decodes a decimal-fraction tag (4): a two-element array
// [scale, unscaled]. The result is Unscaled x 10^(-scale).
func (d *Decoder) DecodeDecimal() (Decimal, error) {
	c, err := d.Peek()
	if err != nil {
		return Decimal{}, err
	}
	if getMajorType(c) != majorTypeTag {
		return Decimal{}, InvalidTagError{Tag: uint64(c)}
	}

	mark := d.Mark()
	a, err := d.readArgument(majorTypeTag)
	if err != nil {
		return Decimal{}, err
	}
	if tag := a.uint64(); tag != tagDecimalFrac {
		d.ResetTo(mark)
		return Decimal{}, InvalidTagError{Tag: tag}
	}

	n, err := d.DecodeArrayLength()
	if err != nil {
		return Decimal{}, err
	}
	if n >= 0 && n != 2 {
		return Decimal{}, ErrMalformedDecimal
	}

	scale, err := d.decodeScale()
	if err != nil {
		return Decimal{}, err
	}
	unscaled, err := d.decodeUnscaled()
	if err != nil {
		return Decimal{}, err
	}

	if n < 0 {
		// indefinite form must close right after the second element
		c, err := d.Peek()
		if err != nil {
			return Decimal{}, err
		}
		if c != makeByte(majorTypeSimple, simpleBreak) {
			return Decimal{}, ErrMalformedDecimal
		}
		d.Consume(1)
	}

	return Decimal{Unscaled: unscaled, Exponent: -scale}, nil
}

func (d *Decoder) decodeScale() (int64, error) {
	v, err := d.DecodeInt()
	if err != nil {
		return 0, err
	}
	s, ok := v.(int64)
	if !ok {
		return 0, ErrMalformedDecimal
	}
	return s, nil
}

func (d *Decoder) decodeUnscaled() (*big.Int, error) {
	v, err := d.DecodeInt()
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case int64:
		return big.NewInt(x), nil
	case *big.Int:
		return x, nil
	}
	return nil, ErrMalformedDecimal
}

// DecodeBytes decodes a byte string, definite or chunked, returning an
// owned copy.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	bb, err := d.readChunks(majorTypeBytes)
	if err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// DecodeString decodes a text string, definite or chunked. Definite
// runs are read straight out of the buffer without touching the
// accumulator.
func (d *Decoder) DecodeString() (string, error) {
	c, err := d.Peek()
	if err != nil {
		return "", err
	}
	if getMajorType(c) == majorTypeText && getAddInfo(c) != addInfoIndefinite {
		a, err := d.readArgument(majorTypeText)
		if err != nil {
			return "", err
		}
		n, err := a.length()
		if err != nil {
			return "", err
		}
		if err := d.EnsureAvailable(n); err != nil {
			return "", err
		}
		v := d.buf[d.pos : d.pos+n]
		if ValidateUTF8OnDecode && !isUTF8Valid(v) {
			return "", ErrInvalidUTF8
		}
		d.Consume(n)
		if UnsafeStringDecode {
			return UnsafeString(v), nil
		}
		return string(v), nil
	}

	bb, err := d.readChunks(majorTypeText)
	if err != nil {
		return "", err
	}
	if ValidateUTF8OnDecode && !isUTF8Valid(bb.Bytes()) {
		return "", ErrInvalidUTF8
	}
	return string(bb.Bytes()), nil
}

// readChunks gathers one string run into the decoder's accumulator,
// which is reset before each independent use.
func (d *Decoder) readChunks(major uint8) (*ByteBuffer, error) {
	if d.scratch == nil {
		d.scratch = new(ByteBuffer)
	}
	d.scratch.Reset()
	if err := d.appendRun(d.scratch, major, 0); err != nil {
		return nil, err
	}
	return d.scratch, nil
}

// appendRun appends one definite run, or the concatenation of an
// indefinite run's chunks up to the stop marker, into bb. Chunks must
// share the parent's major type.
func (d *Decoder) appendRun(bb *ByteBuffer, major uint8, depth int) error {
	if depth > recursionLimit {
		return ErrMaxDepthExceeded
	}
	a, err := d.readArgument(major)
	if err != nil {
		return err
	}
	if a.indef {
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				return nil
			}
			if err := d.appendRun(bb, major, depth+1); err != nil {
				return err
			}
		}
	}

	n, err := a.length()
	if err != nil {
		return err
	}
	if err := d.EnsureAvailable(n); err != nil {
		return err
	}
	bb.Write(d.buf[d.pos : d.pos+n])
	d.Consume(n)
	return nil
}

// DecodeArrayLength decodes an array header, returning -1 for the
// indefinite-length form.
func (d *Decoder) DecodeArrayLength() (int, error) {
	return d.decodeLength(majorTypeArray)
}

// DecodeMapLength decodes a map header, returning -1 for the
// indefinite-length form.
func (d *Decoder) DecodeMapLength() (int, error) {
	return d.decodeLength(majorTypeMap)
}

func (d *Decoder) decodeLength(major uint8) (int, error) {
	a, err := d.readArgument(major)
	if err != nil {
		return 0, err
	}
	if a.indef {
		return -1, nil
	}
	return a.length()
}

// ProcessArray decodes an array header and invokes elem once per
// element. Indefinite arrays run until the stop marker; definite ones
// run for the declared count, with an early stop marker honored.
func (d *Decoder) ProcessArray(elem func() error) error {
	n, err := d.DecodeArrayLength()
	if err != nil {
		return err
	}
	return d.processItems(n, elem)
}

// ProcessMap decodes a map header and invokes entry once per key/value
// pair; the callback must consume both items.
func (d *Decoder) ProcessMap(entry func() error) error {
	n, err := d.DecodeMapLength()
	if err != nil {
		return err
	}
	return d.processItems(n, entry)
}

func (d *Decoder) processItems(n int, each func() error) error {
	if n < 0 {
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				return nil
			}
			if err := each(); err != nil {
				return err
			}
		}
	}
	for i := 0; i < n; i++ {
		c, err := d.Peek()
		if err != nil {
			return err
		}
		if c == makeByte(majorTypeSimple, simpleBreak) {
			d.Consume(1)
			return nil
		}
		if err := each(); err != nil {
			return err
		}
	}
	return nil
}

// DecodeArray decodes an array into an ordered []any.
func (d *Decoder) DecodeArray() ([]any, error) {
	out := []any{}
	err := d.ProcessArray(func() error {
		v, err := d.DecodeValue()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeMap decodes a map into map[any]any, rejecting duplicate keys.
func (d *Decoder) DecodeMap() (map[any]any, error) {
	out := map[any]any{}
	err := d.ProcessMap(func() error {
		k, err := d.DecodeValue()
		if err != nil {
			return err
		}
		key, err := mapKey(k)
		if err != nil {
			return err
		}
		if _, dup := out[key]; dup {
			return ErrDuplicateMapKey
		}
		v, err := d.DecodeValue()
		if err != nil {
			return err
		}
		out[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeTag dispatches a tag header: built-in numerics and embedded
// payloads first, then the registered handler table, and finally the
// transparent fallback that decodes the tagged item as if untagged.
func (d *Decoder) decodeTag() (any, error) {
	mark := d.Mark()
	a, err := d.readArgument(majorTypeTag)
	if err != nil {
		return nil, err
	}
	tag := a.uint64()

	switch tag {
	case tagPosBignum, tagNegBignum:
		d.ResetTo(mark)
		return d.DecodeBigInt()
	case tagDecimalFrac:
		d.ResetTo(mark)
		return d.DecodeDecimal()
	case tagEmbeddedCBOR:
		return d.decodeEmbedded()
	}

	if h, ok := d.handlers[tag]; ok {
		return h(d, tag)
	}
	return d.DecodeValue()
}

// decodeEmbedded decodes a tag-24 payload: a byte string holding one
// nested encoded item. A definite-length payload is decoded in place
// through a window over the parent's buffer; chunked payloads are
// gathered into an owned buffer first because their bytes are not
// contiguous.
func (d *Decoder) decodeEmbedded() (any, error) {
	c, err := d.Peek()
	if err != nil {
		return nil, err
	}
	if getMajorType(c) != majorTypeBytes {
		return nil, TypeError{Method: BinType, Encoded: getType(c)}
	}

	if getAddInfo(c) != addInfoIndefinite {
		a, err := d.readArgument(majorTypeBytes)
		if err != nil {
			return nil, err
		}
		n, err := a.length()
		if err != nil {
			return nil, err
		}
		if err := d.EnsureAvailable(n); err != nil {
			return nil, err
		}
		start := d.pos
		d.Consume(n)
		return d.subDecoder(d.buf, start, start+n).DecodeValue()
	}

	payload, err := d.DecodeBytes()
	if err != nil {
		return nil, err
	}
	return d.subDecoder(payload, 0, len(payload)).DecodeValue()
}
