// Package cbor implements the decode side of the compact self-describing
// binary encoding spoken by gridkv clients. It is a cursor-based reader:
// a Decoder is bound to an in-memory buffer (or a window of one) and turns
// its bytes into Go values one item at a time.
//
// The package exposes three layers:
//   - cursor primitives on *Decoder (Peek, EnsureAvailable, Consume, Drain,
//     Mark/ResetTo) for callers that manage their own framing;
//   - typed item decoders (DecodeInt, DecodeFloat, DecodeBytes, DecodeString,
//     DecodeArray, DecodeMap, ...) that fail with a TypeError when the buffer
//     holds a different kind of item;
//   - DecodeValue, which dispatches on the type byte and returns a generic
//     Go value for whatever item comes next.
//
// A decode against a buffer that does not yet hold a complete item fails
// with ErrIncomplete, the only resumable error in the package: the caller
// appends more bytes and retries from its pre-attempt Mark.
package cbor

// CBOR major types (3 bits)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // float, simple values, break
)

// Additional info values (5 bits)
const (
	// 0-23: literal value
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte uint8 follows
	addInfoUint16     = 25 // 2-byte uint16 follows
	addInfoUint32     = 26 // 4-byte uint32 follows
	addInfoUint64     = 27 // 8-byte uint64 follows
	addInfoIndefinite = 31 // indefinite length (for bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

// Semantic tags with built-in interpretations
const (
	tagPosBignum    = 2  // positive bignum over a byte string
	tagNegBignum    = 3  // negative bignum over a byte string
	tagDecimalFrac  = 4  // decimal fraction over a [scale, unscaled] array
	tagEmbeddedCBOR = 24 // byte string holding a nested encoded item
)

const (
	// maxSafeInt is the largest integer magnitude decoded into a native
	// int64. Anything above comes back as *big.Int so values survive
	// round-trips through consumers that keep numbers in float64.
	maxSafeInt = 1<<53 - 1

	// recursionLimit bounds the call depth of dynamic walks such as Skip
	// and Diag on adversarial nesting.
	recursionLimit = 100000
)

// makeByte creates an initial byte from major type and additional info
func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

// getMajorType extracts the major type from an initial byte
func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

// getAddInfo extracts the additional info from an initial byte
func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

// Type classifies the decoded representation of an item.
type Type byte

const (
	InvalidType Type = iota

	StrType     // text string
	BinType     // byte string
	MapType     // map
	ArrayType   // array
	FloatType   // half/single/double float
	BoolType    // bool
	IntType     // signed integer
	NumberType  // any numeric encoding
	NilType     // null
	TagType     // tagged value
	SimpleType  // unassigned simple value
)

// String implements fmt.Stringer
func (t Type) String() string {
	switch t {
	case StrType:
		return "str"
	case BinType:
		return "bin"
	case MapType:
		return "map"
	case ArrayType:
		return "array"
	case FloatType:
		return "float"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case NumberType:
		return "number"
	case NilType:
		return "nil"
	case TagType:
		return "tag"
	case SimpleType:
		return "simple"
	default:
		return "<invalid>"
	}
}

// ValidateUTF8OnDecode controls whether DecodeString validates UTF-8.
// Enabled by default; can be disabled in hot paths.
var ValidateUTF8OnDecode = true

// UnsafeStringDecode controls whether DecodeString converts definite
// runs zero-copy using UnsafeString instead of allocating. Disabled by
// default; only safe while the backing buffer stays alive and unmodified.
var UnsafeStringDecode = false
