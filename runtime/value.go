package cbor

import (
	"math/big"
	"strconv"
	"strings"
)

// Decoded values use the following Go representations:
//
//	null                    nil
//	undefined               Undefined
//	boolean                 bool
//	integer                 int64 (magnitude <= 2^53-1)
//	big integer             *big.Int (BigKey when used as a map key)
//	float (16/32/64-bit)    float64
//	decimal fraction        Decimal (DecimalKey when used as a map key)
//	byte string             []byte (ByteString when used as a map key)
//	text string             string
//	array                   []any
//	map                     map[any]any
//	registered tag          whatever the TagHandler returns
//	unassigned simple value SimpleValue

type undefined *struct{}

// Undefined is the decoded form of the encoding's "undefined" simple
// value, kept distinct from null.
var Undefined undefined = nil

// SimpleValue is an unassigned simple value (major type 7) carried
// through undecoded.
type SimpleValue uint8

// ByteString is a byte string that appeared in map-key position. Go
// slices are not hashable, so key bytes are carried as a string.
type ByteString string

// Bytes returns the key's bytes.
func (s ByteString) Bytes() []byte { return []byte(s) }

// BigKey is an arbitrary-precision integer that appeared in map-key
// position. Interface equality over *big.Int compares the pointer, so
// key position carries the decimal string form instead.
type BigKey string

// Int returns the key as a *big.Int.
func (k BigKey) Int() *big.Int {
	n, _ := new(big.Int).SetString(string(k), 10)
	return n
}

// DecimalKey is a decimal fraction that appeared in map-key position,
// with the unscaled magnitude in decimal string form for the same
// reason as BigKey.
type DecimalKey struct {
	Unscaled string
	Exponent int64
}

// Decimal returns the key as a Decimal.
func (k DecimalKey) Decimal() Decimal {
	n, _ := new(big.Int).SetString(k.Unscaled, 10)
	return Decimal{Unscaled: n, Exponent: k.Exponent}
}

// Decimal is a scaled decimal: the value Unscaled x 10^Exponent. The
// wire form is a two-element array [scale, unscaled]; the stored
// exponent is the negated scale field.
type Decimal struct {
	Unscaled *big.Int
	Exponent int64
}

// String renders the decimal in plain positional notation for
// reasonable exponents and falls back to <unscaled>e<exponent>.
func (d Decimal) String() string {
	if d.Unscaled == nil {
		return "0"
	}
	if d.Exponent == 0 {
		return d.Unscaled.String()
	}
	if d.Exponent > 0 && d.Exponent <= 32 {
		var sb strings.Builder
		sb.WriteString(d.Unscaled.String())
		for i := int64(0); i < d.Exponent; i++ {
			sb.WriteByte('0')
		}
		return sb.String()
	}
	if d.Exponent < 0 && d.Exponent >= -32 {
		digits := new(big.Int).Abs(d.Unscaled).String()
		frac := int(-d.Exponent)
		for len(digits) <= frac {
			digits = "0" + digits
		}
		out := digits[:len(digits)-frac] + "." + digits[len(digits)-frac:]
		if d.Unscaled.Sign() < 0 {
			out = "-" + out
		}
		return out
	}
	return d.Unscaled.String() + "e" + strconv.FormatInt(d.Exponent, 10)
}

// mapKey converts a decoded value into a form usable as a Go map key.
// Byte strings become ByteString, big integers BigKey and decimals
// DecimalKey, so equal keys collide regardless of pointer identity.
// Arrays and maps have no hashable representation and are rejected.
func mapKey(v any) (any, error) {
	switch x := v.(type) {
	case []byte:
		return ByteString(x), nil
	case *big.Int:
		return BigKey(x.String()), nil
	case Decimal:
		return DecimalKey{Unscaled: x.Unscaled.String(), Exponent: x.Exponent}, nil
	case []any:
		return nil, UnhashableKeyError{Key: ArrayType}
	case map[any]any:
		return nil, UnhashableKeyError{Key: MapType}
	default:
		return v, nil
	}
}
