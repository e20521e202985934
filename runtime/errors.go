package cbor

import (
	"errors"
	"strconv"
)

var (
	// ErrIncomplete is returned when the buffer window does not yet hold
	// enough bytes for the item currently being decoded. It is the only
	// resumable error: append more bytes and retry from the pre-attempt
	// cursor position. The cursor is never advanced partway through the
	// primitive field that raised it.
	ErrIncomplete error = errIncomplete{}

	// ErrUnexpectedBreak is returned when a stop marker (0xff) appears
	// where a value was expected, outside an indefinite-length item.
	ErrUnexpectedBreak error = errUnexpectedBreak{}

	// ErrDuplicateMapKey is returned when a map encoding contains the
	// same decoded key twice.
	ErrDuplicateMapKey error = errDuplicateMapKey{}

	// ErrMalformedDecimal is returned when a decimal-fraction tag's
	// payload is not a two-element array.
	ErrMalformedDecimal error = errMalformedDecimal{}

	// ErrNotANumber is returned by DecodeNumber when the next item has
	// no numeric interpretation.
	ErrNotANumber error = errNotANumber{}

	// ErrInvalidUTF8 is returned when a text string contains invalid UTF-8.
	ErrInvalidUTF8 error = errInvalidUTF8{}

	// ErrMaxDepthExceeded is returned when recursion depth exceeds the limit.
	ErrMaxDepthExceeded error = errMaxDepthExceeded{}
)

// Error is the interface satisfied by the structured failures that
// originate from this package.
type Error interface {
	error

	// Resumable reports whether the failure can be cured by supplying
	// more bytes and retrying from the pre-attempt cursor position.
	// Every kind except ErrIncomplete is terminal for the current
	// decode attempt.
	Resumable() bool
}

// Resumable reports whether an error means the caller may retry the
// decode after appending data. Errors from outside this package are
// treated as terminal.
func Resumable(e error) bool {
	var ce Error
	if errors.As(e, &ce) {
		return ce.Resumable()
	}
	return false
}

// Incomplete reports whether e signals a short buffer.
func Incomplete(e error) bool {
	return errors.Is(e, ErrIncomplete)
}

type errIncomplete struct{}

func (e errIncomplete) Error() string   { return "cbor: not enough bytes to complete the current item" }
func (e errIncomplete) Resumable() bool { return true }

type errUnexpectedBreak struct{}

func (e errUnexpectedBreak) Error() string   { return "cbor: unexpected break marker" }
func (e errUnexpectedBreak) Resumable() bool { return false }

type errDuplicateMapKey struct{}

func (e errDuplicateMapKey) Error() string   { return "cbor: duplicate map key" }
func (e errDuplicateMapKey) Resumable() bool { return false }

type errMalformedDecimal struct{}

func (e errMalformedDecimal) Error() string {
	return "cbor: decimal fraction payload must be a two-element array"
}
func (e errMalformedDecimal) Resumable() bool { return false }

type errNotANumber struct{}

func (e errNotANumber) Error() string   { return "cbor: item has no numeric interpretation" }
func (e errNotANumber) Resumable() bool { return false }

type errInvalidUTF8 struct{}

func (e errInvalidUTF8) Error() string   { return "cbor: invalid UTF-8 in text string" }
func (e errInvalidUTF8) Resumable() bool { return false }

type errMaxDepthExceeded struct{}

func (e errMaxDepthExceeded) Error() string   { return "cbor: max depth exceeded" }
func (e errMaxDepthExceeded) Resumable() bool { return false }

// A TypeError is returned when a particular decoding method is
// unsuitable for the item at the cursor.
type TypeError struct {
	Method  Type // type expected by the method
	Encoded Type // type actually encoded
}

// Error implements the error interface
func (t TypeError) Error() string {
	return "cbor: attempted to decode type " + quoteStr(t.Encoded.String()) +
		" with method for " + quoteStr(t.Method.String())
}

// Resumable returns 'false' for TypeErrors
func (t TypeError) Resumable() bool { return false }

// InvalidPrefixError is returned when an encoding uses a major type
// other than the one the decode method expects.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

// Error implements the error interface
func (i InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(i.Want)) +
		" but got " + strconv.Itoa(int(i.Got))
}

// Resumable returns 'false' for InvalidPrefixErrors
func (i InvalidPrefixError) Resumable() bool { return false }

func badPrefix(gotMajor, wantMajor uint8) error {
	return InvalidPrefixError{Want: wantMajor, Got: gotMajor}
}

// InvalidTagError is returned when a tag-directed decode finds a tag
// number the operation does not accept, or no tag at all.
type InvalidTagError struct {
	Tag uint64
}

// Error implements the error interface
func (e InvalidTagError) Error() string {
	return "cbor: tag " + strconv.FormatUint(e.Tag, 10) + " does not introduce the expected extension"
}

// Resumable returns 'false' for InvalidTagErrors
func (e InvalidTagError) Resumable() bool { return false }

// InvalidAdditionalInfoError is returned for the reserved additional
// info values 28-30, which no well-formed encoding uses.
type InvalidAdditionalInfoError struct {
	Major uint8
	Info  uint8
}

// Error implements the error interface
func (e InvalidAdditionalInfoError) Error() string {
	return "cbor: reserved additional info " + strconv.Itoa(int(e.Info)) +
		" in major type " + strconv.Itoa(int(e.Major))
}

// Resumable returns 'false' for InvalidAdditionalInfoErrors
func (e InvalidAdditionalInfoError) Resumable() bool { return false }

// LengthOverflowError is returned when a declared length or count does
// not fit the native int range on this platform.
type LengthOverflowError struct {
	Value uint64
}

// Error implements the error interface
func (e LengthOverflowError) Error() string {
	return "cbor: declared length " + strconv.FormatUint(e.Value, 10) + " overflows int"
}

// Resumable returns 'false' for LengthOverflowErrors
func (e LengthOverflowError) Resumable() bool { return false }

// UnhashableKeyError is returned when a decoded map key has no Go
// representation usable as a map key (arrays and maps).
type UnhashableKeyError struct {
	Key Type
}

// Error implements the error interface
func (e UnhashableKeyError) Error() string {
	return "cbor: " + quoteStr(e.Key.String()) + " cannot be used as a map key"
}

// Resumable returns 'false' for UnhashableKeyErrors
func (e UnhashableKeyError) Resumable() bool { return false }

func quoteStr(s string) string { return "'" + s + "'" }
