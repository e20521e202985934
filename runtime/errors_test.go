package cbor

import (
	"errors"
	"testing"
)

// Only the short-buffer condition is resumable; everything else is
// terminal for the current decode attempt.
func TestResumableDiscrimination(t *testing.T) {
	resumable := []error{ErrIncomplete}
	terminal := []error{
		ErrUnexpectedBreak,
		ErrDuplicateMapKey,
		ErrMalformedDecimal,
		ErrNotANumber,
		ErrInvalidUTF8,
		ErrMaxDepthExceeded,
		TypeError{Method: IntType, Encoded: StrType},
		InvalidPrefixError{Want: 0, Got: 3},
		InvalidTagError{Tag: 99},
		InvalidAdditionalInfoError{Major: 0, Info: 28},
		LengthOverflowError{Value: 1 << 63},
		UnhashableKeyError{Key: ArrayType},
	}

	for _, e := range resumable {
		if !Resumable(e) {
			t.Fatalf("%v must be resumable", e)
		}
		if !Incomplete(e) {
			t.Fatalf("%v must report incomplete", e)
		}
	}
	for _, e := range terminal {
		if Resumable(e) {
			t.Fatalf("%v must not be resumable", e)
		}
		if Incomplete(e) {
			t.Fatalf("%v must not report incomplete", e)
		}
	}

	// Every failure the package raises carries the Resumable
	// classification.
	for _, e := range append(terminal, resumable...) {
		var ce Error
		if !errors.As(e, &ce) {
			t.Fatalf("%v does not satisfy the package Error interface", e)
		}
	}

	// Errors from outside the package are terminal by default.
	if Resumable(errors.New("boom")) {
		t.Fatalf("foreign error treated as resumable")
	}
	if Resumable(nil) {
		t.Fatalf("nil error treated as resumable")
	}
}

func TestResumableThroughWrapping(t *testing.T) {
	wrapped := errorWrap{ErrIncomplete}
	if !Resumable(wrapped) || !Incomplete(wrapped) {
		t.Fatalf("wrapped incomplete lost its classification")
	}
}

type errorWrap struct{ err error }

func (w errorWrap) Error() string { return "wrap: " + w.err.Error() }
func (w errorWrap) Unwrap() error { return w.err }

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{TypeError{Method: IntType, Encoded: StrType}, "cbor: attempted to decode type 'str' with method for 'int'"},
		{InvalidPrefixError{Want: 2, Got: 4}, "cbor: expected major type 2 but got 4"},
		{InvalidTagError{Tag: 7}, "cbor: tag 7 does not introduce the expected extension"},
		{InvalidAdditionalInfoError{Major: 0, Info: 29}, "cbor: reserved additional info 29 in major type 0"},
		{LengthOverflowError{Value: 18446744073709551615}, "cbor: declared length 18446744073709551615 overflows int"},
		{UnhashableKeyError{Key: MapType}, "cbor: 'map' cannot be used as a map key"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}
