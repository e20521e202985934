package cbor

import (
	"bytes"
	"testing"
)

func TestSkipConsumesWholeItem(t *testing.T) {
	for _, ex := range decodeExamples(t) {
		ex := ex
		t.Run(ex.name, func(t *testing.T) {
			msg := mustHex(t, ex.hex)
			d := NewDecoder(msg)
			if err := d.Skip(); err != nil {
				t.Fatalf("Skip: %v", err)
			}
			if d.Remaining() != 0 {
				t.Fatalf("Skip left %d bytes", d.Remaining())
			}
		})
	}
}

func TestSkipTruncated(t *testing.T) {
	for _, ex := range decodeExamples(t) {
		ex := ex
		t.Run(ex.name, func(t *testing.T) {
			msg := mustHex(t, ex.hex)
			for cut := 0; cut < len(msg); cut++ {
				d := NewDecoder(msg[:cut])
				if err := d.Skip(); !Incomplete(err) {
					t.Fatalf("cut %d/%d: got %v", cut, len(msg), err)
				}
			}
		})
	}
}

func TestSkipDoesNotValidateText(t *testing.T) {
	// Skip moves over bytes without decoding, so invalid UTF-8 passes.
	d := NewDecoder(mustHex(t, "62c328"))
	if err := d.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}
}

func TestValid(t *testing.T) {
	msg := mustHex(t, "83010203f5")
	n, err := Valid(msg)
	if err != nil {
		t.Fatalf("Valid: %v", err)
	}
	if n != 4 {
		t.Fatalf("got %d want 4", n)
	}

	if _, err := Valid(mustHex(t, "ff")); err == nil {
		t.Fatalf("bare break accepted")
	}
	if _, err := Valid(mustHex(t, "8301")); !Incomplete(err) {
		t.Fatalf("truncated array: got %v", err)
	}
}

func TestValidDocument(t *testing.T) {
	// Back-to-back items with nothing left over.
	if err := ValidDocument(mustHex(t, "0102830405066161")); err != nil {
		t.Fatalf("ValidDocument: %v", err)
	}
	if err := ValidDocument(nil); err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if err := ValidDocument(mustHex(t, "01ff")); err == nil {
		t.Fatalf("trailing break accepted")
	}
	if err := ValidDocument(mustHex(t, "011903")); !Incomplete(err) {
		t.Fatalf("truncated tail: got %v", err)
	}
}

func TestSkipDepthLimit(t *testing.T) {
	var b bytes.Buffer
	for i := 0; i < recursionLimit+2; i++ {
		b.WriteByte(0x81) // one-element array
	}
	b.WriteByte(0x00)

	d := NewDecoder(b.Bytes())
	if err := d.Skip(); err != ErrMaxDepthExceeded {
		t.Fatalf("got %v want depth limit", err)
	}
}

func TestDecodeValueSequence(t *testing.T) {
	// One decoder walks a sequence of independent items.
	d := NewDecoder(mustHex(t, "01616181f4"))
	wantOffsets := []int{1, 3, 5}
	for i, wo := range wantOffsets {
		if _, err := d.DecodeValue(); err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if d.Offset() != wo {
			t.Fatalf("item %d: offset %d want %d", i, d.Offset(), wo)
		}
	}
	if d.Remaining() != 0 {
		t.Fatalf("leftover %d", d.Remaining())
	}
}
