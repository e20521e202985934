package cbor

// Valid checks that b begins with one well-formed item and returns the
// number of bytes it occupies.
func Valid(b []byte) (int, error) {
	d := NewDecoder(b)
	if err := d.Skip(); err != nil {
		return 0, err
	}
	return d.Offset(), nil
}

// ValidDocument checks that b is a sequence of well-formed items with
// no trailing garbage.
func ValidDocument(b []byte) error {
	d := NewDecoder(b)
	for d.Remaining() > 0 {
		if err := d.Skip(); err != nil {
			return err
		}
	}
	return nil
}
