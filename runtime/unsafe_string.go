package cbor

import "unsafe"

// UnsafeString returns a string that shares the same underlying memory
// as b. It must only be used when the backing buffer is immutable for
// the lifetime of the string, which holds for decoder windows: the
// decoder never writes to its buffer.
func UnsafeString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
