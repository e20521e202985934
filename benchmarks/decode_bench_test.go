package benchmarks

import (
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	msgp "github.com/tinylib/msgp/msgp"

	cbor "github.com/gridkv/cbor.go/runtime"
)

// Decode microbenchmarks comparing this runtime against fxamacker/cbor
// (same wire format, reflection-based) and tinylib/msgp's MessagePack
// runtime (different format, same cursor style).

func mustMarshal(b *testing.B, v any) []byte {
	b.Helper()
	data, err := fxcbor.Marshal(v)
	if err != nil {
		b.Fatalf("encode fixture: %v", err)
	}
	return data
}

func BenchmarkCBOR_DecodeInt64(b *testing.B) {
	data := mustMarshal(b, int64(123456789))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := cbor.NewDecoder(data)
		if _, err := d.DecodeInt(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFXCBOR_DecodeInt64(b *testing.B) {
	data := mustMarshal(b, int64(123456789))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v int64
		if err := fxcbor.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMsgp_ReadInt64(b *testing.B) {
	data := msgp.AppendInt64(nil, 123456789)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := msgp.ReadInt64Bytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCBOR_DecodeString(b *testing.B) {
	data := mustMarshal(b, "hello world, this is a benchmark string")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := cbor.NewDecoder(data)
		if _, err := d.DecodeString(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCBOR_DecodeStringUnsafe(b *testing.B) {
	defer func() { cbor.UnsafeStringDecode = false }()
	cbor.UnsafeStringDecode = true

	data := mustMarshal(b, "hello world, this is a benchmark string")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := cbor.NewDecoder(data)
		if _, err := d.DecodeString(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFXCBOR_DecodeString(b *testing.B) {
	data := mustMarshal(b, "hello world, this is a benchmark string")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v string
		if err := fxcbor.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMsgp_ReadString(b *testing.B) {
	data := msgp.AppendString(nil, "hello world, this is a benchmark string")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := msgp.ReadStringBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

// A small document resembling a config record: map with mixed scalar
// values and a nested array.
func benchDoc() any {
	return map[string]any{
		"name":    "benchmark",
		"count":   uint64(42),
		"enabled": true,
		"ratio":   0.75,
		"items":   []any{uint64(1), uint64(2), uint64(3)},
	}
}

func BenchmarkCBOR_DecodeDocument(b *testing.B) {
	data := mustMarshal(b, benchDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := cbor.NewDecoder(data)
		if _, err := d.DecodeValue(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFXCBOR_DecodeDocument(b *testing.B) {
	data := mustMarshal(b, benchDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v any
		if err := fxcbor.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMsgp_ReadDocument(b *testing.B) {
	data, err := msgp.AppendIntf(nil, map[string]any{
		"name":    "benchmark",
		"count":   int64(42),
		"enabled": true,
		"ratio":   0.75,
	})
	if err != nil {
		b.Fatalf("encode fixture: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := msgp.ReadIntfBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCBOR_Valid(b *testing.B) {
	data := mustMarshal(b, benchDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cbor.Valid(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFXCBOR_Wellformed(b *testing.B) {
	data := mustMarshal(b, benchDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := fxcbor.Wellformed(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCBOR_Skip(b *testing.B) {
	data := mustMarshal(b, benchDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := cbor.NewDecoder(data)
		if err := d.Skip(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMsgp_Skip(b *testing.B) {
	data, err := msgp.AppendIntf(nil, map[string]any{"k": []any{int64(1), int64(2)}})
	if err != nil {
		b.Fatalf("encode fixture: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := msgp.Skip(data); err != nil {
			b.Fatal(err)
		}
	}
}
