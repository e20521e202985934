package cbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Diag renders the first item in b in RFC 8949 diagnostic notation and
// returns the number of bytes consumed.
func Diag(b []byte) (string, int, error) {
	d := NewDecoder(b)
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := d.diagItem(bb, 0); err != nil {
		return "", 0, err
	}
	return bb.String(), d.Offset(), nil
}

func (d *Decoder) diagItem(buf *ByteBuffer, depth int) error {
	if depth > recursionLimit {
		return ErrMaxDepthExceeded
	}
	c, err := d.Peek()
	if err != nil {
		return err
	}

	switch getMajorType(c) {
	case majorTypeUint, majorTypeNegInt:
		v, err := d.DecodeInt()
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "%v", v)
		return nil

	case majorTypeBytes:
		return d.diagRun(buf, majorTypeBytes, depth)

	case majorTypeText:
		return d.diagRun(buf, majorTypeText, depth)

	case majorTypeArray:
		return d.diagContainer(buf, majorTypeArray, "[", "]", depth)

	case majorTypeMap:
		return d.diagContainer(buf, majorTypeMap, "{", "}", depth)

	case majorTypeTag:
		a, err := d.readArgument(majorTypeTag)
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(a.uint64(), 10))
		buf.WriteString("(")
		if err := d.diagItem(buf, depth+1); err != nil {
			return err
		}
		buf.WriteString(")")
		return nil

	default: // majorTypeSimple
		switch add := getAddInfo(c); add {
		case simpleFalse:
			d.Consume(1)
			buf.WriteString("false")
			return nil
		case simpleTrue:
			d.Consume(1)
			buf.WriteString("true")
			return nil
		case simpleNull:
			d.Consume(1)
			buf.WriteString("null")
			return nil
		case simpleUndefined:
			d.Consume(1)
			buf.WriteString("undefined")
			return nil
		case simpleFloat16, simpleFloat32, simpleFloat64:
			f, err := d.DecodeFloat()
			if err != nil {
				return err
			}
			buf.WriteString(formatFloatDiag(f))
			return nil
		case simpleBreak:
			return ErrUnexpectedBreak
		case addInfoUint8:
			if err := d.EnsureAvailable(2); err != nil {
				return err
			}
			v := d.buf[d.pos+1]
			d.Consume(2)
			fmt.Fprintf(buf, "simple(%d)", v)
			return nil
		default:
			if add < simpleFalse {
				d.Consume(1)
				fmt.Fprintf(buf, "simple(%d)", add)
				return nil
			}
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
		}
	}
}

// diagRun renders a byte or text string; chunked runs use the
// "(_ chunk, chunk)" form.
func (d *Decoder) diagRun(buf *ByteBuffer, major uint8, depth int) error {
	if depth > recursionLimit {
		return ErrMaxDepthExceeded
	}
	c, err := d.Peek()
	if err != nil {
		return err
	}
	if getAddInfo(c) == addInfoIndefinite {
		d.Consume(1)
		buf.WriteString("(_")
		first := true
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				buf.WriteString(")")
				return nil
			}
			if first {
				buf.WriteString(" ")
				first = false
			} else {
				buf.WriteString(", ")
			}
			if err := d.diagRun(buf, major, depth+1); err != nil {
				return err
			}
		}
	}

	a, err := d.readArgument(major)
	if err != nil {
		return err
	}
	n, err := a.length()
	if err != nil {
		return err
	}
	if err := d.EnsureAvailable(n); err != nil {
		return err
	}
	run := d.buf[d.pos : d.pos+n]
	d.Consume(n)
	if major == majorTypeBytes {
		buf.WriteString("h'")
		dst := buf.Extend(hex.EncodedLen(n))
		hex.Encode(dst, run)
		buf.WriteString("'")
		return nil
	}
	buf.WriteString(strconv.Quote(string(run)))
	return nil
}

func (d *Decoder) diagContainer(buf *ByteBuffer, major uint8, open, close string, depth int) error {
	a, err := d.readArgument(major)
	if err != nil {
		return err
	}
	buf.WriteString(open)
	if a.indef {
		buf.WriteString("_")
		first := true
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				buf.WriteString(close)
				return nil
			}
			if first {
				buf.WriteString(" ")
				first = false
			} else {
				buf.WriteString(", ")
			}
			if err := d.diagEntry(buf, major, depth); err != nil {
				return err
			}
		}
	}

	n, err := a.length()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := d.diagEntry(buf, major, depth); err != nil {
			return err
		}
	}
	buf.WriteString(close)
	return nil
}

// diagEntry renders one array element, or one "key: value" map pair.
func (d *Decoder) diagEntry(buf *ByteBuffer, major uint8, depth int) error {
	if err := d.diagItem(buf, depth+1); err != nil {
		return err
	}
	if major == majorTypeMap {
		buf.WriteString(": ")
		return d.diagItem(buf, depth+1)
	}
	return nil
}

// formatFloatDiag renders a float the way the RFC examples do.
func formatFloatDiag(f float64) string {
	if math.IsInf(f, +1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	if af := math.Abs(f); af == 0 || af < 1e15 {
		return trimTrailingZerosDot(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// trimTrailingZerosDot strips redundant fractional zeros ("1.50" to
// "1.5", "2.0" to "2"). Strings without a point pass through unchanged.
func trimTrailingZerosDot(s string) string {
	if strings.IndexByte(s, '.') < 0 {
		return s
	}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
