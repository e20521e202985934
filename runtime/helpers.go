package cbor

// getType classifies a type byte
func getType(b byte) Type {
	switch getMajorType(b) {
	case majorTypeUint, majorTypeNegInt:
		return IntType
	case majorTypeBytes:
		return BinType
	case majorTypeText:
		return StrType
	case majorTypeArray:
		return ArrayType
	case majorTypeMap:
		return MapType
	case majorTypeTag:
		return TagType
	case majorTypeSimple:
		switch getAddInfo(b) {
		case simpleTrue, simpleFalse:
			return BoolType
		case simpleNull:
			return NilType
		case simpleFloat16, simpleFloat32, simpleFloat64:
			return FloatType
		case simpleBreak:
			return InvalidType
		default:
			return SimpleType
		}
	}
	return InvalidType
}

// NextType returns the type of the item at the cursor without
// consuming anything.
func (d *Decoder) NextType() Type {
	c, err := d.Peek()
	if err != nil {
		return InvalidType
	}
	return getType(c)
}
