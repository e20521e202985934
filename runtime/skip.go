package cbor

// Skip advances the cursor past the next complete item without
// materializing it.
func (d *Decoder) Skip() error {
	return d.skip(0)
}

func (d *Decoder) skip(depth int) error {
	if depth > recursionLimit {
		return ErrMaxDepthExceeded
	}
	c, err := d.Peek()
	if err != nil {
		return err
	}

	major := getMajorType(c)
	add := getAddInfo(c)

	switch major {
	case majorTypeUint, majorTypeNegInt, majorTypeTag:
		if _, err := d.readArgument(major); err != nil {
			return err
		}
		if major == majorTypeTag {
			return d.skip(depth + 1)
		}
		return nil

	case majorTypeBytes, majorTypeText:
		return d.skipRun(major, depth)

	case majorTypeArray:
		return d.skipItems(major, 1, depth)

	case majorTypeMap:
		return d.skipItems(major, 2, depth)

	default: // majorTypeSimple
		switch add {
		case simpleFloat16:
			if err := d.EnsureAvailable(3); err != nil {
				return err
			}
			d.Consume(3)
			return nil
		case simpleFloat32:
			if err := d.EnsureAvailable(5); err != nil {
				return err
			}
			d.Consume(5)
			return nil
		case simpleFloat64:
			if err := d.EnsureAvailable(9); err != nil {
				return err
			}
			d.Consume(9)
			return nil
		case simpleBreak:
			return ErrUnexpectedBreak
		case addInfoUint8:
			if err := d.EnsureAvailable(2); err != nil {
				return err
			}
			d.Consume(2)
			return nil
		default:
			if add <= addInfoDirect {
				d.Consume(1)
				return nil
			}
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
		}
	}
}

// skipRun skips a byte or text string, chunked or definite.
func (d *Decoder) skipRun(major uint8, depth int) error {
	a, err := d.readArgument(major)
	if err != nil {
		return err
	}
	if a.indef {
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				return nil
			}
			if depth+1 > recursionLimit {
				return ErrMaxDepthExceeded
			}
			if err := d.skipRun(major, depth+1); err != nil {
				return err
			}
		}
	}
	n, err := a.length()
	if err != nil {
		return err
	}
	if err := d.EnsureAvailable(n); err != nil {
		return err
	}
	d.Consume(n)
	return nil
}

// skipItems skips an array (stride 1) or map (stride 2).
func (d *Decoder) skipItems(major uint8, stride, depth int) error {
	a, err := d.readArgument(major)
	if err != nil {
		return err
	}
	if a.indef {
		for {
			c, err := d.Peek()
			if err != nil {
				return err
			}
			if c == makeByte(majorTypeSimple, simpleBreak) {
				d.Consume(1)
				return nil
			}
			for s := 0; s < stride; s++ {
				if err := d.skip(depth + 1); err != nil {
					return err
				}
			}
		}
	}
	n, err := a.length()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		for s := 0; s < stride; s++ {
			if err := d.skip(depth + 1); err != nil {
				return err
			}
		}
	}
	return nil
}
