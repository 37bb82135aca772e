package scale

// ReadOption decodes an Option<T> discriminant byte: 0x00 = None, 0x01 =
// Some (the caller decodes T afterwards). Any other byte is a
// *BadOptionError.
func (c *Cursor) ReadOption() (some bool, err error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, &BadOptionError{Got: b}
	}
}

// ReadResult decodes a Result<T, E> discriminant byte: 0x00 = Ok (the
// caller decodes T afterwards), 0x01 = Err (the caller decodes E
// afterwards). Any other byte is a *BadOptionError.
func (c *Cursor) ReadResult() (ok bool, err error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return true, nil
	case 0x01:
		return false, nil
	default:
		return false, &BadOptionError{Got: b}
	}
}
