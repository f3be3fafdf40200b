package svgdoc

// AppendInt appends the decimal representation of v to dst: an optional '-'
// followed by digits without leading zeros.
func AppendInt(dst []byte, v int) []byte {
	var digits [20]byte
	u := uint64(v)
	if v < 0 {
		dst = append(dst, '-')
		u = uint64(-v)
	}
	i := len(digits)
	for {
		i--
		digits[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	return append(dst, digits[i:]...)
}

// AppendFloat appends f with exactly three fractional digits to dst.
// Neither part is rounded: the integer part is f truncated towards zero, the
// fractional digits are the truncated fraction scaled by 1000. Values in (-1,0)
// keep their sign, i.e. -0.5 is formatted as "-0.500".
func AppendFloat(dst []byte, f float32) []byte {
	i := int(f)
	if i == 0 && f < 0 {
		dst = append(dst, '-')
	}
	dst = AppendInt(dst, i)
	dst = append(dst, '.')
	frac := int((f - float32(i)) * 1000)
	if frac < 0 {
		frac = -frac
	}
	if frac < 100 {
		dst = append(dst, '0')
	}
	if frac < 10 {
		dst = append(dst, '0')
	}
	return AppendInt(dst, frac)
}
