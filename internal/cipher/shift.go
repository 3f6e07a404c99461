package cipher

// NormalizeShift maps the absolute value of shift into [1, size].
// A multiple of size becomes size, a full cycle. Zero stays zero.
func NormalizeShift(shift, size int) int {
	if shift == 0 || size <= 0 {
		return 0
	}

	r := shift % size
	if r < 0 {
		r = -r
	}
	if r == 0 {
		return size
	}
	return r
}
