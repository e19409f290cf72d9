package abi

// AlignTo rounds offset up to the next multiple of align. align must be a
// power of two; zero leaves offset unchanged.
func AlignTo(offset, align int) int {
	if align <= 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// BytesFor returns the number of whole bytes needed to hold bits.
func BytesFor(bits int) int {
	return (bits + 7) / 8
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
