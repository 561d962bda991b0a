package common

// DivCeil returns ceil(a / b) for positive b.
func DivCeil(a, b int) int {
	return (a + b - 1) / b
}

// SignedRange8 reports the range of 8-bit samples when read with the given
// pixel representation (0 unsigned, 1 two's complement).
func SignedRange8(samples []byte, pixelRepresentation int) (minVal, maxVal int32) {
	if len(samples) == 0 {
		return 0, 0
	}
	minVal, maxVal = 255, -128
	for _, b := range samples {
		v := int32(b)
		if pixelRepresentation == 1 {
			v = int32(int8(b))
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// SignedToUnsigned8 maps two's complement 8-bit samples from [-128, 127] onto
// [0, 255] in place. Flipping the sign bit is the same as adding 128.
func SignedToUnsigned8(samples []byte) {
	for i := range samples {
		samples[i] ^= 0x80
	}
}

// UnsignedToSigned8 reverses SignedToUnsigned8 in place.
func UnsignedToSigned8(samples []byte) {
	for i := range samples {
		samples[i] ^= 0x80
	}
}
