package common

// RGBToYCbCr converts one RGB pixel to JFIF YCbCr. The result is not
// clamped or rounded.
func RGBToYCbCr(r, g, b uint8) (y, cb, cr float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)

	y = 0.299*rf + 0.587*gf + 0.114*bf
	cb = -0.1687*rf - 0.3313*gf + 0.5*bf + 128
	cr = 0.5*rf - 0.4187*gf - 0.0813*bf + 128
	return y, cb, cr
}

// YCbCrToRGB converts back to RGB, rounding and clamping to 0..255.
func YCbCrToRGB(y, cb, cr float64) (r, g, b uint8) {
	r = clampSample(y + 1.402*(cr-128))
	g = clampSample(y - 0.34414*(cb-128) - 0.71414*(cr-128))
	b = clampSample(y + 1.772*(cb-128))
	return r, g, b
}

func clampSample(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
