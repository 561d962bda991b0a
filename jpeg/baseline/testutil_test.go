package baseline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-jpeg-baseline/jpeg/standard"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

func filled(w, h int, v uint8) *raster.RGB {
	return raster.NewFilled(w, h, raster.Pixel{R: v, G: v, B: v})
}

// gradient returns a smooth color ramp.
func gradient(w, h int) *raster.RGB {
	img := raster.NewFilled(w, h, raster.Pixel{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, raster.Pixel{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 127 / (w + h)),
			})
		}
	}
	return img
}

// noisy returns a deterministic high-frequency pattern.
func noisy(w, h int) *raster.RGB {
	img := raster.NewFilled(w, h, raster.Pixel{})
	seed := uint32(12345)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seed = seed*1103515245 + 12345
			img.Set(x, y, raster.Pixel{R: uint8(seed >> 16), G: uint8(seed >> 8), B: uint8(x*y + int(seed>>24))})
		}
	}
	return img
}

func encodeOpts(t *testing.T, img raster.Image, mutate func(*Options)) []byte {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	data, err := EncodeBytes(img, opts)
	require.NoError(t, err)
	return data
}

func segments(t *testing.T, data []byte) []standard.Segment {
	t.Helper()
	segs, err := standard.ReadSegments(data)
	require.NoError(t, err)
	return segs
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
