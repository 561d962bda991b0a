package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

func TestParseFrameHeader(t *testing.T) {
	data := encodeOpts(t, gradient(33, 17), nil)

	h, err := ParseFrameHeader(data)
	require.NoError(t, err)
	assert.Equal(t, 8, h.Precision)
	assert.Equal(t, 33, h.Width)
	assert.Equal(t, 17, h.Height)
	require.Len(t, h.Components, 3)
	assert.Equal(t, FrameComponent{ID: 1, H: 2, V: 2, Tq: 0}, h.Components[0])
	assert.Equal(t, FrameComponent{ID: 3, H: 1, V: 1, Tq: 1}, h.Components[2])
}

func TestParseFrameHeaderRejectsProgressive(t *testing.T) {
	data := encodeOpts(t, gradient(8, 8), nil)
	// Turn SOF0 into SOF2 in place.
	idx := sofOffset(t, data)
	data[idx+1] = 0xC2

	_, err := ParseFrameHeader(data)
	assert.ErrorIs(t, err, common.ErrInvalidMarker)
}

func TestParseFrameHeaderErrors(t *testing.T) {
	_, err := ParseFrameHeader([]byte{0x00, 0x01})
	assert.Error(t, err)

	// SOI, EOI and nothing in between.
	_, err = ParseFrameHeader([]byte{0xFF, 0xD8, 0xFF, 0xD9})
	assert.ErrorIs(t, err, common.ErrInvalidData)

	data := encodeOpts(t, gradient(8, 8), nil)
	idx := sofOffset(t, data)
	data[idx+4] = 12 // precision
	_, err = ParseFrameHeader(data)
	assert.ErrorIs(t, err, common.ErrInvalidBitDepth)
}

func sofOffset(t *testing.T, data []byte) int {
	t.Helper()
	for _, s := range segments(t, data) {
		if s.Marker == common.MarkerSOF0 {
			return int(s.Offset)
		}
	}
	t.Fatal("no SOF0")
	return 0
}

func TestDecode(t *testing.T) {
	w, h := 24, 16
	gray := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y*w+x] = byte(64 + 2*x + y)
		}
	}
	data, err := EncodePixels(gray, w, h, 1, 95)
	require.NoError(t, err)

	pix, dw, dh, comps, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, w, dw)
	assert.Equal(t, h, dh)
	assert.Equal(t, 1, comps)
	require.Len(t, pix, w*h)
	for i := range gray {
		assert.InDelta(t, int(gray[i]), int(pix[i]), 12, "sample %d", i)
	}

	rgb := make([]byte, w*h*3)
	for i := range rgb {
		rgb[i] = 180
	}
	data, err = EncodePixels(rgb, w, h, 3, 85)
	require.NoError(t, err)
	pix, _, _, comps, err = Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 3, comps)
	require.Len(t, pix, w*h*3)
	for i := range pix {
		assert.InDelta(t, 180, int(pix[i]), 2)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := encodeOpts(t, gradient(16, 16), nil)
	_, _, _, _, err := Decode(data[:len(data)/2])
	assert.Error(t, err)
}
