package baseline

import (
	"strings"
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	store "github.com/cocosip/go-jpeg-baseline/codec"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

func frameInfo(width, height, spp int) *imagetypes.FrameInfo {
	photometric := "MONOCHROME2"
	if spp == 3 {
		photometric = "RGB"
	}
	return &imagetypes.FrameInfo{
		Width:                     uint16(width),
		Height:                    uint16(height),
		BitsAllocated:             8,
		BitsStored:                8,
		HighBit:                   7,
		SamplesPerPixel:           uint16(spp),
		PhotometricInterpretation: photometric,
	}
}

func TestBaselineCodecInterface(t *testing.T) {
	c := NewBaselineCodec(85)

	assert.Equal(t, "JPEG Baseline (Quality 85)", c.Name())
	require.NotNil(t, c.TransferSyntax())
	assert.Equal(t, transfer.JPEGBaseline8Bit.UID().UID(), c.TransferSyntax().UID().UID())
	assert.Equal(t, UID, c.TransferSyntax().UID().UID())

	params, ok := c.GetDefaultParameters().(*JPEGBaselineParameters)
	require.True(t, ok)
	assert.Equal(t, 85, params.Quality)

	assert.Equal(t, "JPEG Baseline (Quality 85)", NewBaselineCodec(150).Name(), "out of range quality falls back")
}

func TestBaselineCodecRegistration(t *testing.T) {
	RegisterBaselineCodec(85)

	c, exists := codec.GetGlobalRegistry().GetCodec(transfer.JPEGBaseline8Bit)
	require.True(t, exists, "codec not found in registry")
	assert.True(t, strings.HasPrefix(c.Name(), "JPEG Baseline"), c.Name())
}

func TestBaselineCodecEncodeDecodeGray(t *testing.T) {
	width, height := 64, 64
	pixelData := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixelData[y*width+x] = byte(x + y*2)
		}
	}

	info := frameInfo(width, height, 1)
	src := store.NewPixelData(info)
	require.NoError(t, src.AddFrame(pixelData))

	c := NewBaselineCodec(85)
	encoded := store.NewEncapsulatedPixelData(info)
	require.NoError(t, c.Encode(src, encoded, nil))
	require.Equal(t, 1, encoded.FrameCount())

	encodedData, err := encoded.GetFrame(0)
	require.NoError(t, err)
	assert.Less(t, len(encodedData), len(pixelData))
	t.Logf("compression ratio: %.2fx", float64(len(pixelData))/float64(len(encodedData)))

	decoded := store.NewPixelData(info)
	require.NoError(t, c.Decode(encoded, decoded, nil))

	decodedData, err := decoded.GetFrame(0)
	require.NoError(t, err)
	require.Len(t, decodedData, len(pixelData))

	maxDiff := 0
	for i := range pixelData {
		maxDiff = max(maxDiff, absDiff(pixelData[i], decodedData[i]))
	}
	t.Logf("max pixel error: %d", maxDiff)
	assert.LessOrEqual(t, maxDiff, 20)
}

func TestBaselineCodecEncodeDecodeRGB(t *testing.T) {
	width, height := 32, 32
	pixelData := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		pixelData[3*i] = 200
		pixelData[3*i+1] = 100
		pixelData[3*i+2] = 50
	}

	info := frameInfo(width, height, 3)
	src := store.NewPixelData(info)
	require.NoError(t, src.AddFrame(pixelData))

	c := NewBaselineCodec(90)
	encoded := store.NewEncapsulatedPixelData(info)
	require.NoError(t, c.Encode(src, encoded, NewBaselineParameters().WithQuality(90).WithSubsampling(Subsample444)))

	frame, err := encoded.GetFrame(0)
	require.NoError(t, err)
	h, err := ParseFrameHeader(frame)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Components[0].H)

	decoded := store.NewPixelData(info)
	require.NoError(t, c.Decode(encoded, decoded, nil))
	decodedData, err := decoded.GetFrame(0)
	require.NoError(t, err)
	require.Len(t, decodedData, len(pixelData))
	for i := range pixelData {
		require.LessOrEqual(t, absDiff(pixelData[i], decodedData[i]), 3, "sample %d", i)
	}
}

func TestBaselineCodecPlanar(t *testing.T) {
	width, height := 16, 8
	n := width * height
	planar := make([]byte, 3*n)
	for i := 0; i < n; i++ {
		planar[i] = 30      // R
		planar[n+i] = 160   // G
		planar[2*n+i] = 220 // B
	}

	info := frameInfo(width, height, 3)
	info.PlanarConfiguration = 1
	src := store.NewPixelData(info)
	require.NoError(t, src.AddFrame(planar))

	c := NewBaselineCodec(95)
	encoded := store.NewEncapsulatedPixelData(info)
	require.NoError(t, c.Encode(src, encoded, nil))

	frame, err := encoded.GetFrame(0)
	require.NoError(t, err)
	pix, _, _, comps, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, 3, comps)
	assert.InDelta(t, 30, int(pix[0]), 3)
	assert.InDelta(t, 160, int(pix[1]), 3)
	assert.InDelta(t, 220, int(pix[2]), 3)
}

func TestBaselineCodecSigned(t *testing.T) {
	width, height := 16, 16
	// -100 as a two's complement byte on the left half, 0 on the right.
	signed := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width/2; x++ {
			signed[y*width+x] = 0x9C
		}
	}

	info := frameInfo(width, height, 1)
	info.PixelRepresentation = 1
	src := store.NewPixelData(info)
	require.NoError(t, src.AddFrame(signed))

	c := NewBaselineCodec(100)
	encoded := store.NewEncapsulatedPixelData(info)
	require.NoError(t, c.Encode(src, encoded, nil))

	original, err := src.GetFrame(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x9C), original[0], "source frame must not be modified")

	decoded := store.NewPixelData(info)
	require.NoError(t, c.Decode(encoded, decoded, nil))
	out, err := decoded.GetFrame(0)
	require.NoError(t, err)

	minVal, maxVal := common.SignedRange8(out, 1)
	assert.InDelta(t, -100, minVal, 3)
	assert.InDelta(t, 0, maxVal, 3)
	assert.InDelta(t, -100, int(int8(out[0])), 3)
	assert.InDelta(t, 0, int(int8(out[width-1])), 3)
}

func TestBaselineCodecMultiFrame(t *testing.T) {
	width, height := 16, 16
	info := frameInfo(width, height, 1)
	src := store.NewPixelData(info)
	for f := 0; f < 3; f++ {
		frame := make([]byte, width*height)
		for i := range frame {
			frame[i] = byte(40 + 60*f)
		}
		require.NoError(t, src.AddFrame(frame))
	}

	c := NewBaselineCodec(85)
	encoded := store.NewEncapsulatedPixelData(info)
	require.NoError(t, c.Encode(src, encoded, nil))
	require.Equal(t, 3, encoded.FrameCount())

	decoded := store.NewPixelData(info)
	require.NoError(t, c.Decode(encoded, decoded, nil))
	for f := 0; f < 3; f++ {
		frame, err := decoded.GetFrame(f)
		require.NoError(t, err)
		assert.InDelta(t, 40+60*f, int(frame[0]), 2, "frame %d", f)
	}
}

func TestBaselineCodecQualityLevels(t *testing.T) {
	width, height := 64, 64
	pixelData := make([]byte, width*height)
	for i := range pixelData {
		pixelData[i] = byte((i*7)%256) ^ byte(i/64)
	}
	info := frameInfo(width, height, 1)

	sizes := map[int]int{}
	for _, q := range []int{10, 50, 95} {
		src := store.NewPixelData(info)
		require.NoError(t, src.AddFrame(pixelData))

		params := codec.NewBaseParameters()
		params.SetParameter("quality", q)

		encoded := store.NewEncapsulatedPixelData(info)
		require.NoError(t, NewBaselineCodec(85).Encode(src, encoded, params), "quality %d", q)
		frame, err := encoded.GetFrame(0)
		require.NoError(t, err)
		sizes[q] = len(frame)
	}
	t.Logf("sizes by quality: %v", sizes)
	assert.Less(t, sizes[10], sizes[50])
	assert.Less(t, sizes[50], sizes[95])
}

func TestBaselineCodecErrors(t *testing.T) {
	c := NewBaselineCodec(85)

	assert.Error(t, c.Encode(nil, nil, nil))
	assert.Error(t, c.Decode(nil, nil, nil))

	info := frameInfo(8, 8, 1)
	info.BitsAllocated = 16
	info.BitsStored = 12
	src := store.NewPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 128)))
	err := c.Encode(src, store.NewPixelData(info), nil)
	assert.ErrorIs(t, err, common.ErrInvalidBitDepth)

	info = frameInfo(8, 8, 4)
	src = store.NewPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 256)))
	err = c.Encode(src, store.NewPixelData(info), nil)
	assert.ErrorIs(t, err, common.ErrInvalidComponents)

	info = frameInfo(8, 8, 1)
	src = store.NewPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 64)))
	err = c.Encode(src, store.NewPixelData(info), NewBaselineParameters().WithQuality(120))
	assert.ErrorIs(t, err, common.ErrInvalidQuality)

	// Frame smaller than its declared size.
	src = store.NewPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 10)))
	err = c.Encode(src, store.NewPixelData(info), nil)
	assert.ErrorIs(t, err, common.ErrBufferTooSmall)

	// Decoding into a frame size that does not match.
	encoded := store.NewEncapsulatedPixelData(info)
	src = store.NewPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 64)))
	require.NoError(t, c.Encode(src, encoded, nil))
	wrong := frameInfo(16, 8, 1)
	mismatched := store.NewPixelData(wrong)
	frame, err := encoded.GetFrame(0)
	require.NoError(t, err)
	require.NoError(t, mismatched.AddFrame(frame))
	assert.Error(t, c.Decode(mismatched, store.NewPixelData(wrong), nil))
}
