package baseline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/jpeg/standard"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

// FrameHeader is the parsed SOF0 segment of a stream.
type FrameHeader struct {
	Precision  int
	Width      int
	Height     int
	Components []FrameComponent
}

// FrameComponent is one component specification of SOF0.
type FrameComponent struct {
	ID byte
	H  int // Horizontal sampling factor
	V  int // Vertical sampling factor
	Tq int // Quantization table selector
}

// ParseFrameHeader walks the segments of a JPEG stream and returns its SOF0
// header. Streams using any other frame type are rejected.
func ParseFrameHeader(jpegData []byte) (*FrameHeader, error) {
	segments, err := standard.ReadSegments(jpegData)
	if err != nil {
		return nil, err
	}

	var header *FrameHeader
	for _, seg := range segments {
		switch seg.Marker {
		case common.MarkerSOF1, common.MarkerSOF2, common.MarkerSOF3:
			return nil, fmt.Errorf("%s frame: %w", seg.Name(), common.ErrInvalidMarker)
		case common.MarkerSOF0:
			header, err = parseSOF0(seg.Data)
			if err != nil {
				return nil, err
			}
		}
	}
	if header == nil {
		return nil, fmt.Errorf("no SOF0 segment: %w", common.ErrInvalidData)
	}
	return header, nil
}

func parseSOF0(data []byte) (*FrameHeader, error) {
	if len(data) < 6 {
		return nil, common.ErrInvalidData
	}

	h := &FrameHeader{
		Precision: int(data[0]),
		Height:    int(data[1])<<8 | int(data[2]),
		Width:     int(data[3])<<8 | int(data[4]),
	}
	if h.Precision != 8 {
		return nil, fmt.Errorf("%d-bit precision: %w", h.Precision, common.ErrInvalidBitDepth)
	}

	n := int(data[5])
	if n != 1 && n != 3 {
		return nil, fmt.Errorf("%d components: %w", n, common.ErrInvalidComponents)
	}
	if len(data) < 6+n*3 {
		return nil, common.ErrInvalidData
	}
	for i := 0; i < n; i++ {
		h.Components = append(h.Components, FrameComponent{
			ID: data[6+i*3],
			H:  int(data[7+i*3] >> 4),
			V:  int(data[7+i*3] & 0x0F),
			Tq: int(data[8+i*3]),
		})
	}
	return h, nil
}

// Decode decodes JPEG Baseline data to 8-bit interleaved samples: one per
// pixel for grayscale frames, RGB triplets otherwise.
func Decode(jpegData []byte) (pixelData []byte, width, height, components int, err error) {
	header, err := ParseFrameHeader(jpegData)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	img, err := jpeg.Decode(bytes.NewReader(jpegData))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("decode jpeg: %w", err)
	}

	width, height = header.Width, header.Height
	if gray, ok := img.(*image.Gray); ok {
		pixelData = make([]byte, width*height)
		for y := 0; y < height; y++ {
			copy(pixelData[y*width:(y+1)*width], gray.Pix[y*gray.Stride:])
		}
		return pixelData, width, height, 1, nil
	}

	rgb := raster.FromImage(img)
	pixelData = make([]byte, 0, width*height*3)
	for _, p := range rgb.Pixels() {
		pixelData = append(pixelData, p.R, p.G, p.B)
	}
	return pixelData, width, height, 3, nil
}
