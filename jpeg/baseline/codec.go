package baseline

import (
	"fmt"

	"github.com/cocosip/go-jpeg-baseline/codec"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

// UID is the DICOM Transfer Syntax UID of JPEG Baseline (Process 1).
const UID = "1.2.840.10008.1.2.4.50"

var (
	_ codec.Codec   = (*Codec)(nil)
	_ codec.Aliaser = (*Codec)(nil)
)

// Codec exposes the encoder through the module's codec registry.
type Codec struct{}

// NewCodec creates a new JPEG Baseline codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode compresses an 8-bit frame. opts may be *Options, *codec.BaseOptions
// or nil for DefaultOptions. Single component frames are always encoded as
// grayscale.
func (c *Codec) Encode(frame codec.Frame, opts codec.Options) ([]byte, error) {
	if frame.Bits() != 8 {
		return nil, fmt.Errorf("%d bits: %w", frame.Bits(), common.ErrInvalidBitDepth)
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	var (
		img *raster.RGB
		err error
	)
	if frame.Planar {
		img, err = raster.FromPlanar(frame.Pixels, frame.Width, frame.Height)
	} else {
		img, err = raster.FromInterleaved(frame.Pixels, frame.Width, frame.Height, frame.Components)
	}
	if err != nil {
		return nil, err
	}

	o := DefaultOptions()
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		switch v := opts.(type) {
		case *Options:
			o = *v
		case *codec.BaseOptions:
			o.Quality = v.Quality
		default:
			return nil, fmt.Errorf("options %T: %w", opts, common.ErrInvalidData)
		}
	}
	o.Grayscale = o.Grayscale || frame.Components == 1

	return EncodeBytes(img, o)
}

// Decode decompresses one stream into interleaved 8-bit samples.
func (c *Codec) Decode(data []byte) (*codec.Frame, error) {
	pixels, width, height, components, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &codec.Frame{
		Pixels:     pixels,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8,
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline
func (c *Codec) UID() string {
	return UID
}

// Name returns "jpeg-baseline".
func (c *Codec) Name() string {
	return "jpeg-baseline"
}

// Aliases returns the other names the codec is registered under.
func (c *Codec) Aliases() []string {
	return []string{"jpeg", "baseline", "jpeg-process1"}
}

func init() {
	codec.Register(NewCodec())
}
