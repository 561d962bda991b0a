// Package codec keeps track of the still-image codecs built into this
// module. Codecs are found by name, by alias or by DICOM Transfer Syntax UID.
// It also provides an in-memory frame store for go-dicom's codec interface.
package codec

import "fmt"

// Codec compresses and decompresses single frames of 8-bit samples.
type Codec interface {
	// Encode compresses frame. opts may be nil for the codec defaults.
	Encode(frame Frame, opts Options) ([]byte, error)

	// Decode decompresses one frame. Color frames come back interleaved.
	Decode(data []byte) (*Frame, error)

	// UID returns the DICOM Transfer Syntax UID the codec produces.
	UID() string

	// Name returns a short lowercase name such as "jpeg-baseline".
	Name() string
}

// Aliaser is implemented by codecs reachable under extra names.
type Aliaser interface {
	Aliases() []string
}

// Frame is one image held as raw samples.
type Frame struct {
	Pixels     []byte
	Width      int
	Height     int
	Components int  // 1 grayscale, 3 RGB
	BitDepth   int  // 0 reads as 8
	Planar     bool // R, G and B planes one after the other
}

// Bits returns the sample precision, defaulting to 8.
func (f *Frame) Bits() int {
	if f.BitDepth == 0 {
		return 8
	}
	return f.BitDepth
}

// Size returns the number of bytes the frame geometry calls for.
func (f *Frame) Size() int {
	return f.Width * f.Height * f.Components * ((f.Bits() + 7) / 8)
}

// Validate checks the geometry and that Pixels holds at least Size bytes.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", f.Width, f.Height, ErrFrameGeometry)
	}
	if f.Components != 1 && f.Components != 3 {
		return fmt.Errorf("%d components: %w", f.Components, ErrFrameGeometry)
	}
	if f.Planar && f.Components != 3 {
		return fmt.Errorf("planar frame with %d components: %w", f.Components, ErrFrameGeometry)
	}
	if len(f.Pixels) < f.Size() {
		return fmt.Errorf("%d of %d bytes: %w", len(f.Pixels), f.Size(), ErrFrameGeometry)
	}
	return nil
}

// Options are codec specific encoding settings.
type Options interface {
	Validate() error
}

// BaseOptions carries the settings every lossy codec understands.
type BaseOptions struct {
	// Quality is 1-100, higher is better. 0 selects the codec's
	// unscaled default tables.
	Quality int
}

// Validate rejects a quality outside 0-100.
func (o *BaseOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("quality %d: %w", o.Quality, ErrInvalidQuality)
	}
	return nil
}
