package baseline

import (
	"fmt"
	"log/slog"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/jpeg/standard"
)

// Subsampling selects the chroma sampling ratio.
type Subsampling int

const (
	// Subsample420 halves chroma in both directions (Y 2x2, Cb/Cr 1x1).
	Subsample420 Subsampling = iota
	// Subsample444 keeps chroma at full resolution.
	Subsample444
)

// String returns "420" or "444".
func (s Subsampling) String() string {
	switch s {
	case Subsample420:
		return "420"
	case Subsample444:
		return "444"
	default:
		return fmt.Sprintf("Subsampling(%d)", int(s))
	}
}

// ParseSubsampling converts "420" or "444" (optionally prefixed "4:")
// into a Subsampling.
func ParseSubsampling(s string) (Subsampling, error) {
	switch s {
	case "420", "4:2:0":
		return Subsample420, nil
	case "444", "4:4:4":
		return Subsample444, nil
	}
	return 0, fmt.Errorf("%q: %w", s, common.ErrInvalidSubsampling)
}

// factors returns the luma sampling factors (H, V). Chroma is always 1x1.
func (s Subsampling) factors() (int, int) {
	if s == Subsample420 {
		return 2, 2
	}
	return 1, 1
}

// Options contains encoding options for JPEG Baseline
type Options struct {
	// Quality scales the Annex K quantization tables (1-100, 50 is the
	// tables as published). 0 uses the tables verbatim.
	Quality int

	Subsampling Subsampling

	// Grayscale encodes the luma plane only.
	Grayscale bool

	// Padding fills the last byte of the entropy-coded segment.
	Padding standard.Padding

	// Workers > 1 runs the DCT and quantization stage concurrently.
	Workers int

	Logger *slog.Logger
}

// DefaultOptions returns the canonical configuration: Annex K tables, 4:2:0,
// zero padding, one worker.
func DefaultOptions() Options {
	return Options{
		Quality:     0,
		Subsampling: Subsample420,
		Padding:     standard.PadZeros,
		Workers:     1,
	}
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return common.ErrInvalidQuality
	}
	if o.Subsampling != Subsample420 && o.Subsampling != Subsample444 {
		return common.ErrInvalidSubsampling
	}
	if o.Padding != standard.PadZeros && o.Padding != standard.PadOnes {
		return fmt.Errorf("padding %d: %w", int(o.Padding), common.ErrInvalidData)
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
