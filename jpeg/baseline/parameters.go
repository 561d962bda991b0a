package baseline

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Ensure JPEGBaselineParameters implements codec.Parameters
var _ codec.Parameters = (*JPEGBaselineParameters)(nil)

// JPEGBaselineParameters contains parameters for JPEG Baseline compression
type JPEGBaselineParameters struct {
	// Quality scales the quantization tables (0-100)
	// - 0:   Annex K tables as published, unscaled
	// - 95:  Near visually lossless
	// - 85:  High quality (default)
	// - 50:  Same as the Annex K tables
	// - 1:   Lowest quality, maximum compression
	Quality int

	// Subsampling is "420" (default) or "444". Ignored for single-sample
	// frames.
	Subsampling string

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewBaselineParameters creates a new JPEGBaselineParameters with default values
func NewBaselineParameters() *JPEGBaselineParameters {
	return &JPEGBaselineParameters{
		Quality:     85,
		Subsampling: Subsample420.String(),
		params:      make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *JPEGBaselineParameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	case "subsampling":
		return p.Subsampling
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *JPEGBaselineParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	case "subsampling":
		if v, ok := value.(string); ok {
			p.Subsampling = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *JPEGBaselineParameters) Validate() error {
	if p.Quality < 0 || p.Quality > 100 {
		return common.ErrInvalidQuality
	}
	if p.Subsampling == "" {
		p.Subsampling = Subsample420.String()
	}
	_, err := ParseSubsampling(p.Subsampling)
	return err
}

// WithQuality sets the quality and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithQuality(quality int) *JPEGBaselineParameters {
	p.Quality = quality
	return p
}

// WithSubsampling sets the subsampling and returns the parameters for chaining
func (p *JPEGBaselineParameters) WithSubsampling(s Subsampling) *JPEGBaselineParameters {
	p.Subsampling = s.String()
	return p
}

// Options converts the parameters into encoder options.
func (p *JPEGBaselineParameters) Options() (Options, error) {
	opts := DefaultOptions()
	opts.Quality = p.Quality

	sub, err := ParseSubsampling(p.Subsampling)
	if err != nil {
		return Options{}, err
	}
	opts.Subsampling = sub
	return opts, opts.Validate()
}
