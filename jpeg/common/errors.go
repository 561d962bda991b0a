package common

import "errors"

// Common errors
var (
	ErrInvalidMarker      = errors.New("invalid JPEG marker")
	ErrInvalidSOI         = errors.New("missing SOI marker")
	ErrInvalidEOI         = errors.New("missing EOI marker")
	ErrInvalidData        = errors.New("invalid JPEG data")
	ErrUnexpectedEOF      = errors.New("unexpected end of file")
	ErrInvalidDimensions  = errors.New("invalid image dimensions")
	ErrInvalidComponents  = errors.New("invalid number of components")
	ErrInvalidBitDepth    = errors.New("invalid bit depth")
	ErrInvalidQuality     = errors.New("invalid quality factor")
	ErrInvalidSubsampling = errors.New("invalid chroma subsampling")
	ErrInvalidSymbol      = errors.New("symbol not present in Huffman table")
	ErrBufferTooSmall     = errors.New("buffer too small")
)
