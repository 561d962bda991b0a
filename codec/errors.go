package codec

import "errors"

var (
	// ErrCodecNotFound is returned for a name, alias or UID nothing was
	// registered under.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidQuality is returned for a quality outside 0-100.
	ErrInvalidQuality = errors.New("invalid quality (must be 0-100)")

	// ErrFrameGeometry is returned for a frame whose size, component count
	// or buffer length do not agree.
	ErrFrameGeometry = errors.New("invalid frame geometry")
)

// ErrFrameIndex is returned by TestPixelData for a frame it does not hold.
var ErrFrameIndex = errors.New("frame index out of range")
