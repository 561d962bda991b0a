package codec

import (
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ imagetypes.PixelData = (*PixelData)(nil)

// PixelData keeps DICOM frames in memory. It satisfies go-dicom's
// imagetypes.PixelData, so the transfer syntax codecs can read from and
// write to it.
type PixelData struct {
	info         *imagetypes.FrameInfo
	frames       [][]byte
	encapsulated bool
}

// NewPixelData returns an empty native (uncompressed) frame store.
func NewPixelData(info *imagetypes.FrameInfo) *PixelData {
	return &PixelData{info: info}
}

// NewEncapsulatedPixelData returns an empty store for compressed frames.
func NewEncapsulatedPixelData(info *imagetypes.FrameInfo) *PixelData {
	return &PixelData{info: info, encapsulated: true}
}

// GetFrame returns frame i.
func (p *PixelData) GetFrame(i int) ([]byte, error) {
	if i < 0 || i >= len(p.frames) {
		return nil, ErrFrameIndex
	}
	return p.frames[i], nil
}

// AddFrame appends a frame. The slice is kept, not copied.
func (p *PixelData) AddFrame(data []byte) error {
	p.frames = append(p.frames, data)
	return nil
}

// FrameCount returns the number of frames held.
func (p *PixelData) FrameCount() int { return len(p.frames) }

// GetFrameInfo returns the shared frame description.
func (p *PixelData) GetFrameInfo() *imagetypes.FrameInfo { return p.info }

// IsEncapsulated reports whether the frames are compressed.
func (p *PixelData) IsEncapsulated() bool { return p.encapsulated }
