package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

var _ codec.Codec = (*BaselineCodec)(nil)

// BaselineCodec implements the external codec.Codec interface for the JPEG
// Baseline (Process 1) transfer syntax.
type BaselineCodec struct {
	transferSyntax *transfer.Syntax
	quality        int
}

// NewBaselineCodec creates a new JPEG Baseline codec
// quality: default quality (0-100, 0 keeps the Annex K tables unscaled)
func NewBaselineCodec(quality int) *BaselineCodec {
	if quality < 0 || quality > 100 {
		quality = 85
	}
	return &BaselineCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
		quality:        quality,
	}
}

// Name returns the codec name
func (c *BaselineCodec) Name() string {
	return fmt.Sprintf("JPEG Baseline (Quality %d)", c.quality)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *BaselineCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *BaselineCodec) GetDefaultParameters() codec.Parameters {
	return NewBaselineParameters().WithQuality(c.quality)
}

// options resolves the encode options from the codec defaults and the
// caller's parameters.
func (c *BaselineCodec) options(parameters codec.Parameters) (Options, error) {
	var p *JPEGBaselineParameters
	if parameters != nil {
		if bp, ok := parameters.(*JPEGBaselineParameters); ok {
			p = bp
		} else {
			// Fallback: read the generic parameter names
			p = NewBaselineParameters().WithQuality(c.quality)
			if q, ok := parameters.GetParameter("quality").(int); ok {
				p.Quality = q
			}
			if s, ok := parameters.GetParameter("subsampling").(string); ok {
				p.Subsampling = s
			}
		}
	} else {
		p = NewBaselineParameters().WithQuality(c.quality)
	}

	if err := p.Validate(); err != nil {
		return Options{}, err
	}
	return p.Options()
}

// Encode encodes pixel data to JPEG Baseline format
func (c *BaselineCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	// Get frame info
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	// Baseline carries 8-bit samples only
	if frameInfo.BitsAllocated != 8 || frameInfo.BitsStored > 8 {
		return fmt.Errorf("JPEG Baseline requires 8-bit samples, got %d/%d: %w",
			frameInfo.BitsAllocated, frameInfo.BitsStored, common.ErrInvalidBitDepth)
	}
	spp := int(frameInfo.SamplesPerPixel)
	if spp != 1 && spp != 3 {
		return fmt.Errorf("%d samples per pixel: %w", spp, common.ErrInvalidComponents)
	}

	opts, err := c.options(parameters)
	if err != nil {
		return err
	}
	opts.Grayscale = spp == 1

	width, height := int(frameInfo.Width), int(frameInfo.Height)

	// Process all frames
	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		// Signed samples are shifted into the unsigned range baseline codes
		if frameInfo.PixelRepresentation != 0 {
			shifted := make([]byte, len(frameData))
			copy(shifted, frameData)
			common.SignedToUnsigned8(shifted)
			frameData = shifted
		}

		var img *raster.RGB
		if spp == 3 && frameInfo.PlanarConfiguration == 1 {
			img, err = raster.FromPlanar(frameData, width, height)
		} else {
			img, err = raster.FromInterleaved(frameData, width, height, spp)
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		jpegData, err := EncodeBytes(img, opts)
		if err != nil {
			return fmt.Errorf("JPEG Baseline encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(jpegData); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decodes JPEG Baseline data to uncompressed pixel data. Color
// frames come back interleaved.
func (c *BaselineCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		pixelData, width, height, components, err := Decode(frameData)
		if err != nil {
			return fmt.Errorf("JPEG Baseline decode failed for frame %d: %w", frameIndex, err)
		}

		// Verify dimensions match if specified
		if frameInfo.Width > 0 && width != int(frameInfo.Width) {
			return fmt.Errorf("decoded width (%d) doesn't match expected (%d)", width, frameInfo.Width)
		}
		if frameInfo.Height > 0 && height != int(frameInfo.Height) {
			return fmt.Errorf("decoded height (%d) doesn't match expected (%d)", height, frameInfo.Height)
		}
		if frameInfo.SamplesPerPixel > 0 && components != int(frameInfo.SamplesPerPixel) {
			return fmt.Errorf("decoded components (%d) don't match expected (%d)", components, frameInfo.SamplesPerPixel)
		}

		if frameInfo.PixelRepresentation != 0 {
			common.UnsignedToSigned8(pixelData)
		}

		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the global registry
func RegisterBaselineCodec(quality int) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewBaselineCodec(quality))
}

func init() {
	RegisterBaselineCodec(85)
}
