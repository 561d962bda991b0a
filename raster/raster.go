// Package raster holds the in-memory RGB images consumed by the encoder.
package raster

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Pixel is one 8-bit RGB sample triplet.
type Pixel struct {
	R, G, B uint8
}

// Image is the capability the encoder needs from a raster: its size and its
// pixels in row-major order. len(Pixels()) must equal Width()*Height().
type Image interface {
	Width() int
	Height() int
	Pixels() []Pixel
}

// RGB is a plain row-major RGB raster.
type RGB struct {
	width  int
	height int
	pix    []Pixel
}

var _ Image = (*RGB)(nil)

// NewRGB wraps pix as a width x height image. It fails when the sizes do
// not agree.
func NewRGB(width, height int, pix []Pixel) (*RGB, error) {
	if width <= 0 || height <= 0 {
		return nil, common.ErrInvalidDimensions
	}
	if len(pix) != width*height {
		return nil, common.ErrBufferTooSmall
	}
	return &RGB{width: width, height: height, pix: pix}, nil
}

// NewFilled returns a width x height image of a single color.
func NewFilled(width, height int, p Pixel) *RGB {
	pix := make([]Pixel, width*height)
	for i := range pix {
		pix[i] = p
	}
	return &RGB{width: width, height: height, pix: pix}
}

// Width returns the image width in pixels.
func (m *RGB) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *RGB) Height() int { return m.height }

// Pixels returns the backing pixel slice.
func (m *RGB) Pixels() []Pixel { return m.pix }

// At returns the pixel at column x, row y.
func (m *RGB) At(x, y int) Pixel {
	return m.pix[y*m.width+x]
}

// Set replaces the pixel at column x, row y.
func (m *RGB) Set(x, y int, p Pixel) {
	m.pix[y*m.width+x] = p
}

// ToImage converts any Image to an *image.RGBA.
func ToImage(img Image) *image.RGBA {
	w, h := img.Width(), img.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	pix := img.Pixels()
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			p := pix[y*w+x]
			row[4*x+0] = p.R
			row[4*x+1] = p.G
			row[4*x+2] = p.B
			row[4*x+3] = 0xff
		}
	}
	return out
}

// FromImage copies a standard library image into an RGB raster. Alpha is
// dropped.
func FromImage(m image.Image) *RGB {
	b := m.Bounds()
	out := &RGB{width: b.Dx(), height: b.Dy(), pix: make([]Pixel, b.Dx()*b.Dy())}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			out.pix[i] = Pixel{R: c.R, G: c.G, B: c.B}
			i++
		}
	}
	return out
}

// FromInterleaved builds a raster from 8-bit samples. components is 1
// (grayscale, replicated to all channels) or 3 (RGB triplets).
func FromInterleaved(data []byte, width, height, components int) (*RGB, error) {
	if width <= 0 || height <= 0 {
		return nil, common.ErrInvalidDimensions
	}
	if components != 1 && components != 3 {
		return nil, common.ErrInvalidComponents
	}
	if len(data) < width*height*components {
		return nil, common.ErrBufferTooSmall
	}

	pix := make([]Pixel, width*height)
	for i := range pix {
		if components == 1 {
			v := data[i]
			pix[i] = Pixel{R: v, G: v, B: v}
			continue
		}
		pix[i] = Pixel{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return &RGB{width: width, height: height, pix: pix}, nil
}

// FromPlanar builds a raster from three consecutive 8-bit planes (R, then G,
// then B).
func FromPlanar(data []byte, width, height int) (*RGB, error) {
	if width <= 0 || height <= 0 {
		return nil, common.ErrInvalidDimensions
	}
	n := width * height
	if len(data) < 3*n {
		return nil, common.ErrBufferTooSmall
	}

	pix := make([]Pixel, n)
	for i := range pix {
		pix[i] = Pixel{R: data[i], G: data[n+i], B: data[2*n+i]}
	}
	return &RGB{width: width, height: height, pix: pix}, nil
}

// Fit downscales img to fit within maxWidth x maxHeight, keeping its aspect
// ratio. A zero bound is unconstrained. Images that already fit are returned
// as is.
func Fit(img Image, maxWidth, maxHeight uint) Image {
	if maxWidth == 0 {
		maxWidth = uint(img.Width())
	}
	if maxHeight == 0 {
		maxHeight = uint(img.Height())
	}
	if uint(img.Width()) <= maxWidth && uint(img.Height()) <= maxHeight {
		return img
	}
	return FromImage(resize.Thumbnail(maxWidth, maxHeight, ToImage(img), resize.Lanczos3))
}
