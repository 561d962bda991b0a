package baseline

import "github.com/cocosip/go-jpeg-baseline/jpeg/common"

// Plane is one component's samples in row-major order.
type Plane struct {
	Width   int
	Height  int
	Samples []float64
}

// NewPlane allocates a zeroed width x height plane.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Samples: make([]float64, width*height)}
}

// At returns the sample at (x, y), clamping both coordinates into the plane.
func (p *Plane) At(x, y int) float64 {
	if x >= p.Width {
		x = p.Width - 1
	}
	if y >= p.Height {
		y = p.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return p.Samples[y*p.Width+x]
}

// SubsamplePlane420 averages each 2x2 neighbourhood into one sample. Edge
// neighbourhoods average only their in-bounds samples.
func SubsamplePlane420(p *Plane) *Plane {
	out := NewPlane(common.DivCeil(p.Width, 2), common.DivCeil(p.Height, 2))

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			sum := 0.0
			n := 0
			for dy := 0; dy < 2; dy++ {
				sy := 2*y + dy
				if sy >= p.Height {
					break
				}
				for dx := 0; dx < 2; dx++ {
					sx := 2*x + dx
					if sx >= p.Width {
						break
					}
					sum += p.Samples[sy*p.Width+sx]
					n++
				}
			}
			out.Samples[y*out.Width+x] = sum / float64(n)
		}
	}
	return out
}

// Tile cuts the plane into blocksWide x blocksHigh 8x8 blocks in row-major
// block order. Positions past the plane edge repeat the last row or column.
func Tile(p *Plane, blocksWide, blocksHigh int) []common.Block {
	blocks := make([]common.Block, blocksWide*blocksHigh)

	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			b := &blocks[by*blocksWide+bx]
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					b[y*8+x] = p.At(bx*8+x, by*8+y)
				}
			}
		}
	}
	return blocks
}
