package baseline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

// Component indexes in a Session.
const (
	ComponentY = iota
	ComponentCb
	ComponentCr
)

// maxDimension is the largest width or height SOF0 can carry, exclusive.
const maxDimension = 1 << 16

// component is one frame component with its plane and block grid.
type component struct {
	id    byte
	h, v  int // sampling factors
	tq    int // quantization table
	table int // 0 luminance, 1 chrominance Huffman pair

	plane      *Plane
	blocksWide int
	blocksHigh int
	blocks     []common.Block
	quantized  []common.QuantizedBlock
}

// Session holds the state of one encode: the planes, the quantized blocks
// and the quantization tables. It is not safe for concurrent use.
type Session struct {
	width  int
	height int
	pixels []raster.Pixel
	opts   Options
	log    *slog.Logger

	qtables [2][64]int32
	comps   []*component
	mcusX   int
	mcusY   int

	compressed bool
}

// NewSession validates img and opts and prepares an encode.
func NewSession(img raster.Image, opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	width, height := img.Width(), img.Height()
	if width <= 0 || height <= 0 || width >= maxDimension || height >= maxDimension {
		return nil, fmt.Errorf("%dx%d: %w", width, height, common.ErrInvalidDimensions)
	}
	pixels := img.Pixels()
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%d pixels for %dx%d: %w", len(pixels), width, height, common.ErrBufferTooSmall)
	}

	s := &Session{
		width:  width,
		height: height,
		pixels: pixels,
		opts:   opts,
		log:    opts.logger(),
	}
	s.qtables[0] = common.ScaleQuantTable(common.DefaultLuminanceQuantTable, opts.Quality)
	s.qtables[1] = common.ScaleQuantTable(common.DefaultChrominanceQuantTable, opts.Quality)

	hMax, vMax := 1, 1
	if !opts.Grayscale {
		hMax, vMax = opts.Subsampling.factors()
	}
	s.mcusX = common.DivCeil(width, 8*hMax)
	s.mcusY = common.DivCeil(height, 8*vMax)

	s.comps = []*component{{id: 1, h: hMax, v: vMax, tq: 0, table: 0}}
	if !opts.Grayscale {
		s.comps = append(s.comps,
			&component{id: 2, h: 1, v: 1, tq: 1, table: 1},
			&component{id: 3, h: 1, v: 1, tq: 1, table: 1},
		)
	}
	for _, c := range s.comps {
		c.blocksWide = s.mcusX * c.h
		c.blocksHigh = s.mcusY * c.v
	}

	return s, nil
}

// Width returns the image width.
func (s *Session) Width() int { return s.width }

// Height returns the image height.
func (s *Session) Height() int { return s.height }

// Components returns the number of frame components (1 or 3).
func (s *Session) Components() int { return len(s.comps) }

// MCUs returns the number of MCU columns and rows.
func (s *Session) MCUs() (int, int) { return s.mcusX, s.mcusY }

// QuantTable returns quantization table id (0 luminance, 1 chrominance) in
// natural order.
func (s *Session) QuantTable(id int) [64]int32 { return s.qtables[id&1] }

// Compress runs the pipeline up to quantization: color transform, chroma
// subsampling, tiling, forward DCT and quantization. It runs once; later
// calls do nothing.
func (s *Session) Compress() {
	if s.compressed {
		return
	}

	y, cb, cr := s.colorPlanes()
	s.comps[ComponentY].plane = y
	if len(s.comps) == 3 {
		if s.opts.Subsampling == Subsample420 {
			cb, cr = SubsamplePlane420(cb), SubsamplePlane420(cr)
		}
		s.comps[ComponentCb].plane = cb
		s.comps[ComponentCr].plane = cr
	}
	s.log.Debug("planes built",
		"width", s.width, "height", s.height,
		"components", len(s.comps), "subsampling", s.opts.Subsampling.String(),
		"grayscale", s.opts.Grayscale)

	for i, c := range s.comps {
		c.blocks = Tile(c.plane, c.blocksWide, c.blocksHigh)
		c.quantized = make([]common.QuantizedBlock, len(c.blocks))
		s.transform(c)
		s.log.Debug("component quantized",
			"component", i, "plane", fmt.Sprintf("%dx%d", c.plane.Width, c.plane.Height),
			"blocks", len(c.blocks), "workers", s.opts.workers())
	}

	s.compressed = true
}

// colorPlanes converts the pixels into full resolution Y, Cb and Cr planes.
// Cb and Cr are nil in grayscale mode.
func (s *Session) colorPlanes() (y, cb, cr *Plane) {
	y = NewPlane(s.width, s.height)
	if !s.opts.Grayscale {
		cb = NewPlane(s.width, s.height)
		cr = NewPlane(s.width, s.height)
	}

	for i, p := range s.pixels {
		yy, cbv, crv := common.RGBToYCbCr(p.R, p.G, p.B)
		y.Samples[i] = yy
		if cb != nil {
			cb.Samples[i] = cbv
			cr.Samples[i] = crv
		}
	}
	return y, cb, cr
}

// transform fills c.quantized from c.blocks. With more than one worker the
// blocks are split into contiguous ranges, one goroutine each.
func (s *Session) transform(c *component) {
	table := &s.qtables[c.tq]
	run := func(start, end int) {
		for i := start; i < end; i++ {
			coef := common.ForwardDCT(&c.blocks[i])
			c.quantized[i] = common.Quantize(&coef, table)
		}
	}

	n := len(c.blocks)
	workers := s.opts.workers()
	if workers == 1 || n < 2 {
		run(0, n)
		return
	}

	chunk := common.DivCeil(n, workers)
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			run(start, end)
		}(start, end)
	}
	wg.Wait()
}

// BlockCount returns the number of blocks of component comp, or 0 if comp
// does not exist.
func (s *Session) BlockCount(comp int) int {
	if comp < 0 || comp >= len(s.comps) {
		return 0
	}
	return s.comps[comp].blocksWide * s.comps[comp].blocksHigh
}

// BlockGrid returns the block columns and rows of component comp.
func (s *Session) BlockGrid(comp int) (int, int) {
	if comp < 0 || comp >= len(s.comps) {
		return 0, 0
	}
	return s.comps[comp].blocksWide, s.comps[comp].blocksHigh
}

// QuantizedBlock returns block idx (row-major in the component's block grid)
// of component comp. An invalid index, or a session that has not been
// compressed, yields an all-zero block and a warning.
func (s *Session) QuantizedBlock(comp, idx int) common.QuantizedBlock {
	if !s.compressed || comp < 0 || comp >= len(s.comps) || idx < 0 || idx >= len(s.comps[comp].quantized) {
		s.log.Warn("quantized block out of range",
			"component", comp, "index", idx,
			"blocks", s.BlockCount(comp), "compressed", s.compressed)
		return common.QuantizedBlock{}
	}
	return s.comps[comp].quantized[idx]
}

// ZigzagBlock returns QuantizedBlock(comp, idx) in zigzag order.
func (s *Session) ZigzagBlock(comp, idx int) [common.BlockSize]int32 {
	q := s.QuantizedBlock(comp, idx)
	return common.Zigzag(&q)
}

// RunLength returns the run-length entries block idx of component comp is
// coded with, its DC difference taken against the block coded before it.
func (s *Session) RunLength(comp, idx int) []common.RLEEntry {
	var pred int32
	if s.compressed && comp >= 0 && comp < len(s.comps) {
		_ = s.forEachBlock(func(c, i int) error {
			if c != comp {
				return nil
			}
			if i == idx {
				return errStopScan
			}
			pred = s.comps[c].quantized[i][0]
			return nil
		})
	}
	zz := s.ZigzagBlock(comp, idx)
	return common.RunLengthEncode(&zz, pred)
}

var errStopScan = errors.New("stop scan")

// forEachBlock visits every block in interleaved MCU order: MCUs row-major,
// and inside an MCU each component's H x V blocks row-major.
func (s *Session) forEachBlock(fn func(comp, idx int) error) error {
	for my := 0; my < s.mcusY; my++ {
		for mx := 0; mx < s.mcusX; mx++ {
			for ci, c := range s.comps {
				for v := 0; v < c.v; v++ {
					for h := 0; h < c.h; h++ {
						idx := (my*c.v+v)*c.blocksWide + mx*c.h + h
						if err := fn(ci, idx); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// Reconstruct converts the session planes back to RGB. Subsampled chroma is
// upsampled by repetition. The result reflects the color transform and
// subsampling only, not quantization.
func (s *Session) Reconstruct() *raster.RGB {
	s.Compress()

	y := s.comps[ComponentY].plane
	out := raster.NewFilled(s.width, s.height, raster.Pixel{})
	pix := out.Pixels()

	step := 1
	if len(s.comps) == 3 && s.opts.Subsampling == Subsample420 {
		step = 2
	}

	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			cb, cr := 128.0, 128.0
			if len(s.comps) == 3 {
				cb = s.comps[ComponentCb].plane.At(col/step, row/step)
				cr = s.comps[ComponentCr].plane.At(col/step, row/step)
			}
			r, g, b := common.YCbCrToRGB(y.Samples[row*s.width+col], cb, cr)
			pix[row*s.width+col] = raster.Pixel{R: r, G: g, B: b}
		}
	}
	return out
}
