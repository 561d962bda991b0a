// Package ppm reads and writes Netpbm PPM images: P3 (text) and P6
// (binary).
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/cocosip/go-jpeg-baseline/raster"
)

// Format is the PPM variant, named by its magic tag.
type Format string

const (
	FormatP3 Format = "P3" // text samples
	FormatP6 Format = "P6" // binary samples
)

var (
	// ErrFormat is returned for a stream that is not a P3 or P6 image.
	ErrFormat = errors.New("ppm: unsupported format")
	// ErrHeader is returned for a malformed width, height or maxval.
	ErrHeader = errors.New("ppm: invalid header")
)

// Image is a decoded PPM. It satisfies raster.Image through the embedded
// RGB raster.
type Image struct {
	*raster.RGB
	Format Format
	MaxVal int
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// Open decodes the PPM file at path. zstd and gzip compressed files are
// recognised by their magic bytes and decompressed on the fly.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, _ := br.Peek(4)

	switch {
	case hasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, errors.Wrapf(err, "zstd %s", path)
		}
		defer dec.Close()
		img, err := Decode(dec)
		return img, errors.Wrapf(err, "decode %s", path)

	case hasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		defer zr.Close()
		img, err := Decode(zr)
		return img, errors.Wrapf(err, "decode %s", path)
	}

	img, err := Decode(br)
	return img, errors.Wrapf(err, "decode %s", path)
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Decode reads a P3 or P6 image. Samples are rescaled from 0..maxval to
// 0..255.
func Decode(r io.Reader) (*Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &scanner{r: br}

	magic, err := s.token()
	if err != nil {
		return nil, errors.Wrap(err, "magic")
	}
	format := Format(magic)
	if format != FormatP3 && format != FormatP6 {
		return nil, errors.Wrapf(ErrFormat, "magic %q", magic)
	}

	width, err := s.int()
	if err != nil {
		return nil, errors.Wrap(err, "width")
	}
	height, err := s.int()
	if err != nil {
		return nil, errors.Wrap(err, "height")
	}
	maxVal, err := s.int()
	if err != nil {
		return nil, errors.Wrap(err, "maxval")
	}
	if width <= 0 || height <= 0 || maxVal < 1 || maxVal > 65535 {
		return nil, errors.Wrapf(ErrHeader, "%dx%d maxval %d", width, height, maxVal)
	}

	pix := make([]raster.Pixel, width*height)
	var sample func() (int, error)
	if format == FormatP3 {
		sample = s.int
	} else {
		sample = binarySampler(br, maxVal)
	}

	for i := range pix {
		var rgb [3]uint8
		for c := 0; c < 3; c++ {
			v, err := sample()
			if err != nil {
				return nil, errors.Wrapf(err, "pixel %d", i)
			}
			if v > maxVal {
				return nil, errors.Wrapf(ErrHeader, "pixel %d: sample %d above maxval %d", i, v, maxVal)
			}
			rgb[c] = scale(v, maxVal)
		}
		pix[i] = raster.Pixel{R: rgb[0], G: rgb[1], B: rgb[2]}
	}

	img, err := raster.NewRGB(width, height, pix)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Image{RGB: img, Format: format, MaxVal: maxVal}, nil
}

func binarySampler(br *bufio.Reader, maxVal int) func() (int, error) {
	if maxVal < 256 {
		return func() (int, error) {
			b, err := br.ReadByte()
			return int(b), noEOF(err)
		}
	}
	var buf [2]byte
	return func() (int, error) {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return 0, noEOF(err)
		}
		return int(buf[0])<<8 | int(buf[1]), nil
	}
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func scale(v, maxVal int) uint8 {
	if maxVal == 255 {
		return uint8(v)
	}
	return uint8((v*255 + maxVal/2) / maxVal)
}

// scanner splits the header and P3 raster into whitespace separated
// tokens, dropping '#' comments.
type scanner struct {
	r   *bufio.Reader
	buf []byte
}

func (s *scanner) token() (string, error) {
	s.buf = s.buf[:0]
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(s.buf) > 0 {
				return string(s.buf), nil
			}
			return "", noEOF(err)
		}
		switch {
		case b == '#' && len(s.buf) == 0:
			if _, err := s.r.ReadBytes('\n'); err != nil {
				return "", noEOF(err)
			}
		case isSpace(b):
			// The single whitespace byte ending a token is consumed, which
			// for maxval is the separator before a P6 raster.
			if len(s.buf) > 0 {
				return string(s.buf), nil
			}
		default:
			s.buf = append(s.buf, b)
		}
	}
}

func (s *scanner) int() (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrHeader, "token %q", tok)
	}
	return v, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// Encode writes img as a P3 or P6 image with maxval 255.
func Encode(w io.Writer, img raster.Image, format Format) error {
	if format != FormatP3 && format != FormatP6 {
		return errors.Wrapf(ErrFormat, "format %q", format)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", format, img.Width(), img.Height()); err != nil {
		return errors.WithStack(err)
	}

	width := img.Width()
	for i, p := range img.Pixels() {
		var err error
		if format == FormatP6 {
			_, err = bw.Write([]byte{p.R, p.G, p.B})
		} else {
			sep := " "
			if (i+1)%width == 0 {
				sep = "\n"
			}
			_, err = fmt.Fprintf(bw, "%d %d %d%s", p.R, p.G, p.B, sep)
		}
		if err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(bw.Flush())
}

// Save writes img to path in the given format.
func Save(path string, img raster.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
