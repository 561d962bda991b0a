package baseline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/jpeg/standard"
	"github.com/cocosip/go-jpeg-baseline/raster"
)

// Encode writes img to w as a baseline JPEG.
func Encode(w io.Writer, img raster.Image, opts Options) error {
	s, err := NewSession(img, opts)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

// EncodeBytes encodes img into memory.
func EncodeBytes(img raster.Image, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePixels encodes 8-bit interleaved pixel data.
// components: 1 for grayscale, 3 for RGB
// quality: 0-100, 0 keeps the Annex K tables unscaled
func EncodePixels(pixelData []byte, width, height, components, quality int) ([]byte, error) {
	img, err := raster.FromInterleaved(pixelData, width, height, components)
	if err != nil {
		return nil, err
	}

	opts := DefaultOptions()
	opts.Quality = quality
	opts.Grayscale = components == 1
	return EncodeBytes(img, opts)
}

// WriteTo compresses the session if needed and writes the complete JPEG
// stream to w.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	s.Compress()

	writer := standard.NewWriter(w)

	// Write SOI
	_ = writer.WriteMarker(common.MarkerSOI)

	s.writeDQT(writer)
	s.writeSOF0(writer)
	s.writeDHT(writer)

	// Write SOS and scan data
	if err := s.writeSOS(writer); err != nil {
		return writer.Written(), err
	}

	// Write EOI
	_ = writer.WriteMarker(common.MarkerEOI)

	if err := writer.Err(); err != nil {
		return writer.Written(), fmt.Errorf("write jpeg: %w", err)
	}
	s.log.Debug("jpeg written", "bytes", writer.Written())
	return writer.Written(), nil
}

// writeDQT writes one Define Quantization Table segment per table in use.
func (s *Session) writeDQT(writer *standard.Writer) {
	numTables := 1
	if len(s.comps) == 3 {
		numTables = 2
	}

	for i := 0; i < numTables; i++ {
		_ = writer.WriteQuantTable(byte(i), &s.qtables[i])
	}
}

// writeSOF0 writes Start of Frame (Baseline DCT)
func (s *Session) writeSOF0(writer *standard.Writer) {
	data := make([]byte, 6+len(s.comps)*3)

	data[0] = 8                   // Precision: 8 bits
	data[1] = byte(s.height >> 8) // Height high byte
	data[2] = byte(s.height)      // Height low byte
	data[3] = byte(s.width >> 8)  // Width high byte
	data[4] = byte(s.width)       // Width low byte
	data[5] = byte(len(s.comps))  // Number of components

	for i, c := range s.comps {
		data[6+i*3] = c.id
		data[7+i*3] = byte(c.h<<4 | c.v)
		data[8+i*3] = byte(c.tq)
	}

	_ = writer.WriteSegment(common.MarkerSOF0, data)
}

// writeDHT writes one Define Huffman Table segment per table in use.
func (s *Session) writeDHT(writer *standard.Writer) {
	tables := []struct {
		class byte
		id    byte
		index int
	}{
		{0, 0, common.TableDCLuminance},
		{1, 0, common.TableACLuminance},
	}
	if len(s.comps) == 3 {
		tables = append(tables, []struct {
			class byte
			id    byte
			index int
		}{
			{0, 1, common.TableDCChrominance},
			{1, 1, common.TableACChrominance},
		}...)
	}

	for _, t := range tables {
		_ = writer.WriteHuffmanTable(t.class, t.id, common.StandardHuffmanTables[t.index])
	}
}

// writeSOS writes Start of Scan and scan data
func (s *Session) writeSOS(writer *standard.Writer) error {
	n := len(s.comps)
	data := make([]byte, 1+n*2+3)
	data[0] = byte(n)

	for i, c := range s.comps {
		data[1+i*2] = c.id
		data[2+i*2] = byte(c.table<<4 | c.table) // DC table, AC table
	}

	// Spectral selection
	data[1+n*2] = 0  // Start of spectral selection
	data[2+n*2] = 63 // End of spectral selection
	data[3+n*2] = 0  // Successive approximation

	if err := writer.WriteSegment(common.MarkerSOS, data); err != nil {
		return fmt.Errorf("write SOS: %w", err)
	}

	scan, err := s.encodeScan()
	if err != nil {
		return err
	}
	_ = writer.WriteBytes(scan)
	return nil
}

// encodeScan entropy-codes every block in MCU order.
func (s *Session) encodeScan() ([]byte, error) {
	var scanBuf bytes.Buffer
	bw := standard.NewBitWriter(&scanBuf, s.opts.Padding)

	// DC predictors start at zero and are never shared between components.
	preds := make([]int32, len(s.comps))

	err := s.forEachBlock(func(ci, idx int) error {
		c := s.comps[ci]
		zz := common.Zigzag(&c.quantized[idx])
		rle := common.RunLengthEncode(&zz, preds[ci])
		preds[ci] = zz[0]

		dc, ac := common.TableDCLuminance, common.TableACLuminance
		if c.table == 1 {
			dc, ac = common.TableDCChrominance, common.TableACChrominance
		}
		if err := standard.EncodeBlock(bw, rle, common.StandardHuffmanCodes[dc], common.StandardHuffmanCodes[ac]); err != nil {
			return fmt.Errorf("component %d block %d: %w", ci, idx, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := bw.Flush(); err != nil {
		return nil, err
	}

	s.log.Debug("scan encoded",
		"bytes", scanBuf.Len(), "stuffed", bw.Stuffed(), "padding", s.opts.Padding.String())
	return scanBuf.Bytes(), nil
}
