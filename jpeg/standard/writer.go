package standard

import (
	"encoding/binary"
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Writer writes JPEG markers and segments.
//
// The first write error is latched: every later call returns it without
// touching the destination, so a failed stream never gains another marker.
type Writer struct {
	w   io.Writer
	buf [4]byte
	n   int64
	err error
}

// NewWriter creates a new JPEG writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Written returns the number of bytes successfully written.
func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return err
}

// WriteByte writes a single byte
func (w *Writer) WriteByte(b byte) error {
	w.buf[0] = b
	return w.write(w.buf[:1])
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

// WriteMarker writes a JPEG marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a segment with length
// The length field is automatically calculated and includes itself (2 bytes)
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	if len(data)+2 > 0xFFFF {
		if w.err == nil {
			w.err = common.ErrInvalidData
		}
		return w.err
	}

	// Marker and length go out in one write so a short write cannot split them.
	binary.BigEndian.PutUint16(w.buf[0:2], marker)
	binary.BigEndian.PutUint16(w.buf[2:4], uint16(len(data)+2))
	if err := w.write(w.buf[:4]); err != nil {
		return err
	}
	return w.write(data)
}

// WriteHuffmanTable writes one DHT segment.
// class: 0 for DC, 1 for AC
// id: table ID (0 or 1)
func (w *Writer) WriteHuffmanTable(class, id byte, table *common.HuffmanTable) error {
	data := make([]byte, 1+16+table.NumValues())
	data[0] = (class << 4) | id

	for i := 0; i < 16; i++ {
		data[1+i] = byte(table.Bits[i])
	}
	copy(data[17:], table.Values)

	return w.WriteSegment(common.MarkerDHT, data)
}

// WriteQuantTable writes one 8-bit precision DQT segment. table is in
// natural order; the segment carries it in zigzag order.
func (w *Writer) WriteQuantTable(id byte, table *[64]int32) error {
	data := make([]byte, 1+64)
	data[0] = id // Precision=0 (8-bit), Table ID=id

	for j := 0; j < 64; j++ {
		data[1+j] = byte(table[common.ZigZag[j]])
	}

	return w.WriteSegment(common.MarkerDQT, data)
}

// Write writes raw bytes
func (w *Writer) Write(data []byte) (int, error) {
	if err := w.write(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// WriteBytes writes raw bytes, such as entropy-coded data
func (w *Writer) WriteBytes(data []byte) error {
	return w.write(data)
}
