package standard

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// Reader provides utilities for reading JPEG data
type Reader struct {
	r   *bufio.Reader
	buf [2]byte
	off int64
}

// NewReader creates a new JPEG reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.off++
	return b, nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	n, err := io.ReadFull(r.r, r.buf[:2])
	r.off += int64(n)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadMarker reads the next JPEG marker
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, common.ErrInvalidMarker
	}

	// Skip any fill 0xFF bytes
	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			break
		}
	}

	// 0x00 is a stuffed byte (escaped 0xFF in data), not a marker
	if b == 0x00 {
		return 0, common.ErrInvalidMarker
	}

	return uint16(0xFF00) | uint16(b), nil
}

// ReadSegment reads a segment with its length
// Returns the segment data (without the length field)
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	// Length includes itself (2 bytes)
	if length < 2 {
		return nil, common.ErrInvalidData
	}

	data := make([]byte, length-2)
	n, err := io.ReadFull(r.r, data)
	r.off += int64(n)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// SkipEntropyData consumes entropy-coded bytes up to, but not including, the
// next marker that is neither a stuffed 0xFF00 nor an RSTn. It returns the
// number of bytes skipped.
func (r *Reader) SkipEntropyData() (int, error) {
	n := 0
	for {
		peek, err := r.r.Peek(2)
		if len(peek) == 0 {
			return n, err
		}
		if peek[0] != 0xFF {
			_, _ = r.r.ReadByte()
			r.off++
			n++
			continue
		}
		if len(peek) < 2 {
			return n, err
		}

		marker := uint16(0xFF00) | uint16(peek[1])
		if peek[1] != 0x00 && !common.IsRST(marker) {
			// Leave the marker in the stream for ReadMarker.
			return n, nil
		}
		_, _ = r.r.Discard(2)
		r.off += 2
		n += 2
	}
}

// Segment describes one marker segment of a JPEG stream.
type Segment struct {
	Marker uint16
	Offset int64  // offset of the 0xFF byte of the marker
	Data   []byte // payload without the length field; nil for SOI/EOI
	// EntropyLength is the size of the entropy-coded data following an SOS
	// segment, stuffed bytes included.
	EntropyLength int
}

// Name returns the marker mnemonic.
func (s Segment) Name() string {
	return common.MarkerName(s.Marker)
}

// ReadSegments lists the segments of a complete JPEG stream, from SOI to EOI.
func ReadSegments(data []byte) ([]Segment, error) {
	reader := NewReader(bytes.NewReader(data))

	marker, err := reader.ReadMarker()
	if err != nil {
		return nil, err
	}
	if marker != common.MarkerSOI {
		return nil, common.ErrInvalidSOI
	}
	segments := []Segment{{Marker: common.MarkerSOI}}

	for {
		offset := reader.Offset()
		marker, err := reader.ReadMarker()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return segments, common.ErrInvalidEOI
			}
			return segments, err
		}

		seg := Segment{Marker: marker, Offset: offset}
		if marker == common.MarkerEOI {
			return append(segments, seg), nil
		}
		if common.HasLength(marker) {
			seg.Data, err = reader.ReadSegment()
			if err != nil {
				return segments, unexpectedEOF(err)
			}
		}
		if marker == common.MarkerSOS {
			seg.EntropyLength, err = reader.SkipEntropyData()
			if err != nil {
				return append(segments, seg), unexpectedEOF(err)
			}
		}
		segments = append(segments, seg)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return common.ErrUnexpectedEOF
	}
	return err
}

// CountMarkers returns how many segments carry each marker.
func CountMarkers(segments []Segment) map[uint16]int {
	counts := make(map[uint16]int)
	for _, s := range segments {
		counts[s.Marker]++
	}
	return counts
}
