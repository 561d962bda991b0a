package standard

import "io"

// Padding selects the fill bits of the last partial byte of a scan.
type Padding int

const (
	// PadZeros fills the final byte with 0 bits.
	PadZeros Padding = iota
	// PadOnes fills the final byte with 1 bits (T.81 F.1.2.3).
	PadOnes
)

// String returns "zeros" or "ones".
func (p Padding) String() string {
	if p == PadOnes {
		return "ones"
	}
	return "zeros"
}

// BitWriter packs bits MSB-first into bytes for an entropy-coded segment.
// Every 0xFF output byte is followed by a stuffed 0x00.
//
// A BitWriter belongs to a single encode session; all of its state lives in
// the value.
type BitWriter struct {
	w       io.ByteWriter
	bits    uint32 // Bit buffer
	nBits   int    // Number of bits in buffer
	padding Padding
	stuffed int
	err     error
}

// NewBitWriter creates a BitWriter that writes to w.
func NewBitWriter(w io.ByteWriter, padding Padding) *BitWriter {
	return &BitWriter{w: w, padding: padding}
}

// WriteBits writes the n low bits of bits, most significant first.
// n must be at most 24.
func (bw *BitWriter) WriteBits(bits uint32, n int) error {
	if bw.err != nil {
		return bw.err
	}
	if n == 0 {
		return nil
	}

	bw.bits = (bw.bits << uint(n)) | (bits & ((1 << uint(n)) - 1))
	bw.nBits += n

	for bw.nBits >= 8 {
		b := byte(bw.bits >> uint(bw.nBits-8))
		if err := bw.writeByte(b); err != nil {
			return err
		}
		bw.nBits -= 8
	}
	bw.bits &= (1 << uint(bw.nBits)) - 1

	return nil
}

// writeByte writes a byte with byte stuffing
func (bw *BitWriter) writeByte(b byte) error {
	if err := bw.w.WriteByte(b); err != nil {
		bw.err = err
		return err
	}

	if b == 0xFF {
		if err := bw.w.WriteByte(0x00); err != nil {
			bw.err = err
			return err
		}
		bw.stuffed++
	}

	return nil
}

// Flush pads and writes the final partial byte, then resets the bit buffer.
func (bw *BitWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	if bw.nBits > 0 {
		pad := 8 - bw.nBits
		b := byte(bw.bits << uint(pad))
		if bw.padding == PadOnes {
			b |= byte((1 << uint(pad)) - 1)
		}
		if err := bw.writeByte(b); err != nil {
			return err
		}
	}
	bw.nBits = 0
	bw.bits = 0
	return nil
}

// Pending returns the number of bits waiting for a full byte.
func (bw *BitWriter) Pending() int {
	return bw.nBits
}

// Stuffed returns how many 0x00 bytes have been inserted after 0xFF.
func (bw *BitWriter) Stuffed() int {
	return bw.stuffed
}
