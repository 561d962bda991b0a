package common

// BlockSize is the number of samples in an 8x8 block.
const BlockSize = 64

// Block is an 8x8 block of samples or DCT coefficients in natural
// (row-major) order.
type Block [BlockSize]float64

// QuantizedBlock is an 8x8 block of quantized coefficients in natural order.
type QuantizedBlock [BlockSize]int32

// ZigZag maps a zigzag scan index to its natural-order index.
var ZigZag = [BlockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// UnZigZag maps a natural-order index to its zigzag scan index.
var UnZigZag [BlockSize]int

func init() {
	for zig, natural := range ZigZag {
		UnZigZag[natural] = zig
	}
}

// Zigzag reorders a block into zigzag scan order.
func Zigzag(b *QuantizedBlock) [BlockSize]int32 {
	var out [BlockSize]int32
	for zig := 0; zig < BlockSize; zig++ {
		out[zig] = b[ZigZag[zig]]
	}
	return out
}

// Dezigzag restores natural order from a zigzag sequence.
func Dezigzag(zz *[BlockSize]int32) QuantizedBlock {
	var out QuantizedBlock
	for zig := 0; zig < BlockSize; zig++ {
		out[ZigZag[zig]] = zz[zig]
	}
	return out
}
