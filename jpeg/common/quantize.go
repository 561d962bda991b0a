package common

import "math"

// Quantize divides each coefficient by the matching table entry and rounds
// to the nearest integer, ties away from zero. The table is in natural order.
func Quantize(coef *Block, table *[64]int32) QuantizedBlock {
	var out QuantizedBlock
	for i := 0; i < BlockSize; i++ {
		out[i] = int32(math.Round(coef[i] / float64(table[i])))
	}
	return out
}
