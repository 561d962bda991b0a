package common

import "math"

// dctCos[u][x] = cos((2x+1)uπ/16)
var dctCos [8][8]float64

// dctNorm[u][v] is 1/4 Cu Cv with Cu = 1/√2 for u=0 and 1 otherwise. The
// (0,0) entry is stored as exactly 1/8 so the DC of a constant block is
// exactly 8 times its value.
var dctNorm [8][8]float64

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			dctCos[u][x] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
	for u := 0; u < 8; u++ {
		for v := 0; v < 8; v++ {
			switch {
			case u == 0 && v == 0:
				dctNorm[u][v] = 0.125
			case u == 0 || v == 0:
				dctNorm[u][v] = 0.25 / math.Sqrt2
			default:
				dctNorm[u][v] = 0.25
			}
		}
	}
}

// LevelShift subtracts 128 from every sample of b.
func LevelShift(b *Block) {
	for i := range b {
		b[i] -= 128
	}
}

// FDCT computes the orthonormal 2-D DCT-II of an already level-shifted
// block:
//
//	F(u,v) = 1/4 Cu Cv ΣyΣx f(y,x) cos((2y+1)uπ/16) cos((2x+1)vπ/16)
//
// The sums are evaluated directly. Output is in natural order with u as the
// row (vertical frequency) and v as the column.
func FDCT(in *Block) Block {
	var out Block
	for u := 0; u < 8; u++ {
		for v := 0; v < 8; v++ {
			sum := 0.0
			for y := 0; y < 8; y++ {
				cy := dctCos[u][y]
				row := in[y*8 : y*8+8]
				for x := 0; x < 8; x++ {
					sum += row[x] * cy * dctCos[v][x]
				}
			}
			out[u*8+v] = dctNorm[u][v] * sum
		}
	}
	return out
}

// ForwardDCT level-shifts a block of 0..255 samples and transforms it.
// The input block is left untouched.
func ForwardDCT(in *Block) Block {
	shifted := *in
	LevelShift(&shifted)
	return FDCT(&shifted)
}
