package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func constantBlock(v float64) Block {
	var b Block
	for i := range b {
		b[i] = v
	}
	return b
}

func TestFDCTConstantBlock(t *testing.T) {
	for _, k := range []float64{-128, -3.5, 0, 1, 72, 127} {
		b := constantBlock(k)
		out := FDCT(&b)

		assert.InDelta(t, 8*k, out[0], 1e-6, "DC for k=%v", k)
		for i := 1; i < BlockSize; i++ {
			assert.InDelta(t, 0, out[i], 1e-6, "AC %d for k=%v", i, k)
		}
	}
}

func TestForwardDCTLevelShift(t *testing.T) {
	tests := []struct {
		name   string
		sample float64
		wantDC float64
	}{
		{"mid gray", 128, 0},
		{"white", 255, 1016},
		{"black", 0, -1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := constantBlock(tt.sample)
			out := ForwardDCT(&b)
			assert.InDelta(t, tt.wantDC, out[0], 1e-6)
			// Input is left untouched
			assert.Equal(t, tt.sample, b[0])
		})
	}
}

func TestFDCTHorizontalCosine(t *testing.T) {
	// A single horizontal frequency v=1 only lands in F(0,1).
	var b Block
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			b[y*8+x] = dctCos[1][x]
		}
	}
	out := FDCT(&b)
	for i := 0; i < BlockSize; i++ {
		if i == 1 {
			assert.Greater(t, out[i], 1.0)
			continue
		}
		assert.InDelta(t, 0, out[i], 1e-9, "coefficient %d", i)
	}
}
