package standard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

var (
	dcLuma = common.StandardHuffmanCodes[common.TableDCLuminance]
	acLuma = common.StandardHuffmanCodes[common.TableACLuminance]
)

func TestEncodeBlockWhite(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf, PadZeros)

	// DC 64: category 7 (11110) + 1000000, then EOB (1010)
	rle := []common.RLEEntry{{Run: 0, Value: 64}, common.EOB}
	require.NoError(t, EncodeBlock(bw, rle, dcLuma, acLuma))
	assert.Equal(t, 5+7+4, bw.Pending()+8*buf.Len())
	require.NoError(t, bw.Flush())

	// 11110100 00001010
	assert.Equal(t, []byte{0xF4, 0x0A}, buf.Bytes())
}

func TestEncodeBlockGray(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf, PadZeros)

	// DC 0 (00) then EOB (1010)
	rle := []common.RLEEntry{{Run: 0, Value: 0}, common.EOB}
	require.NoError(t, EncodeBlock(bw, rle, dcLuma, acLuma))
	require.NoError(t, bw.Flush())
	assert.Equal(t, []byte{0b00101000}, buf.Bytes())
}

func TestEncodeACNegative(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf, PadZeros)

	// 0/2 is 01, -3 has bits 00
	require.NoError(t, EncodeAC(bw, common.RLEEntry{Run: 0, Value: -3}, acLuma))
	require.NoError(t, bw.Flush())
	assert.Equal(t, []byte{0b01000000}, buf.Bytes())
}

func TestEncodeInvalidSymbols(t *testing.T) {
	bw := NewBitWriter(&bytes.Buffer{}, PadZeros)

	assert.ErrorIs(t, EncodeDC(bw, 4096, dcLuma), common.ErrInvalidSymbol)
	assert.ErrorIs(t, EncodeAC(bw, common.RLEEntry{Run: 16, Value: 1}, acLuma), common.ErrInvalidSymbol)
	assert.ErrorIs(t, EncodeAC(bw, common.RLEEntry{Run: 0, Value: 2048}, acLuma), common.ErrInvalidSymbol)
	assert.ErrorIs(t, EncodeBlock(bw, nil, dcLuma, acLuma), common.ErrInvalidData)
}
