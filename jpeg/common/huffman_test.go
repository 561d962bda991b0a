package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardHuffmanCodes(t *testing.T) {
	tests := []struct {
		name    string
		table   int
		symbol  byte
		code    uint16
		codeLen int
	}{
		{"DC luma category 0", TableDCLuminance, 0x00, 0b00, 2},
		{"DC luma category 1", TableDCLuminance, 0x01, 0b010, 3},
		{"DC luma category 6", TableDCLuminance, 0x06, 0b1110, 4},
		{"DC luma category 11", TableDCLuminance, 0x0B, 0x1FE, 9},
		{"DC chroma category 2", TableDCChrominance, 0x02, 0b10, 2},
		{"AC luma EOB", TableACLuminance, 0x00, 0b1010, 4},
		{"AC luma 0/1", TableACLuminance, 0x01, 0b00, 2},
		{"AC luma ZRL", TableACLuminance, 0xF0, 0x7F9, 11},
		{"AC chroma EOB", TableACChrominance, 0x00, 0b00, 2},
		{"AC chroma ZRL", TableACChrominance, 0xF0, 0x3FA, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := StandardHuffmanTables[tt.table].Lookup(tt.symbol)
			require.True(t, ok)
			assert.Equal(t, tt.codeLen, c.Len)
			assert.Equal(t, tt.code, c.Code)
		})
	}
}

func TestStandardHuffmanTablesArePrefixFree(t *testing.T) {
	wantValues := [NumHuffmanTables]int{12, 162, 12, 162}

	for i, table := range StandardHuffmanTables {
		require.Equal(t, wantValues[i], table.NumValues())
		require.Len(t, table.Values, table.NumValues())

		var defined []HuffmanCode
		for _, symbol := range table.Values {
			c, ok := table.Lookup(symbol)
			require.True(t, ok, "table %d symbol 0x%02x", i, symbol)
			require.GreaterOrEqual(t, c.Len, 1)
			require.LessOrEqual(t, c.Len, 16)
			defined = append(defined, c)
		}

		for a := range defined {
			for b := range defined {
				if a == b {
					continue
				}
				ca, cb := defined[a], defined[b]
				if ca.Len > cb.Len {
					continue
				}
				// ca must not be a prefix of cb
				assert.NotEqual(t, ca.Code, cb.Code>>uint(cb.Len-ca.Len),
					"table %d: code %0*b is a prefix of %0*b", i, ca.Len, ca.Code, cb.Len, cb.Code)
			}
		}
	}
}

func TestStandardHuffmanTablesShareCodes(t *testing.T) {
	for i, table := range StandardHuffmanTables {
		assert.Equal(t, table.Codes(), StandardHuffmanCodes[i])
	}
}

func TestLookupMissingSymbol(t *testing.T) {
	// Category 12 is not defined for baseline DC.
	_, ok := StandardHuffmanTables[TableDCLuminance].Lookup(12)
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		val  int
		want int
	}{
		{0, 0}, {1, 1}, {-1, 1}, {2, 2}, {3, 2}, {-3, 2}, {4, 3},
		{255, 8}, {-256, 9}, {1023, 10}, {1024, 11}, {2047, 11}, {-2047, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.val), "Category(%d)", tt.val)
	}
}

func TestEncodeCategory(t *testing.T) {
	tests := []struct {
		val  int
		cat  int
		bits uint32
	}{
		{0, 0, 0},
		{1, 1, 0b1},
		{-1, 1, 0b0},
		{5, 3, 0b101},
		{-5, 3, 0b010},
		{64, 7, 64},
		{-64, 7, 63},
	}
	for _, tt := range tests {
		cat, bits := EncodeCategory(tt.val)
		assert.Equal(t, tt.cat, cat, "category of %d", tt.val)
		assert.Equal(t, tt.bits, bits, "bits of %d", tt.val)
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for v := -2047; v <= 2047; v++ {
		cat, bits := EncodeCategory(v)
		if cat > 0 {
			require.Less(t, bits, uint32(1)<<uint(cat), "value %d", v)
		}
		require.Equal(t, v, DecodeCategory(cat, bits), "value %d", v)
	}
}
