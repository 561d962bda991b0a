package common

// HuffmanCode represents a Huffman code
type HuffmanCode struct {
	Code uint16 // The Huffman code, right-aligned
	Len  int    // Code length in bits, 0 if the symbol has no code
}

// HuffmanTable is a canonical Huffman table in DHT form.
type HuffmanTable struct {
	// Number of codes of each length (1-16 bits)
	Bits [16]int
	// Values for each code, in order of code length
	Values []byte

	codes []HuffmanCode
}

// Build assigns the canonical codes of the table. It is idempotent.
func (h *HuffmanTable) Build() {
	h.codes = BuildHuffmanCodes(h)
}

// Codes returns the symbol -> code lookup, building it on first use.
func (h *HuffmanTable) Codes() []HuffmanCode {
	if h.codes == nil {
		h.Build()
	}
	return h.codes
}

// Lookup returns the code of symbol and whether the table defines it.
func (h *HuffmanTable) Lookup(symbol byte) (HuffmanCode, bool) {
	c := h.Codes()[symbol]
	return c, c.Len > 0
}

// NumValues returns the total number of symbols, i.e. the sum of Bits.
func (h *HuffmanTable) NumValues() int {
	n := 0
	for _, count := range h.Bits {
		n += count
	}
	return n
}

// BuildHuffmanCodes builds the symbol -> code lookup of a table.
//
// Codes are assigned by the canonical procedure of T.81 Annex C: starting at
// zero, each length L receives Bits[L-1] consecutive codes in Values order,
// and the running code is shifted left once per length.
func BuildHuffmanCodes(table *HuffmanTable) []HuffmanCode {
	codes := make([]HuffmanCode, 256)

	code := uint16(0)
	p := 0

	for l := 0; l < 16; l++ {
		for i := 0; i < table.Bits[l]; i++ {
			if p < len(table.Values) {
				codes[table.Values[p]] = HuffmanCode{
					Code: code,
					Len:  l + 1,
				}
				code++
				p++
			}
		}
		code <<= 1
	}

	return codes
}

// Category returns the number of bits needed to represent |val|.
func Category(val int) int {
	if val < 0 {
		val = -val
	}
	cat := 0
	for val > 0 {
		val >>= 1
		cat++
	}
	return cat
}

// EncodeCategory returns the category of val and the cat raw bits that
// follow its Huffman code. Negative values are stored as val + 2^cat - 1.
func EncodeCategory(val int) (cat int, bits uint32) {
	cat = Category(val)
	if cat == 0 {
		return 0, 0
	}
	if val > 0 {
		return cat, uint32(val)
	}
	return cat, uint32((1 << uint(cat)) + val - 1)
}

// DecodeCategory reverses EncodeCategory (the EXTEND procedure of F.2.2.1).
func DecodeCategory(cat int, bits uint32) int {
	if cat == 0 {
		return 0
	}
	val := int(bits)
	if val < 1<<uint(cat-1) {
		val += (-1 << uint(cat)) + 1
	}
	return val
}
