package standard

import (
	"fmt"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// EncodeDC encodes a DC coefficient difference
func EncodeDC(bw *BitWriter, diff int, dcCodes []common.HuffmanCode) error {
	cat, bits := common.EncodeCategory(diff)

	if cat >= len(dcCodes) || dcCodes[cat].Len == 0 {
		return fmt.Errorf("DC category %d: %w", cat, common.ErrInvalidSymbol)
	}

	code := dcCodes[cat]
	if err := bw.WriteBits(uint32(code.Code), code.Len); err != nil {
		return err
	}

	// Write magnitude bits
	if cat > 0 {
		if err := bw.WriteBits(bits, cat); err != nil {
			return err
		}
	}

	return nil
}

// EncodeAC encodes one AC run/value entry. EOB and ZRL carry no value bits.
func EncodeAC(bw *BitWriter, e common.RLEEntry, acCodes []common.HuffmanCode) error {
	cat, bits := common.EncodeCategory(int(e.Value))
	symbol := int(e.Run)<<4 | cat

	if e.Run < 0 || e.Run > 15 || symbol >= len(acCodes) || acCodes[symbol].Len == 0 {
		return fmt.Errorf("AC symbol 0x%02x: %w", symbol, common.ErrInvalidSymbol)
	}

	code := acCodes[symbol]
	if err := bw.WriteBits(uint32(code.Code), code.Len); err != nil {
		return err
	}

	if cat > 0 {
		if err := bw.WriteBits(bits, cat); err != nil {
			return err
		}
	}

	return nil
}

// EncodeBlock writes the run-length entries of one block: entry 0 with the
// DC table, the rest with the AC table.
func EncodeBlock(bw *BitWriter, rle []common.RLEEntry, dcCodes, acCodes []common.HuffmanCode) error {
	if len(rle) == 0 {
		return fmt.Errorf("empty block: %w", common.ErrInvalidData)
	}

	if err := EncodeDC(bw, int(rle[0].Value), dcCodes); err != nil {
		return err
	}

	for _, e := range rle[1:] {
		if err := EncodeAC(bw, e, acCodes); err != nil {
			return err
		}
	}

	return nil
}
