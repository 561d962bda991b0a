package common

// RLEEntry is one (zero run, value) pair of a block's run-length coding.
//
// Entry 0 of a block always carries the DC difference. After that, (0,0) is
// End-Of-Block and (15,0) is ZRL, sixteen zero coefficients.
type RLEEntry struct {
	Run   int32
	Value int32
}

// Special AC entries.
var (
	EOB = RLEEntry{Run: 0, Value: 0}
	ZRL = RLEEntry{Run: 15, Value: 0}
)

// IsEOB reports whether e, at a position other than 0, is End-Of-Block.
func (e RLEEntry) IsEOB() bool { return e == EOB }

// IsZRL reports whether e is a sixteen-zero escape.
func (e RLEEntry) IsZRL() bool { return e == ZRL }

// RunLengthEncode codes a zigzag-ordered block. pred is the previous DC of
// the same component; the caller must replace it with zz[0] afterwards.
func RunLengthEncode(zz *[BlockSize]int32, pred int32) []RLEEntry {
	rle := make([]RLEEntry, 0, 8)
	rle = append(rle, RLEEntry{Run: 0, Value: zz[0] - pred})

	zeros := int32(0)
	for k := 1; k < BlockSize; k++ {
		v := zz[k]
		if v == 0 {
			zeros++
			continue
		}
		for zeros > 15 {
			rle = append(rle, ZRL)
			zeros -= 16
		}
		rle = append(rle, RLEEntry{Run: zeros, Value: v})
		zeros = 0
	}

	if zeros > 0 {
		rle = append(rle, EOB)
	}
	return rle
}
