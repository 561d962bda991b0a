package common

import "fmt"

// JPEG marker constants
const (
	// Start of Image
	MarkerSOI = 0xFFD8

	// End of Image
	MarkerEOI = 0xFFD9

	// Start of Frame markers
	MarkerSOF0 = 0xFFC0 // Baseline DCT
	MarkerSOF1 = 0xFFC1 // Extended Sequential DCT
	MarkerSOF2 = 0xFFC2 // Progressive DCT
	MarkerSOF3 = 0xFFC3 // Lossless (Sequential)

	// Define Huffman Table
	MarkerDHT = 0xFFC4

	// Define Quantization Table
	MarkerDQT = 0xFFDB

	// Define Restart Interval
	MarkerDRI = 0xFFDD

	// Start of Scan
	MarkerSOS = 0xFFDA

	// JFIF application segment
	MarkerAPP0 = 0xFFE0

	// Comment
	MarkerCOM = 0xFFFE

	// Restart markers
	MarkerRST0 = 0xFFD0
	MarkerRST7 = 0xFFD7
)

// MarkerName returns the mnemonic of a marker, or its hex value for
// markers without one.
func MarkerName(marker uint16) string {
	switch marker {
	case MarkerSOI:
		return "SOI"
	case MarkerEOI:
		return "EOI"
	case MarkerSOF0:
		return "SOF0"
	case MarkerSOF1:
		return "SOF1"
	case MarkerSOF2:
		return "SOF2"
	case MarkerSOF3:
		return "SOF3"
	case MarkerDHT:
		return "DHT"
	case MarkerDQT:
		return "DQT"
	case MarkerDRI:
		return "DRI"
	case MarkerSOS:
		return "SOS"
	case MarkerAPP0:
		return "APP0"
	case MarkerCOM:
		return "COM"
	}
	if IsRST(marker) {
		return fmt.Sprintf("RST%d", marker-MarkerRST0)
	}
	return fmt.Sprintf("0x%04X", marker)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(marker uint16) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}

// HasLength returns true if the marker is followed by a length field
func HasLength(marker uint16) bool {
	// Markers without length: SOI, EOI, RSTn
	if marker == MarkerSOI || marker == MarkerEOI {
		return false
	}
	return !IsRST(marker)
}
