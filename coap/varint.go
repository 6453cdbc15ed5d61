package coap

import "encoding/binary"

const (
	nibbleExtByte  = 13
	nibbleExtWord  = 14
	nibbleReserved = 15

	extByteOffset = 13
	extWordOffset = 269

	// maxExtended is the largest delta or length the 2 byte extension
	// can carry.
	maxExtended = 0xFFFF + extWordOffset

	// PayloadMarker separates the options from the payload.
	PayloadMarker byte = 0xFF

	// MaxTokenLength is the longest token a message may carry.
	MaxTokenLength = 8

	// HeaderSize is the fixed part of every message.
	HeaderSize = 4
)

// encodeExtended splits v into its nibble and extension bytes. Only the
// first n bytes of ext are used. v must not exceed maxExtended.
func encodeExtended(v uint32) (nibble byte, ext [2]byte, n int) {
	switch {
	case v < extByteOffset:
		return byte(v), ext, 0

	case v < extWordOffset:
		ext[0] = byte(v - extByteOffset)
		return nibbleExtByte, ext, 1

	default:
		binary.BigEndian.PutUint16(ext[:], uint16(v-extWordOffset))
		return nibbleExtWord, ext, 2
	}
}

// extendedLen is the number of extension bytes that follow a nibble, or -1
// for the reserved nibble.
func extendedLen(nibble byte) int {
	switch nibble {
	case nibbleExtByte:
		return 1
	case nibbleExtWord:
		return 2
	case nibbleReserved:
		return -1
	default:
		return 0
	}
}

// decodeExtended reads the value for nibble from the front of data. It
// returns the number of bytes consumed, and false if the nibble is reserved
// or data is too short.
func decodeExtended(nibble byte, data []byte) (v uint32, n int, ok bool) {
	switch nibble {
	case nibbleExtByte:
		if len(data) < 1 {
			return 0, 0, false
		}

		return uint32(data[0]) + extByteOffset, 1, true

	case nibbleExtWord:
		if len(data) < 2 {
			return 0, 0, false
		}

		return uint32(binary.BigEndian.Uint16(data)) + extWordOffset, 2, true

	case nibbleReserved:
		return 0, 0, false

	default:
		return uint32(nibble), 0, true
	}
}

// minimalUint writes v big-endian into a scratch array and returns the
// index of its first non-zero byte. Zero has no bytes at all, the start
// index is then 8.
func minimalUint(v uint64) (b [8]byte, start int) {
	binary.BigEndian.PutUint64(b[:], v)

	for start < len(b) && b[start] == 0 {
		start++
	}

	return b, start
}

// decodeUint reads up to 8 big-endian bytes. An empty value is 0.
func decodeUint(b []byte) (uint64, bool) {
	if len(b) > 8 {
		return 0, false
	}

	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return v, true
}
