package pngo

import "encoding/binary"

// The helpers in this file build minimal, hand-assembled PNG byte
// streams for the scenario tests in spec §8. They always wrap IDAT
// payloads in a single zlib stored block, sidestepping the need to
// hand-encode Huffman codes for fixture data the deflate package
// already has its own dedicated tests for.

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func chunk(typ string, data []byte) []byte {
	out := append([]byte{}, be32(uint32(len(data)))...)
	out = append(out, []byte(typ)...)
	out = append(out, data...)
	out = append(out, 0, 0, 0, 0) // CRC, never validated
	return out
}

func buildPNG(chunks ...[]byte) []byte {
	out := append([]byte{}, signature[:]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func ihdrChunk(width, height uint32, depth byte, colorType ColorType, interlace byte) []byte {
	data := append([]byte{}, be32(width)...)
	data = append(data, be32(height)...)
	data = append(data, depth, byte(colorType), 0, 0, interlace)
	return chunk("IHDR", data)
}

// zlibStore wraps payload in a single zlib-framed stored DEFLATE
// block: header 78 01, BFINAL+BTYPE=0x01, LEN/NLEN, payload verbatim.
func zlibStore(payload []byte) []byte {
	n := uint16(len(payload))
	out := []byte{0x78, 0x01, 0x01}
	out = append(out, byte(n), byte(n>>8))
	nlen := ^n
	out = append(out, byte(nlen), byte(nlen>>8))
	out = append(out, payload...)
	return out
}

func idatChunk(payload []byte) []byte {
	return chunk("IDAT", zlibStore(payload))
}

var iendChunk = chunk("IEND", nil)
