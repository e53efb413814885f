package deflate

import "pngo/pngerr"

// Reader is a little-endian bit-level cursor over a byte buffer. Bits
// within a byte are consumed LSB-first unless ReadBitsReversed is used.
// Grounded on the BitStream type of the original prototype's inflater:
// a (byteOffset, bitOffset) pair where bitOffset always stays in [0,8).
type Reader struct {
	data       []byte
	byteOffset int
	bitOffset  uint8
}

// NewReader wraps data for bit-level reading starting at byte 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// AtEnd reports whether the cursor has consumed every byte of the buffer.
func (r *Reader) AtEnd() bool {
	return r.byteOffset >= len(r.data)
}

// ReadBits consumes n (<=16) bits LSB-first and returns them as the low
// n bits of the result. Reading past the end of the buffer yields zero
// bits rather than erroring — callers that must distinguish "ran out of
// input" from "the stream legitimately contains zero bits" check AtEnd
// first (this mirrors the reference BitStream::readBits, which never
// throws on its own).
func (r *Reader) ReadBits(n uint8) uint32 {
	var out uint32
	var shift uint8

	if r.byteOffset >= len(r.data) {
		return 0
	}

	if r.bitOffset != 0 {
		byteVal := r.data[r.byteOffset] >> r.bitOffset
		available := 8 - r.bitOffset
		toRead := min8(available, n)

		out |= uint32(byteVal & (0xFF >> (8 - toRead)))
		n -= toRead
		shift += toRead

		r.bitOffset += toRead
		if r.bitOffset == 8 {
			r.bitOffset = 0
			r.byteOffset++
		}
	}

	for n >= 8 {
		if r.byteOffset >= len(r.data) {
			return out
		}
		out |= uint32(r.data[r.byteOffset]) << shift
		r.byteOffset++
		shift += 8
		n -= 8
	}

	if n > 0 && r.byteOffset < len(r.data) {
		b := r.data[r.byteOffset]
		out |= uint32(b&(0xFF>>(8-n))) << shift
		r.bitOffset = n
	}

	return out
}

// ReadBitsReversed consumes n bits MSB-first: the first bit read becomes
// the highest-order bit of the result. The inflater does not call it: it
// reads Huffman codes LSB-first through tables permuted by InvertBits.
func (r *Reader) ReadBitsReversed(n uint8) uint32 {
	var out uint32

	if r.bitOffset != 0 {
		byteVal := r.data[r.byteOffset] << r.bitOffset
		available := 8 - r.bitOffset
		toRead := min8(available, n)

		out |= uint32(byteVal >> (8 - toRead))
		n -= toRead

		r.bitOffset += toRead
		if r.bitOffset == 8 {
			r.bitOffset = 0
			r.byteOffset++
		}
	}

	for n >= 8 {
		out <<= 8
		out |= uint32(r.data[r.byteOffset])
		r.byteOffset++
		n -= 8
	}

	if n > 0 {
		b := r.data[r.byteOffset]
		out = out<<n | uint32(b>>(8-n))
		r.bitOffset = n
	}

	return out
}

// AlignToByte drops any partially-consumed byte, required before the
// LEN/NLEN fields of a stored block.
func (r *Reader) AlignToByte() {
	if r.bitOffset != 0 {
		r.bitOffset = 0
		r.byteOffset++
	}
}

// ReadRawBytes returns the next n bytes verbatim; the reader must
// already be byte-aligned. Used for stored-block payloads.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	if r.bitOffset != 0 {
		return nil, pngerr.New(pngerr.TruncatedStream, "deflate.Reader.ReadRawBytes", "reader not byte-aligned")
	}
	if r.byteOffset+n > len(r.data) {
		return nil, pngerr.New(pngerr.TruncatedStream, "deflate.Reader.ReadRawBytes", "not enough input remaining")
	}
	out := r.data[r.byteOffset : r.byteOffset+n]
	r.byteOffset += n
	return out, nil
}

// ReadHuffmanCode peeks table.MaxBits bits, looks up the resulting
// symbol, then advances the stream by that symbol's true code length.
// This is BitStream::readHuffmanCode from the reference inflater,
// translated to Go's explicit-error style.
func (r *Reader) ReadHuffmanCode(table *Table) (uint16, error) {
	if r.AtEnd() {
		return 0, pngerr.New(pngerr.TruncatedStream, "deflate.Reader.ReadHuffmanCode", "ran out of input while decoding a Huffman code")
	}

	savedByte, savedBit := r.byteOffset, r.bitOffset

	bits := r.ReadBits(table.MaxBits)
	entry := table.decode(bits)
	if entry.Bits == 0 {
		return 0, pngerr.New(pngerr.MalformedHuffman, "deflate.Reader.ReadHuffmanCode", "no code matches the peeked bits")
	}

	r.byteOffset, r.bitOffset = savedByte, savedBit
	r.bitOffset += entry.Bits
	for r.bitOffset >= 8 {
		r.bitOffset -= 8
		r.byteOffset++
	}

	return entry.Value, nil
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
