// Package deflate implements an RFC 1950 (zlib) framed RFC 1951
// (DEFLATE) decompressor: bit-stream reading, canonical Huffman table
// construction, and LZ77 back-reference expansion. It is the part of
// this module that makes it self-contained — nothing here calls into
// compress/zlib or compress/flate.
package deflate

import "pngo/pngerr"

const op = "deflate.Inflate"

// Inflate decompresses a zlib-framed DEFLATE stream (RFC 1950 framing
// around RFC 1951 payload) and returns the raw decompressed bytes. The
// ADLER32 trailer is neither computed nor checked, matching the
// reference prototype this module is grounded on.
func Inflate(input []byte) ([]byte, error) {
	if len(input) < 2 {
		return nil, pngerr.New(pngerr.TruncatedStream, op, "zlib stream shorter than its 2-byte header")
	}

	r := NewReader(input)

	cm := r.ReadBits(4)
	cinfo := r.ReadBits(4)
	cmf := cinfo<<4 | cm

	if cm != 8 {
		return nil, pngerr.New(pngerr.UnsupportedZlib, op, "compression method is not DEFLATE (CM != 8)")
	}
	if cinfo > 7 {
		return nil, pngerr.New(pngerr.UnsupportedZlib, op, "window size field CINFO exceeds 7")
	}

	fcheck := r.ReadBits(5)
	fdict := r.ReadBits(1)
	flevel := r.ReadBits(2)
	flg := flevel<<6 | fdict<<5 | fcheck

	if fdict != 0 {
		return nil, pngerr.New(pngerr.UnsupportedZlib, op, "preset dictionaries are not supported")
	}
	if (cmf<<8+flg)%31 != 0 {
		return nil, pngerr.New(pngerr.UnsupportedZlib, op, "zlib header check value is invalid")
	}

	var output []byte

	for {
		bfinal := r.ReadBits(1)
		btype := r.ReadBits(2)

		switch btype {
		case 0:
			var err error
			output, err = inflateStored(r, output)
			if err != nil {
				return nil, err
			}
		case 1:
			var err error
			output, err = inflateHuffmanBlock(r, output, staticLengthTable, staticDistanceTable)
			if err != nil {
				return nil, err
			}
		case 2:
			lengthTable, distanceTable, err := readDynamicTables(r)
			if err != nil {
				return nil, err
			}
			output, err = inflateHuffmanBlock(r, output, lengthTable, distanceTable)
			if err != nil {
				return nil, err
			}
		default:
			return nil, pngerr.New(pngerr.MalformedBlock, op, "block type 3 is reserved")
		}

		if bfinal != 0 {
			break
		}
	}

	return output, nil
}

func inflateStored(r *Reader, output []byte) ([]byte, error) {
	r.AlignToByte()

	lenBytes, err := r.ReadRawBytes(2)
	if err != nil {
		return nil, pngerr.Wrap(pngerr.TruncatedStream, op, "stored block missing LEN", err)
	}
	nlenBytes, err := r.ReadRawBytes(2)
	if err != nil {
		return nil, pngerr.Wrap(pngerr.TruncatedStream, op, "stored block missing NLEN", err)
	}

	length := uint16(lenBytes[0]) | uint16(lenBytes[1])<<8
	nlen := uint16(nlenBytes[0]) | uint16(nlenBytes[1])<<8

	if nlen != ^length {
		return nil, pngerr.New(pngerr.MalformedBlock, op, "stored block NLEN is not the one's complement of LEN")
	}

	payload, err := r.ReadRawBytes(int(length))
	if err != nil {
		return nil, pngerr.Wrap(pngerr.TruncatedStream, op, "stored block payload truncated", err)
	}

	return append(output, payload...), nil
}

func readDynamicTables(r *Reader) (*Table, *Table, error) {
	hlit := r.ReadBits(5) + 257
	hdist := r.ReadBits(5) + 1
	hclen := r.ReadBits(4) + 4

	codeLengths := make([]uint8, 19)
	for i := uint32(0); i < hclen; i++ {
		codeLengths[codeLengthPermutation[i]] = uint8(r.ReadBits(3))
	}

	codeTable, err := MakeTable(codeLengths)
	if err != nil {
		return nil, nil, err
	}
	codeTable = InvertBits(codeTable)

	total := int(hlit + hdist)
	lengths := make([]uint8, 0, total)

	for len(lengths) < total {
		code, err := r.ReadHuffmanCode(codeTable)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case code <= 15:
			lengths = append(lengths, uint8(code))
		case code == 16:
			if len(lengths) == 0 {
				return nil, nil, pngerr.New(pngerr.MalformedHuffman, op, "repeat-previous code with no previous length")
			}
			repeat := int(r.ReadBits(2)) + 3
			prev := lengths[len(lengths)-1]
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, prev)
			}
		case code == 17:
			repeat := int(r.ReadBits(3)) + 3
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, 0)
			}
		case code == 18:
			repeat := int(r.ReadBits(7)) + 11
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, 0)
			}
		default:
			return nil, nil, pngerr.New(pngerr.MalformedHuffman, op, "code-length alphabet symbol out of range")
		}
	}

	if len(lengths) != total {
		return nil, nil, pngerr.New(pngerr.MalformedHuffman, op, "code-length run overshot HLIT+HDIST")
	}

	litLengths := lengths[:hlit]
	distLengths := lengths[hlit:]

	lengthTable, err := MakeTable(litLengths)
	if err != nil {
		return nil, nil, err
	}
	distanceTable, err := MakeTable(distLengths)
	if err != nil {
		return nil, nil, err
	}

	return InvertBits(lengthTable), InvertBits(distanceTable), nil
}

func inflateHuffmanBlock(r *Reader, output []byte, lengthTable, distanceTable *Table) ([]byte, error) {
	for {
		code, err := r.ReadHuffmanCode(lengthTable)
		if err != nil {
			return nil, err
		}

		switch {
		case code <= 255:
			output = append(output, byte(code))
		case code == 256:
			return output, nil
		case code <= 285:
			entry := lengthAlphabet[code-lengthSymbolOffset]
			length := int(entry.Base) + int(r.ReadBits(entry.ExtraBits))

			distCode, err := r.ReadHuffmanCode(distanceTable)
			if err != nil {
				return nil, err
			}
			if distCode >= uint16(len(distanceAlphabet)) {
				return nil, pngerr.New(pngerr.BadBackReference, op, "distance symbol out of range")
			}
			distEntry := distanceAlphabet[distCode]
			distance := int(distEntry.Base) + int(r.ReadBits(distEntry.ExtraBits))

			if distance > len(output) {
				return nil, pngerr.New(pngerr.BadBackReference, op, "back-reference distance points before the start of output")
			}

			// A byte-wise copy, not a bulk memmove: when distance <
			// length the run overlaps itself and later bytes depend on
			// earlier ones written in this same loop.
			src := len(output) - distance
			for i := 0; i < length; i++ {
				output = append(output, output[src+i])
			}
		default:
			return nil, pngerr.New(pngerr.MalformedHuffman, op, "literal/length symbol out of range")
		}
	}
}
