package pngo

import (
	"bytes"
	"encoding/binary"

	"pngo/pngerr"
)

var signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk is one length-prefixed record of the PNG chunk stream. The CRC
// is kept but never verified, per spec §1/§9.
type Chunk struct {
	Length uint32
	Type   [4]byte
	Data   []byte
	CRC    uint32
}

// TypeString returns the chunk's 4-byte ASCII type tag as a string.
func (c Chunk) TypeString() string {
	return string(c.Type[:])
}

// chunkWalker yields the chunk sequence of a PNG byte stream after
// validating the 8-byte signature. Grounded on the teacher's
// PngDecoder.nextChunk, generalized with an optional ordering
// validator (see orderValidator).
type chunkWalker struct {
	data     []byte
	pos      int
	finished bool
	order    *orderValidator
}

const chunkOp = "pngo.chunkWalker"

func newChunkWalker(data []byte, strictOrder bool) (*chunkWalker, error) {
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature[:]) {
		return nil, pngerr.New(pngerr.BadSignature, chunkOp, "first eight bytes are not the PNG signature")
	}
	return &chunkWalker{data: data, pos: len(signature), order: newOrderValidator(strictOrder)}, nil
}

// next returns the following chunk, or (nil, nil) once IEND has been
// consumed or the input is exhausted.
func (w *chunkWalker) next() (*Chunk, error) {
	if w.finished || w.pos >= len(w.data) {
		return nil, nil
	}

	length, err := w.advance(4)
	if err != nil {
		return nil, err
	}
	typ, err := w.advance(4)
	if err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(length)
	body, err := w.advance(int(n))
	if err != nil {
		return nil, err
	}
	crc, err := w.advance(4)
	if err != nil {
		return nil, err
	}

	chunk := &Chunk{
		Length: n,
		Data:   body,
		CRC:    binary.BigEndian.Uint32(crc),
	}
	copy(chunk.Type[:], typ)

	if err := w.order.observe(chunk.TypeString()); err != nil {
		return nil, err
	}

	if chunk.TypeString() == "IEND" {
		w.finished = true
	}

	return chunk, nil
}

func (w *chunkWalker) advance(n int) ([]byte, error) {
	if w.pos+n > len(w.data) {
		return nil, pngerr.New(pngerr.TruncatedStream, chunkOp, "chunk stream ended mid-chunk")
	}
	out := w.data[w.pos : w.pos+n]
	w.pos += n
	return out, nil
}

// orderValidator enforces the chunk ordering invariants of spec §4.4
// when strict mode is requested; by default it only requires IHDR
// first, matching the reference decoder's documented leniency.
type orderValidator struct {
	strict     bool
	sawIHDR    bool
	sawIDAT    bool
	idatClosed bool
}

func newOrderValidator(strict bool) *orderValidator {
	return &orderValidator{strict: strict}
}

const orderOp = "pngo.orderValidator"

func (v *orderValidator) observe(typ string) error {
	if !v.sawIHDR {
		if typ != "IHDR" {
			return pngerr.New(pngerr.BadHeader, orderOp, "IHDR must be the first chunk")
		}
		v.sawIHDR = true
		return nil
	}

	if !v.strict {
		return nil
	}

	if typ == "IHDR" {
		return pngerr.New(pngerr.BadHeader, orderOp, "duplicate IHDR chunk")
	}
	if typ == "PLTE" && v.sawIDAT {
		return pngerr.New(pngerr.BadHeader, orderOp, "PLTE must precede the first IDAT")
	}
	if typ == "IDAT" {
		if v.idatClosed {
			return pngerr.New(pngerr.BadHeader, orderOp, "IDAT chunks must be contiguous")
		}
		v.sawIDAT = true
	} else if v.sawIDAT {
		v.idatClosed = true
	}

	return nil
}
