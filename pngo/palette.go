package pngo

import (
	"encoding/binary"

	"pngo/pngerr"
)

const paletteOp = "pngo.Palette"

// Palette holds the up-to-256-entry RGB table from PLTE plus the alpha
// table tRNS may overwrite. Alpha defaults to fully opaque.
type Palette struct {
	R, G, B [256]byte
	A       [256]byte
}

func newPalette() *Palette {
	p := &Palette{}
	for i := range p.A {
		p.A[i] = 255
	}
	return p
}

// loadPLTE populates R/G/B from a PLTE chunk payload, which is a
// sequence of RGB triplets.
func (p *Palette) loadPLTE(data []byte) error {
	if len(data)%3 != 0 {
		return pngerr.New(pngerr.BadHeader, paletteOp, "PLTE payload length is not a multiple of 3")
	}
	n := len(data) / 3
	if n > 256 {
		return pngerr.New(pngerr.BadHeader, paletteOp, "PLTE carries more than 256 entries")
	}
	for i := 0; i < n; i++ {
		p.R[i] = data[3*i]
		p.G[i] = data[3*i+1]
		p.B[i] = data[3*i+2]
	}
	return nil
}

// loadIndexedTRNS overwrites the alpha table from a tRNS chunk payload
// for indexed-color images: one alpha byte per palette entry, in
// palette order, trailing entries left at the default 255.
func (p *Palette) loadIndexedTRNS(data []byte) error {
	if len(data) > 256 {
		return pngerr.New(pngerr.BadHeader, paletteOp, "tRNS carries more than 256 alpha entries")
	}
	for i, a := range data {
		p.A[i] = a
	}
	return nil
}

// TransparentKey designates the single sample pattern that should
// render fully transparent, used by color types 0 and 2 (spec §3).
type TransparentKey struct {
	Present bool
	Gray    uint16
	R, G, B uint16
}

const trnsOp = "pngo.TransparentKey"

// parseColorKeyTRNS decodes a tRNS payload for color type 0 or 2.
func parseColorKeyTRNS(colorType ColorType, data []byte) (TransparentKey, error) {
	switch colorType {
	case ColorGray:
		if len(data) != 2 {
			return TransparentKey{}, pngerr.New(pngerr.BadHeader, trnsOp, "grayscale tRNS must be 2 bytes")
		}
		return TransparentKey{Present: true, Gray: binary.BigEndian.Uint16(data)}, nil
	case ColorTruecolor:
		if len(data) != 6 {
			return TransparentKey{}, pngerr.New(pngerr.BadHeader, trnsOp, "truecolor tRNS must be 6 bytes")
		}
		return TransparentKey{
			Present: true,
			R:       binary.BigEndian.Uint16(data[0:2]),
			G:       binary.BigEndian.Uint16(data[2:4]),
			B:       binary.BigEndian.Uint16(data[4:6]),
		}, nil
	default:
		return TransparentKey{}, pngerr.New(pngerr.BadHeader, trnsOp, "tRNS color-key form does not apply to this color type")
	}
}

// sampleScale maps a raw sub-byte sample to its 8-bit expansion, per
// spec §4.5: {1->0xff, 2->0x55, 4->0x11, 8->0x01}.
func sampleScale(depth byte) byte {
	switch depth {
	case 1:
		return 0xff
	case 2:
		return 0x55
	case 4:
		return 0x11
	case 8:
		return 0x01
	}
	return 0x01
}

// normalizeKeyComponent reduces a 16-bit tRNS color-key component to
// the same 8-bit domain as a decoded sample of the given bit depth:
// truncated to its high byte at depth 16, scaled by sampleScale
// otherwise.
func normalizeKeyComponent(raw uint16, depth byte) byte {
	if depth == 16 {
		return byte(raw >> 8)
	}
	return byte(raw) * sampleScale(depth)
}
