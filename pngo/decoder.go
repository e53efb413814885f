// Package pngo is a self-contained PNG decoder: its own chunk walker,
// its own scanline filter reversal, its own Adam7 de-interleaving, and
// (via the sibling deflate package) its own DEFLATE/zlib inflater. It
// produces a canonical 8-bit RGBA raster from PNG bytes and nothing
// else — no encoding, no APNG, no color management.
package pngo

import (
	"pngo/deflate"
	"pngo/pngerr"
)

const decodeOp = "pngo.Decode"

// Image is the decoder's result: width, height, and a row-major
// top-to-bottom RGBA8 buffer of length width*height*4.
type Image struct {
	Width  uint32
	Height uint32
	Data   []byte
}

// Option configures a Decode call.
type Option func(*options)

type options struct {
	strictOrder bool
}

// WithStrictOrdering enables the chunk-ordering invariants of spec
// §4.4 (IHDR first, PLTE before IDAT, IDAT contiguous, IEND last). By
// default only "IHDR first" is enforced, matching the documented
// leniency of the reference decoder (spec §9).
func WithStrictOrdering() Option {
	return func(o *options) { o.strictOrder = true }
}

// Decode parses data as a PNG file and returns its decoded RGBA8
// raster, or the first error encountered. No partial image is ever
// returned alongside an error.
//
// The pixel pipeline checks the payload against IHDR's declared
// width/height and returns TruncatedStream when it falls short. Any
// panic that still escapes the pipeline is recovered here and turned
// into a TruncatedStream error, so no caller ever sees anything but a
// value, per spec §7.
func Decode(data []byte, opts ...Option) (img *Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = pngerr.New(pngerr.TruncatedStream, decodeOp, "pixel data is inconsistent with the declared image dimensions")
		}
	}()

	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	walker, err := newChunkWalker(data, cfg.strictOrder)
	if err != nil {
		return nil, err
	}

	var (
		info     *ImageInfo
		idat     []byte
		palette  *Palette
		sawPLTE  bool
		colorKey TransparentKey
	)

	for {
		chunk, err := walker.next()
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			break
		}

		switch chunk.TypeString() {
		case "IHDR":
			if info != nil {
				return nil, pngerr.New(pngerr.BadHeader, decodeOp, "duplicate IHDR chunk")
			}
			info, err = parseIHDR(chunk.Data)
			if err != nil {
				return nil, err
			}
		case "IDAT":
			if info == nil {
				return nil, pngerr.New(pngerr.BadHeader, decodeOp, "IDAT encountered before IHDR")
			}
			idat = append(idat, chunk.Data...)
		case "PLTE":
			if info == nil {
				return nil, pngerr.New(pngerr.BadHeader, decodeOp, "PLTE encountered before IHDR")
			}
			palette = newPalette()
			if err := palette.loadPLTE(chunk.Data); err != nil {
				return nil, err
			}
			sawPLTE = true
		case "tRNS":
			if info == nil {
				return nil, pngerr.New(pngerr.BadHeader, decodeOp, "tRNS encountered before IHDR")
			}
			if info.ColorType == ColorIndexed {
				if palette == nil {
					return nil, pngerr.New(pngerr.BadHeader, decodeOp, "tRNS for indexed color requires a preceding PLTE")
				}
				if err := palette.loadIndexedTRNS(chunk.Data); err != nil {
					return nil, err
				}
			} else {
				colorKey, err = parseColorKeyTRNS(info.ColorType, chunk.Data)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	if info == nil {
		return nil, pngerr.New(pngerr.BadHeader, decodeOp, "no IHDR chunk was present")
	}
	if cfg.strictOrder && !walker.finished {
		return nil, pngerr.New(pngerr.BadHeader, decodeOp, "IEND must be the last chunk")
	}
	if info.ColorType == ColorIndexed && !sawPLTE {
		return nil, pngerr.New(pngerr.BadHeader, decodeOp, "indexed color requires a PLTE chunk")
	}

	filtered, err := deflate.Inflate(idat)
	if err != nil {
		return nil, err
	}

	aux := pixelAux{key: colorKey}
	if info.ColorType == ColorIndexed {
		aux.palette = palette
	}

	pixels, err := decodePixels(info, filtered, aux)
	if err != nil {
		return nil, err
	}

	return &Image{Width: info.Width, Height: info.Height, Data: pixels}, nil
}
