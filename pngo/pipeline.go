package pngo

import "pngo/pngerr"

const pipelineOp = "pngo.pixelPipeline"

// pixelAux carries the auxiliary tables the pipeline needs beyond the
// image descriptor and filtered byte stream: the palette (colorType 3)
// and the color-key transparency descriptor (colorType 0/2).
type pixelAux struct {
	palette *Palette
	key     TransparentKey
}

// decodePixels turns the inflated, still-filtered IDAT payload into a
// full 8-bit RGBA raster. It is the composition of every step spec
// §4.5 names: filter reversal, sub-byte unpacking, Adam7 assembly,
// palette application, and transparency masking.
func decodePixels(info *ImageInfo, filtered []byte, aux pixelAux) ([]byte, error) {
	width, height := int(info.Width), int(info.Height)
	channels := info.Channels()
	indexed := info.ColorType == ColorIndexed

	totalPixels := width * height
	narrowSize := totalPixels * channels
	finalSize := totalPixels * 4

	bufSize := narrowSize
	if finalSize > bufSize {
		bufSize = finalSize
	}
	buf := make([]byte, bufSize)
	narrow := buf[:narrowSize]

	offset := 0
	for _, pass := range passesFor(info.Interlace) {
		passW, passH := pass.dimensions(width, height)
		if passW == 0 || passH == 0 {
			continue
		}

		rowBytes := info.ScanlineBytes(passW)
		stride := rowBytes + 1
		consumed := stride * passH
		if offset+consumed > len(filtered) {
			return nil, pngerr.New(pngerr.TruncatedStream, pipelineOp, "IDAT stream ends before the declared pass scanlines")
		}

		region := filtered[offset : offset+consumed]
		offset += consumed

		reconstructed, err := reverseFilters(region, rowBytes, passH, info.FilterBytesPerPixel())
		if err != nil {
			return nil, err
		}

		if err := scatterPass(narrow, reconstructed, pass, info, channels, passW, passH, width, indexed); err != nil {
			return nil, err
		}
	}

	expandChannels(buf, totalPixels, channels, aux.palette)
	applyTransparency(buf, totalPixels, info, aux.key)

	return buf[:finalSize], nil
}

// scatterPass unpacks one pass's reconstructed scanlines into 8-bit
// (or palette-index) samples and writes them at their Adam7 positions
// in the full-image narrow buffer.
func scatterPass(narrow, reconstructed []byte, pass adam7Pass, info *ImageInfo, channels, passW, passH, fullWidth int, indexed bool) error {
	rowBytes := info.ScanlineBytes(passW)

	for row := 0; row < passH; row++ {
		rawRow := reconstructed[row*rowBytes : (row+1)*rowBytes]
		narrowRow, err := unpackRow(rawRow, info.Depth, channels, passW, indexed)
		if err != nil {
			return err
		}

		destRow := pass.startRow + row*pass.strideRow
		for col := 0; col < passW; col++ {
			destCol := pass.startCol + col*pass.strideCol
			pixelIdx := destRow*fullWidth + destCol
			copy(narrow[pixelIdx*channels:(pixelIdx+1)*channels], narrowRow[col*channels:(col+1)*channels])
		}
	}

	return nil
}

// unpackRow turns one reconstructed scanline (rowBytes = ScanlineBytes(width))
// into `width*channels` 8-bit samples (or, when indexed, palette indices).
//
// depths 8 and 16 carry one sample per byte (or per two bytes) already,
// so those rows pass through almost verbatim — only the 16-bit case is
// down-converted to its high byte, per spec §4.5. Sub-byte depths pack
// 8/depth samples per byte MSB-first and are expanded here via
// sampleScale.
func unpackRow(row []byte, depth byte, channels, width int, indexed bool) ([]byte, error) {
	out := make([]byte, width*channels)

	switch depth {
	case 16:
		need := width * channels * 2
		if len(row) < need {
			return nil, pngerr.New(pngerr.TruncatedStream, pipelineOp, "16-bit scanline shorter than declared width")
		}
		for i := 0; i < width*channels; i++ {
			out[i] = row[i*2] // discard the low byte, keep the high byte
		}
	case 8:
		need := width * channels
		if len(row) < need {
			return nil, pngerr.New(pngerr.TruncatedStream, pipelineOp, "8-bit scanline shorter than declared width")
		}
		copy(out, row[:need])
	case 1, 2, 4:
		// channels is always 1 here: sub-byte depths are only legal
		// for grayscale or indexed color (spec §3).
		scale := sampleScale(depth)
		mask := byte(1<<depth - 1)
		col := 0
		for _, b := range row {
			working := b
			for shift := 0; shift < 8 && col < width; shift += int(depth) {
				sample := (working >> (8 - depth)) & mask
				working <<= depth
				if indexed {
					out[col] = sample
				} else {
					out[col] = sample * scale
				}
				col++
			}
		}
		if col < width {
			return nil, pngerr.New(pngerr.TruncatedStream, pipelineOp, "sub-byte scanline ran out of packed samples")
		}
	default:
		return nil, pngerr.New(pngerr.BadHeader, pipelineOp, "unsupported bit depth")
	}

	return out, nil
}

// expandChannels walks the narrow per-pixel sample buffer from the
// back and writes RGBA8 from the back, per spec §9's aliasing
// protocol: the read cursor (channels bytes/pixel) always leads the
// write cursor (4 bytes/pixel), so no pixel's narrow samples are
// clobbered before they are read.
func expandChannels(buf []byte, totalPixels, channels int, palette *Palette) {
	for i := totalPixels - 1; i >= 0; i-- {
		narrow := buf[i*channels : i*channels+channels]
		var r, g, b, a byte

		switch channels {
		case 1: // gray, or palette index
			if palette != nil {
				idx := narrow[0]
				r, g, b, a = palette.R[idx], palette.G[idx], palette.B[idx], palette.A[idx]
			} else {
				r, g, b, a = narrow[0], narrow[0], narrow[0], 255
			}
		case 2: // gray + alpha
			r, g, b, a = narrow[0], narrow[0], narrow[0], narrow[1]
		case 3: // truecolor
			r, g, b, a = narrow[0], narrow[1], narrow[2], 255
		case 4: // truecolor + alpha
			r, g, b, a = narrow[0], narrow[1], narrow[2], narrow[3]
		}

		dst := buf[i*4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = r, g, b, a
	}
}

// applyTransparency zeroes the alpha of every pixel matching the
// color-key transparency descriptor, for color types 0 and 2 only
// (type 3's transparency was already folded into the palette alpha
// table by loadIndexedTRNS).
func applyTransparency(buf []byte, totalPixels int, info *ImageInfo, key TransparentKey) {
	if !key.Present {
		return
	}

	switch info.ColorType {
	case ColorGray:
		gray := normalizeKeyComponent(key.Gray, info.Depth)
		for i := 0; i < totalPixels; i++ {
			px := buf[i*4 : i*4+4]
			if px[0] == gray {
				px[3] = 0
			}
		}
	case ColorTruecolor:
		r := normalizeKeyComponent(key.R, info.Depth)
		g := normalizeKeyComponent(key.G, info.Depth)
		b := normalizeKeyComponent(key.B, info.Depth)
		for i := 0; i < totalPixels; i++ {
			px := buf[i*4 : i*4+4]
			if px[0] == r && px[1] == g && px[2] == b {
				px[3] = 0
			}
		}
	}
}
