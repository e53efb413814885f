package pngo

import "pngo/pngerr"

const filterOp = "pngo.reverseFilters"

// reverseFilters undoes the per-scanline predictor filter for a
// contiguous region of `rows` scanlines, each `rowBytes` filtered bytes
// wide plus a leading filter-type byte (so the region is
// (rowBytes+1)*rows bytes of raw input). bpp is the predictor offset
// (FilterBytesPerPixel). Grounded on the teacher's per-filter
// functions in pngDecoder/filters.go, generalized from the teacher's
// hardcoded 3-bytes-per-pixel RGB case to an arbitrary bpp.
func reverseFilters(raw []byte, rowBytes, rows, bpp int) ([]byte, error) {
	stride := rowBytes + 1
	if len(raw) < stride*rows {
		return nil, pngerr.New(pngerr.TruncatedStream, filterOp, "not enough filtered data for the declared scanline count")
	}

	out := make([]byte, rowBytes*rows)

	for y := 0; y < rows; y++ {
		filterType := raw[y*stride]
		src := raw[y*stride+1 : y*stride+1+rowBytes]
		dst := out[y*rowBytes : (y+1)*rowBytes]

		var prev []byte
		if y > 0 {
			prev = out[(y-1)*rowBytes : y*rowBytes]
		}

		switch filterType {
		case 0: // none
			copy(dst, src)
		case 1: // sub
			for x := 0; x < rowBytes; x++ {
				var a byte
				if x >= bpp {
					a = dst[x-bpp]
				}
				dst[x] = src[x] + a
			}
		case 2: // up
			for x := 0; x < rowBytes; x++ {
				var b byte
				if prev != nil {
					b = prev[x]
				}
				dst[x] = src[x] + b
			}
		case 3: // average
			for x := 0; x < rowBytes; x++ {
				var a, b byte
				if x >= bpp {
					a = dst[x-bpp]
				}
				if prev != nil {
					b = prev[x]
				}
				avg := byte((int(a) + int(b)) / 2)
				dst[x] = src[x] + avg
			}
		case 4: // paeth
			for x := 0; x < rowBytes; x++ {
				var a, b, c byte
				if x >= bpp {
					a = dst[x-bpp]
				}
				if prev != nil {
					b = prev[x]
					if x >= bpp {
						c = prev[x-bpp]
					}
				}
				dst[x] = src[x] + byte(paethPredictor(int(a), int(b), int(c)))
			}
		default:
			return nil, pngerr.New(pngerr.BadFilter, filterOp, "filter type byte is not in 0..4")
		}
	}

	return out, nil
}

// paethPredictor picks whichever of a, b, c is closest to a+b-c,
// ties broken in favor of a then b. Grounded on
// pngDecoder/helper.go's paethPredictor.
func paethPredictor(a, b, c int) int {
	p := a + b - c
	pa := absInt(p - a)
	pb := absInt(p - b)
	pc := absInt(p - c)

	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
