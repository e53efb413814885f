package pngo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeRejectsBadSignature is scenario S1 of spec §8.
func TestDecodeRejectsBadSignature(t *testing.T) {
	_, err := Decode([]byte("definitely not a png"))
	require.Error(t, err)
}

// TestDecodeSmallestTruecolorImage is scenario S2: a 1x1 truecolor
// image, filter type none, decodes to a single opaque red pixel.
func TestDecodeSmallestTruecolorImage(t *testing.T) {
	data := buildPNG(
		ihdrChunk(1, 1, 8, ColorTruecolor, 0),
		idatChunk([]byte{0, 0xFF, 0x00, 0x00}), // filter none, R,G,B
		iendChunk,
	)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), img.Width)
	assert.Equal(t, uint32(1), img.Height)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00, 0xFF}, img.Data)
}

// TestDecodeGrayscaleWithColorKeyTransparency is scenario S3: an 8x1,
// 1-bit grayscale image with a tRNS color key of 0, alternating
// opaque-white and transparent-black pixels.
func TestDecodeGrayscaleWithColorKeyTransparency(t *testing.T) {
	data := buildPNG(
		ihdrChunk(8, 1, 1, ColorGray, 0),
		chunk("tRNS", []byte{0x00, 0x00}),
		idatChunk([]byte{0x00, 0xAA}), // filter none, bits 10101010
		iendChunk,
	)

	img, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, img.Data, 8*4)

	for i := 0; i < 8; i++ {
		px := img.Data[i*4 : i*4+4]
		if i%2 == 0 {
			assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, px, "pixel %d should be opaque white", i)
		} else {
			assert.Equal(t, byte(0), px[3], "pixel %d should be transparent", i)
		}
	}
}

// TestDecodeIndexedColorAppliesPaletteAndTRNS exercises PLTE + tRNS for
// an indexed-color image: each index maps to its palette RGB, and the
// index tRNS marks transparent takes alpha from the tRNS table instead
// of the palette's implicit opaque default.
func TestDecodeIndexedColorAppliesPaletteAndTRNS(t *testing.T) {
	data := buildPNG(
		ihdrChunk(2, 1, 8, ColorIndexed, 0),
		chunk("PLTE", []byte{
			0x10, 0x20, 0x30, // index 0
			0x40, 0x50, 0x60, // index 1
		}),
		chunk("tRNS", []byte{0x00, 0xFF}), // index 0 transparent, index 1 opaque
		idatChunk([]byte{0x00, 0x00, 0x01}), // filter none, indices 0,1
		iendChunk,
	)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x00, 0x40, 0x50, 0x60, 0xFF}, img.Data)
}

// TestDecodeAdam7MatchesNonInterlacedEquivalent is scenario S6: a 2x2
// interlaced image must decode to the same raster as its
// non-interlaced equivalent. Only passes 0, 5, and 6 own any pixels at
// this size (see TestAdam7PassDimensionsForSmallImage), so those are
// the only three scanline groups present in the interlaced stream.
func TestDecodeAdam7MatchesNonInterlacedEquivalent(t *testing.T) {
	// Pixel grid (gray, row-major): (0,0)=10 (1,0)=20 (0,1)=30 (1,1)=40.
	plain := buildPNG(
		ihdrChunk(2, 2, 8, ColorGray, 0),
		idatChunk([]byte{
			0x00, 10, 20, // row0, filter none
			0x00, 30, 40, // row1, filter none
		}),
		iendChunk,
	)

	interlaced := buildPNG(
		ihdrChunk(2, 2, 8, ColorGray, 1),
		idatChunk([]byte{
			0x00, 10, // pass 0: pixel (0,0)
			0x00, 20, // pass 5: pixel (1,0)
			0x00, 30, 40, // pass 6: pixels (0,1),(1,1)
		}),
		iendChunk,
	)

	plainImg, err := Decode(plain)
	require.NoError(t, err)
	interlacedImg, err := Decode(interlaced)
	require.NoError(t, err)

	assert.Equal(t, plainImg.Data, interlacedImg.Data)
	assert.Equal(t, []byte{
		10, 10, 10, 255, 20, 20, 20, 255,
		30, 30, 30, 255, 40, 40, 40, 255,
	}, plainImg.Data)
}

func TestDecodeRejectsIndexedColorWithoutPLTE(t *testing.T) {
	data := buildPNG(
		ihdrChunk(1, 1, 8, ColorIndexed, 0),
		idatChunk([]byte{0x00, 0x00}),
		iendChunk,
	)
	_, err := Decode(data)
	require.Error(t, err)
}

func TestDecodeRejectsMissingIHDR(t *testing.T) {
	data := buildPNG(idatChunk([]byte{0, 0, 0, 0}))
	_, err := Decode(data)
	require.Error(t, err)
}
