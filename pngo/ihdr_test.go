package pngo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIHDRValid(t *testing.T) {
	data := append([]byte{}, be32(1)...)
	data = append(data, be32(1)...)
	data = append(data, 8, byte(ColorTruecolor), 0, 0, 0)

	info, err := parseIHDR(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), info.Width)
	assert.Equal(t, uint32(1), info.Height)
	assert.Equal(t, ColorTruecolor, info.ColorType)
	assert.Equal(t, 3, info.Channels())
}

func TestParseIHDRRejectsWrongLength(t *testing.T) {
	_, err := parseIHDR(make([]byte, 12))
	require.Error(t, err)
}

func TestParseIHDRRejectsZeroDimension(t *testing.T) {
	data := append([]byte{}, be32(0)...)
	data = append(data, be32(1)...)
	data = append(data, 8, byte(ColorGray), 0, 0, 0)
	_, err := parseIHDR(data)
	require.Error(t, err)
}

func TestParseIHDRRejectsSubByteDepthForTruecolor(t *testing.T) {
	data := append([]byte{}, be32(1)...)
	data = append(data, be32(1)...)
	data = append(data, 4, byte(ColorTruecolor), 0, 0, 0)
	_, err := parseIHDR(data)
	require.Error(t, err)
}

func TestParseIHDRRejectsIndexedAt16Bit(t *testing.T) {
	data := append([]byte{}, be32(1)...)
	data = append(data, be32(1)...)
	data = append(data, 16, byte(ColorIndexed), 0, 0, 0)
	_, err := parseIHDR(data)
	require.Error(t, err)
}

func TestScanlineBytesForSubByteDepth(t *testing.T) {
	info := &ImageInfo{Depth: 1, ColorType: ColorGray}
	assert.Equal(t, 1, info.ScanlineBytes(8))
	assert.Equal(t, 2, info.ScanlineBytes(9))
}

func TestFilterBytesPerPixelClampsSubByteDepth(t *testing.T) {
	info := &ImageInfo{Depth: 2, ColorType: ColorGray}
	assert.Equal(t, 1, info.FilterBytesPerPixel())

	info16 := &ImageInfo{Depth: 16, ColorType: ColorTruecolorA}
	assert.Equal(t, 8, info16.FilterBytesPerPixel())
}
