package pngo

import (
	"encoding/binary"

	"pngo/pngerr"
)

// ColorType enumerates the PNG colorType field (spec §3). The numeric
// values below are the PNG file format's own encoding, not an
// arbitrary enum — they must match what appears in IHDR.
type ColorType byte

const (
	ColorGray       ColorType = 0
	ColorTruecolor  ColorType = 2
	ColorIndexed    ColorType = 3
	ColorGrayAlpha  ColorType = 4
	ColorTruecolorA ColorType = 6
)

// ImageInfo is the validated descriptor parsed from IHDR.
type ImageInfo struct {
	Width       uint32
	Height      uint32
	Depth       byte
	ColorType   ColorType
	Compression byte
	Filter      byte
	Interlace   byte
}

const ihdrOp = "pngo.parseIHDR"

// parseIHDR validates and decodes the 13-byte IHDR payload.
func parseIHDR(data []byte) (*ImageInfo, error) {
	if len(data) != 13 {
		return nil, pngerr.New(pngerr.BadHeader, ihdrOp, "IHDR payload must be exactly 13 bytes")
	}

	info := &ImageInfo{
		Width:       binary.BigEndian.Uint32(data[0:4]),
		Height:      binary.BigEndian.Uint32(data[4:8]),
		Depth:       data[8],
		ColorType:   ColorType(data[9]),
		Compression: data[10],
		Filter:      data[11],
		Interlace:   data[12],
	}

	if err := info.validate(); err != nil {
		return nil, err
	}
	return info, nil
}

func (info *ImageInfo) validate() error {
	if info.Width == 0 || info.Height == 0 {
		return pngerr.New(pngerr.BadHeader, ihdrOp, "width and height must be nonzero")
	}

	switch info.Depth {
	case 1, 2, 4, 8, 16:
	default:
		return pngerr.New(pngerr.BadHeader, ihdrOp, "bit depth must be one of 1, 2, 4, 8, 16")
	}

	switch info.ColorType {
	case ColorGray, ColorTruecolor, ColorIndexed, ColorGrayAlpha, ColorTruecolorA:
	default:
		return pngerr.New(pngerr.BadHeader, ihdrOp, "color type is not one of 0, 2, 3, 4, 6")
	}

	if info.Depth < 8 {
		if info.ColorType != ColorGray && info.ColorType != ColorIndexed {
			return pngerr.New(pngerr.BadHeader, ihdrOp, "depths below 8 are only legal for grayscale or indexed color")
		}
	}
	if info.Depth == 16 && info.ColorType == ColorIndexed {
		return pngerr.New(pngerr.BadHeader, ihdrOp, "indexed color cannot use 16-bit depth")
	}

	if info.Compression != 0 {
		return pngerr.New(pngerr.BadHeader, ihdrOp, "compression method must be 0")
	}
	if info.Filter != 0 {
		return pngerr.New(pngerr.BadHeader, ihdrOp, "filter method must be 0")
	}
	if info.Interlace != 0 && info.Interlace != 1 {
		return pngerr.New(pngerr.BadHeader, ihdrOp, "interlace method must be 0 or 1")
	}

	return nil
}

// Channels returns the sample count per pixel for the info's color type.
func (info *ImageInfo) Channels() int {
	switch info.ColorType {
	case ColorGray:
		return 1
	case ColorTruecolor:
		return 3
	case ColorIndexed:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorTruecolorA:
		return 4
	}
	return 0
}

// BytesPerSample is 2 for 16-bit images, 1 otherwise.
func (info *ImageInfo) BytesPerSample() int {
	if info.Depth == 16 {
		return 2
	}
	return 1
}

// FilterBytesPerPixel is the predictor offset filter reversal uses,
// clamped to 1 for sub-byte depths per spec §4.5.
func (info *ImageInfo) FilterBytesPerPixel() int {
	bpp := info.Channels() * info.BytesPerSample()
	if info.Depth < 8 {
		return 1
	}
	return bpp
}

// ScanlineBytes returns ceil(channels*depth*width/8) for the given pixel width.
func (info *ImageInfo) ScanlineBytes(width int) int {
	bits := info.Channels() * int(info.Depth) * width
	return (bits + 7) / 8
}
