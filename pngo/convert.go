package pngo

import (
	"image"
	"image/color"
)

// AsNRGBA hands the decoded raster off to the stdlib image ecosystem
// as a non-alpha-premultiplied image, the same adapter role
// LukiDS-image's imgconv package plays for its QOI decoder: the core
// decoder itself never imports "image", only this boundary does.
func (img *Image) AsNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	copy(out.Pix, img.Data)
	return out
}

// At returns the color of the pixel at (x, y), matching color.NRGBAModel's
// interpretation of this decoder's non-premultiplied output.
func (img *Image) At(x, y int) color.NRGBA {
	i := (y*int(img.Width) + x) * 4
	px := img.Data[i : i+4]
	return color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
}
