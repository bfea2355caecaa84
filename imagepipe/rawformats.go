package imagepipe

import (
	"image"

	"golang.org/x/image/draw"
)

// rgbaOf copies src into a concrete *image.RGBA plane using x/image/draw,
// so the byte-packers below can index pix[] directly instead of paying
// the interface dispatch of At() once per pixel.
func rgbaOf(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// encodeRawBGR888 packs src into 3-byte-per-pixel BGR rows, the raw
// framebuffer format some firmware revisions accept directly without any
// JPEG/PNG decode step on-device.
func encodeRawBGR888(src image.Image) []byte {
	rgba := rgbaOf(src)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		rowStart := rgba.PixOffset(bounds.Min.X, y)
		row := rgba.Pix[rowStart : rowStart+w*4]
		for x := 0; x < w; x++ {
			r, g, b := row[x*4], row[x*4+1], row[x*4+2]
			out = append(out, b, g, r)
		}
	}
	return out
}

// encodeRawRGB565 packs src into 2-byte-per-pixel RGB565, little-endian,
// the raw format the remaining firmware revisions expect.
func encodeRawRGB565(src image.Image) []byte {
	rgba := rgbaOf(src)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, 0, w*h*2)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		rowStart := rgba.PixOffset(bounds.Min.X, y)
		row := rgba.Pix[rowStart : rowStart+w*4]
		for x := 0; x < w; x++ {
			r, g, b := uint16(row[x*4]), uint16(row[x*4+1]), uint16(row[x*4+2])
			v := ((r >> 3) << 11) | ((g >> 2) << 5) | (b >> 3)
			out = append(out, byte(v&0xFF), byte(v>>8))
		}
	}
	return out
}
