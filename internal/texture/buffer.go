package texture

import (
	"image"
)

// PixelBuffer is a row-major RGBA8 grayscale image.
// Pix holds Width*Height*4 bytes with R=G=B and A=255.
type PixelBuffer struct {
	Width  uint32
	Height uint32
	Pix    []byte
}

func newPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  uint32(width),
		Height: uint32(height),
		Pix:    make([]byte, width*height*4),
	}
}

// row returns the bytes of row j.
func (b *PixelBuffer) row(j int) []byte {
	stride := int(b.Width) * 4
	return b.Pix[j*stride : (j+1)*stride]
}

// At returns the intensity of pixel (x, y), or 0 outside the buffer.
func (b *PixelBuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= int(b.Width) || y >= int(b.Height) {
		return 0
	}
	return b.Pix[(y*int(b.Width)+x)*4]
}

// Image wraps the buffer as an *image.RGBA without copying.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: int(b.Width) * 4,
		Rect:   image.Rect(0, 0, int(b.Width), int(b.Height)),
	}
}
