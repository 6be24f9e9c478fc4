package renderer

import (
	"image"
	"image/color"
)

// Frame holds quantized pixels in display order: row 0 is the top scanline
type Frame struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) color.RGBA {
	return f.Pixels[y*f.Width+x]
}

// Set stores the pixel at column x, row y
func (f *Frame) Set(x, y int, c color.RGBA) {
	f.Pixels[y*f.Width+x] = c
}

// Image converts the frame to an RGBA image for the standard encoders
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, f.At(x, y))
		}
	}
	return img
}
