package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePPM writes the frame as an ASCII P3 image: one "r g b" line per pixel,
// top scanline first.
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)
	for _, px := range frame.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", px.R, px.G, px.B)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
