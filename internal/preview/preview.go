// Package preview draws an image in a truecolor terminal using upper-half
// block characters, two pixel rows per text row.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/draw"
)

const (
	upperHalf = "▀"
	reset     = "\x1b[0m"
)

// Render writes img scaled to at most width columns. Images narrower than
// width are drawn at their own size.
func Render(w io.Writer, img image.Image, width int) error {
	if width <= 0 {
		return fmt.Errorf("preview: width %d must be positive", width)
	}
	src := img.Bounds()
	if src.Empty() {
		return fmt.Errorf("preview: empty image")
	}
	if width > src.Dx() {
		width = src.Dx()
	}
	height := max(width*src.Dy()/src.Dx(), 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	bw := bufio.NewWriter(w)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := dst.RGBAAt(x, y)
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
			if y+1 < height {
				bot := dst.RGBAAt(x, y+1)
				fmt.Fprintf(bw, "\x1b[48;2;%d;%d;%dm", bot.R, bot.G, bot.B)
			} else {
				bw.WriteString("\x1b[49m")
			}
			bw.WriteString(upperHalf)
		}
		bw.WriteString(reset + "\n")
	}
	return bw.Flush()
}
