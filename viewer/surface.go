package viewer

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"

	"github.com/k4g4/png-viewer/pngdecoder"
)

// ImageSurface collects decoded pixels into an NRGBA64 raster, keeping the
// full precision of 16-bit channels.
type ImageSurface struct {
	img *image.NRGBA64
}

func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewNRGBA64(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Draw(x, y int, c pngdecoder.Color) {
	s.img.SetNRGBA64(x, y, color.NRGBA64{
		R: uint16(c.R*65535 + 0.5),
		G: uint16(c.G*65535 + 0.5),
		B: uint16(c.B*65535 + 0.5),
		A: uint16(c.A*65535 + 0.5),
	})
}

func (s *ImageSurface) Image() *image.NRGBA64 {
	return s.img
}

// ScaleImage returns img scaled by the zoom factor with nearest-neighbor
// sampling, so pixels stay square blocks like the original canvas did.
func ScaleImage(img image.Image, z Zoom) image.Image {
	if z == ZoomX1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(
		0, 0,
		int(float64(b.Dx())*z.Factor()),
		int(float64(b.Dy())*z.Factor()),
	))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePPM writes img as a binary P6 PPM, truncating channels to 8 bits.
func WritePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, 0, b.Dx()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			row = append(row, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// TermSurface renders each pixel as a 24-bit ANSI background-colored cell,
// one terminal row per scanline.
type TermSurface struct {
	w io.Writer
}

func NewTermSurface(w io.Writer) *TermSurface {
	return &TermSurface{w: w}
}

func (t *TermSurface) Draw(x, _ int, c pngdecoder.Color) {
	if x == 0 {
		fmt.Fprint(t.w, "\x1b[0m\n")
	}
	fmt.Fprintf(t.w, "\x1b[48;2;%d;%d;%dm ",
		byte(c.R*255+0.5), byte(c.G*255+0.5), byte(c.B*255+0.5))
}

// Finish resets the terminal attributes after the last row.
func (t *TermSurface) Finish() {
	fmt.Fprint(t.w, "\x1b[0m\n")
}
