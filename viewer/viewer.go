// Package viewer is the host-application side of the decoder: viewer
// state, zoom, drawing surfaces and the command-line interface.
package viewer

import (
	"image"
	"math/rand"
	"os"

	"github.com/k4g4/png-viewer/pngdecoder"
)

// State is the closed set of viewer states. Every transition point
// switches over all three shapes.
type State interface {
	state()
}

// Empty is the initial state, showing a placeholder glyph.
type Empty struct {
	Placeholder rune
}

// Loading marks a decode in flight for the given path.
type Loading struct {
	Path string
}

// Loaded holds a fully decoded raster and where it came from.
type Loaded struct {
	Path  string
	Image *image.NRGBA64
}

func (Empty) state()   {}
func (Loading) state() {}
func (Loaded) state()  {}

var placeholders = []rune("🌄🌅🌇🌠🌉🏕")

func NewEmpty() Empty {
	return Empty{Placeholder: placeholders[rand.Intn(len(placeholders))]}
}

// Load reads and decodes the file at path into a Loaded state. On any
// failure the previous state comes back unchanged alongside the error, so
// a caller never displays a partially decoded image.
func Load(prev State, path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return prev, err
	}
	hdr, err := pngdecoder.ParseHeader(data)
	if err != nil {
		return prev, err
	}
	surface := NewImageSurface(int(hdr.Width), int(hdr.Height))
	if err := pngdecoder.Decode(data, surface); err != nil {
		return prev, err
	}
	return Loaded{Path: path, Image: surface.Image()}, nil
}

// Zoom is the magnification ladder: x1 through x4 in half steps.
type Zoom int

const (
	ZoomX1 Zoom = iota
	ZoomX1p5
	ZoomX2
	ZoomX2p5
	ZoomX3
	ZoomX3p5
	ZoomX4
)

func (z Zoom) Factor() float64 {
	return 1 + float64(z)*0.5
}

// In steps one rung up, reporting whether it moved.
func (z *Zoom) In() bool {
	if *z >= ZoomX4 {
		return false
	}
	*z++
	return true
}

// Out steps one rung down, reporting whether it moved.
func (z *Zoom) Out() bool {
	if *z <= ZoomX1 {
		return false
	}
	*z--
	return true
}

// Toggle jumps to x4 from anywhere below it, and back to x1 from x4.
func (z *Zoom) Toggle() {
	if *z == ZoomX4 {
		*z = ZoomX1
	} else {
		*z = ZoomX4
	}
}

// ZoomFromFactor maps a factor like 2.5 onto the ladder.
func ZoomFromFactor(factor float64) (Zoom, bool) {
	for z := ZoomX1; z <= ZoomX4; z++ {
		if z.Factor() == factor {
			return z, true
		}
	}
	return ZoomX1, false
}
