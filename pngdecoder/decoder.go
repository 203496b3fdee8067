// Package pngdecoder turns a raw PNG byte stream into per-pixel draw calls
// on a caller-provided surface. It validates the signature and chunk
// structure, inflates the image data, reverses the per-scanline filters and
// unpacks pixels for every valid bit-depth/color-type combination. Adam7
// interlacing is detected and rejected, and chunk CRCs are consumed without
// verification.
package pngdecoder

import (
	"github.com/k4g4/png-viewer/compression"
	"github.com/k4g4/png-viewer/logging"
)

// Color is one decoded pixel, channels normalized to [0, 1].
type Color struct {
	R, G, B, A float32
}

func rgb8(r, g, b byte) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

func rgba8(r, g, b, a byte) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

// Surface receives one Draw call per decoded pixel, rows top to bottom and
// columns left to right within a row.
type Surface interface {
	Draw(x, y int, c Color)
}

// ParseHeader reads just far enough to return the image geometry: the
// signature and the leading IHDR chunk.
func ParseHeader(data []byte) (Header, error) {
	r, err := NewReader(data)
	if err != nil {
		return Header{}, err
	}
	chunk, err := r.Next()
	if err != nil {
		return Header{}, err
	}
	hdr, ok := chunk.(Header)
	if !ok {
		return Header{}, MissingCriticalError("IHDR")
	}
	return hdr, nil
}

// Decode runs a full decode of data, drawing every pixel onto surface. Any
// error aborts the decode immediately; the surface may have received part
// of the image by then and the caller decides whether to discard it. All
// decode state lives within this one call, so independent decodes may run
// concurrently without synchronization.
func Decode(data []byte, surface Surface) error {
	r, err := NewReader(data)
	if err != nil {
		return err
	}
	chunk, err := r.Next()
	if err != nil {
		return err
	}
	hdr, ok := chunk.(Header)
	if !ok {
		return MissingCriticalError("IHDR")
	}
	if hdr.Interlace == InterlaceAdam7 {
		return ErrUnsupportedInterlace
	}
	bpp, err := bitsPerPixel(hdr.BitDepth, hdr.ColorType)
	if err != nil {
		return err
	}
	logging.Debug().
		Uint32("width", hdr.Width).
		Uint32("height", hdr.Height).
		Int("bit_depth", int(hdr.BitDepth)).
		Str("color_type", hdr.ColorType.String()).
		Str("interlace", hdr.Interlace.String()).
		Msg("parsed IHDR")

	pixels := &pixelDecoder{
		surface:      surface,
		width:        int(hdr.Width),
		colorType:    hdr.ColorType,
		bitsPerPixel: bpp,
	}
	asm := newAssembler(int(hdr.Width), int(hdr.Height), bpp, pixels)
	inflater := compression.NewInflater()
	sawImageData := false

	for {
		chunk, err := r.Next()
		if err != nil {
			return err
		}
		if chunk == nil {
			return MissingCriticalError("IEND")
		}
		switch c := chunk.(type) {
		case Header:
			return ErrDuplicateHeader
		case Palette:
			if sawImageData {
				return ErrPaletteAfterImageData
			}
			pixels.palette = c.Entries
		case ImageData:
			sawImageData = true
			inflater.Push(c.Data)
		case End:
			if r.Offset() < len(data) {
				return structural("trailing bytes after IEND", r.Offset(), r.rest())
			}
			if !sawImageData {
				return nil
			}
			return inflater.Inflate(asm)
		case Unknown:
			// ancillary, skipped
		}
	}
}
