package pngdecoder

import "encoding/binary"

// pixelDecoder interprets one defiltered scanline's sample region as a row
// of pixels, emitting one Draw call per pixel. It keeps no state beyond
// the palette and the image geometry.
type pixelDecoder struct {
	surface      Surface
	width        int
	colorType    ColorType
	bitsPerPixel int
	palette      []Color
}

func (d *pixelDecoder) decodeRow(samples []byte, row int) error {
	if d.bitsPerPixel < 8 {
		return d.decodePacked(samples, row)
	}
	return d.decodeGrouped(samples, row)
}

// decodePacked handles sub-byte samples, packed most-significant-bit-first.
// Exactly width fields are read; padding bits in the final byte are ignored.
func (d *pixelDecoder) decodePacked(samples []byte, row int) error {
	mask := byte(1<<d.bitsPerPixel - 1)
	max := float32(int(1)<<d.bitsPerPixel - 1)
	for x := 0; x < d.width; x++ {
		bit := x * d.bitsPerPixel
		v := samples[bit/8] >> (8 - d.bitsPerPixel - bit%8) & mask
		switch d.colorType {
		case ColorGrayScale:
			gray := float32(v) / max
			d.surface.Draw(x, row, Color{R: gray, G: gray, B: gray, A: 1})
		case ColorPalette:
			c, err := d.lookup(int(v))
			if err != nil {
				return err
			}
			d.surface.Draw(x, row, c)
		}
	}
	return nil
}

// decodeGrouped handles whole-byte samples grouped per pixel, with 16-bit
// channels stored big-endian.
func (d *pixelDecoder) decodeGrouped(samples []byte, row int) error {
	bpp := d.bitsPerPixel / 8
	for x := 0; x < d.width; x++ {
		unit := samples[x*bpp : (x+1)*bpp]
		var c Color
		switch d.colorType {
		case ColorGrayScale:
			var gray float32
			if bpp == 1 {
				gray = float32(unit[0]) / 255
			} else {
				gray = wideChannel(unit[0:2])
			}
			c = Color{R: gray, G: gray, B: gray, A: 1}

		case ColorRgb:
			if bpp == 3 {
				c = rgb8(unit[0], unit[1], unit[2])
			} else {
				c = Color{
					R: wideChannel(unit[0:2]),
					G: wideChannel(unit[2:4]),
					B: wideChannel(unit[4:6]),
					A: 1,
				}
			}

		case ColorPalette:
			var err error
			if c, err = d.lookup(int(unit[0])); err != nil {
				return err
			}

		case ColorGrayScaleAlpha:
			var gray, alpha float32
			if bpp == 2 {
				gray, alpha = float32(unit[0])/255, float32(unit[1])/255
			} else {
				gray, alpha = wideChannel(unit[0:2]), wideChannel(unit[2:4])
			}
			c = Color{R: gray, G: gray, B: gray, A: alpha}

		case ColorRgbAlpha:
			if bpp == 4 {
				c = rgba8(unit[0], unit[1], unit[2], unit[3])
			} else {
				c = Color{
					R: wideChannel(unit[0:2]),
					G: wideChannel(unit[2:4]),
					B: wideChannel(unit[4:6]),
					A: wideChannel(unit[6:8]),
				}
			}
		}
		d.surface.Draw(x, row, c)
	}
	return nil
}

func (d *pixelDecoder) lookup(index int) (Color, error) {
	if d.palette == nil {
		return Color{}, MissingCriticalError("PLTE")
	}
	if index >= len(d.palette) {
		return Color{}, &PaletteIndexError{Index: index, Entries: len(d.palette)}
	}
	return d.palette[index], nil
}

func wideChannel(b []byte) float32 {
	return float32(binary.BigEndian.Uint16(b)) / 65535
}
