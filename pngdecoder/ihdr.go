package pngdecoder

import "encoding/binary"

type BitDepth byte

func parseBitDepth(b byte) (BitDepth, error) {
	switch b {
	case 1, 2, 4, 8, 16:
		return BitDepth(b), nil
	}
	return 0, InvalidBitDepthError(b)
}

type ColorType byte

const (
	ColorGrayScale      ColorType = 0
	ColorRgb            ColorType = 2
	ColorPalette        ColorType = 3
	ColorGrayScaleAlpha ColorType = 4
	ColorRgbAlpha       ColorType = 6
)

func parseColorType(b byte) (ColorType, error) {
	switch ColorType(b) {
	case ColorGrayScale, ColorRgb, ColorPalette, ColorGrayScaleAlpha, ColorRgbAlpha:
		return ColorType(b), nil
	}
	return 0, InvalidColorTypeError(b)
}

func (c ColorType) String() string {
	switch c {
	case ColorGrayScale:
		return "GrayScale"
	case ColorRgb:
		return "Rgb"
	case ColorPalette:
		return "Palette"
	case ColorGrayScaleAlpha:
		return "GrayScaleAlpha"
	case ColorRgbAlpha:
		return "RgbAlpha"
	}
	return "Invalid"
}

type Interlace byte

const (
	InterlaceNone  Interlace = 0
	InterlaceAdam7 Interlace = 1
)

func parseInterlace(b byte) (Interlace, error) {
	switch Interlace(b) {
	case InterlaceNone, InterlaceAdam7:
		return Interlace(b), nil
	}
	return 0, InvalidInterlaceError(b)
}

func (i Interlace) String() string {
	switch i {
	case InterlaceNone:
		return "None"
	case InterlaceAdam7:
		return "Adam7"
	}
	return "Invalid"
}

const ihdrLength = 13

// parseIHDR decodes and validates the 13-byte IHDR body. The compression
// and filter method bytes admit only the single value zero.
func parseIHDR(body []byte) (Header, error) {
	if len(body) != ihdrLength {
		return Header{}, structural("invalid IHDR length", 0, body)
	}
	depth, err := parseBitDepth(body[8])
	if err != nil {
		return Header{}, err
	}
	colorType, err := parseColorType(body[9])
	if err != nil {
		return Header{}, err
	}
	if body[10] != 0 {
		return Header{}, InvalidCompressionError(body[10])
	}
	if body[11] != 0 {
		return Header{}, InvalidFilterMethodError(body[11])
	}
	interlace, err := parseInterlace(body[12])
	if err != nil {
		return Header{}, err
	}
	return Header{
		Width:     binary.BigEndian.Uint32(body[0:4]),
		Height:    binary.BigEndian.Uint32(body[4:8]),
		BitDepth:  depth,
		ColorType: colorType,
		Interlace: interlace,
	}, nil
}
