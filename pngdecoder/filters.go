package pngdecoder

type filterType byte

const (
	filterNone filterType = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
)

// bitsPerPixel maps a bit depth and color type to the packed sample width
// of one pixel. Only nine combinations are valid.
func bitsPerPixel(depth BitDepth, colorType ColorType) (int, error) {
	switch {
	case (colorType == ColorGrayScale || colorType == ColorPalette) &&
		(depth == 1 || depth == 2 || depth == 4 || depth == 8):
		return int(depth), nil
	case colorType == ColorGrayScaleAlpha && depth == 8,
		colorType == ColorGrayScale && depth == 16:
		return 16, nil
	case colorType == ColorRgb && depth == 8:
		return 24, nil
	case colorType == ColorRgbAlpha && depth == 8,
		colorType == ColorGrayScaleAlpha && depth == 16:
		return 32, nil
	case colorType == ColorRgb && depth == 16:
		return 48, nil
	case colorType == ColorRgbAlpha && depth == 16:
		return 64, nil
	}
	return 0, &InvalidBitColorComboError{BitDepth: byte(depth), ColorType: byte(colorType)}
}

// assembler buffers decompressed bytes into stride-sized scanline records,
// reverses the row filter in place, and hands each reconstructed row to
// the pixel decoder. It owns exactly two buffers, current and previous,
// exchanged by value after every completed row.
type assembler struct {
	pixels *pixelDecoder
	stride int
	bpp    int // bytes per pixel, for the filter byte distance
	height int
	row    int
	cur    []byte
	prev   []byte
}

func newAssembler(width, height, bitsPerPixel int, pixels *pixelDecoder) *assembler {
	stride := (width*bitsPerPixel+7)/8 + 1
	return &assembler{
		pixels: pixels,
		stride: stride,
		bpp:    (bitsPerPixel + 7) / 8,
		height: height,
		cur:    make([]byte, 0, stride),
		prev:   make([]byte, 0, stride),
	}
}

// Write accepts decompressed bytes from the inflate stream. Every time the
// current buffer reaches a full stride it is defiltered, decoded, then
// swapped into the previous slot and cleared.
func (a *assembler) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		spare := a.stride - len(a.cur)
		if len(p) < spare {
			a.cur = append(a.cur, p...)
			break
		}
		a.cur = append(a.cur, p[:spare]...)
		p = p[spare:]
		if err := a.defilter(); err != nil {
			return 0, err
		}
		if a.row < a.height {
			if err := a.pixels.decodeRow(a.cur[1:], a.row); err != nil {
				return 0, err
			}
		}
		a.cur, a.prev = a.prev[:0], a.cur
		a.row++
	}
	return written, nil
}

// defilter reverses the row filter over the sample region. All arithmetic
// wraps modulo 256; left and up-left operands are zero within the first
// pixel, and the up row is all zeros on the first scanline.
func (a *assembler) defilter() error {
	ft := a.cur[0]
	if ft > byte(filterPaeth) {
		return InvalidFilterTypeError(ft)
	}
	cur := a.cur[1:]
	var prev []byte
	if len(a.prev) == a.stride {
		prev = a.prev[1:]
	}
	up := func(i int) byte {
		if prev == nil {
			return 0
		}
		return prev[i]
	}

	switch filterType(ft) {
	case filterNone:

	case filterSub:
		for i := range cur {
			if i >= a.bpp {
				cur[i] += cur[i-a.bpp]
			}
		}

	case filterUp:
		for i := range cur {
			cur[i] += up(i)
		}

	case filterAverage:
		for i := range cur {
			var left uint16
			if i >= a.bpp {
				left = uint16(cur[i-a.bpp])
			}
			cur[i] += byte((left + uint16(up(i))) / 2)
		}

	case filterPaeth:
		for i := range cur {
			var left, upLeft byte
			if i >= a.bpp {
				left = cur[i-a.bpp]
				upLeft = up(i - a.bpp)
			}
			cur[i] += paethPredictor(left, up(i), upLeft)
		}
	}
	return nil
}

// paethPredictor picks whichever of left, up and up-left is nearest to
// left + up - up-left, preferring left then up on ties.
func paethPredictor(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pLeft, pUp, pUpLeft := abs(p-int(left)), abs(p-int(up)), abs(p-int(upLeft))
	if pLeft <= pUp && pLeft <= pUpLeft {
		return left
	}
	if pUp <= pUpLeft {
		return up
	}
	return upLeft
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
