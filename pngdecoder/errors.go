package pngdecoder

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// StructuralError reports malformed chunk framing or a bad signature. It
// carries the byte offset of the failure and a hex excerpt of the nearby
// input so the broken region can be inspected directly.
type StructuralError struct {
	Msg     string
	Offset  int
	Excerpt []byte
}

func (e *StructuralError) Error() string {
	if len(e.Excerpt) == 0 {
		return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d; data:\n%s", e.Msg, e.Offset, hex.Dump(e.Excerpt))
}

// structural builds a StructuralError with an excerpt capped at 64 bytes.
func structural(msg string, offset int, data []byte) error {
	excerpt := data
	if len(excerpt) > 64 {
		excerpt = excerpt[:64]
	}
	return &StructuralError{Msg: msg, Offset: offset, Excerpt: excerpt}
}

var (
	ErrDuplicateHeader       = errors.New("duplicate IHDR chunk found")
	ErrInvalidEnd            = errors.New("invalid IEND chunk found")
	ErrPaletteAfterImageData = errors.New("PLTE chunk found after image data")
	ErrUnsupportedInterlace  = errors.New("Adam7 interlace decoding is not supported")
)

type UnknownCriticalChunkError string

func (e UnknownCriticalChunkError) Error() string {
	return fmt.Sprintf("unknown critical chunk type found: %s", string(e))
}

type MissingCriticalError string

func (e MissingCriticalError) Error() string {
	return fmt.Sprintf("critical chunk not found: %s", string(e))
}

type InvalidBitDepthError byte

func (e InvalidBitDepthError) Error() string {
	return fmt.Sprintf("invalid bit depth: %d", byte(e))
}

type InvalidColorTypeError byte

func (e InvalidColorTypeError) Error() string {
	return fmt.Sprintf("invalid color type: %d", byte(e))
}

type InvalidInterlaceError byte

func (e InvalidInterlaceError) Error() string {
	return fmt.Sprintf("invalid interlace method: %d", byte(e))
}

type InvalidCompressionError byte

func (e InvalidCompressionError) Error() string {
	return fmt.Sprintf("invalid compression method: %d", byte(e))
}

type InvalidFilterMethodError byte

func (e InvalidFilterMethodError) Error() string {
	return fmt.Sprintf("invalid filter method: %d", byte(e))
}

type InvalidBitColorComboError struct {
	BitDepth  byte
	ColorType byte
}

func (e *InvalidBitColorComboError) Error() string {
	return fmt.Sprintf("invalid bit depth (%d) and color type (%d) combination", e.BitDepth, e.ColorType)
}

type InvalidPaletteSizeError int

func (e InvalidPaletteSizeError) Error() string {
	return fmt.Sprintf("invalid palette size: %d", int(e))
}

type InvalidFilterTypeError byte

func (e InvalidFilterTypeError) Error() string {
	return fmt.Sprintf("invalid filter type: %d", byte(e))
}

type PaletteIndexError struct {
	Index   int
	Entries int
}

func (e *PaletteIndexError) Error() string {
	return fmt.Sprintf("palette index %d out of range (%d entries)", e.Index, e.Entries)
}
