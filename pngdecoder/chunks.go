package pngdecoder

import (
	"encoding/binary"

	"github.com/k4g4/png-viewer/logging"
)

const signature = "\x89PNG\x0d\x0a\x1a\x0a"

// checkSignature validates the fixed 8-byte PNG prefix and returns the
// remaining input.
func checkSignature(data []byte) ([]byte, error) {
	if len(data) < len(signature) || string(data[:len(signature)]) != signature {
		return nil, structural("bad PNG signature", 0, data)
	}
	return data[len(signature):], nil
}

// Chunk is the closed set of interpreted chunk values. Header and Palette
// bodies are decoded in place; ImageData keeps a borrowed view of the
// source buffer because its bodies are concatenated later.
type Chunk interface {
	chunk()
}

// Header carries the decoded IHDR fields.
type Header struct {
	Width     uint32
	Height    uint32
	BitDepth  BitDepth
	ColorType ColorType
	Interlace Interlace
}

// Palette carries the decoded PLTE entries, in file order.
type Palette struct {
	Entries []Color
}

// ImageData is one IDAT body, borrowed from the source buffer.
type ImageData struct {
	Data []byte
}

// End marks the IEND chunk.
type End struct{}

// Unknown is a skipped ancillary chunk.
type Unknown struct {
	Tag string
}

func (Header) chunk()    {}
func (Palette) chunk()   {}
func (ImageData) chunk() {}
func (End) chunk()       {}
func (Unknown) chunk()   {}

// Reader walks the chunk framing of a PNG stream. NewReader consumes the
// signature; each Next call consumes one full chunk including its
// unverified trailing CRC.
type Reader struct {
	data []byte
	idx  int
}

func NewReader(data []byte) (*Reader, error) {
	rest, err := checkSignature(data)
	if err != nil {
		return nil, err
	}
	return &Reader{data: data, idx: len(data) - len(rest)}, nil
}

// Offset reports the byte offset of the next unread chunk.
func (r *Reader) Offset() int {
	return r.idx
}

func (r *Reader) rest() []byte {
	return r.data[r.idx:]
}

func (r *Reader) take(n int) ([]byte, bool) {
	if n < 0 || r.idx+n > len(r.data) {
		return nil, false
	}
	r.idx += n
	return r.data[r.idx-n : r.idx], true
}

// Next reads and interprets one chunk. It returns (nil, nil) once the
// input is exhausted.
func (r *Reader) Next() (Chunk, error) {
	if r.idx >= len(r.data) {
		return nil, nil
	}
	lengthBytes, ok := r.take(4)
	if !ok {
		return nil, structural("truncated chunk length", r.idx, r.rest())
	}
	length := binary.BigEndian.Uint32(lengthBytes)
	tag, ok := r.take(4)
	if !ok {
		return nil, structural("truncated chunk type", r.idx, r.rest())
	}
	for _, b := range tag {
		if !isASCIILetter(b) {
			return nil, structural("chunk type is not 4 ASCII letters", r.idx-4, tag)
		}
	}
	critical := tag[0] >= 'A' && tag[0] <= 'Z'
	body, ok := r.take(int(length))
	if !ok {
		return nil, structural("chunk length exceeds remaining input", r.idx, r.rest())
	}
	if _, ok := r.take(4); !ok {
		return nil, structural("truncated chunk CRC", r.idx, r.rest())
	}

	switch foldTag(tag) {
	case "IHDR":
		hdr, err := parseIHDR(body)
		if err != nil {
			return nil, err
		}
		return hdr, nil
	case "PLTE":
		return parsePLTE(body)
	case "IDAT":
		return ImageData{Data: body}, nil
	case "IEND":
		if len(body) != 0 {
			return nil, ErrInvalidEnd
		}
		return End{}, nil
	}
	if critical {
		return nil, UnknownCriticalChunkError(string(tag))
	}
	logging.Debug().Str("type", string(tag)).Msg("skipping unknown ancillary chunk")
	return Unknown{Tag: string(tag)}, nil
}

func parsePLTE(body []byte) (Chunk, error) {
	if len(body) == 0 || len(body)%3 != 0 || len(body) > 256*3 {
		return nil, InvalidPaletteSizeError(len(body))
	}
	entries := make([]Color, 0, len(body)/3)
	for i := 0; i < len(body); i += 3 {
		entries = append(entries, rgb8(body[i], body[i+1], body[i+2]))
	}
	return Palette{Entries: entries}, nil
}

func isASCIILetter(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

// foldTag uppercases the tag for dispatch; criticality is derived from the
// original casing before folding.
func foldTag(tag []byte) string {
	var folded [4]byte
	for i, b := range tag {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		folded[i] = b
	}
	return string(folded[:])
}
