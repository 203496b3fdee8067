package pngdecoder

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

// buildChunk frames one chunk with a correct CRC over the type and body,
// so the fixtures are valid PNG streams even though decoding never checks
// the CRC.
func buildChunk(tag string, body []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, uint32(len(body)))
	b.WriteString(tag)
	b.Write(body)
	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(body)
	binary.Write(&b, binary.BigEndian, crc.Sum32())
	return b.Bytes()
}

func buildPNG(chunks ...[]byte) []byte {
	var b bytes.Buffer
	b.WriteString(signature)
	for _, c := range chunks {
		b.Write(c)
	}
	return b.Bytes()
}

func ihdrBody(width, height uint32, depth, colorType, interlace byte) []byte {
	body := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(body[0:4], width)
	binary.BigEndian.PutUint32(body[4:8], height)
	body[8] = depth
	body[9] = colorType
	body[12] = interlace
	return body
}

func deflate(t *testing.T, raw []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	if _, err := w.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

type drawOp struct {
	X, Y int
	C    Color
}

// recordSurface captures every draw call in emission order.
type recordSurface struct {
	ops []drawOp
}

func (s *recordSurface) Draw(x, y int, c Color) {
	s.ops = append(s.ops, drawOp{X: x, Y: y, C: c})
}
