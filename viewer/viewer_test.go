package viewer

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomLadder(t *testing.T) {
	t.Run("in saturates at x4", func(t *testing.T) {
		z := ZoomX1
		for i := 0; i < 6; i++ {
			assert.True(t, z.In())
		}
		assert.Equal(t, ZoomX4, z)
		assert.False(t, z.In())
		assert.Equal(t, ZoomX4, z)
	})
	t.Run("out saturates at x1", func(t *testing.T) {
		z := ZoomX2
		assert.True(t, z.Out())
		assert.True(t, z.Out())
		assert.Equal(t, ZoomX1, z)
		assert.False(t, z.Out())
	})
	t.Run("toggle", func(t *testing.T) {
		for start := ZoomX1; start <= ZoomX4; start++ {
			z := start
			z.Toggle()
			if start == ZoomX4 {
				assert.Equal(t, ZoomX1, z)
			} else {
				assert.Equal(t, ZoomX4, z)
			}
			// A second toggle always lands on the other endpoint.
			first := z
			z.Toggle()
			if first == ZoomX4 {
				assert.Equal(t, ZoomX1, z)
			} else {
				assert.Equal(t, ZoomX4, z)
			}
		}
	})
	t.Run("factors", func(t *testing.T) {
		assert.Equal(t, 1.0, ZoomX1.Factor())
		assert.Equal(t, 2.5, ZoomX2p5.Factor())
		assert.Equal(t, 4.0, ZoomX4.Factor())
	})
	t.Run("from factor", func(t *testing.T) {
		z, ok := ZoomFromFactor(3.5)
		require.True(t, ok)
		assert.Equal(t, ZoomX3p5, z)
		_, ok = ZoomFromFactor(1.7)
		assert.False(t, ok)
	})
}

// writePNGFixture builds a real 2x2 grayscale PNG on disk.
func writePNGFixture(t *testing.T, dir string) string {
	t.Helper()
	chunk := func(tag string, body []byte) []byte {
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

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], 2)
	binary.BigEndian.PutUint32(ihdr[4:8], 2)
	ihdr[8] = 8 // bit depth
	// color type 0, compression 0, filter 0, interlace 0

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write([]byte{0, 0x00, 0x40, 0, 0x80, 0xff})
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var png bytes.Buffer
	png.WriteString("\x89PNG\x0d\x0a\x1a\x0a")
	png.Write(chunk("IHDR", ihdr))
	png.Write(chunk("IDAT", compressed.Bytes()))
	png.Write(chunk("IEND", nil))

	path := filepath.Join(dir, "fixture.png")
	require.NoError(t, os.WriteFile(path, png.Bytes(), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		path := writePNGFixture(t, dir)
		state, err := Load(NewEmpty(), path)
		require.NoError(t, err)
		loaded, ok := state.(Loaded)
		require.True(t, ok)
		assert.Equal(t, path, loaded.Path)
		assert.Equal(t, 2, loaded.Image.Bounds().Dx())
		assert.Equal(t, 2, loaded.Image.Bounds().Dy())
		// Bottom-right pixel was 0xff gray.
		assert.Equal(t, uint16(0xffff), loaded.Image.NRGBA64At(1, 1).R)
	})
	t.Run("missing file keeps previous state", func(t *testing.T) {
		prev := Loading{Path: "before"}
		state, err := Load(prev, filepath.Join(dir, "does-not-exist.png"))
		require.Error(t, err)
		assert.Equal(t, State(prev), state)
	})
	t.Run("corrupt file keeps previous state", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.png")
		require.NoError(t, os.WriteFile(path, []byte("not a png"), 0644))
		prev := State(NewEmpty())
		state, err := Load(prev, path)
		require.Error(t, err)
		assert.Equal(t, prev, state)
	})
	t.Run("truncated stream keeps previous state", func(t *testing.T) {
		full, err := os.ReadFile(writePNGFixture(t, dir))
		require.NoError(t, err)
		path := filepath.Join(dir, "truncated.png")
		require.NoError(t, os.WriteFile(path, full[:len(full)-6], 0644))
		prev := State(NewEmpty())
		state, err := Load(prev, path)
		require.Error(t, err)
		assert.Equal(t, prev, state)
	})
}

func TestNewEmptyPlaceholder(t *testing.T) {
	empty := NewEmpty()
	assert.Contains(t, placeholders, empty.Placeholder)
}
