// Package compression adapts the standard zlib inflate stream to the
// push/pull contract the decoder needs: image-data chunk bodies are pushed
// in file order and the decompressed bytes are pulled out as one
// continuous stream.
package compression

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// StreamError wraps a failure reported by the inflate primitive itself, as
// opposed to an error returned by the consumer of the decompressed bytes.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("decompression failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

type Inflater struct {
	buf bytes.Buffer
}

func NewInflater() *Inflater {
	return &Inflater{}
}

// Push appends one compressed segment. Segments are logically concatenated
// in push order.
func (inf *Inflater) Push(p []byte) {
	inf.buf.Write(p)
}

// Reader opens the pull side over everything pushed so far.
func (inf *Inflater) Reader() (io.ReadCloser, error) {
	r, err := zlib.NewReader(bytes.NewReader(inf.buf.Bytes()))
	if err != nil {
		return nil, &StreamError{Err: err}
	}
	return r, nil
}

// Inflate streams the full decompressed output into dst. Errors returned
// by dst pass through untouched; inflate failures come back as a
// StreamError.
func (inf *Inflater) Inflate(dst io.Writer) error {
	r, err := inf.Reader()
	if err != nil {
		return err
	}
	defer r.Close()

	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return &StreamError{Err: rerr}
		}
	}
}
