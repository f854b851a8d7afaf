// Package reader provides buffered line-oriented reading for CTF sources.
//
// The reader pulls data from the underlying source in fixed-size chunks
// (1 MiB by default) and hands out one line at a time with the trailing
// EOL stripped. Lines longer than one chunk are assembled in a growable
// line buffer, so chunk boundaries are invisible to callers.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// DefaultBufferSize is the refill chunk size. It must be large enough that
// typical CTF lines fit in a single chunk; longer lines still work but pay
// an extra copy.
const DefaultBufferSize = 1 << 20

// ErrLineTooLong is returned by ReadLine when a line exceeds the configured
// maximum line size.
var ErrLineTooLong = errors.New("line exceeds maximum size")

// Reader reads a CTF byte source line by line with constant-size refills.
//
// Reader is not safe for concurrent use. The slice returned by ReadLine is
// only valid until the next ReadLine call.
type Reader struct {
	src     io.Reader
	closers []io.Closer
	buf     []byte
	r, w    int // buffered window is buf[r:w]
	line    []byte
	err     error // sticky; io.EOF once the source is drained
	size    int64 // total source length in bytes, -1 when unknown
	maxLine int   // 0 means no limit
}

// New returns a Reader over src with the default chunk size.
// The source length is reported when src exposes a Size method
// (strings.Reader, bytes.Reader, ...) or is an *os.File.
func New(src io.Reader) *Reader {
	return NewSize(src, DefaultBufferSize)
}

// NewSize returns a Reader over src with an explicit chunk size.
func NewSize(src io.Reader, bufferSize int) *Reader {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Reader{
		src:  src,
		buf:  make([]byte, bufferSize),
		size: sourceSize(src),
	}
}

// Open opens the CTF file at path. Files ending in ".gz" are transparently
// decompressed; their uncompressed length is unknown, so Size reports -1.
// The caller must Close the returned Reader on every exit path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		r := New(gz)
		r.size = -1
		r.closers = []io.Closer{gz, f}
		return r, nil
	}
	r := New(f)
	r.closers = []io.Closer{f}
	return r, nil
}

// SetMaxLineSize bounds the length of a single line in bytes.
// Zero disables the limit.
func (r *Reader) SetMaxLineSize(n int) {
	r.maxLine = n
}

// Size returns the total byte length of the source, or -1 when unknown.
func (r *Reader) Size() int64 {
	return r.size
}

// HasMore reports whether at least one more byte can be read. It is false
// only when the buffer is drained and the source is at end-of-file.
func (r *Reader) HasMore() bool {
	if r.r < r.w {
		return true
	}
	r.fill()
	return r.r < r.w
}

// ReadLine returns the next line without its trailing EOL. A final line
// without a newline is returned as-is. The returned slice is reused by the
// next ReadLine call.
func (r *Reader) ReadLine() ([]byte, error) {
	r.line = r.line[:0]
	for {
		if r.r >= r.w {
			r.fill()
			if r.r >= r.w {
				if r.err != nil && r.err != io.EOF {
					return nil, r.err
				}
				return r.line, nil
			}
		}
		chunk := r.buf[r.r:r.w]
		if i := bytes.IndexAny(chunk, "\r\n"); i >= 0 {
			if err := r.grow(chunk[:i]); err != nil {
				return nil, err
			}
			eol := chunk[i]
			r.r += i + 1
			if eol == '\r' {
				r.skipLF()
			}
			return r.line, nil
		}
		if err := r.grow(chunk); err != nil {
			return nil, err
		}
		r.r = r.w
	}
}

// Close releases the underlying source. Readers constructed with New or
// NewSize own no resources and Close is a no-op for them.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// fill refills the buffer from the source. The buffered window is always
// fully consumed before fill is called.
func (r *Reader) fill() {
	if r.err != nil {
		return
	}
	r.r, r.w = 0, 0
	for r.w == 0 && r.err == nil {
		n, err := r.src.Read(r.buf)
		r.w = n
		if err != nil {
			r.err = err
		}
	}
}

// skipLF consumes the LF of a CRLF pair, refilling if the pair straddles a
// chunk boundary.
func (r *Reader) skipLF() {
	if r.r >= r.w {
		r.fill()
	}
	if r.r < r.w && r.buf[r.r] == '\n' {
		r.r++
	}
}

func (r *Reader) grow(chunk []byte) error {
	if r.maxLine > 0 && len(r.line)+len(chunk) > r.maxLine {
		return fmt.Errorf("%w (%d)", ErrLineTooLong, r.maxLine)
	}
	r.line = append(r.line, chunk...)
	return nil
}

func sourceSize(src io.Reader) int64 {
	switch s := src.(type) {
	case interface{ Size() int64 }:
		return s.Size()
	case *os.File:
		if info, err := s.Stat(); err == nil {
			return info.Size()
		}
	}
	return -1
}
