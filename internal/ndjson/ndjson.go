// Package ndjson reads and writes newline-delimited JSON records.
//
// The Reader makes no assumption about chunk boundaries: a record may
// arrive split across many reads or packed together with others in a
// single read. Blank and whitespace-only lines are skipped.
package ndjson

import (
	"bytes"
	"io"
)

const readChunkSize = 4096

// Reader splits a byte stream into newline-delimited records.
//
// A Reader is single-pass and not safe for concurrent use.
type Reader struct {
	r   io.Reader
	buf []byte // bytes read but not yet returned as records
	err error  // deferred read error, surfaced after buffered records drain
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadLine returns the next non-blank record without its trailing newline.
//
// At end of stream, a final record is returned even if the stream did not
// end with a newline; subsequent calls return io.EOF. Any other read error
// from the underlying stream is returned after all complete records that
// preceded it have been delivered.
func (r *Reader) ReadLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(r.buf, '\n'); i >= 0 {
			line := r.buf[:i]
			r.buf = r.buf[i+1:]
			if rec := record(line); rec != nil {
				return rec, nil
			}
			continue
		}

		if r.err != nil {
			// Flush the unterminated tail before surfacing the error.
			if rec := record(r.buf); rec != nil {
				r.buf = nil
				return rec, nil
			}
			return nil, r.err
		}

		chunk := make([]byte, readChunkSize)
		n, err := r.r.Read(chunk)
		if n > 0 {
			r.buf = append(r.buf, chunk[:n]...)
		}
		if err != nil {
			r.err = err
		}
	}
}

// Close closes the underlying stream if it is an io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// record trims line and copies it out of the accumulation buffer.
// Returns nil for blank or whitespace-only lines.
func record(line []byte) []byte {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return nil
	}
	// Copy: the buffer's backing array is reused by subsequent appends.
	return append([]byte(nil), trimmed...)
}

// Writer writes newline-delimited records.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRaw writes line followed by a newline.
func (w *Writer) WriteRaw(line []byte) error {
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	_, err := w.w.Write([]byte{'\n'})
	return err
}
