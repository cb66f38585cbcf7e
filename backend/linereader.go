package backend

import (
	"bufio"
	"io"
)

// lineReader only ever yields whole newline-terminated lines. A trailing
// line without its newline is held back (and reported as EOF) until the
// rest of it arrives, so a CSV that is still being written never parses a
// half-written row.
type lineReader struct {
	r *bufio.Reader
	// partial is an unterminated line seen before the last EOF.
	partial []byte
	// pending is the part of a complete line that did not fit the caller's
	// buffer.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) io.Reader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, data...)
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
		if len(l.partial) > 0 {
			data = append(l.partial, data...)
			l.partial = nil
		}
		l.pending = data
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
