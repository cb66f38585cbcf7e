package backend

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected []byte) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if !bytes.Equal(scratch[:n], expected) {
		t.Errorf("expected read to yield %q, got: %q", expected, scratch[:n])
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReaderHoldsPartialRows(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("Time (s),CH1 (V)\n")
	buf.WriteString("0,1\n")
	l := NewLineReader(buf)
	expectToRead(t, l, []byte("Time (s),CH1 (V)\n"))
	expectToRead(t, l, []byte("0,1\n"))

	buf.WriteString("0.001,")
	expectReadEOF(t, l)
	buf.WriteString("2\n")
	expectToRead(t, l, []byte("0.001,2\n"))

	buf.WriteString("0.0")
	expectReadEOF(t, l)
	buf.WriteString("02,")
	expectReadEOF(t, l)
	buf.WriteString("3\n0.003")
	expectToRead(t, l, []byte("0.002,3\n"))
	expectReadEOF(t, l)
}

func TestLineReaderSmallBuffer(t *testing.T) {
	l := NewLineReader(bytes.NewBufferString("abcdef\n"))
	var scratch [4]byte
	var got []byte
	for {
		n, err := l.Read(scratch[:])
		got = append(got, scratch[:n]...)
		if err != nil {
			break
		}
	}
	if string(got) != "abcdef\n" {
		t.Errorf("expected the whole line across short reads, got %q", got)
	}
}
