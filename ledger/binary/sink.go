package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// token identifies a previously reserved placeholder in a sink, to be
// filled in once its value is known.
type token int64

// sink is the write side's back-patching abstraction: reserve an
// 8-byte placeholder now, keep writing, and fill the placeholder once
// the real value — a string
// pool's length, a bigint count — is known. A seekable destination
// patches in place; a non-seekable one (a pipe, an io.Writer with no
// Seek method) buffers the whole stream and is only flushed to the
// real writer once every patch has been applied.
type sink interface {
	io.Writer
	Reserve() (token, error)
	Fill(tok token, v uint64) error
	Flush() error
	Pos() int64
}

func newSink(w io.Writer) sink {
	if ws, ok := w.(io.WriteSeeker); ok {
		return &seekSink{w: ws}
	}
	return &bufferSink{underlying: w}
}

type seekSink struct {
	w      io.WriteSeeker
	offset int64
}

func (s *seekSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.offset += int64(n)
	return n, err
}

func (s *seekSink) Reserve() (token, error) {
	tok := token(s.offset)
	if err := writeU64(s, 0); err != nil {
		return 0, err
	}
	return tok, nil
}

func (s *seekSink) Fill(tok token, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := s.w.Seek(int64(tok), io.SeekStart); err != nil {
		return err
	}
	if _, err := s.w.Write(buf[:]); err != nil {
		return err
	}
	_, err := s.w.Seek(s.offset, io.SeekStart)
	return err
}

func (s *seekSink) Flush() error { return nil }

func (s *seekSink) Pos() int64 { return s.offset }

type bufferSink struct {
	buf        bytes.Buffer
	underlying io.Writer
}

func (s *bufferSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *bufferSink) Reserve() (token, error) {
	tok := token(s.buf.Len())
	var zero [8]byte
	if _, err := s.buf.Write(zero[:]); err != nil {
		return 0, err
	}
	return tok, nil
}

func (s *bufferSink) Fill(tok token, v uint64) error {
	b := s.buf.Bytes()
	if int(tok)+8 > len(b) {
		return fmt.Errorf("ledgerbin: patch token %d out of range for %d-byte buffer", tok, len(b))
	}
	binary.LittleEndian.PutUint64(b[tok:], v)
	return nil
}

func (s *bufferSink) Flush() error {
	_, err := s.underlying.Write(s.buf.Bytes())
	return err
}

func (s *bufferSink) Pos() int64 { return int64(s.buf.Len()) }
