package utils

import (
	"io"
)

type ReaderAndByteReader interface {
	io.Reader
	io.ByteReader
}

// ReadFullNoEscape io.ReadFull without having buf escape to the heap
func ReadFullNoEscape(r io.Reader, buf []byte) (n int, err error) {
	for n < len(buf) && err == nil {
		var nn int
		nn, err = ReadNoEscape(r, buf[n:])
		n += nn
	}
	if n >= len(buf) {
		err = nil
	} else if n > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
