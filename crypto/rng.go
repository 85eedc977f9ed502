package crypto

import (
	"io"
)

// NewDeterministicTestGenerator Stream of deterministic bytes squeezed from a fixed keccak state.
// Use for testing only
func NewDeterministicTestGenerator() io.Reader {
	h := newKeccak256()
	_, _ = h.Write([]byte("deterministic test generator"))
	return h
}
