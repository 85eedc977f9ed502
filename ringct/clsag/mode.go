package clsag

import (
	"git.gammaspectra.live/P2Pool/clsag/crypto"
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
)

type mode interface {
	// AppendCommitments Appends the wire form of the rerandomized commitments to the input hash data
	AppendCommitments(data []byte) []byte
	// LoopConfiguration The rotation bounds of the ring loop and the challenge entering its first round
	LoopConfiguration(data []byte, n int) (start, end int, c curve25519.Scalar)
}

type modeSign struct {
	SignerIndex int

	// Commitments The pseudo-out (and for four layers, extended) commitments, multiplied by the inverse of eight
	Commitments []curve25519.PublicKeyBytes

	// Nonces The initial commitment points, one pair per base generator
	Nonces []curve25519.PublicKeyBytes
}

func (m modeSign) AppendCommitments(data []byte) []byte {
	for i := range m.Commitments {
		data = append(data, m.Commitments[i][:]...)
	}
	return data
}

func (m modeSign) LoopConfiguration(data []byte, n int) (start, end int, c curve25519.Scalar) {
	for i := range m.Nonces {
		data = append(data, m.Nonces[i][:]...)
	}
	crypto.ScalarDeriveLegacyNoAllocate(&c, data)
	return m.SignerIndex + 1, m.SignerIndex + n, c
}

type modeVerify struct {
	// C The closing challenge carried by the signature
	C curve25519.Scalar

	// Commitments The commitments exactly as received on the wire
	Commitments []curve25519.PublicKeyBytes
}

func (m modeVerify) AppendCommitments(data []byte) []byte {
	for i := range m.Commitments {
		data = append(data, m.Commitments[i][:]...)
	}
	return data
}

func (m modeVerify) LoopConfiguration(data []byte, n int) (start, end int, c curve25519.Scalar) {
	return 0, n, m.C
}

var _ mode = modeSign{}
var _ mode = modeVerify{}
