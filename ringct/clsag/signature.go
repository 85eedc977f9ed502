// Package clsag implements two and four layer concise linkable spontaneous
// anonymous group signatures over Ed25519.
//
// The two layer variant binds a stealth address and an amount commitment. The
// four layer variant additionally binds a concealing point and an extended
// commitment under the auxiliary generator X.
package clsag

import (
	"errors"

	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
)

var ErrInvalidKey = errors.New("invalid CLSAG key")
var ErrInvalidRing = errors.New("invalid CLSAG ring")
var ErrInvalidIndex = errors.New("invalid CLSAG signer index")
var ErrInvalidR = errors.New("invalid CLSAG responses")
var ErrInvalidC = errors.New("invalid CLSAG challenge")
var ErrInvalidImage = errors.New("invalid CLSAG key image")
var ErrInvalidAuxImage = errors.New("invalid CLSAG auxiliary key image")
var ErrInvalidCommitment = errors.New("invalid CLSAG commitment")
var ErrRandomSource = errors.New("random source failure")

// invEight The inverse of 8 over l, the prime factor of the order of Ed25519.
var invEight = new(curve25519.Scalar).Invert((&curve25519.PrivateKeyBytes{8}).Scalar())
