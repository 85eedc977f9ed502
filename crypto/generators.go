package crypto

import (
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/edwards25519" //nolint:depguard
)

func inlineKeccak[T ~[]byte | ~string](data T) []byte {
	h := Keccak256(data)
	return h[:]
}

var (
	// GeneratorG generator of 𝔾E
	// G = {x, 4/5 mod q}
	GeneratorG = curve25519.NewGenerator(edwards25519.NewGeneratorPoint())

	// GeneratorH H_p^1(G)
	// H = 8*to_point(keccak(G))
	// note: this does not use the point_from_bytes() function found in H_p(), instead directly interpreting the
	//       input bytes as a compressed point (this can fail, so should not be used generically)
	// note2: to_point(keccak(G)) is known to succeed for the canonical value of G (it will fail 7/8ths of the time
	//        normally)
	//
	// Contrary to convention (`G` for values, `H` for randomness), `H` is used for amounts within Pedersen commitments
	GeneratorH = curve25519.NewGenerator(HopefulHashToPoint(new(curve25519.ConstantTimePublicKey), GeneratorG.Point.Bytes()).P())

	// GeneratorX H_p^2(Keccak256("auxiliary generator X"))
	// Base of extended amount commitments and of the auxiliary response vector in four-layer ring signatures
	GeneratorX = curve25519.NewGenerator(UnbiasedHashToPoint(new(curve25519.ConstantTimePublicKey), inlineKeccak("auxiliary generator X")).P())
)
