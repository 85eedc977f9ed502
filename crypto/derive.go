package crypto

import (
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
)

// ScalarDeriveLegacy = BytesToInt256(Keccak256(x)) mod ℓ
func ScalarDeriveLegacy(data ...[]byte) *curve25519.Scalar {
	h := PooledKeccak256(data...)

	c := GetEdwards25519Scalar()
	curve25519.BytesToScalar32(c, h)

	return c
}

func ScalarDeriveLegacyNoAllocate(c *curve25519.Scalar, data ...[]byte) *curve25519.Scalar {
	h := Keccak256Var(data...)

	curve25519.BytesToScalar32(c, h)
	return c
}

// GetKeyImage I = x * H_p(P)
func GetKeyImage[T curve25519.PointOperations](dst *curve25519.PublicKey[T], pair *KeyPair[T]) *curve25519.PublicKey[T] {
	BiasedHashToPoint(dst, pair.PublicKey.Slice())
	return dst.ScalarMult(&pair.PrivateKey, dst)
}
