package crypto

import (
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"golang.org/x/crypto/blake2b"
)

// HopefulHashToPoint Interprets keccak(data) directly as a compressed point, then clears torsion.
//
// This can fail 7/8ths of the time for arbitrary inputs, so should not be used generically.
// It is known to succeed for the canonical generator G.
func HopefulHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], data []byte) *curve25519.PublicKey[T] {
	result := curve25519.DecodeCompressedPoint(dst, Keccak256(data))
	if result == nil {
		return nil
	}

	// Ensure this point lies within the prime-order subgroup
	result.MultByCofactor(result)

	return result
}

// BiasedHashToPoint Monero's `hash_to_ec` / `biased_hash_to_ec` function.
//
// This achieves parity with https://github.com/monero-project/monero/blob/389e3ba1df4a6df4c8f9d116aa239d4c00f5bc78/src/crypto/crypto.cpp#L611, inlining the
// `ge_fromfe_frombytes_vartime` function (https://github.com/monero-project/monero/blob/389e3ba1df4a6df4c8f9d116aa239d4c00f5bc78/src/crypto/crypto-ops.c#L2309).
// This implementation runs in constant time.
//
// In reality, this implements Elligator 2 as detailed in
// "Elligator: Elliptic-curve points indistinguishable from uniform random strings"
// (https://eprint.iacr.org/2013/325). Specifically, Section 5.5 details the application of
// Elligator 2 to Curve25519, after which the result is mapped to Ed25519.
//
// As this only applies Elligator 2 once, it's limited to a subset of points where a certain
// derivative of their `u` coordinates (in Montgomery form) are quadratic residues. It's biased
// accordingly.
func BiasedHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], data []byte) *curve25519.PublicKey[T] {
	result := curve25519.Elligator2WithUniformBytes(dst, Keccak256(data))

	// Ensure points lie within the prime-order subgroup
	result.MultByCofactor(result)

	return result
}

// UnbiasedHashToPoint Monero's `unbiased_hash_to_ec` function.
//
// Similar to https://github.com/seraphis-migration/monero/blob/74a254f8c215986042c40e6875a0f97bd6169a1e/src/crypto/crypto.cpp#L622
func UnbiasedHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], preimage []byte) *curve25519.PublicKey[T] {
	h := blake2b.Sum512(preimage)

	first := curve25519.Elligator2WithUniformBytes(new(curve25519.PublicKey[T]), [32]byte(h[:32]))
	second := curve25519.Elligator2WithUniformBytes(new(curve25519.PublicKey[T]), [32]byte(h[32:]))

	// Ensure points lie within the prime-order subgroup
	first.MultByCofactor(first)
	second.MultByCofactor(second)

	return dst.Add(first, second)
}
