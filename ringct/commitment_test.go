package ringct

import (
	"encoding/binary"
	"testing"

	"git.gammaspectra.live/P2Pool/clsag/crypto"
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
)

func TestAmountToScalar(t *testing.T) {
	for _, amount := range []uint64{0, 1, 1337, 1 << 40, ^uint64(0)} {
		var s curve25519.Scalar
		AmountToScalar(&s, amount)

		var expected [8]byte
		binary.LittleEndian.PutUint64(expected[:], amount)

		buf := s.Bytes()
		for i := range expected {
			if buf[i] != expected[i] {
				t.Fatalf("amount %d: byte %d differs", amount, i)
			}
		}
		for i := 8; i < len(buf); i++ {
			if buf[i] != 0 {
				t.Fatalf("amount %d: high byte %d not zero", amount, i)
			}
		}
	}
}

func TestCommitHomomorphism(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var mask1, mask2 curve25519.Scalar
	curve25519.RandomScalar(&mask1, rng)
	curve25519.RandomScalar(&mask2, rng)

	const amount1 = 1337
	const amount2 = 42

	var c1, c2, sum curve25519.ConstantTimePublicKey
	Commit(&c1, amount1, &mask1)
	Commit(&c2, amount2, &mask2)
	sum.Add(&c1, &c2)

	var maskSum curve25519.Scalar
	maskSum.Add(&mask1, &mask2)

	var expected curve25519.ConstantTimePublicKey
	Commit(&expected, amount1+amount2, &maskSum)

	if sum.Equal(&expected) == 0 {
		t.Fatal("commitments do not add homomorphically")
	}
}

func TestCalculateCommitment(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var mask curve25519.Scalar
	curve25519.RandomScalar(&mask, rng)

	var direct, viaStruct curve25519.ConstantTimePublicKey
	Commit(&direct, 1337, &mask)
	CalculateCommitment(&viaStruct, Commitment{Mask: mask, Amount: 1337})

	if direct.Equal(&viaStruct) == 0 {
		t.Fatal("commitment mismatch")
	}
}

func TestZeroCommitment(t *testing.T) {
	var c curve25519.ConstantTimePublicKey
	CalculateCommitment(&c, ZeroCommitment)

	// mask of 1 and no amount, the commitment is the base generator itself
	expected := curve25519.FromPoint[curve25519.ConstantTimeOperations](crypto.GeneratorG.Point)
	if c.Equal(expected) == 0 {
		t.Fatal("zero commitment is not the base generator")
	}
}

func TestExtendCommitment(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	var mask, x curve25519.Scalar
	curve25519.RandomScalar(&mask, rng)
	curve25519.RandomScalar(&x, rng)

	var amountCommitment curve25519.ConstantTimePublicKey
	Commit(&amountCommitment, 1337, &mask)

	concealing := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng)

	var extended curve25519.ConstantTimePublicKey
	ExtendCommitment(&extended, &amountCommitment, concealing, &x)

	var expected curve25519.ConstantTimePublicKey
	expected.ScalarMultPrecomputed(&x, crypto.GeneratorX)
	expected.Add(&expected, &amountCommitment)
	expected.Add(&expected, concealing)

	if extended.Equal(&expected) == 0 {
		t.Fatal("extended commitment mismatch")
	}

	// subtracting the amount commitment and concealing point leaves only the X component
	var residue curve25519.ConstantTimePublicKey
	residue.Subtract(&extended, &amountCommitment)
	residue.Subtract(&residue, concealing)

	var xPart curve25519.ConstantTimePublicKey
	xPart.ScalarMultPrecomputed(&x, crypto.GeneratorX)
	if residue.Equal(&xPart) == 0 {
		t.Fatal("extended commitment residue is not x*X")
	}
}
