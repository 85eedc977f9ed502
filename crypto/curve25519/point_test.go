package curve25519

import (
	"testing"

	"git.gammaspectra.live/P2Pool/edwards25519" //nolint:depguard
)

func TestDecodeCompressedPoint(t *testing.T) {
	var generatorBytes PublicKeyBytes
	copy(generatorBytes[:], edwards25519.NewGeneratorPoint().Bytes())

	p := DecodeCompressedPoint(new(ConstantTimePublicKey), generatorBytes)
	if p == nil {
		t.Fatal("generator encoding rejected")
	}
	if p.Equal(FromPoint[ConstantTimeOperations](edwards25519.NewGeneratorPoint())) == 0 {
		t.Fatal("generator decoded to a different point")
	}

	rng := testGenerator()
	for range 16 {
		q := RandomPoint(new(ConstantTimePublicKey), rng)
		decoded := DecodeCompressedPoint(new(ConstantTimePublicKey), q.Bytes())
		if decoded == nil {
			t.Fatal("canonical encoding rejected")
		}
		if decoded.Equal(q) == 0 {
			t.Fatal("round trip altered the point")
		}
	}

	// identity with the sign bit set encodes -0, whose canonical form drops the bit
	negativeZero := PublicKeyBytes{1}
	negativeZero[31] = 0x80
	if DecodeCompressedPoint(new(ConstantTimePublicKey), negativeZero) != nil {
		t.Fatal("-0 encoding accepted")
	}

	// y = p+1 is an unreduced encoding of y = 1
	unreduced := PublicKeyBytes{0xee, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	if DecodeCompressedPoint(new(ConstantTimePublicKey), unreduced) != nil {
		t.Fatal("unreduced encoding accepted")
	}

	if DecodeCompressedPoint[ConstantTimeOperations, PublicKeyBytes](nil, generatorBytes) != nil {
		t.Fatal("nil receiver accepted")
	}
}

func TestTorsion(t *testing.T) {
	rng := testGenerator()

	p := RandomPoint(new(ConstantTimePublicKey), rng)
	if !p.IsTorsionFree() {
		t.Fatal("prime order point reported as torsioned")
	}
	if p.IsSmallOrder() {
		t.Fatal("prime order point reported as small order")
	}

	for i, torsion := range edwards25519.EightTorsion[1:] {
		tp := FromPoint[ConstantTimeOperations](torsion)
		if tp.IsTorsionFree() {
			t.Fatalf("torsion point %d reported as torsion free", i+1)
		}
		if !tp.IsSmallOrder() {
			t.Fatalf("torsion point %d reported as not small order", i+1)
		}

		// the cofactor clears small order components
		var cleared ConstantTimePublicKey
		cleared.MultByCofactor(tp)
		if cleared.IsIdentity() == 0 {
			t.Fatalf("torsion point %d survived cofactor multiplication", i+1)
		}

		// a torsioned sum clears to the cofactor multiple of the clean point
		var dirty, expected ConstantTimePublicKey
		dirty.Add(p, tp)
		if dirty.IsTorsionFree() {
			t.Fatalf("torsioned sum %d reported as torsion free", i+1)
		}
		dirty.MultByCofactor(&dirty)
		expected.MultByCofactor(p)
		if dirty.Equal(&expected) == 0 {
			t.Fatalf("torsioned sum %d did not clear", i+1)
		}
	}
}
