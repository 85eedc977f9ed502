package crypto

import (
	"bytes"
	"testing"

	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
)

func TestKeccak256(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	whole := Keccak256(data)

	split := Keccak256Var(data[:9], data[9:20], data[20:])
	if whole != split {
		t.Fatal("split input altered the digest")
	}

	pooled := PooledKeccak256(data)
	if whole != pooled {
		t.Fatal("pooled hasher altered the digest")
	}

	h := NewKeccak256()
	if _, err := h.Write(data); err != nil {
		t.Fatal(err)
	}
	var sum [32]byte
	HashFastSum(h, sum[:])
	if !bytes.Equal(whole[:], sum[:]) {
		t.Fatal("streaming hasher altered the digest")
	}
}

func TestScalarDeriveLegacy(t *testing.T) {
	data := []byte("derive")

	allocated := ScalarDeriveLegacy(data)

	var c curve25519.Scalar
	ScalarDeriveLegacyNoAllocate(&c, data)
	if allocated.Equal(&c) == 0 {
		t.Fatal("derive variants disagree")
	}

	// variadic input hashes the concatenation
	var split curve25519.Scalar
	ScalarDeriveLegacyNoAllocate(&split, data[:3], data[3:])
	if split.Equal(&c) == 0 {
		t.Fatal("split input altered the derived scalar")
	}

	var other curve25519.Scalar
	ScalarDeriveLegacyNoAllocate(&other, []byte("derive2"))
	if other.Equal(&c) == 1 {
		t.Fatal("distinct inputs derived the same scalar")
	}
}

func TestBiasedHashToPoint(t *testing.T) {
	rng := NewDeterministicTestGenerator()

	for range 16 {
		input := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()

		var p, q curve25519.ConstantTimePublicKey
		BiasedHashToPoint(&p, input[:])
		BiasedHashToPoint(&q, input[:])

		if p.Equal(&q) == 0 {
			t.Fatal("hash to point is not deterministic")
		}
		if p.IsIdentity() == 1 {
			t.Fatal("hash to point produced the identity")
		}
		if !p.IsTorsionFree() {
			t.Fatal("hash to point left the prime order subgroup")
		}

		var v curve25519.VarTimePublicKey
		BiasedHashToPoint(&v, input[:])
		if p.Equal(curve25519.To[curve25519.ConstantTimeOperations](&v)) == 0 {
			t.Fatal("operation backends disagree")
		}
	}
}

func TestUnbiasedHashToPoint(t *testing.T) {
	rng := NewDeterministicTestGenerator()

	for range 16 {
		input := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()

		var p, biased curve25519.ConstantTimePublicKey
		UnbiasedHashToPoint(&p, input[:])
		BiasedHashToPoint(&biased, input[:])

		if p.IsIdentity() == 1 {
			t.Fatal("hash to point produced the identity")
		}
		if !p.IsTorsionFree() {
			t.Fatal("hash to point left the prime order subgroup")
		}
		if p.Equal(&biased) == 1 {
			t.Fatal("unbiased and biased variants agree, wrong construction")
		}
	}
}

func TestHashToPointCache(t *testing.T) {
	rng := NewDeterministicTestGenerator()

	cache := NewHashToPointCache(16)

	key := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()
	other := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()

	var direct, missed, hit curve25519.ConstantTimePublicKey
	BiasedHashToPoint(&direct, key[:])

	CachedHashToPoint(cache, &missed, key)
	if missed.Equal(&direct) == 0 {
		t.Fatal("cache miss altered the result")
	}

	CachedHashToPoint(cache, &hit, key)
	if hit.Equal(&direct) == 0 {
		t.Fatal("cache hit altered the result")
	}

	var v curve25519.VarTimePublicKey
	CachedHashToPoint(cache, &v, key)
	if hit.Equal(curve25519.To[curve25519.ConstantTimeOperations](&v)) == 0 {
		t.Fatal("operation backends disagree")
	}

	var distinct curve25519.ConstantTimePublicKey
	CachedHashToPoint(cache, &distinct, other)
	if distinct.Equal(&direct) == 1 {
		t.Fatal("distinct keys mapped to the same point")
	}
}

func TestGetKeyImage(t *testing.T) {
	rng := NewDeterministicTestGenerator()

	var secret curve25519.Scalar
	curve25519.RandomScalar(&secret, rng)

	keyPair := NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](&secret)

	image := GetKeyImage(new(curve25519.ConstantTimePublicKey), keyPair)

	// I = x * H_p(P)
	var base, expected curve25519.ConstantTimePublicKey
	BiasedHashToPoint(&base, keyPair.PublicKey.Slice())
	expected.ScalarMult(&secret, &base)

	if image.Equal(&expected) == 0 {
		t.Fatal("key image mismatch")
	}
	if !image.IsTorsionFree() {
		t.Fatal("key image left the prime order subgroup")
	}

	again := GetKeyImage(new(curve25519.ConstantTimePublicKey), keyPair)
	if image.Equal(again) == 0 {
		t.Fatal("key image is not deterministic")
	}
}

func TestGenerators(t *testing.T) {
	h := curve25519.FromPoint[curve25519.ConstantTimeOperations](GeneratorH.Point)
	x := curve25519.FromPoint[curve25519.ConstantTimeOperations](GeneratorX.Point)
	g := curve25519.FromPoint[curve25519.ConstantTimeOperations](GeneratorG.Point)

	for name, p := range map[string]*curve25519.ConstantTimePublicKey{
		"H": h,
		"X": x,
	} {
		if p.IsIdentity() == 1 {
			t.Fatalf("generator %s is the identity", name)
		}
		if !p.IsTorsionFree() {
			t.Fatalf("generator %s left the prime order subgroup", name)
		}
		if p.Equal(g) == 1 {
			t.Fatalf("generator %s equals the base generator", name)
		}
	}
	if h.Equal(x) == 1 {
		t.Fatal("generators H and X coincide")
	}

	expectedH := HopefulHashToPoint(new(curve25519.ConstantTimePublicKey), GeneratorG.Point.Bytes())
	if expectedH == nil || h.Equal(expectedH) == 0 {
		t.Fatal("generator H derivation mismatch")
	}

	expectedX := UnbiasedHashToPoint(new(curve25519.ConstantTimePublicKey), inlineKeccak("auxiliary generator X"))
	if x.Equal(expectedX) == 0 {
		t.Fatal("generator X derivation mismatch")
	}

	// the precomputed tables scale the same point
	var viaTable, direct curve25519.VarTimePublicKey
	var k curve25519.Scalar
	ScalarDeriveLegacyNoAllocate(&k, []byte("table check"))
	viaTable.ScalarMultPrecomputed(&k, GeneratorX)
	direct.ScalarMult(&k, curve25519.FromPoint[curve25519.VarTimeOperations](GeneratorX.Point))
	if viaTable.Equal(&direct) == 0 {
		t.Fatal("precomputed table disagrees with plain multiplication")
	}
}

func TestDeterministicTestGenerator(t *testing.T) {
	a := NewDeterministicTestGenerator()
	b := NewDeterministicTestGenerator()

	var bufA, bufB [64]byte
	if _, err := a.Read(bufA[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Read(bufB[:]); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufA[:], bufB[:]) {
		t.Fatal("generators with the same seed diverge")
	}

	var next [64]byte
	if _, err := a.Read(next[:]); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(bufA[:], next[:]) {
		t.Fatal("generator repeats output")
	}
}

func TestKeyPair(t *testing.T) {
	rng := NewDeterministicTestGenerator()

	var secret curve25519.Scalar
	curve25519.RandomScalar(&secret, rng)

	keyPair := NewKeyPairFromPrivate[curve25519.ConstantTimeOperations](&secret)
	if keyPair.PrivateKey.Equal(&secret) == 0 {
		t.Fatal("private key altered")
	}

	expected := new(curve25519.ConstantTimePublicKey).ScalarBaseMult(&secret)
	if keyPair.PublicKey.Equal(expected) == 0 {
		t.Fatal("public key mismatch")
	}
}
