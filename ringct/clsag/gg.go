package clsag

import (
	"crypto/subtle"
	"io"

	"git.gammaspectra.live/P2Pool/clsag/crypto"
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/clsag/types"
	"git.gammaspectra.live/P2Pool/clsag/utils"
)

// RingMemberGG One candidate input of a two layer ring.
//
// The stealth address is the full public spend key. The amount commitment is in its
// network canonical form, that is, already divided by eight.
type RingMemberGG[T curve25519.PointOperations] struct {
	StealthAddress   curve25519.PublicKey[T]
	AmountCommitment curve25519.PublicKey[T]
}

type SignatureGG[T curve25519.PointOperations] struct {
	// C The challenge closing the ring, equal to the challenge entering index 0
	C curve25519.Scalar

	// R The responses for each ring member
	R []curve25519.Scalar

	// K1 The auxiliary key image scaling the hash-to-point base by the blinding delta, stored divided by eight
	K1 curve25519.PublicKeyBytes
}

type closingGG struct {
	cAgg0 curve25519.Scalar
	cAgg1 curve25519.Scalar
}

// coreGG Ring loop of the two layer algorithm, applicable to both sign and verify with
// minimal differences
//
// Said differences are covered via the above mode
func coreGG[T curve25519.PointOperations, M mode](m types.Hash, ring []RingMemberGG[T], I, pseudoOut, K18 *curve25519.PublicKey[T], r []curve25519.Scalar, aC M) (_ closingGG, c0 *curve25519.Scalar) {

	data := make([]byte, 0, ((2*len(ring))+3)*curve25519.PublicKeySize)
	data = append(data, m[:]...)
	for i := range ring {
		data = append(data, ring[i].StealthAddress.Slice()...)
		data = append(data, ring[i].AmountCommitment.Slice()...)
	}
	data = aC.AppendCommitments(data)
	data = append(data, I.Slice()...)

	// input hash, taken without reduction
	inputHash := crypto.Keccak256Var(data)

	var agg0, agg1 curve25519.Scalar
	crypto.ScalarDeriveLegacyNoAllocate(&agg0, tagGGLayer0[:], inputHash[:])
	crypto.ScalarDeriveLegacyNoAllocate(&agg1, tagGGLayer1[:], inputHash[:])

	// C_i = 8*A_i - D, the commitment to zero of each member against the pseudo-out
	C := make([]curve25519.PublicKey[T], len(ring))
	for i := range ring {
		C[i].MultByCofactor(&ring[i].AmountCommitment)
		C[i].Subtract(&C[i], pseudoOut)
	}

	data = data[:0]
	data = append(data, tagGGChallenge[:]...)
	data = append(data, inputHash[:]...)
	roundMark := len(data)

	start, end, c := aC.LoopConfiguration(data, len(ring))

	c0 = new(curve25519.Scalar).Set(&c)

	var cAgg0, cAgg1 curve25519.Scalar

	var L, R, PH curve25519.PublicKey[T]

	G := curve25519.FromPoint[T](crypto.GeneratorG.Point)

	for j := start; j < end; j++ {
		i := j % len(ring)

		cAgg0.Multiply(&agg0, &c)
		cAgg1.Multiply(&agg1, &c)

		// (r_i * G) + (c * agg_0 * P_i) + (c * agg_1 * C_i)
		var scalars = [3]*curve25519.Scalar{&r[i], &cAgg0, &cAgg1}
		var points = [3]*curve25519.PublicKey[T]{G, &ring[i].StealthAddress, &C[i]}
		L.MultiScalarMult(scalars[:], points[:])

		crypto.BiasedHashToPoint(&PH, ring[i].StealthAddress.Slice())

		// (c * agg_0 * I) + (c * agg_1 * 8*K1) + (r_i * PH)
		scalars = [3]*curve25519.Scalar{&cAgg0, &cAgg1, &r[i]}
		points = [3]*curve25519.PublicKey[T]{I, K18, &PH}
		R.MultiScalarMult(scalars[:], points[:])

		data = data[:roundMark]
		data = append(data, L.Slice()...)
		data = append(data, R.Slice()...)
		crypto.ScalarDeriveLegacyNoAllocate(&c, data)

		// The challenge produced at the last index is the one entering index 0. Making the
		// capture constant time removes the risk of branch prediction creating timing
		// differences depending on ring index
		if subtle.ConstantTimeEq(int32(i), int32(len(ring)-1)) == 1 {
			c0.Set(&c)
		} else {
			c0.Set(c0)
		}
	}

	// The closing challenge scaled by each aggregation coefficient, needed to finish signing
	return closingGG{
		cAgg0: *new(curve25519.Scalar).Multiply(&c, &agg0),
		cAgg1: *new(curve25519.Scalar).Multiply(&c, &agg1),
	}, c0
}

// SignGG Produces a two layer ring signature over m.
//
// pseudoOut is the rerandomized amount commitment in full cofactor form. x is the spend
// secret of the stealth address at secretIndex, f the blinding delta such that
// 8*A_ℓ - pseudoOut = f*G, and ki the key image of x.
func SignGG[T curve25519.PointOperations](m types.Hash, ring []RingMemberGG[T], pseudoOut, ki *curve25519.PublicKey[T], x, f *curve25519.Scalar, secretIndex int, randomReader io.Reader) (*SignatureGG[T], error) {
	if len(ring) == 0 {
		return nil, ErrInvalidRing
	}
	if secretIndex < 0 || secretIndex >= len(ring) {
		return nil, ErrInvalidIndex
	}
	if pseudoOut == nil {
		return nil, ErrInvalidCommitment
	}

	// Check the key is consistent
	if new(curve25519.PublicKey[T]).ScalarBaseMult(x).Equal(&ring[secretIndex].StealthAddress) == 0 {
		return nil, ErrInvalidKey
	}

	// can't use crypto.GetKeyImage as we need to keep the generator
	var B, I curve25519.PublicKey[T]
	crypto.BiasedHashToPoint(&B, ring[secretIndex].StealthAddress.Slice())
	I.ScalarMult(x, &B)
	if ki == nil || I.Equal(ki) == 0 {
		return nil, ErrInvalidImage
	}

	// K1 = (f/8)*B on the wire, f*B within the ring loop
	var K18, K1 curve25519.PublicKey[T]
	K18.ScalarMult(f, &B)
	K1.ScalarMult(new(curve25519.Scalar).Multiply(f, invEight), &B)

	var alpha curve25519.Scalar
	if curve25519.RandomScalar(&alpha, randomReader) == nil {
		return nil, ErrRandomSource
	}

	r := make([]curve25519.Scalar, len(ring))
	for i := range r {
		if i == secretIndex {
			continue
		}
		if curve25519.RandomScalar(&r[i], randomReader) == nil {
			return nil, ErrRandomSource
		}
	}

	closing, c0 := coreGG(m, ring, &I, pseudoOut, &K18, r, modeSign{
		SignerIndex: secretIndex,
		Commitments: []curve25519.PublicKeyBytes{
			new(curve25519.PublicKey[T]).ScalarMult(invEight, pseudoOut).Bytes(),
		},
		Nonces: []curve25519.PublicKeyBytes{
			new(curve25519.PublicKey[T]).ScalarBaseMult(&alpha).Bytes(),
			new(curve25519.PublicKey[T]).ScalarMult(&alpha, &B).Bytes(),
		},
	})

	// r_ℓ = α - c_ℓ * ((agg_0 * x) + (agg_1 * f))
	r[secretIndex] = *new(curve25519.Scalar).Subtract(&alpha, new(curve25519.Scalar).Add(
		new(curve25519.Scalar).Multiply(&closing.cAgg0, x),
		new(curve25519.Scalar).Multiply(&closing.cAgg1, f),
	))

	return &SignatureGG[T]{
		C:  *c0,
		R:  r,
		K1: K1.Bytes(),
	}, nil
}

// Verify Checks the signature against the ring it was produced over.
//
// pseudoOut is the rerandomized amount commitment as carried on the wire, that is,
// divided by eight. A nil error means the signature is valid.
func (s *SignatureGG[T]) Verify(m types.Hash, ring []RingMemberGG[T], pseudoOut, ki *curve25519.PublicKey[T]) error {
	if len(ring) == 0 {
		return ErrInvalidRing
	}
	if len(ring) != len(s.R) {
		return ErrInvalidR
	}
	if pseudoOut == nil {
		return ErrInvalidCommitment
	}
	if ki == nil || ki.IsIdentity() == 1 || !ki.IsTorsionFree() {
		return ErrInvalidImage
	}

	// K18 8*K1 without torsion
	var K18 curve25519.PublicKey[T]
	k1 := s.K1.Point()
	if k1 == nil {
		return ErrInvalidAuxImage
	}
	K18.MultByCofactor(curve25519.To[T](k1))
	if K18.IsIdentity() == 1 {
		return ErrInvalidAuxImage
	}

	// the full cofactor form enters the ring loop, the wire form enters the input hash
	var D curve25519.PublicKey[T]
	D.MultByCofactor(pseudoOut)

	_, c0 := coreGG(m, ring, ki, &D, &K18, s.R, modeVerify{
		C:           s.C,
		Commitments: []curve25519.PublicKeyBytes{pseudoOut.Bytes()},
	})

	if c0.Equal(&s.C) == 0 {
		return ErrInvalidC
	}

	return nil
}

func (s *SignatureGG[T]) BufferLength() int {
	return (1+len(s.R))*curve25519.PrivateKeySize + curve25519.PublicKeySize
}

func (s *SignatureGG[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = preAllocatedBuf
	data = append(data, s.C.Bytes()...)
	for i := range s.R {
		data = append(data, s.R[i].Bytes()...)
	}
	data = append(data, s.K1.Slice()...)
	return data, nil
}

func (s *SignatureGG[T]) FromReader(reader utils.ReaderAndByteReader, decoys int) (err error) {
	var sec curve25519.PrivateKeyBytes
	var scalar curve25519.Scalar
	if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
		return err
	}
	if _, err = s.C.SetCanonicalBytes(sec[:]); err != nil {
		return err
	}
	for range decoys {
		if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
			return err
		}
		if _, err = scalar.SetCanonicalBytes(sec[:]); err != nil {
			return err
		}
		s.R = append(s.R, scalar)
	}
	if _, err = utils.ReadFullNoEscape(reader, s.K1[:]); err != nil {
		return err
	}
	return nil
}
