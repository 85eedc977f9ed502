package clsag

import (
	"crypto/subtle"
	"io"

	"git.gammaspectra.live/P2Pool/clsag/crypto"
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/clsag/types"
	"git.gammaspectra.live/P2Pool/clsag/utils"
)

// RingMemberGGXG One candidate input of a four layer ring.
//
// The stealth address is the full public spend key. The amount commitment and the
// concealing point are in their network canonical form, that is, already divided by eight.
type RingMemberGGXG[T curve25519.PointOperations] struct {
	StealthAddress   curve25519.PublicKey[T]
	AmountCommitment curve25519.PublicKey[T]
	ConcealingPoint  curve25519.PublicKey[T]
}

type SignatureGGXG[T curve25519.PointOperations] struct {
	// C The challenge closing the ring, equal to the challenge entering index 0
	C curve25519.Scalar

	// RG The responses for each ring member under the base generator G
	RG []curve25519.Scalar

	// RX The responses for each ring member under the auxiliary generator X
	RX []curve25519.Scalar

	// K1 K2 K3 The auxiliary key images scaling the hash-to-point base by the blinding
	// delta, the auxiliary secret and the concealing secret, stored divided by eight
	K1 curve25519.PublicKeyBytes
	K2 curve25519.PublicKeyBytes
	K3 curve25519.PublicKeyBytes
}

type closingGGXG struct {
	cAgg0 curve25519.Scalar
	cAgg1 curve25519.Scalar
	cAgg2 curve25519.Scalar
	cAgg3 curve25519.Scalar
}

// coreGGXG Ring loop of the four layer algorithm, applicable to both sign and verify
// with minimal differences
//
// Said differences are covered via the above mode
func coreGGXG[T curve25519.PointOperations, M mode](m types.Hash, ring []RingMemberGGXG[T], I, pseudoOut, extended, K18, K28, K38 *curve25519.PublicKey[T], rG, rX []curve25519.Scalar, aC M) (_ closingGGXG, c0 *curve25519.Scalar) {

	data := make([]byte, 0, ((3*len(ring))+4)*curve25519.PublicKeySize)
	data = append(data, m[:]...)
	for i := range ring {
		data = append(data, ring[i].StealthAddress.Slice()...)
		data = append(data, ring[i].AmountCommitment.Slice()...)
		data = append(data, ring[i].ConcealingPoint.Slice()...)
	}
	data = aC.AppendCommitments(data)
	data = append(data, I.Slice()...)

	// input hash, taken without reduction
	inputHash := crypto.Keccak256Var(data)

	var agg0, agg1, agg2, agg3 curve25519.Scalar
	crypto.ScalarDeriveLegacyNoAllocate(&agg0, tagGGXGLayer0[:], inputHash[:])
	crypto.ScalarDeriveLegacyNoAllocate(&agg1, tagGGXGLayer1[:], inputHash[:])
	crypto.ScalarDeriveLegacyNoAllocate(&agg2, tagGGXGLayer2[:], inputHash[:])
	crypto.ScalarDeriveLegacyNoAllocate(&agg3, tagGGXGLayer3[:], inputHash[:])

	// C_i = 8*A_i - D, the commitment to zero of each member against the pseudo-out
	// X_i = E - 8*A_i - 8*Q_i, the portion of the extended commitment living under X
	// Q8_i = 8*Q_i
	C := make([]curve25519.PublicKey[T], len(ring))
	X := make([]curve25519.PublicKey[T], len(ring))
	Q8 := make([]curve25519.PublicKey[T], len(ring))
	var A8 curve25519.PublicKey[T]
	for i := range ring {
		A8.MultByCofactor(&ring[i].AmountCommitment)
		Q8[i].MultByCofactor(&ring[i].ConcealingPoint)
		C[i].Subtract(&A8, pseudoOut)
		X[i].Subtract(extended, &A8)
		X[i].Subtract(&X[i], &Q8[i])
	}

	data = data[:0]
	data = append(data, tagGGXGChallenge[:]...)
	data = append(data, inputHash[:]...)
	roundMark := len(data)

	start, end, c := aC.LoopConfiguration(data, len(ring))

	c0 = new(curve25519.Scalar).Set(&c)

	var cAgg0, cAgg1, cAgg2, cAgg3 curve25519.Scalar

	var LG, RGp, LX, RXp, PH curve25519.PublicKey[T]

	G := curve25519.FromPoint[T](crypto.GeneratorG.Point)

	for j := start; j < end; j++ {
		i := j % len(ring)

		cAgg0.Multiply(&agg0, &c)
		cAgg1.Multiply(&agg1, &c)
		cAgg2.Multiply(&agg2, &c)
		cAgg3.Multiply(&agg3, &c)

		// (r_g_i * G) + (c * agg_0 * P_i) + (c * agg_1 * C_i) + (c * agg_3 * Q8_i)
		var scalars = [4]*curve25519.Scalar{&rG[i], &cAgg0, &cAgg1, &cAgg3}
		var points = [4]*curve25519.PublicKey[T]{G, &ring[i].StealthAddress, &C[i], &Q8[i]}
		LG.MultiScalarMult(scalars[:], points[:])

		crypto.BiasedHashToPoint(&PH, ring[i].StealthAddress.Slice())

		// (c * agg_0 * I) + (c * agg_1 * 8*K1) + (c * agg_3 * 8*K3) + (r_g_i * PH)
		scalars = [4]*curve25519.Scalar{&cAgg0, &cAgg1, &cAgg3, &rG[i]}
		points = [4]*curve25519.PublicKey[T]{I, K18, K38, &PH}
		RGp.MultiScalarMult(scalars[:], points[:])

		// (c * agg_2 * X_i) + (r_x_i * X)
		LX.DoubleScalarMultPrecomputedB(&cAgg2, &X[i], &rX[i], crypto.GeneratorX)

		// (c * agg_2 * 8*K2) + (r_x_i * PH)
		RXp.DoubleScalarMult(&cAgg2, K28, &rX[i], &PH)

		data = data[:roundMark]
		data = append(data, LG.Slice()...)
		data = append(data, RGp.Slice()...)
		data = append(data, LX.Slice()...)
		data = append(data, RXp.Slice()...)
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
	return closingGGXG{
		cAgg0: *new(curve25519.Scalar).Multiply(&c, &agg0),
		cAgg1: *new(curve25519.Scalar).Multiply(&c, &agg1),
		cAgg2: *new(curve25519.Scalar).Multiply(&c, &agg2),
		cAgg3: *new(curve25519.Scalar).Multiply(&c, &agg3),
	}, c0
}

// SignGGXG Produces a four layer ring signature over m.
//
// pseudoOut and extended are the rerandomized commitments in full cofactor form. xP is
// the spend secret of the stealth address at secretIndex, f the blinding delta such
// that 8*A_ℓ - pseudoOut = f*G, xAux the auxiliary secret such that
// extended - 8*A_ℓ - 8*Q_ℓ = xAux*X, q the concealing secret such that Q_ℓ = (q/8)*G,
// and ki the key image of xP.
func SignGGXG[T curve25519.PointOperations](m types.Hash, ring []RingMemberGGXG[T], pseudoOut, extended, ki *curve25519.PublicKey[T], xP, f, xAux, q *curve25519.Scalar, secretIndex int, randomReader io.Reader) (*SignatureGGXG[T], error) {
	if len(ring) == 0 {
		return nil, ErrInvalidRing
	}
	if secretIndex < 0 || secretIndex >= len(ring) {
		return nil, ErrInvalidIndex
	}
	if pseudoOut == nil || extended == nil {
		return nil, ErrInvalidCommitment
	}

	// Check the key is consistent
	if new(curve25519.PublicKey[T]).ScalarBaseMult(xP).Equal(&ring[secretIndex].StealthAddress) == 0 {
		return nil, ErrInvalidKey
	}

	// can't use crypto.GetKeyImage as we need to keep the generator
	var B, I curve25519.PublicKey[T]
	crypto.BiasedHashToPoint(&B, ring[secretIndex].StealthAddress.Slice())
	I.ScalarMult(xP, &B)
	if ki == nil || I.Equal(ki) == 0 {
		return nil, ErrInvalidImage
	}

	// K1 = (f/8)*B, K2 = (x_aux/8)*B, K3 = (q/8)*B on the wire, their eightfold within
	// the ring loop
	var K18, K28, K38, K1, K2, K3 curve25519.PublicKey[T]
	K18.ScalarMult(f, &B)
	K28.ScalarMult(xAux, &B)
	K38.ScalarMult(q, &B)
	K1.ScalarMult(new(curve25519.Scalar).Multiply(f, invEight), &B)
	K2.ScalarMult(new(curve25519.Scalar).Multiply(xAux, invEight), &B)
	K3.ScalarMult(new(curve25519.Scalar).Multiply(q, invEight), &B)

	var alphaG, alphaX curve25519.Scalar
	if curve25519.RandomScalar(&alphaG, randomReader) == nil {
		return nil, ErrRandomSource
	}
	if curve25519.RandomScalar(&alphaX, randomReader) == nil {
		return nil, ErrRandomSource
	}

	rG := make([]curve25519.Scalar, len(ring))
	rX := make([]curve25519.Scalar, len(ring))
	for i := range ring {
		if i == secretIndex {
			continue
		}
		if curve25519.RandomScalar(&rG[i], randomReader) == nil {
			return nil, ErrRandomSource
		}
		if curve25519.RandomScalar(&rX[i], randomReader) == nil {
			return nil, ErrRandomSource
		}
	}

	closing, c0 := coreGGXG(m, ring, &I, pseudoOut, extended, &K18, &K28, &K38, rG, rX, modeSign{
		SignerIndex: secretIndex,
		Commitments: []curve25519.PublicKeyBytes{
			new(curve25519.PublicKey[T]).ScalarMult(invEight, pseudoOut).Bytes(),
			new(curve25519.PublicKey[T]).ScalarMult(invEight, extended).Bytes(),
		},
		Nonces: []curve25519.PublicKeyBytes{
			new(curve25519.PublicKey[T]).ScalarBaseMult(&alphaG).Bytes(),
			new(curve25519.PublicKey[T]).ScalarMult(&alphaG, &B).Bytes(),
			new(curve25519.PublicKey[T]).ScalarMultPrecomputed(&alphaX, crypto.GeneratorX).Bytes(),
			new(curve25519.PublicKey[T]).ScalarMult(&alphaX, &B).Bytes(),
		},
	})

	// r_g_ℓ = α_g - c_ℓ * ((agg_0 * x_p) + (agg_1 * f) + (agg_3 * q))
	rG[secretIndex] = *new(curve25519.Scalar).Subtract(&alphaG, new(curve25519.Scalar).Add(
		new(curve25519.Scalar).Add(
			new(curve25519.Scalar).Multiply(&closing.cAgg0, xP),
			new(curve25519.Scalar).Multiply(&closing.cAgg1, f),
		),
		new(curve25519.Scalar).Multiply(&closing.cAgg3, q),
	))

	// r_x_ℓ = α_x - c_ℓ * (agg_2 * x_aux)
	rX[secretIndex] = *new(curve25519.Scalar).Subtract(&alphaX,
		new(curve25519.Scalar).Multiply(&closing.cAgg2, xAux),
	)

	return &SignatureGGXG[T]{
		C:  *c0,
		RG: rG,
		RX: rX,
		K1: K1.Bytes(),
		K2: K2.Bytes(),
		K3: K3.Bytes(),
	}, nil
}

// Verify Checks the signature against the ring it was produced over.
//
// pseudoOut and extended are the rerandomized commitments as carried on the wire, that
// is, divided by eight. A nil error means the signature is valid.
func (s *SignatureGGXG[T]) Verify(m types.Hash, ring []RingMemberGGXG[T], pseudoOut, extended, ki *curve25519.PublicKey[T]) error {
	if len(ring) == 0 {
		return ErrInvalidRing
	}
	if len(ring) != len(s.RG) || len(ring) != len(s.RX) {
		return ErrInvalidR
	}
	if pseudoOut == nil || extended == nil {
		return ErrInvalidCommitment
	}
	if ki == nil || ki.IsIdentity() == 1 || !ki.IsTorsionFree() {
		return ErrInvalidImage
	}

	// eightfold auxiliary images without torsion
	var K18, K28, K38 curve25519.PublicKey[T]
	for _, aux := range []struct {
		wire *curve25519.PublicKeyBytes
		full *curve25519.PublicKey[T]
	}{
		{&s.K1, &K18},
		{&s.K2, &K28},
		{&s.K3, &K38},
	} {
		k := aux.wire.Point()
		if k == nil {
			return ErrInvalidAuxImage
		}
		aux.full.MultByCofactor(curve25519.To[T](k))
		if aux.full.IsIdentity() == 1 {
			return ErrInvalidAuxImage
		}
	}

	// the full cofactor forms enter the ring loop, the wire forms enter the input hash
	var D, E curve25519.PublicKey[T]
	D.MultByCofactor(pseudoOut)
	E.MultByCofactor(extended)

	_, c0 := coreGGXG(m, ring, ki, &D, &E, &K18, &K28, &K38, s.RG, s.RX, modeVerify{
		C:           s.C,
		Commitments: []curve25519.PublicKeyBytes{pseudoOut.Bytes(), extended.Bytes()},
	})

	if c0.Equal(&s.C) == 0 {
		return ErrInvalidC
	}

	return nil
}

func (s *SignatureGGXG[T]) BufferLength() int {
	return (1+len(s.RG)+len(s.RX))*curve25519.PrivateKeySize + 3*curve25519.PublicKeySize
}

func (s *SignatureGGXG[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = preAllocatedBuf
	data = append(data, s.C.Bytes()...)
	for i := range s.RG {
		data = append(data, s.RG[i].Bytes()...)
	}
	for i := range s.RX {
		data = append(data, s.RX[i].Bytes()...)
	}
	data = append(data, s.K1.Slice()...)
	data = append(data, s.K2.Slice()...)
	data = append(data, s.K3.Slice()...)
	return data, nil
}

func (s *SignatureGGXG[T]) FromReader(reader utils.ReaderAndByteReader, decoys int) (err error) {
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
		s.RG = append(s.RG, scalar)
	}
	for range decoys {
		if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
			return err
		}
		if _, err = scalar.SetCanonicalBytes(sec[:]); err != nil {
			return err
		}
		s.RX = append(s.RX, scalar)
	}
	if _, err = utils.ReadFullNoEscape(reader, s.K1[:]); err != nil {
		return err
	}
	if _, err = utils.ReadFullNoEscape(reader, s.K2[:]); err != nil {
		return err
	}
	if _, err = utils.ReadFullNoEscape(reader, s.K3[:]); err != nil {
		return err
	}
	return nil
}
