package crypto

import (
	"hash"
	"io"

	"git.gammaspectra.live/P2Pool/clsag/types"
	"git.gammaspectra.live/P2Pool/clsag/utils"
	"git.gammaspectra.live/P2Pool/sha3" //nolint:depguard
)

type HashReader interface {
	hash.Hash
	io.Reader
}

type KeccakHasher struct {
	h HashReader
}

func (k KeccakHasher) Read(p []byte) (n int, err error) {
	return utils.ReadNoEscape(k.h, p)
}

func (k KeccakHasher) Write(p []byte) (n int, err error) {
	return utils.WriteNoEscape(k.h, p)
}

func (k KeccakHasher) Sum(b []byte) []byte {
	return utils.SumNoEscape(k.h, b)
}

func (k KeccakHasher) Reset() {
	k.h.Reset()
}

func (k KeccakHasher) Size() int {
	return k.h.Size()
}

func (k KeccakHasher) BlockSize() int {
	return k.h.BlockSize()
}

//go:nosplit
func NewKeccak256() KeccakHasher {
	return KeccakHasher{h: sha3.NewLegacyKeccak256()}
}

//go:nosplit
func newKeccak256() *sha3.HasherState {
	return sha3.NewLegacyKeccak256()
}

func Keccak256Var[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := newKeccak256()
	for _, b := range data {
		_, _ = utils.WriteNoEscape(h, []byte(b))
	}
	_, _ = utils.ReadNoEscape(h, result[:types.HashSize])

	return
}

func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	h := newKeccak256()
	_, _ = utils.WriteNoEscape(h, []byte(data))
	_, _ = utils.ReadNoEscape(h, result[:types.HashSize])

	return
}

// HashFastSum sha3.Sum clones the state by allocating memory. prevent that. b must be pre-allocated to the expected size, or larger
//
//go:nosplit
func HashFastSum(hasher HashReader, b []byte) []byte {
	_ = b[31] // bounds check hint to compiler; see golang.org/issue/14808
	_, _ = utils.ReadNoEscape(hasher, b[:types.HashSize])
	return b
}
