package ringct

import (
	"sync"

	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/clsag/types"
	"github.com/dolthub/swiss"
)

// KeyImageSet Tracks key images observed by a verifier to detect reuse of the same
// spend secret across signatures.
//
// Safe for concurrent use.
type KeyImageSet struct {
	lock sync.RWMutex
	m    *swiss.Map[curve25519.PublicKeyBytes, types.Hash]
}

func NewKeyImageSet(capacity uint32) *KeyImageSet {
	return &KeyImageSet{
		m: swiss.NewMap[curve25519.PublicKeyBytes, types.Hash](capacity),
	}
}

// Observe Records the key image against the reference it was seen in.
// Reports the prior reference if the image had already been observed.
func (s *KeyImageSet) Observe(image curve25519.PublicKeyBytes, ref types.Hash) (prior types.Hash, spent bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if prior, spent = s.m.Get(image); spent {
		return prior, true
	}
	s.m.Put(image, ref)
	return types.ZeroHash, false
}

func (s *KeyImageSet) Has(image curve25519.PublicKeyBytes) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.m.Has(image)
}

// Remove Drops a key image, for example when the reference that spent it is rolled back.
func (s *KeyImageSet) Remove(image curve25519.PublicKeyBytes) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.m.Delete(image)
}

func (s *KeyImageSet) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.m.Count()
}
