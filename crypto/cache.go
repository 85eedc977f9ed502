package crypto

import (
	"sync"

	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"github.com/floatdrop/lru"
)

// HashToPointCache Memoizes BiasedHashToPoint results keyed by the compressed input bytes.
//
// Signing and verification compute hash-to-point inline and take no locks. Consumers that
// look up the same ring members across many signatures, such as a verifier scanning a
// chain, can front their lookups with a cache instead.
type HashToPointCache struct {
	lock sync.Mutex
	m    *lru.LRU[curve25519.PublicKeyBytes, curve25519.Point]
}

func NewHashToPointCache(size int) *HashToPointCache {
	return &HashToPointCache{
		m: lru.New[curve25519.PublicKeyBytes, curve25519.Point](size),
	}
}

// CachedHashToPoint BiasedHashToPoint through the cache
func CachedHashToPoint[T curve25519.PointOperations](c *HashToPointCache, dst *curve25519.PublicKey[T], key curve25519.PublicKeyBytes) *curve25519.PublicKey[T] {
	c.lock.Lock()
	if p := c.m.Get(key); p != nil {
		point := *p
		c.lock.Unlock()
		dst.P().Set(&point)
		return dst
	}
	c.lock.Unlock()

	BiasedHashToPoint(dst, key[:])

	c.lock.Lock()
	c.m.Set(key, *dst.P())
	c.lock.Unlock()
	return dst
}
