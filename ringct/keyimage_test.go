package ringct

import (
	"sync"
	"testing"

	"git.gammaspectra.live/P2Pool/clsag/crypto"
	"git.gammaspectra.live/P2Pool/clsag/crypto/curve25519"
	"git.gammaspectra.live/P2Pool/clsag/types"
)

func TestKeyImageSet(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	set := NewKeyImageSet(16)

	image := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()
	other := curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()

	if set.Has(image) {
		t.Fatal("empty set reports membership")
	}
	if _, spent := set.Observe(image, types.Hash{1}); spent {
		t.Fatal("first observation reported as spent")
	}
	if !set.Has(image) {
		t.Fatal("observed image not reported")
	}
	if set.Count() != 1 {
		t.Fatalf("count %d, expected 1", set.Count())
	}

	prior, spent := set.Observe(image, types.Hash{2})
	if !spent {
		t.Fatal("second observation not reported as spent")
	}
	if prior != (types.Hash{1}) {
		t.Fatalf("wrong prior reference: %s", prior)
	}

	if _, spent = set.Observe(other, types.Hash{3}); spent {
		t.Fatal("distinct image reported as spent")
	}
	if set.Count() != 2 {
		t.Fatalf("count %d, expected 2", set.Count())
	}

	if !set.Remove(image) {
		t.Fatal("remove of present image failed")
	}
	if set.Remove(image) {
		t.Fatal("remove of absent image succeeded")
	}
	if set.Has(image) {
		t.Fatal("removed image still reported")
	}

	// removed images can be observed again, as after a rollback
	if _, spent = set.Observe(image, types.Hash{4}); spent {
		t.Fatal("re-observation after removal reported as spent")
	}
}

func TestKeyImageSetConcurrent(t *testing.T) {
	rng := crypto.NewDeterministicTestGenerator()

	set := NewKeyImageSet(128)

	images := make([]curve25519.PublicKeyBytes, 64)
	for i := range images {
		images[i] = curve25519.RandomPoint(new(curve25519.ConstantTimePublicKey), rng).Bytes()
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, image := range images {
				set.Observe(image, types.Hash{byte(i)})
				set.Has(image)
			}
		}()
	}
	wg.Wait()

	if set.Count() != len(images) {
		t.Fatalf("count %d, expected %d", set.Count(), len(images))
	}
}
