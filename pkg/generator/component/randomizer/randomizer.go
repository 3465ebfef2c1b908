// Package randomizer samples many values out of a small fixed pool.
package randomizer

import "math/rand/v2"

// Randomizer hands out elements of a pool in windows over a precomputed random key
// sequence. Keys are drawn independently, so an element may repeat within one window.
type Randomizer[T any] struct {
	rng      *rand.Rand
	elements []T
	keys     []int
	index    int
}

// New builds a Randomizer over elements. An empty pool is replaced by the single
// fallback element so that Get never fails.
func New[T any](rng *rand.Rand, elements []T, fallback T) *Randomizer[T] {
	if len(elements) == 0 {
		elements = []T{fallback}
	}
	keys := make([]int, len(elements))
	for i := range keys {
		keys[i] = rng.IntN(len(elements))
	}
	return &Randomizer[T]{
		rng:      rng,
		elements: elements,
		keys:     keys,
	}
}

// Count returns the pool size.
func (r *Randomizer[T]) Count() int {
	return len(r.elements)
}

// Get returns min(q, Count()) elements.
func (r *Randomizer[T]) Get(q int) []T {
	count := len(r.elements)
	q = min(max(q, 0), count)
	if r.index+q > count {
		r.index = r.rng.IntN(count - q + 1)
	}
	out := make([]T, q)
	for i := range out {
		out[i] = r.elements[r.keys[r.index+i]]
	}
	r.index += q
	return out
}

// One returns a single element.
func (r *Randomizer[T]) One() T {
	return r.Get(1)[0]
}
