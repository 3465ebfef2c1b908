package randomizer_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/wpgen/pkg/generator/component/randomizer"
)

func rng() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestGet_SizesAreClamped(t *testing.T) {
	r := randomizer.New(rng(), []string{"a", "b", "c", "d", "e"}, "")

	assert.Equal(t, 5, r.Count())
	assert.Len(t, r.Get(1), 1)
	assert.Len(t, r.Get(3), 3)
	assert.Len(t, r.Get(5), 5)
	assert.Len(t, r.Get(50), 5)
	assert.Len(t, r.Get(0), 0)
	assert.Len(t, r.Get(-2), 0)
}

func TestGet_ElementsComeFromPool(t *testing.T) {
	pool := []int{10, 20, 30}
	r := randomizer.New(rng(), pool, -1)
	for i := 0; i < 1000; i++ {
		assert.Contains(t, pool, r.One())
	}
}

func TestNew_EmptyPoolUsesFallback(t *testing.T) {
	r := randomizer.New[int](rng(), nil, 0)

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []int{0}, r.Get(1))
	assert.Equal(t, []int{0}, r.Get(10))
}

// Keys are drawn with replacement, so a window may hold duplicates and
// some elements may never be returned.
func TestGet_MaySampleWithReplacement(t *testing.T) {
	pool := make([]int, 100)
	for i := range pool {
		pool[i] = i
	}
	r := randomizer.New(rng(), pool, -1)

	seen := map[int]bool{}
	for _, v := range r.Get(100) {
		seen[v] = true
	}
	assert.Less(t, len(seen), 100)
}
