package store

import "testing"

func TestShuffledIndices_IsPermutation(t *testing.T) {
	r := NewSeededReducer(42, 42)

	for n := 1; n <= 32; n++ {
		indices := r.shuffledIndices(n)

		if len(indices) != n {
			t.Fatalf("n=%d: len = %d", n, len(indices))
		}
		seen := make([]bool, n)
		for _, v := range indices {
			if v < 0 || v >= n {
				t.Fatalf("n=%d: value %d out of range", n, v)
			}
			if seen[v] {
				t.Fatalf("n=%d: value %d appears twice", n, v)
			}
			seen[v] = true
		}
	}
}

func TestShuffledIndices_Empty(t *testing.T) {
	r := NewSeededReducer(1, 1)

	if r.shuffledIndices(0) != nil {
		t.Error("shuffledIndices(0) should be nil")
	}
}

func TestShuffledIndices_VariesBetweenCalls(t *testing.T) {
	r := NewSeededReducer(1, 1)

	// With 16 elements, two consecutive identical permutations would be
	// astronomically unlikely; check a few draws.
	first := r.shuffledIndices(16)
	for draw := 0; draw < 5; draw++ {
		next := r.shuffledIndices(16)
		same := true
		for i := range next {
			if next[i] != first[i] {
				same = false
				break
			}
		}
		if !same {
			return
		}
	}
	t.Error("six consecutive draws produced the same permutation")
}
