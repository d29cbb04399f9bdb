package store

// shuffledIndices generates a uniform permutation of [0, n) using
// Fisher-Yates. The permutation is always regenerated from scratch,
// never patched, so every qualifying trigger (track list replacement,
// mode switch to random) yields an independent ordering.
func (r *Reducer) shuffledIndices(n int) []int {
	if n == 0 {
		return nil
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.rng.IntN(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}
