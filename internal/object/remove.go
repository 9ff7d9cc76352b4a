package object

import (
	"cmp"
	"slices"
)

// RemoveIndices deletes the elements at the given positions and returns the
// shortened slice. Indices may arrive in any order and may repeat; out of
// range indices are ignored. Removal runs from the highest index down so
// that earlier deletions never shift a position that is still pending.
// The relative order of the kept elements is preserved.
func RemoveIndices[T any](s []T, indices []int) []T {
	if len(indices) == 0 {
		return s
	}
	order := slices.Clone(indices)
	slices.SortFunc(order, func(a, b int) int { return cmp.Compare(b, a) })
	order = slices.Compact(order)

	for _, i := range order {
		if i < 0 || i >= len(s) {
			continue
		}
		s = slices.Delete(s, i, i+1)
	}
	return s
}
