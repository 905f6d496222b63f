package movies

import (
	"cmp"
	"slices"
)

// SelectTopCategories returns the k stats with the highest count, highest first.
// Equal counts keep their input order. stats is not modified.
func SelectTopCategories(stats []GenreStat, k int) []GenreStat {
	if k <= 0 || len(stats) == 0 {
		return []GenreStat{}
	}

	sorted := slices.Clone(stats)
	slices.SortStableFunc(sorted, func(a, b GenreStat) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return sorted[:min(k, len(sorted))]
}
