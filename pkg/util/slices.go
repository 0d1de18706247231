package util

import (
	"cmp"

	"golang.org/x/exp/slices"
)

func InPlaceFilter[T any](s *[]T, p func(T) bool) {
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}
	*s = (*s)[:i]
}

// GroupBy partitions items by key. Every group keeps the relative order the
// items had in the input and every item lands in exactly one group.
func GroupBy[K comparable, T any](items []T, key func(T) K) map[K][]T {
	groups := map[K][]T{}

	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}

	return groups
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func CountDistinct[K comparable, T any](items []T, key func(T) K) int {
	seen := map[K]struct{}{}

	for _, item := range items {
		seen[key(item)] = struct{}{}
	}

	return len(seen)
}
