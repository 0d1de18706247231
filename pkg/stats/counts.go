package stats

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

type Count struct {
	Key   string
	Count int
}

// CountBy tallies items by key, most frequent first and ties by key
func CountBy[T any](items []T, key func(T) string) []Count {
	countMap := map[string]int{}

	for _, item := range items {
		countMap[key(item)]++
	}

	counts := make([]Count, 0, len(countMap))
	for k, v := range countMap {
		counts = append(counts, Count{Key: k, Count: v})
	}

	slices.SortFunc(counts, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Key, b.Key)
	})

	return counts
}

// Reorder returns counts in the given key order, with zero for missing keys
func Reorder(counts []Count, order []string) []Count {
	countMap := map[string]int{}
	for _, c := range counts {
		countMap[c.Key] = c.Count
	}

	ordered := make([]Count, 0, len(order))
	for _, key := range order {
		ordered = append(ordered, Count{Key: key, Count: countMap[key]})
	}

	return ordered
}

func WriteCounts(w io.Writer, title string, counts []Count) {
	fmt.Fprintln(w, title)
	for _, c := range counts {
		fmt.Fprintf(w, "  %-20s %d\n", c.Key, c.Count)
	}
}
