package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyed struct {
	Key   string
	Index int
}

func TestGroupBy(t *testing.T) {
	tests := []struct {
		name     string
		input    []keyed
		expected map[string][]keyed
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: map[string][]keyed{},
		},
		{
			name:  "single group keeps order",
			input: []keyed{{"a", 0}, {"a", 1}, {"a", 2}},
			expected: map[string][]keyed{
				"a": {{"a", 0}, {"a", 1}, {"a", 2}},
			},
		},
		{
			name:  "interleaved keys",
			input: []keyed{{"a", 0}, {"b", 1}, {"a", 2}, {"c", 3}, {"b", 4}},
			expected: map[string][]keyed{
				"a": {{"a", 0}, {"a", 2}},
				"b": {{"b", 1}, {"b", 4}},
				"c": {{"c", 3}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			groups := GroupBy(test.input, func(k keyed) string { return k.Key })

			assert.NotNil(t, groups)
			assert.Equal(t, test.expected, groups)

			total := 0
			for _, group := range groups {
				total += len(group)
			}
			assert.Equal(t, len(test.input), total)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[int64]bool{4062: true, 3001: true, 9999: false})

	assert.Equal(t, []int64{3001, 4062, 9999}, keys)
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestCountDistinct(t *testing.T) {
	items := []keyed{{"a", 0}, {"b", 1}, {"a", 2}}

	assert.Equal(t, 2, CountDistinct(items, func(k keyed) string { return k.Key }))
	assert.Equal(t, 0, CountDistinct([]keyed{}, func(k keyed) string { return k.Key }))
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}

	InPlaceFilter(&values, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6}, values)
}
