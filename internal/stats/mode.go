// Package stats computes and prints the descriptive trip reports.
//
// Every reducer here is deterministic: Mode resolves ties to the smallest
// value and ValueCounts orders equal counts by first appearance.
package stats

import (
	"cmp"
	"errors"
	"slices"
)

var ErrNoTrips = errors.New("no trips match the selected filters")

type Count[T comparable] struct {
	Value T
	Count int
}

// Mode returns the most frequent value, the smallest one among ties.
// ok is false when values is empty.
func Mode[T cmp.Ordered](values []T) (T, bool) {
	return ModeFunc(values, cmp.Less[T])
}

// ModeFunc is Mode with a caller-supplied ordering for tie-breaks.
func ModeFunc[T comparable](values []T, less func(a, b T) bool) (mode T, ok bool) {
	counts := make(map[T]int, len(values))
	best := 0
	for _, value := range values {
		counts[value]++
		count := counts[value]
		switch {
		case count > best:
			best, mode = count, value
		case count == best && less(value, mode):
			mode = value
		}
	}
	return mode, best > 0
}

// ValueCounts tallies values, most frequent first.
func ValueCounts[T comparable](values []T) []Count[T] {
	index := make(map[T]int, len(values))
	var counts []Count[T]
	for _, value := range values {
		i, seen := index[value]
		if !seen {
			i = len(counts)
			index[value] = i
			counts = append(counts, Count[T]{Value: value})
		}
		counts[i].Count++
	}

	// stable: equal counts keep first-appearance order
	slices.SortStableFunc(counts, func(a, b Count[T]) int { return cmp.Compare(b.Count, a.Count) })
	return counts
}
