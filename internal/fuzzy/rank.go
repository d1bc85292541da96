package fuzzy

import (
	"slices"
)

// Match is one ranked entry: the position of the key in the input slice and
// its score.
type Match struct {
	Index int
	Score int
}

// Rank scores every key against query, drops the keys that do not match and
// orders the rest by descending score. Keys with equal scores keep their
// input order.
//
// The whole list is rescored on every call. Profile lists are small enough
// that this is cheaper to reason about than incremental filtering.
func Rank(keys []string, query string) []Match {
	matches := make([]Match, 0, len(keys))
	for i, key := range keys {
		if score, ok := Score(key, query); ok {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return b.Score - a.Score
	})
	return matches
}

// Filter returns the keys matching query in ranked order.
func Filter(keys []string, query string) []string {
	ranked := Rank(keys, query)
	out := make([]string, len(ranked))
	for i, m := range ranked {
		out[i] = keys[m.Index]
	}
	return out
}
