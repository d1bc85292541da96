// Package fuzzy scores and ranks profile names against an incremental query.
//
// A query matches a text when every query rune appears in the text in order,
// ignoring case. Among all such alignments the highest-scoring one is used, so
// "dp" against "dev-prod" prefers the "p" that starts the "prod" segment.
package fuzzy

import (
	"unicode"
)

// Baseline is the score every text receives for an empty query.
const Baseline = 0

const (
	scoreMatch        = 16
	bonusBoundary     = 10
	bonusCamel        = 8
	bonusConsecutive  = 6
	penaltyGap        = 2
	penaltyLeadingGap = 1
)

const minScore = -1 << 30

// Score returns the match score of query against text and whether it matched
// at all. Scores are only comparable for the same query.
func Score(text, query string) (int, bool) {
	if query == "" {
		return Baseline, true
	}

	t := []rune(text)
	q := fold([]rune(query))
	if len(q) > len(t) {
		return 0, false
	}
	lower := fold(append([]rune(nil), t...))
	if !isSubsequence(lower, q) {
		return 0, false
	}

	bonus := make([]int, len(t))
	for j := range t {
		bonus[j] = positionBonus(t, j)
	}

	// prev[j] is the best score of q[:i] with q[i-1] matched at t[j].
	prev := make([]int, len(t))
	cur := make([]int, len(t))
	for j := range t {
		if lower[j] == q[0] {
			prev[j] = scoreMatch + bonus[j] - penaltyLeadingGap*j
		} else {
			prev[j] = minScore
		}
	}

	for i := 1; i < len(q); i++ {
		// gapBest is the best prev[k] - penaltyGap*(j-k-1) over k < j-1.
		gapBest := minScore
		for j := range t {
			cur[j] = minScore
			if j >= 2 && prev[j-2] > minScore {
				gapBest = max(gapBest, prev[j-2]-penaltyGap)
			}
			if lower[j] != q[i] || j == 0 {
				if gapBest > minScore {
					gapBest -= penaltyGap
				}
				continue
			}

			best := gapBest
			if prev[j-1] > minScore {
				best = max(best, prev[j-1]+bonusConsecutive)
			}
			if best > minScore {
				cur[j] = best + scoreMatch + bonus[j]
			}
			if gapBest > minScore {
				gapBest -= penaltyGap
			}
		}
		prev, cur = cur, prev
	}

	result := minScore
	for _, s := range prev {
		result = max(result, s)
	}
	return result, result > minScore
}

// Matches reports whether query is a case-insensitive subsequence of text.
func Matches(text, query string) bool {
	return isSubsequence(fold([]rune(text)), fold([]rune(query)))
}

func isSubsequence(text, query []rune) bool {
	qi := 0
	for _, r := range text {
		if qi == len(query) {
			break
		}
		if r == query[qi] {
			qi++
		}
	}
	return qi == len(query)
}

func fold(rs []rune) []rune {
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// positionBonus rewards positions that start a word or segment.
func positionBonus(t []rune, j int) int {
	if j == 0 {
		return bonusBoundary
	}
	prev, cur := t[j-1], t[j]
	switch {
	case isSeparator(prev):
		return bonusBoundary
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return bonusCamel
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return bonusCamel
	}
	return 0
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '.', '/', ':', '@', ' ':
		return true
	}
	return unicode.IsSpace(r)
}
