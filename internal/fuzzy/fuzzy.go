// Package fuzzy ranks close matches for mistyped arguments. It backs
// the did you mean hints on unknown argument errors.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher finds candidates within a maximum edit distance of the input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given maximum edit distance.
// Inputs shorter than two characters never match, a one letter typo is
// anyone's guess.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	// Score is in [0, 1], higher is better.
	Score float64
}

// FindBest returns the best matching candidate, or "" when none is
// close enough.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns all candidates within the distance cap, best
// first. Exact matches are excluded, they are not typos.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	var matches []Match
	input = strings.ToLower(input)

	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if input == lower {
			continue
		}

		distance := m.levenshtein(input, lower)
		if distance <= m.maxDistance {
			matches = append(matches, Match{
				Value:    candidate,
				Distance: distance,
				Score:    m.score(input, lower, distance),
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// score rates a candidate in [0, 1] from the edit distance, with
// bonuses for a shared prefix, similar length and shared characters.
func (m *Matcher) score(input, candidate string, distance int) float64 {
	maxLen := max(len(input), len(candidate))
	if maxLen == 0 {
		return 1.0
	}

	score := 1.0 - float64(distance)/float64(maxLen)

	if prefix := commonPrefixLen(input, candidate); prefix > 0 {
		score += float64(prefix) / float64(min(len(input), len(candidate))) * 0.3
	}

	lengthDiff := abs(len(input) - len(candidate))
	score += (1.0 - float64(lengthDiff)/float64(maxLen)) * 0.2

	score += float64(commonChars(input, candidate)) / float64(maxLen) * 0.1

	return min(score, 1.0)
}

// levenshtein is the edit distance with two row storage and early exit
// once the distance cannot come back under the cap.
func (m *Matcher) levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		cur[0] = i
		best := i

		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			best = min(best, cur[j])
		}

		if best > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}

	return prev[len(a)]
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonChars(a, b string) int {
	count := make(map[rune]int)
	for _, r := range a {
		count[r]++
	}

	common := 0
	for _, r := range b {
		if count[r] > 0 {
			common++
			count[r]--
		}
	}
	return common
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// FindBestFlag returns the known flag closest to input, or "".
func FindBestFlag(input string, flags []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, flags)
}

// FindSuggestions returns up to maxSuggestions candidates, best first.
func FindSuggestions(input string, candidates []string, maxDistance, maxSuggestions int) []string {
	matches := NewMatcher(maxDistance).FindMatches(input, candidates)

	suggestions := make([]string, 0, min(len(matches), maxSuggestions))
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Value)
	}
	return suggestions
}
