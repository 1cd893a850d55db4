package graph

import (
	"sort"
	"strings"
	"unicode"
)

// SearchResult pairs a node with its relevance score for a raw query.
type SearchResult struct {
	Node  *Node
	Score int
}

// SearchNodes scores every node against the query string and returns the
// matches sorted by relevance, highest first. Scoring:
//
//	+2 when the node's type string contains the query substring
//	+1 when the serialized data contains the query substring
//	+3 per whole-word exact occurrence of the query in the serialized data
//
// The sort is stable, so ties keep insertion order. Calling SearchNodes
// twice on an unmodified graph returns identical ordered results.
func (g *Graph) SearchNodes(query string) []SearchResult {
	if query == "" {
		return nil
	}
	var results []SearchResult
	for _, n := range g.nodes {
		score := 0
		if strings.Contains(string(n.Type), query) {
			score += 2
		}
		if strings.Contains(n.serialized, query) {
			score++
		}
		score += 3 * countWholeWord(n.serialized, query)
		if score > 0 {
			results = append(results, SearchResult{Node: n, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// countWholeWord counts occurrences of word in s that are not embedded in
// a longer identifier: the characters on either side must not be letters,
// digits, or underscores.
func countWholeWord(s, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	for start := 0; ; {
		i := strings.Index(s[start:], word)
		if i < 0 {
			break
		}
		i += start
		if isWordBoundary(s, i-1) && isWordBoundary(s, i+len(word)) {
			count++
		}
		start = i + len(word)
	}
	return count
}

// isWordBoundary reports whether the byte at index i (possibly out of
// range) does not continue an identifier.
func isWordBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
