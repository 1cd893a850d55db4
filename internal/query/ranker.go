package query

import (
	"sort"
	"strings"

	"github.com/hargabyte/scout/internal/graph"
)

// Scoring weights. An exact name match is the strongest relevance signal:
// a query for parseFile should surface the function named parseFile before
// a file that merely mentions it. Stemmed matches score below literal ones
// because stemming admits false positives ("running" matching "run" in
// unrelated code).
const (
	weightSerializedOriginal = 2
	weightSerializedStem     = 1
	weightNameExact          = 5
	weightNameSubstring      = 3
)

// Score computes the relevance of a node against the keyword list. It is a
// pure function: the same node and keywords always produce the same score.
func Score(node *graph.Node, keywords []Keyword) int {
	if node == nil || len(keywords) == 0 {
		return 0
	}

	serialized := strings.ToLower(node.Serialized())
	nameLower := strings.ToLower(node.Name())

	score := 0
	for _, kw := range keywords {
		if strings.Contains(serialized, kw.Original) {
			score += weightSerializedOriginal
		}
		if strings.Contains(serialized, kw.Stem) {
			score += weightSerializedStem
		}

		if nameLower == "" {
			continue
		}
		if nameLower == kw.Original {
			score += weightNameExact
		} else if strings.Contains(nameLower, kw.Original) {
			score += weightNameSubstring
		}
	}
	return score
}

// Ranked pairs a node with its keyword relevance score.
type Ranked struct {
	Node  *graph.Node
	Score int
}

// Rank scores every candidate and returns those with a positive score,
// ordered by score descending. The sort is stable, so equal scores keep
// their candidate order.
func Rank(candidates []*graph.Node, keywords []Keyword) []Ranked {
	var out []Ranked
	for _, n := range candidates {
		if s := Score(n, keywords); s > 0 {
			out = append(out, Ranked{Node: n, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
