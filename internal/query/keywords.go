// Package query turns free-text questions into search intent: an intent
// category, a normalized keyword list, and a relevance score for ranking
// graph nodes against those keywords.
package query

import (
	"strings"

	"github.com/blevesearch/go-porterstemmer"
)

// Keyword pairs a surviving query token with its morphological stem.
type Keyword struct {
	Original string `json:"original"`
	Stem     string `json:"stem"`
}

// stopWords is the fixed set of tokens dropped during keyword extraction:
// articles, common interrogatives, and auxiliary verbs. Queries made only
// of stop words produce an empty keyword list, which is valid and routes
// the caller into overview mode.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"what": true, "which": true, "who": true, "whom": true,
	"when": true, "where": true, "why": true, "how": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true,
	"do": true, "does": true, "did": true, "done": true,
	"have": true, "has": true, "had": true,
	"can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"to": true, "of": true, "in": true, "on": true, "at": true,
	"for": true, "with": true, "from": true, "by": true, "about": true,
	"and": true, "or": true, "but": true, "not": true, "no": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "there": true, "here": true,
	"me": true, "my": true, "i": true, "we": true, "our": true,
	"you": true, "your": true, "all": true, "any": true, "some": true,
	"please": true, "show": true, "find": true, "get": true, "list": true,
	"tell": true, "give": true,
}

// ExtractKeywords tokenizes the query, drops stop words and very short
// tokens, and pairs each survivor with its Porter stem. Order follows the
// query; duplicates are collapsed to their first occurrence.
func ExtractKeywords(text string) []Keyword {
	var keywords []Keyword
	seen := make(map[string]bool)

	for _, token := range tokenize(text) {
		if len(token) < 2 || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, Keyword{
			Original: token,
			Stem:     porterstemmer.StemString(token),
		})
	}
	return keywords
}

// tokenize lowercases the text and splits it on anything that cannot be
// part of a code identifier, so "find the parseFile() function" yields
// ["find", "the", "parsefile", "function"].
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return false
		}
		return r != '_'
	})
}
