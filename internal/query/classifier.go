package query

import "math"

// Intent is the classified purpose of a natural-language query. It selects
// which node types the engine searches first.
type Intent string

const (
	IntentFunction      Intent = "function_search"
	IntentClass         Intent = "class_search"
	IntentFile          Intent = "file_search"
	IntentPattern       Intent = "pattern_search"
	IntentRelationship  Intent = "relationship_search"
	IntentDocumentation Intent = "documentation_search"
	IntentImport        Intent = "import_search"
	IntentGeneral       Intent = "general_search"
)

// intentOrder fixes the iteration order so tie-breaking is deterministic:
// on an exact score tie the earlier category wins.
var intentOrder = []Intent{
	IntentFunction,
	IntentClass,
	IntentFile,
	IntentPattern,
	IntentRelationship,
	IntentDocumentation,
	IntentImport,
}

// seedPhrases is the small fixed training set. The phrase-to-category
// mapping is the behavioral contract; the model behind it is not.
var seedPhrases = map[Intent][]string{
	IntentFunction: {
		"find the login function",
		"show me the function that handles requests",
		"what does this method do",
		"list all functions in the file",
		"which function parses the input",
		"find handler method",
	},
	IntentClass: {
		"find the user class",
		"show me the class definition",
		"what classes extend the base model",
		"list all classes",
		"which class implements the interface",
		"find the controller class",
	},
	IntentFile: {
		"find the config file",
		"which file contains the server setup",
		"show me the main file",
		"list all files in the project",
		"where is the routes file",
	},
	IntentPattern: {
		"find usages of the api key",
		"search for error handling patterns",
		"where is this pattern used",
		"find all occurrences of retry logic",
		"search the codebase for database calls",
	},
	IntentRelationship: {
		"what depends on the auth module",
		"show the relationship between user and session",
		"what calls this function",
		"which modules are connected to the database layer",
		"how are these classes related",
	},
	IntentDocumentation: {
		"show me the documentation",
		"find the readme",
		"what do the docs say about setup",
		"show documentation comments for the api",
		"find usage documentation",
	},
	IntentImport: {
		"what does this file import",
		"show all imports",
		"which modules import the logger",
		"list dependencies imported by the server",
		"find the import statements",
	},
}

// Classifier is a multinomial naive-Bayes intent classifier trained on the
// seed phrases above. It is deterministic: the same query always yields
// the same category, and anything the model cannot place falls back to
// general_search.
type Classifier struct {
	vocab      map[string]bool
	tokenCount map[Intent]map[string]int
	totalCount map[Intent]int
	docCount   map[Intent]int
	totalDocs  int
}

// NewClassifier trains a classifier on the fixed seed set.
func NewClassifier() *Classifier {
	c := &Classifier{
		vocab:      make(map[string]bool),
		tokenCount: make(map[Intent]map[string]int),
		totalCount: make(map[Intent]int),
		docCount:   make(map[Intent]int),
	}
	for _, intent := range intentOrder {
		c.tokenCount[intent] = make(map[string]int)
		for _, phrase := range seedPhrases[intent] {
			c.docCount[intent]++
			c.totalDocs++
			for _, tok := range tokenize(phrase) {
				c.vocab[tok] = true
				c.tokenCount[intent][tok]++
				c.totalCount[intent]++
			}
		}
	}
	return c
}

// Classify maps a free-text query to exactly one intent category. Queries
// with no token seen during training default to general_search.
func (c *Classifier) Classify(text string) Intent {
	var known []string
	for _, tok := range tokenize(text) {
		if c.vocab[tok] {
			known = append(known, tok)
		}
	}
	if len(known) == 0 {
		return IntentGeneral
	}

	best := IntentGeneral
	bestScore := math.Inf(-1)
	vocabSize := float64(len(c.vocab))

	for _, intent := range intentOrder {
		// Log prior plus Laplace-smoothed log likelihood per token.
		score := math.Log(float64(c.docCount[intent]) / float64(c.totalDocs))
		denom := float64(c.totalCount[intent]) + vocabSize
		for _, tok := range known {
			score += math.Log((float64(c.tokenCount[intent][tok]) + 1) / denom)
		}
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}
	return best
}

// NodeTypesFor maps an intent category to the graph node type names that
// should be searched for it, most specific first.
func NodeTypesFor(intent Intent) []string {
	switch intent {
	case IntentFunction:
		return []string{"function"}
	case IntentClass:
		return []string{"class"}
	case IntentFile:
		return []string{"file"}
	case IntentImport:
		return []string{"import"}
	case IntentDocumentation:
		return []string{"documentation", "heading"}
	case IntentRelationship:
		return []string{"function", "class"}
	case IntentPattern:
		return []string{"file", "function"}
	default:
		return []string{"file", "function", "class"}
	}
}
