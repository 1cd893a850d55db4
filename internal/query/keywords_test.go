package query

import (
	"reflect"
	"testing"
)

func TestExtractKeywordsDropsStopWords(t *testing.T) {
	kws := ExtractKeywords("find the login function")

	originals := make([]string, 0, len(kws))
	for _, kw := range kws {
		originals = append(originals, kw.Original)
	}
	want := []string{"login", "function"}
	if !reflect.DeepEqual(originals, want) {
		t.Errorf("keywords = %v, want %v", originals, want)
	}
}

func TestExtractKeywordsStems(t *testing.T) {
	kws := ExtractKeywords("parsing running connections")
	if len(kws) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(kws))
	}

	stems := map[string]string{}
	for _, kw := range kws {
		stems[kw.Original] = kw.Stem
	}
	if stems["parsing"] == "parsing" {
		t.Errorf("expected parsing to stem to a shorter root, got %q", stems["parsing"])
	}
	if stems["running"] != "run" {
		t.Errorf("expected running to stem to run, got %q", stems["running"])
	}
}

func TestExtractKeywordsEmptyIsValid(t *testing.T) {
	tests := []string{
		"",
		"what is this",
		"how does it do that",
	}
	for _, q := range tests {
		if kws := ExtractKeywords(q); len(kws) != 0 {
			t.Errorf("query %q: expected empty keyword list, got %v", q, kws)
		}
	}
}

func TestExtractKeywordsDeduplicates(t *testing.T) {
	kws := ExtractKeywords("login login LOGIN")
	if len(kws) != 1 {
		t.Errorf("expected 1 deduplicated keyword, got %d", len(kws))
	}
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	got := tokenize("find parseFile() in utils/parser.js")
	want := []string{"find", "parsefile", "in", "utils", "parser", "js"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeKeepsUnderscores(t *testing.T) {
	got := tokenize("find user_session handling")
	want := []string{"find", "user_session", "handling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}
