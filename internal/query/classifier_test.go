package query

import "testing"

func TestClassifyIntents(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		query string
		want  Intent
	}{
		{"find login function", IntentFunction},
		{"which function parses the request body", IntentFunction},
		{"show me the User class", IntentClass},
		{"what classes extend BaseModel", IntentClass},
		{"which file contains the server setup", IntentFile},
		{"what does this file import", IntentImport},
		{"show me the documentation for setup", IntentDocumentation},
		{"what depends on the auth module", IntentRelationship},
		{"search for error handling patterns", IntentPattern},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := c.Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyUnknownDefaultsToGeneral(t *testing.T) {
	c := NewClassifier()

	tests := []string{
		"",
		"zzyzx qwfp",
		"!!!",
	}
	for _, q := range tests {
		if got := c.Classify(q); got != IntentGeneral {
			t.Errorf("Classify(%q) = %s, want %s", q, got, IntentGeneral)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	q := "find the handler for the user session"

	first := c.Classify(q)
	for i := 0; i < 10; i++ {
		if got := c.Classify(q); got != first {
			t.Fatalf("classification flapped: %s then %s", first, got)
		}
	}
}

func TestNodeTypesFor(t *testing.T) {
	tests := []struct {
		intent Intent
		first  string
	}{
		{IntentFunction, "function"},
		{IntentClass, "class"},
		{IntentFile, "file"},
		{IntentImport, "import"},
		{IntentDocumentation, "documentation"},
		{IntentGeneral, "file"},
	}
	for _, tt := range tests {
		types := NodeTypesFor(tt.intent)
		if len(types) == 0 || types[0] != tt.first {
			t.Errorf("NodeTypesFor(%s) = %v, want first %q", tt.intent, types, tt.first)
		}
	}
}
