package brand

import (
	"testing"

	"github.com/dmcneil/frontdesk/internal/knowledge"
)

func testVocabulary() knowledge.Vocabulary {
	return knowledge.Vocabulary{
		Default: "zulu",
		Entries: []knowledge.Entry{
			{Keyword: "forklift", Brand: "alpha"},
			{Keyword: "fork", Brand: "bravo"},
			{Keyword: "filter", Brand: "mike"},
		},
	}
}

func TestResolveKeywordMatch(t *testing.T) {
	r := NewResolver(testVocabulary())

	tests := []struct {
		utterance string
		want      string
	}{
		{"do you sell forklift parts", "alpha"},
		{"I need an oil filter", "mike"},
		{"what's the weather", "zulu"}, // no match falls back
		{"", "zulu"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.utterance); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.utterance, got, tt.want)
		}
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := NewResolver(testVocabulary())
	if r.Resolve("FORKLIFT parts") != r.Resolve("forklift parts") {
		t.Error("resolution must be case-insensitive")
	}
	if got := r.Resolve("FORKLIFT parts"); got != "alpha" {
		t.Errorf("Resolve(FORKLIFT parts) = %q, want alpha", got)
	}
}

func TestResolveFirstDeclaredKeywordWins(t *testing.T) {
	// "forklift" contains "fork"; both keywords match the utterance.
	// Declaration order, not match position or length, decides.
	r := NewResolver(testVocabulary())
	if got := r.Resolve("forklift hire"); got != "alpha" {
		t.Errorf("Resolve(forklift hire) = %q, want alpha (first declared keyword)", got)
	}

	reversed := knowledge.Vocabulary{
		Default: "zulu",
		Entries: []knowledge.Entry{
			{Keyword: "fork", Brand: "bravo"},
			{Keyword: "forklift", Brand: "alpha"},
		},
	}
	if got := NewResolver(reversed).Resolve("forklift hire"); got != "bravo" {
		t.Errorf("Resolve(forklift hire) = %q, want bravo (first declared keyword)", got)
	}
}

func TestResolveSubstringNotWholeWord(t *testing.T) {
	r := NewResolver(testVocabulary())
	// "filter" appears inside "filtering"; substring semantics match it.
	if got := r.Resolve("filtering equipment"); got != "mike" {
		t.Errorf("Resolve(filtering equipment) = %q, want mike (substring match)", got)
	}
}

func TestResolverIsolatedFromVocabularyMutation(t *testing.T) {
	v := testVocabulary()
	r := NewResolver(v)
	v.Entries[0] = knowledge.Entry{Keyword: "forklift", Brand: "mike"}
	if got := r.Resolve("forklift"); got != "alpha" {
		t.Errorf("Resolver shares storage with caller's vocabulary: got %q", got)
	}
}
