package retrieval

import (
	"context"
	"testing"
)

var testFacts = []string{
	"Superman's real name is Clark Kent.",
	"Superman's allies include Batman.",
	"Batman's real name is Bruce Wayne.",
	"Wonder Woman is a hero.",
	"Flash's powers include super speed.",
}

func TestTraditionalRetrieve(t *testing.T) {
	tr := NewTraditional(testFacts)

	res, err := tr.Retrieve(context.Background(), "Who is Superman's ally?", 3)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("Status = %s, want ok", res.Status)
	}
	if res.Strategy != StrategyTraditional {
		t.Errorf("Strategy = %q, want traditional", res.Strategy)
	}
	if len(res.Items) == 0 {
		t.Fatal("expected at least one item")
	}
	// "superman" and "is" overlap for both Superman facts; the ally fact has
	// no extra overlap, so scores tie and corpus order picks the first.
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].Score > res.Items[i-1].Score {
			t.Errorf("items not sorted by score: %v then %v",
				res.Items[i-1].Score, res.Items[i].Score)
		}
	}
}

func TestTraditionalTopK(t *testing.T) {
	tr := NewTraditional(testFacts)

	res, err := tr.Retrieve(context.Background(), "Superman Batman Wonder Woman Flash", 2)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2 (top-k cap)", len(res.Items))
	}
}

func TestTraditionalNoMatch(t *testing.T) {
	tr := NewTraditional(testFacts)

	res, err := tr.Retrieve(context.Background(), "quantum thermodynamics", 5)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if res.Status != StatusNoMatch {
		t.Errorf("Status = %s, want no_match", res.Status)
	}
	if !res.Empty() {
		t.Errorf("Items = %v, want empty", res.Items)
	}
}

func TestTraditionalEmptyQuery(t *testing.T) {
	tr := NewTraditional(testFacts)

	res, err := tr.Retrieve(context.Background(), "  !?  ", 5)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if res.Status != StatusNoMatch || !res.Empty() {
		t.Errorf("punctuation-only query should match nothing, got %+v", res)
	}
}

func TestTraditionalDeterministic(t *testing.T) {
	tr := NewTraditional(testFacts)
	ctx := context.Background()

	first, err := tr.Retrieve(ctx, "Superman real name", 5)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := tr.Retrieve(ctx, "Superman real name", 5)
		if err != nil {
			t.Fatalf("Retrieve() error: %v", err)
		}
		if len(again.Items) != len(first.Items) {
			t.Fatalf("run %d: len = %d, want %d", i, len(again.Items), len(first.Items))
		}
		for j := range first.Items {
			if again.Items[j] != first.Items[j] {
				t.Fatalf("run %d: item %d = %+v, want %+v", i, j, again.Items[j], first.Items[j])
			}
		}
	}
}

func TestTraditionalTieBreakCorpusOrder(t *testing.T) {
	// Both facts overlap the query on exactly one token.
	tr := NewTraditional([]string{
		"alpha mentions krypton once",
		"beta mentions krypton once",
	})

	res, err := tr.Retrieve(context.Background(), "krypton", 2)
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(res.Items))
	}
	if res.Items[0].Text != "alpha mentions krypton once" {
		t.Errorf("tie should keep corpus order, got %q first", res.Items[0].Text)
	}
}

func TestTokenSet(t *testing.T) {
	got := tokenSet("Superman's real-name: Clark Kent!")
	want := []string{"superman", "s", "real", "name", "clark", "kent"}
	if len(got) != len(want) {
		t.Fatalf("tokenSet() = %v, want %d tokens", got, len(want))
	}
	for _, tok := range want {
		if !got[tok] {
			t.Errorf("missing token %q", tok)
		}
	}
}

func TestContextJoinsItems(t *testing.T) {
	res := &Result{Items: []Item{{Text: "a"}, {Text: "b"}}}
	if got := res.Context(); got != "a\nb" {
		t.Errorf("Context() = %q, want %q", got, "a\nb")
	}
	empty := &Result{}
	if got := empty.Context(); got != "" {
		t.Errorf("empty Context() = %q, want empty", got)
	}
}
