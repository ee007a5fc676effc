package retrieval

import (
	"testing"

	"github.com/brunobiangulo/ragduel/dataset"
)

func TestDeriveFacts(t *testing.T) {
	ds := &dataset.Dataset{
		Entities: []dataset.Entity{
			{
				Name: "Superman",
				Type: "Hero",
				Attrs: []dataset.Attribute{
					{Key: "real_name", Value: "Clark Kent"},
					{Key: "powers", Values: []string{"super strength", "flight"}},
				},
			},
			{Name: "Justice League", Type: "Team"},
		},
		Relationships: []dataset.Relationship{
			{From: "Superman", To: "Justice League", Type: "MEMBER_OF", Directed: true},
		},
	}

	want := []string{
		"Superman is a hero.",
		"Superman's real name is Clark Kent.",
		"Superman's powers include super strength, flight.",
		"Justice League is a team.",
		"Superman is a member of Justice League.",
	}
	got := DeriveFacts(ds)
	if len(got) != len(want) {
		t.Fatalf("DeriveFacts() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("facts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRelationshipFactWording(t *testing.T) {
	tests := []struct {
		rel  dataset.Relationship
		want string
	}{
		{dataset.Relationship{From: "Superman", To: "Batman", Type: "ALLY", Directed: true},
			"Superman is an ally of Batman."},
		{dataset.Relationship{From: "Superman", To: "Batman", Type: "TEAMMATE"},
			"Superman is a teammate of Batman."},
		{dataset.Relationship{From: "Superman", To: "Justice League", Type: "MEMBER_OF", Directed: true},
			"Superman is a member of Justice League."},
	}
	for _, tt := range tests {
		if got := relationshipFact(tt.rel); got != tt.want {
			t.Errorf("relationshipFact(%s) = %q, want %q", tt.rel.Type, got, tt.want)
		}
	}
}
