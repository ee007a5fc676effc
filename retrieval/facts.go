package retrieval

import (
	"fmt"
	"strings"

	"github.com/brunobiangulo/ragduel/dataset"
)

// DeriveFacts flattens the reference graph into textual statements for the
// flat retriever: one fact per entity type tag, one per attribute, one per
// relationship, all in dataset load order so the corpus (and therefore
// ranking tie-breaks) is deterministic.
func DeriveFacts(d *dataset.Dataset) []string {
	var facts []string
	for _, e := range d.Entities {
		if e.Type != "" {
			facts = append(facts, fmt.Sprintf("%s is %s.", e.Name, withArticle(strings.ToLower(e.Type))))
		}
		for _, a := range e.Attrs {
			key := strings.ReplaceAll(a.Key, "_", " ")
			if a.IsList() {
				facts = append(facts, fmt.Sprintf("%s's %s include %s.", e.Name, key, strings.Join(a.Values, ", ")))
			} else {
				facts = append(facts, fmt.Sprintf("%s's %s is %s.", e.Name, key, a.Value))
			}
		}
	}
	for _, r := range d.Relationships {
		facts = append(facts, relationshipFact(r))
	}
	return facts
}

// relationshipFact renders a relationship as prose, e.g.
// ALLY       -> "Superman is an ally of Batman."
// MEMBER_OF  -> "Superman is a member of Justice League."
// TEAMMATE   -> "Superman is a teammate of Batman."
func relationshipFact(r dataset.Relationship) string {
	noun := strings.ToLower(strings.ReplaceAll(r.Type, "_", " "))
	noun = strings.TrimSuffix(noun, " of")
	return fmt.Sprintf("%s is %s of %s.", r.From, withArticle(noun), r.To)
}

func withArticle(noun string) string {
	if noun == "" {
		return noun
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}
