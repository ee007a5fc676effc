package dataset

// Builtin returns the superhero demo graph: four heroes, one team, and their
// alliance/membership relationships. It lets the engine run with no dataset
// file at all, which keeps the comparison demo a single-binary affair.
func Builtin() *Dataset {
	return &Dataset{
		Entities: []Entity{
			{
				Name: "Superman",
				Type: "Hero",
				Attrs: []Attribute{
					{Key: "real_name", Value: "Clark Kent"},
					{Key: "powers", Values: []string{"super strength", "flight", "invulnerability", "heat vision"}},
					{Key: "origin", Value: "Krypton"},
					{Key: "team", Value: "Justice League"},
				},
			},
			{
				Name: "Batman",
				Type: "Hero",
				Attrs: []Attribute{
					{Key: "real_name", Value: "Bruce Wayne"},
					{Key: "powers", Values: []string{"intelligence", "martial arts", "technology"}},
					{Key: "origin", Value: "Gotham City"},
					{Key: "team", Value: "Justice League"},
				},
			},
			{
				Name: "Wonder Woman",
				Type: "Hero",
				Attrs: []Attribute{
					{Key: "real_name", Value: "Diana Prince"},
					{Key: "powers", Values: []string{"super strength", "lasso of truth", "combat skills"}},
					{Key: "origin", Value: "Themyscira"},
					{Key: "team", Value: "Justice League"},
				},
			},
			{
				Name: "Flash",
				Type: "Hero",
				Attrs: []Attribute{
					{Key: "real_name", Value: "Barry Allen"},
					{Key: "powers", Values: []string{"super speed", "time travel"}},
					{Key: "origin", Value: "Central City"},
					{Key: "team", Value: "Justice League"},
				},
			},
			{
				Name: "Justice League",
				Type: "Team",
				Attrs: []Attribute{
					{Key: "type", Value: "superhero team"},
					{Key: "founded", Value: "1960"},
				},
			},
		},
		Relationships: []Relationship{
			{From: "Superman", To: "Batman", Type: "TEAMMATE"},
			{From: "Superman", To: "Wonder Woman", Type: "TEAMMATE"},
			{From: "Superman", To: "Flash", Type: "TEAMMATE"},
			{From: "Batman", To: "Wonder Woman", Type: "TEAMMATE"},
			{From: "Batman", To: "Flash", Type: "TEAMMATE"},
			{From: "Wonder Woman", To: "Flash", Type: "TEAMMATE"},
			{From: "Superman", To: "Batman", Type: "ALLY", Directed: true},
			{From: "Superman", To: "Wonder Woman", Type: "ALLY", Directed: true},
			{From: "Superman", To: "Flash", Type: "ALLY", Directed: true},
			{From: "Superman", To: "Justice League", Type: "MEMBER_OF", Directed: true},
			{From: "Batman", To: "Justice League", Type: "MEMBER_OF", Directed: true},
			{From: "Wonder Woman", To: "Justice League", Type: "MEMBER_OF", Directed: true},
			{From: "Flash", To: "Justice League", Type: "MEMBER_OF", Directed: true},
		},
	}
}
