package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, entities, relationships [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetEntities); err != nil {
		t.Fatal(err)
	}
	for i, row := range entities {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetEntities, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.NewSheet(sheetRelationships); err != nil {
		t.Fatal(err)
	}
	for i, row := range relationships {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetRelationships, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "heroes.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t,
		[][]any{
			{"name", "type", "real_name", "powers"},
			{"Superman", "Hero", "Clark Kent", "super strength; flight"},
			{"Batman", "Hero", "Bruce Wayne", ""},
		},
		[][]any{
			{"from", "type", "to", "directed"},
			{"Superman", "ALLY", "Batman", "true"},
			{"Superman", "TEAMMATE", "Batman", ""},
		})

	ds, err := LoadXLSX(path)
	if err != nil {
		t.Fatalf("LoadXLSX() error: %v", err)
	}
	if len(ds.Entities) != 2 {
		t.Fatalf("len(Entities) = %d, want 2", len(ds.Entities))
	}

	superman := ds.Entities[0]
	if superman.Name != "Superman" || superman.Type != "Hero" {
		t.Errorf("entity 0 = %q (%s)", superman.Name, superman.Type)
	}
	if got := superman.Attr("real_name"); got != "Clark Kent" {
		t.Errorf("real_name = %q", got)
	}
	// ";" cells become list attributes.
	if len(superman.Attrs) != 2 || !superman.Attrs[1].IsList() {
		t.Fatalf("powers should be a list attribute, attrs = %+v", superman.Attrs)
	}
	if got := superman.Attrs[1].String(); got != "super strength, flight" {
		t.Errorf("powers = %q", got)
	}
	// Batman's empty powers cell means the attribute is absent.
	if len(ds.Entities[1].Attrs) != 1 {
		t.Errorf("batman attrs = %+v, want only real_name", ds.Entities[1].Attrs)
	}

	if len(ds.Relationships) != 2 {
		t.Fatalf("len(Relationships) = %d, want 2", len(ds.Relationships))
	}
	if !ds.Relationships[0].Directed || ds.Relationships[1].Directed {
		t.Errorf("directed flags = %v, %v, want true, false",
			ds.Relationships[0].Directed, ds.Relationships[1].Directed)
	}
}

func TestLoadXLSXBadHeader(t *testing.T) {
	path := writeWorkbook(t,
		[][]any{{"id", "kind"}},
		[][]any{{"from", "type", "to"}})
	if _, err := LoadXLSX(path); err == nil {
		t.Error("LoadXLSX() with wrong header should fail")
	}
}
