package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSX workbook layout for operator-edited datasets:
//
//   - "Entities" sheet: header row "name | type | <attr> | <attr> ...";
//     attribute cells containing ";" are split into list values.
//   - "Relationships" sheet: header row "from | type | to | directed".
//
// Empty cells mean the attribute is absent for that entity.
const (
	sheetEntities      = "Entities"
	sheetRelationships = "Relationships"
)

// LoadXLSX reads and validates a dataset from an Excel workbook.
func LoadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset workbook: %w", err)
	}
	defer f.Close()

	d := &Dataset{}

	rows, err := f.GetRows(sheetEntities)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", sheetEntities, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s sheet has no header row", sheetEntities)
	}
	header := rows[0]
	if len(header) < 2 || !strings.EqualFold(header[0], "name") || !strings.EqualFold(header[1], "type") {
		return nil, fmt.Errorf("%s sheet must start with name, type columns", sheetEntities)
	}
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		e := Entity{Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			e.Type = strings.TrimSpace(row[1])
		}
		for col := 2; col < len(row) && col < len(header); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			key := strings.TrimSpace(header[col])
			if strings.Contains(cell, ";") {
				parts := strings.Split(cell, ";")
				values := make([]string, 0, len(parts))
				for _, p := range parts {
					if p = strings.TrimSpace(p); p != "" {
						values = append(values, p)
					}
				}
				e.Attrs = append(e.Attrs, Attribute{Key: key, Values: values})
			} else {
				e.Attrs = append(e.Attrs, Attribute{Key: key, Value: cell})
			}
		}
		d.Entities = append(d.Entities, e)
	}

	relRows, err := f.GetRows(sheetRelationships)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", sheetRelationships, err)
	}
	for i, row := range relRows {
		if i == 0 || len(row) < 3 {
			continue // header or incomplete row
		}
		r := Relationship{
			From: strings.TrimSpace(row[0]),
			Type: strings.TrimSpace(row[1]),
			To:   strings.TrimSpace(row[2]),
		}
		if r.From == "" || r.To == "" {
			continue
		}
		if len(row) > 3 {
			r.Directed = strings.EqualFold(strings.TrimSpace(row[3]), "true")
		}
		d.Relationships = append(d.Relationships, r)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
