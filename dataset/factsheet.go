package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Fact sheets are supplemental free-text files whose statements are appended
// to the flat retrieval corpus alongside the facts derived from the dataset.
// Plain text and markdown files contribute one fact per non-empty line; PDFs
// contribute one fact per extracted paragraph.

// Load reads a dataset file, dispatching on extension. Supported: .yaml,
// .yml, .xlsx.
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFactSheets reads all given fact-sheet files and returns their
// statements in file order. Supported: .txt, .md, .pdf.
func LoadFactSheets(paths ...string) ([]string, error) {
	var facts []string
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			lines, err := textFacts(path)
			if err != nil {
				return nil, err
			}
			facts = append(facts, lines...)
		case ".pdf":
			paras, err := pdfFacts(path)
			if err != nil {
				return nil, err
			}
			facts = append(facts, paras...)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
	}
	return facts, nil
}

func textFacts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fact sheet: %w", err)
	}
	var facts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			facts = append(facts, line)
		}
	}
	return facts, nil
}

func pdfFacts(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fact sheet PDF: %w", err)
	}
	defer f.Close()

	var facts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip pages that fail to extract
		}
		for _, para := range strings.Split(text, "\n\n") {
			para = strings.Join(strings.Fields(para), " ")
			if para != "" {
				facts = append(facts, para)
			}
		}
	}
	return facts, nil
}
