package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// CSVParser handles CSV files. Data rows are grouped in batches, each under
// its own level-2 heading so every batch becomes one section.
type CSVParser struct{}

// csvBatchSize is the number of data rows per section.
const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := Stem(filename)
	doc := &doctree.Document{Title: title}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var text strings.Builder
	text.WriteString(headingLine(1, title) + "\n\n")
	text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n")

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		// 1-indexed, skip header
		text.WriteString("\n" + headingLine(2, fmt.Sprintf("Rows %d-%d", i+2, end+1)) + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
	}

	doc.Text = text.String()
	return doc, nil
}
