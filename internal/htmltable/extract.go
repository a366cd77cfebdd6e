package htmltable

import (
	"fmt"
	"strings"
)

// syntheticOverallocation is added to the cell count when synthesizing
// placeholder titles for a table with no header row. Vendor pages sometimes
// publish header rows one or two columns short of their widest data row;
// overallocating keeps later, wider rows fully mapped.
const syntheticOverallocation = 2

// Extract converts the table at index into a sequence of records, one per
// data row, in document order. It returns an error if index is out of range.
//
// A row whose first cell is a header replaces the current column-title list
// (titles may repeat later in the document and always overwrite the previous
// list) and emits nothing. If a data row arrives before any header row,
// placeholder titles "P1".."Pn" are synthesized with n = cell count + 2.
// Data-row cells pair positionally with titles; positions with an empty or
// missing title are skipped, and cell text is trimmed.
func Extract(tables []Table, index int) ([]Record, error) {
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("table index %d out of range (document has %d tables)", index, len(tables))
	}

	var titles []string
	titlesSet := false

	var records []Record
	for _, row := range tables[index] {
		if len(row) == 0 {
			continue
		}

		if row[0].IsHeader {
			titles = titles[:0]
			for _, cell := range row {
				titles = append(titles, strings.TrimSpace(cell.Text))
			}
			titlesSet = true
			continue
		}

		if !titlesSet {
			titles = syntheticTitles(len(row) + syntheticOverallocation)
			titlesSet = true
		}

		rec := NewRecord()
		for i, cell := range row {
			if i >= len(titles) || titles[i] == "" {
				continue
			}
			rec.Set(titles[i], strings.TrimSpace(cell.Text))
		}
		records = append(records, *rec)
	}

	return records, nil
}

// syntheticTitles returns placeholder column titles "P1".."Pn".
func syntheticTitles(n int) []string {
	titles := make([]string, n)
	for i := range titles {
		titles[i] = fmt.Sprintf("P%d", i+1)
	}
	return titles
}
