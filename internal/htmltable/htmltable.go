// Package htmltable extracts loosely-structured records from HTML tables.
//
// Vendor support pages publish their processor tables with no fixed schema:
// column sets differ per vendor and per page revision, header rows may be
// missing or repeated, and data rows may be wider than their header. The
// extractor therefore discovers column titles at parse time and produces
// insertion-ordered records rather than a fixed struct.
package htmltable

// Cell is a single table cell. IsHeader distinguishes <th> from <td>.
type Cell struct {
	IsHeader bool
	Text     string
}

// Row is an ordered sequence of cells.
type Row []Cell

// Table is an ordered sequence of rows, in document order.
type Table []Row
