package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one actionable CSV line: a username and the security profile to
// assign. Line is the 1-based position in the file, counting a header row.
type Row struct {
	Line              int
	Username          string
	SecurityProfileID string
}

// SkipError marks a row that is excluded from processing: too few columns or
// empty username/profile fields after trimming. Skipped rows are logged as
// warnings and count toward neither successes nor failures.
type SkipError struct {
	Line   int
	Reason string
	Fields []string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Line, e.Reason, e.Fields)
}

var headerAliases = map[string]bool{
	"user_id":  true,
	"userid":   true,
	"username": true,
}

// Reader yields rows from a CSV stream in file order, single pass.
// An optional header row is detected on the first record only and consumed.
type Reader struct {
	cr      *csv.Reader
	line    int
	records int
	first   bool
}

// NewReader wraps r. The CSV may have ragged rows; extra columns beyond the
// first two are ignored.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{cr: cr, first: true}
}

// Records reports how many raw records have been read, including a detected
// header. Zero after io.EOF means the file was empty.
func (r *Reader) Records() int { return r.records }

// Next returns the next data row. It returns a *SkipError for rows that must
// be skipped, and io.EOF at end of input.
func (r *Reader) Next() (Row, error) {
	for {
		rec, err := r.cr.Read()
		if err != nil {
			return Row{}, err
		}
		r.line++
		r.records++

		if r.first {
			r.first = false
			if len(rec) > 1 && headerAliases[strings.ToLower(rec[0])] {
				continue
			}
		}
		if len(rec) < 2 {
			return Row{}, &SkipError{Line: r.line, Reason: "insufficient columns", Fields: rec}
		}
		username := strings.TrimSpace(rec[0])
		profileID := strings.TrimSpace(rec[1])
		if username == "" || profileID == "" {
			return Row{}, &SkipError{Line: r.line, Reason: "empty values", Fields: rec}
		}
		return Row{Line: r.line, Username: username, SecurityProfileID: profileID}, nil
	}
}
