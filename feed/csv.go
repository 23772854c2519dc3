package feed

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"
)

func init() {
	// LazyQuotes is required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(bom.NewReader(in))
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		r.FieldsPerRecord = -1
		return &tolerantReader{r: r}
	})
}

// Wraps a csv.Reader and silently drops data rows whose field count
// doesn't match the header's. Feeds routinely contain a handful of
// truncated or overlong rows, and losing those beats rejecting the
// whole table. Embedded newlines inside quoted fields are not
// supported: the line they split lands here as two short rows, and
// both get dropped.
type tolerantReader struct {
	r      *csv.Reader
	fields int
}

func (t *tolerantReader) Read() ([]string, error) {
	for {
		rec, err := t.r.Read()
		if err != nil {
			return rec, err
		}
		if t.fields == 0 {
			// Header row sets the expected field count.
			t.fields = len(rec)
			return rec, nil
		}
		if len(rec) == t.fields {
			return rec, nil
		}
	}
}

func (t *tolerantReader) ReadAll() ([][]string, error) {
	records := [][]string{}
	for {
		rec, err := t.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Splits off a table's header line, verifies it carries all required
// columns, and returns a reader replaying the full table. gocsv
// leaves fields of unknown columns zero-valued, which would quietly
// turn a renamed column into a table of blanks.
func checkHeader(data io.Reader, table string, columns ...string) (io.Reader, error) {
	br := bufio.NewReader(bom.NewReader(data))

	var line string
	for {
		var err error
		line, err = br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%s: reading header: %w", table, err)
		}
		if strings.TrimSpace(line) != "" {
			break
		}
		if err == io.EOF {
			return nil, fmt.Errorf("%s: empty table", table)
		}
	}

	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: parsing header: %w", table, err)
	}

	present := map[string]bool{}
	for _, name := range header {
		present[strings.TrimSpace(name)] = true
	}
	for _, c := range columns {
		if !present[c] {
			return nil, fmt.Errorf("%s: missing column %s", table, c)
		}
	}

	return io.MultiReader(strings.NewReader(line), br), nil
}
