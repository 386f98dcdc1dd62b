package feed

import (
	"encoding/csv"
	"io"
	"strings"
)

// HeaderMode controls whether the first CSV row is treated as column names.
type HeaderMode int

const (
	// HeaderAuto inspects the first row: a row containing a URL-shaped or
	// price-shaped cell cannot be a header and the file is treated as headerless.
	HeaderAuto HeaderMode = iota
	HeaderPresent
	HeaderAbsent
)

// RawRow is one parsed CSV data row before normalization. Cells are always
// positional; Fields is populated only when a header row was resolved.
// RawRows do not leak past the normalizer.
type RawRow struct {
	Cells  []string
	Fields map[string]string
}

// Field looks up a cell by normalized header name. Returns "" for headerless
// rows or unknown columns.
func (r RawRow) Field(key string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[normalizeHeader(key)]
}

// Parse converts raw CSV text into data rows. It is deliberately lenient:
// real-world exports are dirty, so malformed quoting flushes whatever was
// accumulated instead of failing, and rows whose every cell is blank are
// dropped. Comma is the only supported delimiter.
func Parse(text string, mode HeaderMode) []RawRow {
	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Best-effort: keep whatever the reader managed to assemble.
			if len(record) > 0 {
				records = append(records, record)
			}
			continue
		}
		if isBlankRecord(record) {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil
	}

	var headers []string
	if hasHeader(records[0], mode) {
		headers = make([]string, len(records[0]))
		for i, h := range records[0] {
			headers[i] = normalizeHeader(h)
		}
		records = records[1:]
	}

	rows := make([]RawRow, 0, len(records))
	for _, record := range records {
		row := RawRow{Cells: record}
		if headers != nil {
			row.Fields = make(map[string]string, len(headers))
			for i, h := range headers {
				if h == "" {
					continue
				}
				if i < len(record) {
					row.Fields[h] = record[i]
				} else {
					row.Fields[h] = ""
				}
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// hasHeader decides whether the first record is a header row.
func hasHeader(first []string, mode HeaderMode) bool {
	switch mode {
	case HeaderPresent:
		return true
	case HeaderAbsent:
		return false
	}

	// Headers are column names, never URLs or prices.
	for _, cell := range first {
		cell = strings.TrimSpace(cell)
		if looksLikeURL(cell) || looksLikePrice(cell) {
			return false
		}
	}
	return true
}

// normalizeHeader canonicalizes a raw header for alias lookup.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return multipleSpacesRegex.ReplaceAllString(h, " ")
}

// isBlankRecord reports whether every cell is empty or whitespace.
func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
