package skillmap

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseCSV reads the "identifier,name" table. The first row is a header and is
// discarded. Fields are split on every comma with no quoting support, so a
// name containing a comma is truncated at it; rows with fewer than two fields
// are skipped.
func ParseCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read skill map: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	entries := make(map[string]string, len(lines))
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		addEntry(entries, fields)
	}

	return Table{byName: entries}, nil
}

// ParseXLSX reads the same two-column layout from the first sheet of a
// workbook.
func ParseXLSX(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read skill map workbook: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open skill map workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("skill map workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read skill map rows: %w", err)
	}

	entries := make(map[string]string, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		addEntry(entries, row)
	}

	return Table{byName: entries}, nil
}

func addEntry(entries map[string]string, fields []string) {
	if len(fields) < 2 {
		return
	}
	id := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[1])
	if name == "" {
		return
	}
	entries[name] = id
}
