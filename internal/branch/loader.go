package branch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Master file column headers.
const (
	ColumnInsurer = "Insurer"
	ColumnAddress = "Address"
	ColumnCode    = "BranchAutoCode"
)

var errMissingColumn = errors.New("branch master is missing a required column")

// LoadFile reads a branch master from a .xlsx workbook (first sheet) or a CSV file.
func LoadFile(path string) (*Index, error) {
	var (
		entries []Entry
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		entries, err = readXLSX(path)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("branch.LoadFile: %w", err)
		}
		defer func() { _ = f.Close() }()
		entries, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("branch.LoadFile %s: %w", path, err)
	}
	return NewIndex(entries), nil
}

// ReadCSV parses master entries from CSV with a header row naming the Insurer, Address and
// BranchAutoCode columns in any order. Extra columns are ignored.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return entriesFromRows(records)
}

func readXLSX(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return entriesFromRows(rows)
}

func entriesFromRows(rows [][]string) ([]Entry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{ColumnInsurer, ColumnAddress, ColumnCode} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, name)
		}
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		insurer := cellVal(row, cols[ColumnInsurer])
		if strings.TrimSpace(insurer) == "" {
			continue
		}
		entries = append(entries, Entry{
			Insurer: insurer,
			Address: cellVal(row, cols[ColumnAddress]),
			Code:    cellVal(row, cols[ColumnCode]),
		})
	}
	return entries, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
