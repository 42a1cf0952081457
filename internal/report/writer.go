package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Sheet1"

// Format is a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor selects the format from a file name: .xlsx writes a workbook, anything else CSV.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Writer writes a header row followed by data rows in one format.
type Writer interface {
	WriteHeader(headers []string) error
	WriteRow(row []string) error
	// Close flushes buffered output. It does not close the destination.
	Close() error
}

// NewWriter creates a Writer for format f on w.
func NewWriter(w io.Writer, f Format) Writer {
	if f == FormatXLSX {
		return newXLSXWriter(w)
	}
	return newCSVWriter(w)
}

// WriteFile writes headers and rows to path, creating parent directories as needed.
func WriteFile(path string, headers []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report.WriteFile: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report.WriteFile: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, FormatFor(path), headers, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("report.WriteFile %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("report.WriteFile %s: %w", path, err)
	}
	return f.Close()
}

// Write renders headers and rows in format f.
func Write(w io.Writer, f Format, headers []string, rows [][]string) error {
	rw := NewWriter(w, f)
	if err := rw.WriteHeader(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := rw.WriteRow(row); err != nil {
			return err
		}
	}
	return rw.Close()
}

// csvWriter wraps csv.Writer and prefixes the output with a BOM.
type csvWriter struct {
	dst      io.Writer
	csv      *csv.Writer
	wroteBOM bool
}

func newCSVWriter(w io.Writer) *csvWriter {
	return &csvWriter{dst: w, csv: csv.NewWriter(w)}
}

func (w *csvWriter) WriteHeader(headers []string) error {
	if !w.wroteBOM {
		if _, err := w.dst.Write(BOM); err != nil {
			return err
		}
		w.wroteBOM = true
	}
	return w.csv.Write(headers)
}

func (w *csvWriter) WriteRow(row []string) error {
	return w.csv.Write(row)
}

func (w *csvWriter) Close() error {
	w.csv.Flush()
	return w.csv.Error()
}

// xlsxWriter streams rows into a single-sheet workbook and writes it on Close.
type xlsxWriter struct {
	dst  io.Writer
	file *excelize.File
	sw   *excelize.StreamWriter
	row  int
	err  error
}

func newXLSXWriter(w io.Writer) *xlsxWriter {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(sheetName)
	return &xlsxWriter{dst: w, file: f, sw: sw, err: err}
}

func (w *xlsxWriter) WriteHeader(headers []string) error {
	return w.WriteRow(headers)
}

func (w *xlsxWriter) WriteRow(row []string) error {
	if w.err != nil {
		return w.err
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return w.sw.SetRow(cell, values)
}

func (w *xlsxWriter) Close() error {
	defer w.file.Close()
	if w.err != nil {
		return w.err
	}
	if err := w.sw.Flush(); err != nil {
		return err
	}
	_, err := w.file.WriteTo(w.dst)
	return err
}
