package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"policyparser/internal/report"
)

func TestFormatFor(t *testing.T) {
	assert.Equal(t, report.FormatXLSX, report.FormatFor("out/report.XLSX"))
	assert.Equal(t, report.FormatCSV, report.FormatFor("out/report.csv"))
	assert.Equal(t, report.FormatCSV, report.FormatFor("report"))
	assert.Equal(t, "text/csv", report.FormatCSV.ContentType())
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, report.FormatCSV, []string{"file", "reason"}, [][]string{{"a.pdf", "x, y"}})
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(buf.Bytes(), report.BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(report.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"file", "reason"}, {"a.pdf", "x, y"}}, rows)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, report.FormatXLSX, []string{"Sno", "CustName"}, [][]string{{"1", "ALICE"}, {"2", "BOB"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Sno", "CustName"}, {"1", "ALICE"}, {"2", "BOB"}}, rows)
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "errors.csv")

	require.NoError(t, report.WriteFile(path, report.ErrorHeaders, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(report.BOM)+"file,reason,remarks\n", string(data))
}
