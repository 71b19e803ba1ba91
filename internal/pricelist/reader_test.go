// internal/pricelist/reader_test.go
package pricelist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"HONOR"},
		{"Honor X8 256GB Black", 15000},
	})

	table, err := Open("prices.xlsx", data, CharsetUTF8)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "HONOR", table.Cell(0, 0))
	assert.Equal(t, "15000", table.Cell(1, 1))
	assert.Equal(t, FormatSimple, DetectFormat(table))
}

func TestReadCSVWindows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Чехлы;\nЧехол Nillkin;900\n")
	require.NoError(t, err)

	table, err := ReadCSV(bytes.NewReader([]byte(encoded)), CharsetWindows1251)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Чехлы", table.Cell(0, 0))
	assert.Equal(t, "900", table.Cell(1, 1))
}

func TestReadCSVStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,price\nPixel 9,50000\n")...)

	table, err := Open("prices.csv", data, CharsetUTF8)
	require.NoError(t, err)
	assert.Equal(t, "name", table.Cell(0, 0))
	assert.Equal(t, "50000", table.Cell(1, 1))
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open("prices.pdf", []byte("%PDF"), CharsetUTF8)
	assert.Error(t, err)

	_, err = ReadCSV(bytes.NewReader([]byte("a,b")), "koi8-r")
	assert.Error(t, err)
}
