// internal/pricelist/reader.go
package pricelist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1251 = "windows-1251"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadXLSX reads the first worksheet of an Excel workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return &Table{Rows: rows}, nil
}

// ReadCSV reads a delimited export. The delimiter is sniffed from the first line;
// charset is CharsetUTF8 or CharsetWindows1251.
func ReadCSV(r io.Reader, charset string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var src io.Reader
	switch strings.ToLower(charset) {
	case "", CharsetUTF8, "utf8":
		src = bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))
	case CharsetWindows1251, "cp1251":
		src = transform.NewReader(bytes.NewReader(data), charmap.Windows1251.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	reader := csv.NewReader(src)
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	return &Table{Rows: rows}, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	if bytes.Count(line, []byte{'\t'}) > bytes.Count(line, []byte{','}) {
		return '\t'
	}
	return ','
}

// Open reads an uploaded price list, choosing the reader by file extension.
func Open(name string, data []byte, csvCharset string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(bytes.NewReader(data))
	case ".csv", ".txt":
		return ReadCSV(bytes.NewReader(data), csvCharset)
	default:
		return nil, fmt.Errorf("unsupported price list format %q", filepath.Ext(name))
	}
}
