// internal/pricelist/detect.go
package pricelist

// Format is a price-list layout.
type Format string

const (
	// FormatStandard has emoji product headers followed by positional data rows.
	FormatStandard Format = "standard"
	// FormatSimple has two columns, name and price, with category header rows.
	FormatSimple Format = "simple"
)

const detectSampleRows = 10

// DetectFormat samples the top of the sheet: a sheet exactly two columns wide is the
// simple layout, anything else is treated as standard.
func DetectFormat(t *Table) Format {
	if t.width(detectSampleRows) == 2 {
		return FormatSimple
	}
	return FormatStandard
}
