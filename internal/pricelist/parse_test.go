// internal/pricelist/parse_test.go
package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/models"
)

func standardSheet() *Table {
	return &Table{Rows: [][]string{
		{"Модель", "Страна", "Наличие", "Цена", "Кол-во"},
		{"📱 iPhone 17 Pro 256GB Cosmic Orange"},
		{"A3256", "🇺🇸 US eSim", "+", "95000", "2"},
		{"A3257", "CN", "+", "91 000", "1"},
		{"A3258", "JP", "+", "нет", ""},
		{"", "", "", "", ""},
		{"nan", "AE", "+", "90000"},
		{"🎧 AirPods Pro 3"},
		{"MFHP4", "🎧 USB-C", "+", "19000"},
	}}
}

func TestParseStandard(t *testing.T) {
	products, skipped, err := ParseStandard(standardSheet(), models.SourceStandard)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 2, skipped)

	first := products[0]
	assert.Equal(t, "iPhone 17 Pro", first.Category)
	assert.Equal(t, "iPhone 17 Pro 256GB Cosmic Orange", first.Name)
	assert.Equal(t, "256 Gb", first.Memory)
	assert.Equal(t, "Orange", first.Color)
	assert.Equal(t, "🇺🇸 US eSim", first.Country)
	assert.Equal(t, int64(95000), first.Price)
	assert.Equal(t, models.SourceStandard, first.Source)

	assert.Equal(t, "🇨🇳 CN", products[1].Country)
	assert.Equal(t, int64(91000), products[1].Price)

	airpods := products[2]
	assert.Equal(t, "AirPods", airpods.Category)
	assert.Equal(t, "AirPods Pro 3", airpods.Name)
	assert.Equal(t, "🎧 USB-C", airpods.Country)
}

func TestParseStandardWithoutHeaders(t *testing.T) {
	_, _, err := ParseStandard(&Table{Rows: [][]string{{"A1", "CN", "+", "100"}}}, models.SourceStandard)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, loadErr.Structural)
	assert.ErrorIs(t, err, ErrNoHeaders)
}

func TestStandardCountryAppendsSIM(t *testing.T) {
	assert.Equal(t, "🇯🇵 JP Sim + eSIM", standardCountry("JP sim + esim"))
	assert.Equal(t, "eSim", standardCountry("eSIM only"))
	assert.Equal(t, "", standardCountry(""))
}

func TestParseSimpleHonorHeader(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"HONOR", ""},
		{"Honor X8 256GB Black", "15000"},
	}}

	products, skipped, err := ParseSimple(table, models.SourceSimple)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, products, 1)
	assert.Equal(t, "Honor", products[0].Category)
	assert.Equal(t, "256 Gb", products[0].Memory)
	assert.Equal(t, "Black", products[0].Color)
}

func TestParseSimple(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"Samsung Galaxy S25 Ultra 12/256 Titanium Black 🇮🇳", "98000"},
		{"Dyson:", ""},
		{"Dyson V15 Detect", "52 000"},
		{"Apple iPhone 17 256GB:", ""},
		{"Apple iPhone 17 256GB Lavender 🇯🇵", "79000"},
		{"Pixel 10 Pro 256GB Obsidian 🇺🇸", "—"},
		{"Чехлы", ""},
		{"Чехол Nillkin", "900"},
	}}

	products, skipped, err := ParseSimple(table, models.SourcePreorder)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, products, 4)

	galaxy := products[0]
	assert.Equal(t, "Samsung Galaxy S25 Ultra", galaxy.Category)
	assert.Equal(t, "Samsung Galaxy S25 Ultra 12/256 Titanium Black", galaxy.Name)
	assert.Equal(t, "🇮🇳", galaxy.Country)
	assert.Equal(t, "256 Gb", galaxy.Memory)
	assert.Equal(t, models.SourcePreorder, galaxy.Source)

	assert.Equal(t, "Dyson", products[1].Category)
	assert.Equal(t, int64(52000), products[1].Price)

	iphone := products[2]
	assert.Equal(t, "iPhone 17", iphone.Category)
	assert.Equal(t, "Apple iPhone 17 256GB Lavender", iphone.Name)
	assert.Equal(t, "🇯🇵", iphone.Country)
	assert.Equal(t, "Lavender", iphone.Color)

	assert.Equal(t, "Чехлы", products[3].Category)
}

func TestParseSimpleTooFewColumns(t *testing.T) {
	_, _, err := ParseSimple(&Table{Rows: [][]string{{"only names"}}}, models.SourceSimple)
	assert.ErrorIs(t, err, ErrTooFewColumns)
}

func TestLooksLikeProduct(t *testing.T) {
	tests := map[string]bool{
		"Apple iPhone 17 256GB Black":    true,
		"Apple iPhone 17 256GB":          false,
		"iPhone 16 Pro eSim":             true,
		"Pixel 9 Sim + eSIM":             true,
		"Redmi Note 14 🇨🇳":               true,
		"Аксессуары":                     false,
		"Galaxy Watch 8 Silver":          false,
		"MacBook Air 13 M4 512GB SILVER": true,
	}

	for text, want := range tests {
		assert.Equal(t, want, looksLikeProduct(text), text)
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatStandard, DetectFormat(standardSheet()))
	assert.Equal(t, FormatSimple, DetectFormat(&Table{Rows: [][]string{
		{"HONOR"},
		{"Honor X8 256GB Black", "15000"},
		{"Honor 400 512GB Blue", "nan", "None"},
	}}))
	assert.Equal(t, FormatStandard, DetectFormat(&Table{}))
}

func TestDetectFormatCountsEmptyMiddleColumns(t *testing.T) {
	sparse := &Table{Rows: [][]string{
		{"📱 iPhone 16 128GB Black"},
		{"A1", "", "", "70000"},
		{"A2", "nan", "", "71000"},
	}}
	assert.Equal(t, FormatStandard, DetectFormat(sparse))
}

func TestTableCell(t *testing.T) {
	table := Table{Rows: [][]string{{" a ", "nan"}, {}}}
	assert.Equal(t, "a", table.Cell(0, 0))
	assert.Equal(t, "", table.Value(0, 1))
	assert.Equal(t, "", table.Cell(1, 3))
	assert.Equal(t, "", table.Cell(5, 0))
	assert.True(t, Blank("None"))
	assert.False(t, Blank("0"))
}
