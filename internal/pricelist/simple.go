// internal/pricelist/simple.go
package pricelist

import (
	"regexp"
	"sort"
	"strings"

	"github.com/phonemarket/backend/internal/catalog"
	"github.com/phonemarket/backend/internal/models"
)

var productColors = []string{
	"BLACK", "BLUE", "RED", "MIDNIGHT", "STARLIGHT", "PURPLE", "YELLOW", "GREEN",
	"PINK", "WHITE", "SILVER", "GOLD", "ORANGE", "LAVENDER", "SAGE",
}

// headerFlags is the subset of flags that marks a row as an offer rather than a section.
var headerFlags = catalog.SupportedFlags[:16]

var (
	sizePattern        = regexp.MustCompile(`\d+\s*(GB|TB)`)
	simPattern         = regexp.MustCompile(`\b(ESIM|SIM\s*\+\s*ESIM)\b`)
	sizeAndWordPattern = regexp.MustCompile(`\d+\s*(GB|TB)\s+[A-Z]+\s*$`)
)

// looksLikeProduct tells an offer row apart from an unpriced section title.
func looksLikeProduct(text string) bool {
	if text == "" {
		return false
	}
	for _, flag := range headerFlags {
		if strings.Contains(text, flag) {
			return true
		}
	}

	upper := strings.ToUpper(text)
	for _, color := range productColors {
		if strings.HasSuffix(upper, color) &&
			(sizePattern.MatchString(upper) || strings.Contains(upper, "SIM")) {
			return true
		}
	}

	return simPattern.MatchString(upper) || sizeAndWordPattern.MatchString(upper)
}

// headerRows maps the row index of every category header to its normalised name.
func headerRows(t *Table) map[int]string {
	headers := make(map[int]string)
	for r := range t.Rows {
		name := t.Value(r, 0)
		if name == "" {
			continue
		}
		_, hasPrice := catalog.ParsePrice(t.Value(r, 1))

		isHeader := strings.HasSuffix(name, ":") ||
			(!hasPrice && (catalog.IsBrandHeader(name) || !looksLikeProduct(name)))
		if !isHeader {
			continue
		}
		if category := catalog.NormalizeCategoryName(name); category != "" {
			headers[r] = category
		}
	}
	return headers
}

// nearestHeader returns the closest header strictly above row.
func nearestHeader(rows []int, headers map[int]string, row int) (string, bool) {
	i := sort.SearchInts(rows, row)
	if i == 0 {
		return "", false
	}
	return headers[rows[i-1]], true
}

func simpleCategory(name, header string, hasHeader bool) string {
	if !hasHeader {
		return catalog.Classify(name)
	}
	if refined := catalog.Classify(header); refined != catalog.Accessories {
		return refined
	}
	return header
}

// ParseSimple walks a two-column sheet of names and prices. Categories come from the
// nearest header row above each offer.
func ParseSimple(t *Table, source models.Source) ([]models.Product, int, error) {
	if t.Len() == 0 {
		return nil, 0, structural(source, ErrEmptySheet)
	}
	if t.width(t.Len()) < 2 {
		return nil, 0, structural(source, ErrTooFewColumns)
	}

	headers := headerRows(t)
	headerIdx := make([]int, 0, len(headers))
	for r := range headers {
		headerIdx = append(headerIdx, r)
	}
	sort.Ints(headerIdx)

	var (
		products []models.Product
		skipped  int
	)

	for r := range t.Rows {
		name := t.Value(r, 0)
		if name == "" {
			continue
		}

		price, ok := catalog.ParsePrice(t.Value(r, 1))
		if !ok {
			if _, isHeader := headers[r]; !isHeader {
				skipped++
			}
			continue
		}

		header, hasHeader := nearestHeader(headerIdx, headers, r)
		p := models.Product{
			Category: simpleCategory(name, header, hasHeader),
			Name:     catalog.StripFlags(name),
			Price:    price,
			Source:   source,
		}
		p.Memory, _ = catalog.ExtractMemory(name)
		p.Color, _ = catalog.ExtractColor(name)
		p.Country, _ = catalog.ExtractCountryFlag(name)
		products = append(products, p)
	}

	return products, skipped, nil
}
