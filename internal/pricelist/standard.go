// internal/pricelist/standard.go
package pricelist

import (
	"strings"

	"github.com/phonemarket/backend/internal/catalog"
	"github.com/phonemarket/backend/internal/models"
)

// Column positions of a standard-layout data row.
const (
	colModel = iota
	colCountry
	colStock
	colPrice
	colQuantity
)

func isProductHeader(cell string) bool {
	for _, e := range catalog.CategoryEmoji {
		if strings.Contains(cell, e) {
			return true
		}
	}
	return false
}

// ParseStandard walks a standard-layout sheet. Emoji header rows name the product;
// the data rows beneath them carry one offer each.
func ParseStandard(t *Table, source models.Source) ([]models.Product, int, error) {
	if t.Len() == 0 {
		return nil, 0, structural(source, ErrEmptySheet)
	}

	var (
		products []models.Product
		skipped  int
		header   string
		category string
		sawHead  bool
	)

	for r := range t.Rows {
		first := t.Value(r, colModel)
		if isProductHeader(first) {
			header = first
			category = catalog.Classify(first)
			sawHead = true
			continue
		}
		if !sawHead || rowIsBlank(t, r) {
			continue
		}

		if first == "" {
			skipped++
			continue
		}
		price, ok := catalog.ParsePrice(t.Value(r, colPrice))
		if !ok {
			skipped++
			continue
		}

		p := models.Product{
			Category: category,
			Name:     catalog.StripEmoji(header),
			Country:  standardCountry(t.Value(r, colCountry)),
			Price:    price,
			Source:   source,
		}
		p.Memory, _ = catalog.ExtractMemory(header)
		p.Color, _ = catalog.ExtractColor(header)
		products = append(products, p)
	}

	if !sawHead {
		return nil, 0, structural(source, ErrNoHeaders)
	}
	return products, skipped, nil
}

// standardCountry normalises the country cell and keeps any SIM annotation it carries.
func standardCountry(cell string) string {
	country, _ := catalog.ParseCountry(cell)
	sim, ok := catalog.ExtractSIMType(cell)
	if !ok || strings.Contains(strings.ToLower(country), strings.ToLower(sim)) {
		return country
	}
	if country == "" {
		return sim
	}
	return country + " " + sim
}

func rowIsBlank(t *Table, r int) bool {
	for c := range t.Rows[r] {
		if !Blank(t.Rows[r][c]) {
			return false
		}
	}
	return true
}
