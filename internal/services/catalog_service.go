// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/phonemarket/backend/internal/catalog"
	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

type CatalogService struct {
	store    repository.Store
	resolver *markup.Resolver
}

// DisplayRecord is a product as shown to one user, with markup applied.
type DisplayRecord struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	Memory         string        `json:"memory,omitempty"`
	Color          string        `json:"color,omitempty"`
	Country        string        `json:"country,omitempty"`
	Source         models.Source `json:"source"`
	EffectivePrice int64         `json:"effective_price"`
}

// ProductGroup holds the variants of one model, cheapest first.
type ProductGroup struct {
	Model    string          `json:"model"`
	Products []DisplayRecord `json:"products"`
}

type ClassifyRequest struct {
	Name string `json:"name" validate:"required,max=500"`
}

type ClassifyResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Parent   string `json:"parent"`
	Memory   string `json:"memory,omitempty"`
	Color    string `json:"color,omitempty"`
	Country  string `json:"country,omitempty"`
}

func NewCatalogService(store repository.Store, resolver *markup.Resolver) *CatalogService {
	return &CatalogService{store: store, resolver: resolver}
}

// Tree builds the navigation tree of a source from the categories currently stored.
func (s *CatalogService) Tree(ctx context.Context, source models.Source) (*catalog.Tree, error) {
	categories, err := s.store.ListDistinctCategories(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	tree := catalog.BuildTree(categories)
	return &tree, nil
}

// Categories returns the leaves under one parent, or nil when the parent is empty.
func (s *CatalogService) Categories(ctx context.Context, source models.Source, parent string) ([]string, error) {
	tree, err := s.Tree(ctx, source)
	if err != nil {
		return nil, err
	}
	return tree.Children[parent], nil
}

func (s *CatalogService) Products(ctx context.Context, source models.Source, category string, userID int64) ([]DisplayRecord, error) {
	products, err := s.store.ListProducts(ctx, source, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		return []DisplayRecord{}, nil
	}

	quote := s.resolver.QuoteOrDefault(ctx, userID, source.IsPreorder())
	records := make([]DisplayRecord, 0, len(products))
	for _, p := range products {
		records = append(records, toDisplayRecord(p, s.resolver.Apply(p.Price, quote)))
	}
	return records, nil
}

// Groups lists a category grouped by base model. Groups appear in the order of their
// cheapest base price; each group is sorted by effective price.
func (s *CatalogService) Groups(ctx context.Context, source models.Source, category string, userID int64) ([]ProductGroup, error) {
	records, err := s.Products(ctx, source, category, userID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := []ProductGroup{}
	for _, r := range records {
		model := catalog.BaseModel(catalog.StripFlags(r.Name))
		if model == "" {
			model = r.Name
		}
		i, ok := index[strings.ToLower(model)]
		if !ok {
			i = len(groups)
			index[strings.ToLower(model)] = i
			groups = append(groups, ProductGroup{Model: model})
		}
		groups[i].Products = append(groups[i].Products, r)
	}

	for _, g := range groups {
		sort.SliceStable(g.Products, func(a, b int) bool {
			return g.Products[a].EffectivePrice < g.Products[b].EffectivePrice
		})
	}
	return groups, nil
}

// Classify runs the extractors and the classifier over a single product name.
func (s *CatalogService) Classify(name string) ClassifyResult {
	category := catalog.Classify(name)
	result := ClassifyResult{
		Name:     catalog.StripFlags(name),
		Category: category,
		Parent:   catalog.Parent(category),
	}
	result.Memory, _ = catalog.ExtractMemory(name)
	result.Color, _ = catalog.ExtractColor(name)
	result.Country, _ = catalog.ExtractCountryFlag(name)
	return result
}

func toDisplayRecord(p models.Product, price int64) DisplayRecord {
	return DisplayRecord{
		ID:             p.ID,
		Name:           p.Name,
		Memory:         p.Memory,
		Color:          p.Color,
		Country:        p.Country,
		Source:         p.Source,
		EffectivePrice: price,
	}
}
