// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/pricelist"
	"github.com/phonemarket/backend/internal/repository"
)

const (
	topCategoriesLimit = 5
	downloadURLTTL     = time.Hour
)

type AdminService struct {
	db      *gorm.DB
	loader  *pricelist.Loader
	archive *ArchiveService
	config  *config.Config
}

type UploadResult struct {
	*pricelist.Result
	Archive     *ArchiveResult `json:"archive"`
	DownloadURL string         `json:"download_url,omitempty"`
}

type ClearResult struct {
	Deleted   map[models.Source]int64 `json:"deleted"`
	CartItems int64                   `json:"cart_items"`
}

type CatalogStats struct {
	Products      map[models.Source]int64 `json:"products"`
	TotalProducts int64                   `json:"total_products"`
	Categories    map[models.Source]int   `json:"categories"`
	TopCategories []models.CategoryCount  `json:"top_categories"`
	UserMarkups   int                     `json:"user_markups"`
}

func NewAdminService(db *gorm.DB, loader *pricelist.Loader, archive *ArchiveService, config *config.Config) *AdminService {
	return &AdminService{
		db:      db,
		loader:  loader,
		archive: archive,
		config:  config,
	}
}

// ValidateUpload checks name and size before the file body is read.
func (s *AdminService) ValidateUpload(filename string, size int64) error {
	return s.archive.Validate(filename, size)
}

// UploadPriceList archives an uploaded file and replaces the source partition with its
// contents. The archive copy is kept even when ingestion fails.
func (s *AdminService) UploadPriceList(ctx context.Context, source models.Source, filename string, data []byte) (*UploadResult, error) {
	if !source.Valid() {
		return nil, &pricelist.LoadError{Source: source, Structural: true, Err: pricelist.ErrInvalidSource}
	}
	if err := s.ValidateUpload(filename, int64(len(data))); err != nil {
		return nil, err
	}

	archived, err := s.archive.Store(ctx, source, filename, data)
	if err != nil {
		return nil, err
	}

	table, err := pricelist.Open(filename, data, s.config.Upload.CSVCharset)
	if err != nil {
		return nil, &pricelist.LoadError{Source: source, Err: err}
	}

	result, err := s.loader.Load(ctx, source, table)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"source":  source,
			"archive": archived.Key,
		}).Warn("Price list rejected")
		return nil, err
	}

	upload := &UploadResult{Result: result, Archive: archived}
	if s.config.AWS.AccessKeyID != "" {
		if url, err := s.archive.PresignedURL(archived.Key, downloadURLTTL); err == nil {
			upload.DownloadURL = url
		}
	}
	return upload, nil
}

// ClearAll removes every product of every source. Carts are emptied too since their
// products no longer exist. It waits for any running ingestion to finish.
func (s *AdminService) ClearAll(ctx context.Context) (*ClearResult, error) {
	result := &ClearResult{Deleted: make(map[models.Source]int64, len(models.Sources))}

	err := s.loader.Exclusive(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			store := repository.NewGormStore(tx)
			for _, source := range models.Sources {
				deleted, err := store.DeleteBySource(ctx, source)
				if err != nil {
					return err
				}
				result.Deleted[source] = deleted
			}

			carts := tx.Where("1 = 1").Delete(&models.CartItem{})
			if carts.Error != nil {
				return fmt.Errorf("failed to clear carts: %w", carts.Error)
			}
			result.CartItems = carts.RowsAffected
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"deleted":    result.Deleted,
		"cart_items": result.CartItems,
	}).Warn("All products cleared")
	return result, nil
}

func (s *AdminService) Stats(ctx context.Context) (*CatalogStats, error) {
	store := repository.NewGormStore(s.db)

	counts, err := store.CountBySource(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{
		Products:   counts,
		Categories: make(map[models.Source]int, len(models.Sources)),
	}
	for _, source := range models.Sources {
		stats.TotalProducts += counts[source]

		categories, err := store.ListDistinctCategories(ctx, source)
		if err != nil {
			return nil, err
		}
		stats.Categories[source] = len(categories)
	}

	if stats.TopCategories, err = store.TopCategories(ctx, topCategoriesLimit); err != nil {
		return nil, err
	}

	overrides, err := store.ListUserOverrides(ctx)
	if err != nil {
		return nil, err
	}
	stats.UserMarkups = len(overrides)

	return stats, nil
}

// Help returns the configured help text, or "" to fall back to the message catalog.
func (s *AdminService) Help() string {
	return s.config.Admin.Help
}
