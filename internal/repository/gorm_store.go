// internal/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/models"
)

const insertBatchSize = 500

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for services that work on carts and orders.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) InsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(products, insertBatchSize).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteBySource(ctx context.Context, source models.Source) (int64, error) {
	result := s.db.WithContext(ctx).Where("source = ?", source).Delete(&models.Product{})
	if result.Error != nil {
		return 0, fmt.Errorf("database error: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) ListDistinctCategories(ctx context.Context, source models.Source) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("source = ?", source).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}

func (s *GormStore) ListProducts(ctx context.Context, source models.Source, category string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("source = ? AND category = ?", source, category).
		Order("price ASC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}

func (s *GormStore) ListProductsBefore(ctx context.Context, source models.Source, before time.Time) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("source = ? AND created_at < ?", source, before).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}

func (s *GormStore) UpdateProductPrice(ctx context.Context, id uint, price int64) error {
	result := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("price", price)
	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("database error: %w", err)
	}
	return setting.Value, true, nil
}

func (s *GormStore) SetSetting(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (s *GormStore) GetUserOverride(ctx context.Context, userID int64) (*decimal.Decimal, error) {
	var markup models.UserMarkup
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&markup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &markup.MarkupAmount, nil
}

func (s *GormStore) SetUserOverride(ctx context.Context, userID int64, amount decimal.Decimal) error {
	markup := models.UserMarkup{UserID: userID, MarkupAmount: amount}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"markup_amount", "updated_at"}),
	}).Create(&markup).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteUserOverride(ctx context.Context, userID int64) (bool, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserMarkup{})
	if result.Error != nil {
		return false, fmt.Errorf("database error: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) ListUserOverrides(ctx context.Context) ([]UserOverride, error) {
	var markups []models.UserMarkup
	if err := s.db.WithContext(ctx).Order("updated_at DESC, id DESC").Find(&markups).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	overrides := make([]UserOverride, 0, len(markups))
	for _, m := range markups {
		overrides = append(overrides, UserOverride{
			UserID:    m.UserID,
			Amount:    m.MarkupAmount,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return overrides, nil
}

// CountBySource returns the number of products in each catalog partition.
func (s *GormStore) CountBySource(ctx context.Context) (map[models.Source]int64, error) {
	var rows []struct {
		Source models.Source
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("source, COUNT(*) AS count").
		Group("source").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	counts := make(map[models.Source]int64, len(models.Sources))
	for _, src := range models.Sources {
		counts[src] = 0
	}
	for _, r := range rows {
		counts[r.Source] = r.Count
	}
	return counts, nil
}

// TopCategories returns the categories holding the most products across all sources.
func (s *GormStore) TopCategories(ctx context.Context, limit int) ([]models.CategoryCount, error) {
	var rows []models.CategoryCount
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return rows, nil
}
