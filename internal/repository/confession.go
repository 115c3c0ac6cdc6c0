// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"bichar/internal/cache"
	"bichar/internal/models"

	"gorm.io/gorm"
)

// TrendingLimit caps the trending feed size.
const TrendingLimit = 20

// ConfessionRepository defines the interface for confession data operations
type ConfessionRepository interface {
	Create(ctx context.Context, confession *models.Confession) error
	GetByID(ctx context.Context, id uint) (*models.Confession, error)
	ListTrending(ctx context.Context) ([]models.Confession, error)
	IncrementLikes(ctx context.Context, id uint) (*models.Confession, error)
	GetRandom(ctx context.Context) (*models.Confession, error)
}

// confessionRepository implements ConfessionRepository
type confessionRepository struct {
	db *gorm.DB
}

// NewConfessionRepository creates a new confession repository
func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &confessionRepository{db: db}
}

func (r *confessionRepository) Create(ctx context.Context, confession *models.Confession) error {
	err := r.db.WithContext(ctx).Create(confession).Error
	if err == nil {
		cache.InvalidateTrending(ctx)
	}
	return err
}

func (r *confessionRepository) GetByID(ctx context.Context, id uint) (*models.Confession, error) {
	var confession models.Confession
	if err := r.db.WithContext(ctx).First(&confession, id).Error; err != nil {
		return nil, err
	}
	return &confession, nil
}

func (r *confessionRepository) ListTrending(ctx context.Context) ([]models.Confession, error) {
	var confessions []models.Confession
	err := r.db.WithContext(ctx).
		Order("likes DESC, created_at DESC").
		Limit(TrendingLimit).
		Find(&confessions).Error
	return confessions, err
}

// IncrementLikes applies an atomic likes+1 at the storage layer, so
// concurrent reactions on the same row never lose updates. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (r *confessionRepository) IncrementLikes(ctx context.Context, id uint) (*models.Confession, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Confession{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	cache.InvalidateTrending(ctx)
	return r.GetByID(ctx, id)
}

func (r *confessionRepository) GetRandom(ctx context.Context) (*models.Confession, error) {
	var confession models.Confession
	err := r.db.WithContext(ctx).
		Order("RANDOM()").
		Limit(1).
		Take(&confession).Error
	if err != nil {
		return nil, err
	}
	return &confession, nil
}
