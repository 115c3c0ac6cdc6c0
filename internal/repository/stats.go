package repository

import (
	"context"
	"errors"

	"bichar/internal/cache"
	"bichar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository defines the interface for daily-count data operations
type StatsRepository interface {
	IncrementDailyCount(ctx context.Context, date string) error
	GetDailyCount(ctx context.Context, date string) (int, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// IncrementDailyCount inserts or increments the row for date in one atomic
// upsert, so concurrent creations never lose a count and a date never gets
// two rows.
func (r *statsRepository) IncrementDailyCount(ctx context.Context, date string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("daily_stats.count + 1")}),
	}).Create(&models.DailyStat{Date: date, Count: 1}).Error
	if err == nil {
		cache.InvalidateDailyCount(ctx, date)
	}
	return err
}

// GetDailyCount returns the counter for date, or 0 when no row exists yet.
func (r *statsRepository) GetDailyCount(ctx context.Context, date string) (int, error) {
	var stat models.DailyStat
	err := r.db.WithContext(ctx).Where("date = ?", date).Take(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stat.Count, nil
}
