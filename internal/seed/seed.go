package seed

import (
	"fmt"
	"log"

	"bichar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with demo confessions.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory()}
}

// ClearAll removes all seeded data.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Confession{}).Error; err != nil {
		return fmt.Errorf("failed to clear confessions: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DailyStat{}).Error; err != nil {
		return fmt.Errorf("failed to clear daily stats: %w", err)
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedConfessions creates n confessions spread over maxDays days and rebuilds
// the daily counters to match their creation dates.
func (s *Seeder) SeedConfessions(n, maxDays int) ([]models.Confession, error) {
	confessions := make([]models.Confession, 0, n)
	for i := 0; i < n; i++ {
		confessions = append(confessions, *s.factory.BuildConfession(maxDays))
	}

	if err := s.db.CreateInBatches(&confessions, 100).Error; err != nil {
		return nil, fmt.Errorf("failed to seed confessions: %w", err)
	}

	// Rebuild per-day counters from what was just created.
	perDay := map[string]int{}
	for i := range confessions {
		perDay[models.DateKey(confessions[i].CreatedAt)]++
	}
	for date, count := range perDay {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("daily_stats.count + ?", count)}),
		}).Create(&models.DailyStat{Date: date, Count: count}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to seed daily stats: %w", err)
		}
	}

	log.Printf("Seeded %d confessions across %d days", n, len(perDay))
	return confessions, nil
}
