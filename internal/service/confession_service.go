// Package service contains the business logic orchestrating confessions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"bichar/internal/cache"
	"bichar/internal/judge"
	"bichar/internal/middleware"
	"bichar/internal/models"
	"bichar/internal/observability"
	"bichar/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ConfessionService orchestrates confession creation, trending, reactions
// and the daily counter.
type ConfessionService struct {
	confessionRepo repository.ConfessionRepository
	statsRepo      repository.StatsRepository
	generator      judge.Generator
	now            func() time.Time
}

// CreateConfessionInput is the raw request payload for a new confession.
// Persona and JudgeMood are free-form here; the service normalizes both.
type CreateConfessionInput struct {
	Content   string
	Persona   string
	JudgeMood string
}

// NewConfessionService creates a new confession service.
func NewConfessionService(
	confessionRepo repository.ConfessionRepository,
	statsRepo repository.StatsRepository,
	generator judge.Generator,
) *ConfessionService {
	return &ConfessionService{
		confessionRepo: confessionRepo,
		statsRepo:      statsRepo,
		generator:      generator,
		now:            time.Now,
	}
}

// CreateConfession validates the input, generates the judgment and persists
// the combined record. Generation and persistence are one unit: a failure in
// either aborts the whole operation with nothing written. The daily counter
// increment afterwards is best-effort and never invalidates the stored row.
func (s *ConfessionService) CreateConfession(ctx context.Context, in CreateConfessionInput) (*models.Confession, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewFieldValidationError("Confession cannot be empty", "content")
	}

	persona := models.NormalizePersona(in.Persona)
	mood := models.NormalizeMood(in.JudgeMood)

	span, ctx := observability.NewSpan(ctx, "confession.create")
	defer span.End()
	span.AddAttributes(
		attribute.String("persona", string(persona)),
		attribute.String("mood", string(mood)),
	)

	judgment, err := s.generator.Generate(ctx, in.Content, persona, mood)
	if err != nil {
		span.SetError(err)
		return nil, models.NewUpstreamError(err)
	}

	confession := &models.Confession{
		Content:             in.Content,
		Persona:             persona,
		Judgment:            judgment.Judgment,
		RedFlagScore:        judgment.RedFlagScore,
		RedFlagExplanation:  judgment.RedFlagExplanation,
		AmmiReaction:        judgment.AmmiReaction,
		PadoshiComments:     judgment.PadoshiComments,
		MarriageProbability: judgment.MarriageProbability,
		MarriageReason:      judgment.MarriageReason,
	}
	if err := s.confessionRepo.Create(ctx, confession); err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.ConfessionsCreated.WithLabelValues(string(persona)).Inc()

	today := models.DateKey(s.now())
	if err := s.statsRepo.IncrementDailyCount(ctx, today); err != nil {
		// The confession is already durable; losing one tick of the
		// counter is acceptable.
		middleware.Logger.WarnContext(ctx, "daily count increment failed",
			slog.String("date", today),
			slog.String("error", err.Error()),
		)
	}

	return confession, nil
}

// ListTrending returns up to the trending cap of confessions ordered by
// likes, most recent first among ties. Served cache-aside with a short TTL.
func (s *ConfessionService) ListTrending(ctx context.Context) ([]models.Confession, error) {
	var confessions []models.Confession
	err := cache.Aside(ctx, cache.TrendingKey(), &confessions, cache.TrendingTTL, func() error {
		var fetchErr error
		confessions, fetchErr = s.confessionRepo.ListTrending(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	if confessions == nil {
		confessions = []models.Confession{}
	}
	return confessions, nil
}

// AddReaction records one reaction on a confession. Every reaction type maps
// to the same likes counter; the increment happens atomically in storage.
func (s *ConfessionService) AddReaction(ctx context.Context, id uint, reactionType string) (*models.Confession, error) {
	if !models.ValidReactionType(reactionType) {
		return nil, models.NewFieldValidationError("Invalid reaction type", "type")
	}

	confession, err := s.confessionRepo.IncrementLikes(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Confession not found")
	}
	if err != nil {
		return nil, err
	}

	observability.Reactions.WithLabelValues(reactionType).Inc()
	return confession, nil
}

// GetRandomConfession returns one uniformly random stored confession.
func (s *ConfessionService) GetRandomConfession(ctx context.Context) (*models.Confession, error) {
	confession, err := s.confessionRepo.GetRandom(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("No confessions yet")
	}
	if err != nil {
		return nil, err
	}
	return confession, nil
}

// GetDailyCount returns the number of confessions created today (UTC),
// zero when the day has no row yet.
func (s *ConfessionService) GetDailyCount(ctx context.Context) (int, error) {
	today := models.DateKey(s.now())

	var count int
	err := cache.Aside(ctx, cache.DailyCountKey(today), &count, cache.DailyCountTTL, func() error {
		var fetchErr error
		count, fetchErr = s.statsRepo.GetDailyCount(ctx, today)
		return fetchErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
