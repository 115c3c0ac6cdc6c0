package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"bichar/internal/database"
	"bichar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSQLiteDB opens an in-memory database with the real schema so storage
// semantics (atomic increments, upserts, ordering) run against actual SQL.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the shared in-memory DB visible to all
	// goroutines and serializes writes instead of returning SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestConfessionRepository_TrendingOrderAndLimit(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewConfessionRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	a := &models.Confession{Content: "a", Persona: models.PersonaKhalamma, Judgment: "ja", Likes: 5, CreatedAt: base.Add(1 * time.Minute)}
	b := &models.Confession{Content: "b", Persona: models.PersonaKhalamma, Judgment: "jb", Likes: 5, CreatedAt: base.Add(2 * time.Minute)}
	c := &models.Confession{Content: "c", Persona: models.PersonaKhalamma, Judgment: "jc", Likes: 3, CreatedAt: base.Add(3 * time.Minute)}
	for _, conf := range []*models.Confession{a, b, c} {
		require.NoError(t, repo.Create(ctx, conf))
	}

	trending, err := repo.ListTrending(ctx)
	require.NoError(t, err)
	require.Len(t, trending, 3)
	// Ties on likes break toward the most recent.
	assert.Equal(t, b.ID, trending[0].ID)
	assert.Equal(t, a.ID, trending[1].ID)
	assert.Equal(t, c.ID, trending[2].ID)

	// Fill past the cap; the feed never exceeds TrendingLimit entries.
	for i := 0; i < TrendingLimit+5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Confession{
			Content: "filler", Persona: models.PersonaHujur, Judgment: "j",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	trending, err = repo.ListTrending(ctx)
	require.NoError(t, err)
	assert.Len(t, trending, TrendingLimit)
}

func TestConfessionRepository_ConcurrentReactions(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewConfessionRepository(db)
	ctx := context.Background()

	confession := &models.Confession{Content: "x", Persona: models.PersonaKhalamma, Judgment: "j"}
	require.NoError(t, repo.Create(ctx, confession))
	assert.Equal(t, 0, confession.Likes)

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.IncrementLikes(ctx, confession.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, confession.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.Likes, "every concurrent reaction must be reflected")
}

func TestConfessionRepository_RoundTrip(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewConfessionRepository(db)
	ctx := context.Background()

	score := 72
	prob := 15
	in := &models.Confession{
		Content:             "I told ammi I was at the library",
		Persona:             models.PersonaKhalamma,
		Judgment:            "Ei meye/chele ke dekho!",
		RedFlagScore:        &score,
		RedFlagExplanation:  "Library at 11pm, really?",
		AmmiReaction:        "Chokh boro hoye gelo",
		PadoshiComments:     []string{"Dekhso?", "Ami agei bolsilam", "Astaghfirullah"},
		MarriageProbability: &prob,
		MarriageReason:      "Padoshira sob jene gese",
	}
	require.NoError(t, repo.Create(ctx, in))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Content, out.Content)
	assert.Equal(t, in.Persona, out.Persona)
	assert.Equal(t, in.Judgment, out.Judgment)
	assert.Equal(t, in.PadoshiComments, out.PadoshiComments)
	require.NotNil(t, out.RedFlagScore)
	assert.Equal(t, score, *out.RedFlagScore)
	require.NotNil(t, out.MarriageProbability)
	assert.Equal(t, prob, *out.MarriageProbability)
	assert.Equal(t, 0, out.Likes)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestConfessionRepository_GetRandomMembership(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewConfessionRepository(db)
	ctx := context.Background()

	_, err := repo.GetRandom(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ids := map[uint]bool{}
	for i := 0; i < 5; i++ {
		c := &models.Confession{Content: "c", Persona: models.PersonaHujur, Judgment: "j"}
		require.NoError(t, repo.Create(ctx, c))
		ids[c.ID] = true
	}

	for i := 0; i < 10; i++ {
		got, err := repo.GetRandom(ctx)
		require.NoError(t, err)
		assert.True(t, ids[got.ID], "random pick must be a stored confession")
	}
}

func TestStatsRepository_UpsertSemantics(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	today := models.DateKey(time.Now())

	count, err := repo.GetDailyCount(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.IncrementDailyCount(ctx, today))
	require.NoError(t, repo.IncrementDailyCount(ctx, today))

	count, err = repo.GetDailyCount(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Exactly one row per date, even after repeated increments.
	var rows int64
	require.NoError(t, db.Model(&models.DailyStat{}).Where("date = ?", today).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	// A different date has its own counter.
	count, err = repo.GetDailyCount(ctx, "1999-12-31")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStatsRepository_ConcurrentIncrements(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	today := models.DateKey(time.Now())

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementDailyCount(ctx, today))
		}()
	}
	wg.Wait()

	count, err := repo.GetDailyCount(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
