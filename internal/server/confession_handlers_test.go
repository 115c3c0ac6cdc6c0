package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bichar/internal/judge"
	"bichar/internal/models"
	"bichar/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockConfessionRepository is a mock of the ConfessionRepository interface
type MockConfessionRepository struct {
	mock.Mock
}

func (m *MockConfessionRepository) Create(ctx context.Context, confession *models.Confession) error {
	args := m.Called(ctx, confession)
	return args.Error(0)
}

func (m *MockConfessionRepository) GetByID(ctx context.Context, id uint) (*models.Confession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confession), args.Error(1)
}

func (m *MockConfessionRepository) ListTrending(ctx context.Context) ([]models.Confession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Confession), args.Error(1)
}

func (m *MockConfessionRepository) IncrementLikes(ctx context.Context, id uint) (*models.Confession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confession), args.Error(1)
}

func (m *MockConfessionRepository) GetRandom(ctx context.Context) (*models.Confession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confession), args.Error(1)
}

// MockStatsRepository is a mock of the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) IncrementDailyCount(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockStatsRepository) GetDailyCount(ctx context.Context, date string) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

// MockGenerator is a mock of the judge.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, content string, persona models.Persona, mood models.Mood) (*judge.Judgment, error) {
	args := m.Called(ctx, content, persona, mood)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*judge.Judgment), args.Error(1)
}

// newTestServer wires a Server around the given mocks, bypassing DB and Redis.
func newTestServer(confessionRepo *MockConfessionRepository, statsRepo *MockStatsRepository, gen *MockGenerator) *Server {
	s := &Server{
		confessionRepo: confessionRepo,
		statsRepo:      statsRepo,
	}
	s.confessionService = service.NewConfessionService(confessionRepo, statsRepo, gen)
	return s
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateConfessionHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(repo *MockConfessionRepository, stats *MockStatsRepository, gen *MockGenerator)
		expectedStatus int
		expectedMsg    string
		expectedField  string
	}{
		{
			name: "Success",
			body: `{"content": "I ate the last samosa", "persona": "khalamma"}`,
			mockSetup: func(repo *MockConfessionRepository, stats *MockStatsRepository, gen *MockGenerator) {
				gen.On("Generate", mock.Anything, "I ate the last samosa", models.PersonaKhalamma, models.DefaultMood).
					Return(&judge.Judgment{Judgment: "Ei ki shunlam!"}, nil)
				repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Confession).ID = 1
				}).Return(nil)
				stats.On("IncrementDailyCount", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty content",
			body:           `{"content": "   ", "persona": "khalamma"}`,
			mockSetup:      func(_ *MockConfessionRepository, _ *MockStatsRepository, _ *MockGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Confession cannot be empty",
			expectedField:  "content",
		},
		{
			name:           "Malformed body",
			body:           `{"content": `,
			mockSetup:      func(_ *MockConfessionRepository, _ *MockStatsRepository, _ *MockGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name: "Generator failure",
			body: `{"content": "something", "persona": "hujur"}`,
			mockSetup: func(_ *MockConfessionRepository, _ *MockStatsRepository, gen *MockGenerator) {
				gen.On("Generate", mock.Anything, "something", models.PersonaHujur, models.DefaultMood).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to process judgment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockConfessionRepository)
			stats := new(MockStatsRepository)
			gen := new(MockGenerator)
			tt.mockSetup(repo, stats, gen)

			s := newTestServer(repo, stats, gen)
			app := fiber.New()
			app.Post("/api/confessions", s.CreateConfession)

			req := httptest.NewRequest(http.MethodPost, "/api/confessions", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedMsg != "" {
				body := decodeError(t, resp)
				assert.Equal(t, tt.expectedMsg, body.Message)
				assert.Equal(t, tt.expectedField, body.Field)
			}
			repo.AssertExpectations(t)
			gen.AssertExpectations(t)
		})
	}
}

func TestCreateConfessionHandler_ResponseShape(t *testing.T) {
	repo := new(MockConfessionRepository)
	stats := new(MockStatsRepository)
	gen := new(MockGenerator)

	score := 91
	gen.On("Generate", mock.Anything, mock.Anything, models.PersonaToxicBoroBhai, models.MoodAngry).
		Return(&judge.Judgment{
			Judgment:        "Eta kono kotha holo?",
			RedFlagScore:    &score,
			AmmiReaction:    "Hai hai",
			PadoshiComments: []string{"Dekhso obostha"},
		}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Confession).ID = 42
	}).Return(nil)
	stats.On("IncrementDailyCount", mock.Anything, mock.Anything).Return(nil)

	s := newTestServer(repo, stats, gen)
	app := fiber.New()
	app.Post("/api/confessions", s.CreateConfession)

	payload := `{"content": "I blocked my cousin", "persona": "toxic_boro_bhai", "judgeMood": "angry"}`
	req := httptest.NewRequest(http.MethodPost, "/api/confessions", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	// Field names on the wire are camelCase.
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, "toxic_boro_bhai", body["persona"])
	assert.Equal(t, "Eta kono kotha holo?", body["judgment"])
	assert.Equal(t, float64(0), body["likes"])
	assert.Equal(t, float64(91), body["redFlagScore"])
	assert.Equal(t, "Hai hai", body["ammiReaction"])
	assert.Contains(t, body, "padoshiComments")
	assert.Contains(t, body, "createdAt")
}

func TestGetTrendingConfessionsHandler(t *testing.T) {
	t.Run("Success preserves order", func(t *testing.T) {
		repo := new(MockConfessionRepository)
		repo.On("ListTrending", mock.Anything).Return([]models.Confession{
			{ID: 2, Likes: 9},
			{ID: 1, Likes: 5},
		}, nil)

		s := newTestServer(repo, new(MockStatsRepository), new(MockGenerator))
		app := fiber.New()
		app.Get("/api/confessions/trending", s.GetTrendingConfessions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/confessions/trending", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Confession
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 2)
		assert.Equal(t, uint(2), body[0].ID)
		assert.Equal(t, uint(1), body[1].ID)
	})

	t.Run("Repository failure", func(t *testing.T) {
		repo := new(MockConfessionRepository)
		repo.On("ListTrending", mock.Anything).Return(nil, assert.AnError)

		s := newTestServer(repo, new(MockStatsRepository), new(MockGenerator))
		app := fiber.New()
		app.Get("/api/confessions/trending", s.GetTrendingConfessions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/confessions/trending", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", decodeError(t, resp).Message)
	})
}

func TestAddReactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		mockSetup      func(repo *MockConfessionRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			path: "/api/confessions/7/reaction",
			body: `{"type": "laugh"}`,
			mockSetup: func(repo *MockConfessionRepository) {
				repo.On("IncrementLikes", mock.Anything, uint(7)).
					Return(&models.Confession{ID: 7, Likes: 6}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid reaction type",
			path:           "/api/confessions/7/reaction",
			body:           `{"type": "thumbsup"}`,
			mockSetup:      func(_ *MockConfessionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid reaction type",
		},
		{
			name: "Unknown confession",
			path: "/api/confessions/99/reaction",
			body: `{"type": "cry"}`,
			mockSetup: func(repo *MockConfessionRepository) {
				repo.On("IncrementLikes", mock.Anything, uint(99)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Confession not found",
		},
		{
			name:           "Non-numeric id",
			path:           "/api/confessions/abc/reaction",
			body:           `{"type": "laugh"}`,
			mockSetup:      func(_ *MockConfessionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid confession ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockConfessionRepository)
			tt.mockSetup(repo)

			s := newTestServer(repo, new(MockStatsRepository), new(MockGenerator))
			app := fiber.New()
			app.Post("/api/confessions/:id/reaction", s.AddReaction)

			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decodeError(t, resp).Message)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestGetRandomConfessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockConfessionRepository)
		repo.On("GetRandom", mock.Anything).Return(&models.Confession{ID: 3}, nil)

		s := newTestServer(repo, new(MockStatsRepository), new(MockGenerator))
		app := fiber.New()
		app.Get("/api/confessions/random", s.GetRandomConfession)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/confessions/random", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Empty store", func(t *testing.T) {
		repo := new(MockConfessionRepository)
		repo.On("GetRandom", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		s := newTestServer(repo, new(MockStatsRepository), new(MockGenerator))
		app := fiber.New()
		app.Get("/api/confessions/random", s.GetRandomConfession)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/confessions/random", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No confessions yet", decodeError(t, resp).Message)
	})
}
