package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"bichar/internal/judge"
	"bichar/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestRouteWiring exercises every public route through SetupRoutes so a path
// typo or a swapped method surfaces here instead of in production.
func TestRouteWiring(t *testing.T) {
	repo := new(MockConfessionRepository)
	stats := new(MockStatsRepository)
	gen := new(MockGenerator)

	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&judge.Judgment{Judgment: "j"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("ListTrending", mock.Anything).Return([]models.Confession{}, nil)
	repo.On("IncrementLikes", mock.Anything, uint(1)).Return(&models.Confession{ID: 1, Likes: 1}, nil)
	repo.On("GetRandom", mock.Anything).Return(&models.Confession{ID: 1}, nil)
	stats.On("IncrementDailyCount", mock.Anything, mock.Anything).Return(nil)
	stats.On("GetDailyCount", mock.Anything, mock.Anything).Return(0, nil)

	s := newTestServer(repo, stats, gen)
	app := fiber.New()
	s.SetupRoutes(app)

	tests := []struct {
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{http.MethodGet, "/api/confessions/trending", "", http.StatusOK},
		{http.MethodGet, "/api/confessions/random", "", http.StatusOK},
		{http.MethodGet, "/api/stats/daily-count", "", http.StatusOK},
		{http.MethodPost, "/api/confessions", `{"content": "hi", "persona": "khalamma"}`, http.StatusCreated},
		{http.MethodPost, "/api/confessions/1/reaction", `{"type": "laugh"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
