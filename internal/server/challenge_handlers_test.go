package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buddyboost/internal/models"
	"buddyboost/internal/repository"
	"buddyboost/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChallengeRepository is a mock of the ChallengeRepository interface
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, c *models.Challenge) error {
	args := m.Called(ctx, c)
	c.ID = 42
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Enroll(ctx context.Context, userID, challengeID uint, startDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, challengeID, startDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallengeRepository) GetEnrollment(ctx context.Context, userID, challengeID uint) (*models.Enrollment, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockChallengeRepository) ListEnrolled(ctx context.Context, userID uint) ([]models.EnrolledChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EnrolledChallenge), args.Error(1)
}

func (m *MockChallengeRepository) CheckIn(ctx context.Context, userID, challengeID uint, now time.Time) (*repository.CheckInResult, error) {
	args := m.Called(ctx, userID, challengeID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CheckInResult), args.Error(1)
}

func newChallengeTestServer(repo *MockChallengeRepository) (*Server, string) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, mock.Anything).
		Return(&models.User{ID: 1, FirstName: "A", LastName: "B"}, nil).Maybe()

	s := newTestServer(userRepo)
	s.challengeRepo = repo
	s.challengeService = service.NewChallengeService(repo, userRepo, nil)

	token, _ := s.generateToken(&models.User{ID: 1})
	return s, token
}

func challengeApp(s *Server) *fiber.App {
	app := fiber.New()
	challenges := app.Group("/challenges", s.AuthRequired())
	challenges.Get("/discover", s.DiscoverChallenges)
	challenges.Get("/mine", s.MyChallenges)
	challenges.Post("/join/:id", s.JoinChallenge)
	challenges.Post("/create", s.CreateChallenge)
	challenges.Post("/checkin/:id", s.CheckIn)
	return app
}

func authedReq(method, target string, body []byte, token string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestJoinChallenge(t *testing.T) {
	t.Run("first join", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("GetByID", mock.Anything, uint(3)).Return(&models.Challenge{ID: 3}, nil)
		repo.On("Enroll", mock.Anything, uint(1), uint(3), mock.Anything).Return(true, nil)
		repo.On("GetEnrollment", mock.Anything, uint(1), uint(3)).
			Return(&models.Enrollment{UserID: 1, ChallengeID: 3}, nil)

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/join/3", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		parsed := decodeBody(t, resp)
		assert.Equal(t, "Challenge joined", parsed["message"])
	})

	t.Run("repeated join is a no-op", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("GetByID", mock.Anything, uint(3)).Return(&models.Challenge{ID: 3}, nil)
		repo.On("Enroll", mock.Anything, uint(1), uint(3), mock.Anything).Return(false, nil)
		repo.On("GetEnrollment", mock.Anything, uint(1), uint(3)).
			Return(&models.Enrollment{UserID: 1, ChallengeID: 3, Streak: 4}, nil)

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/join/3", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		parsed := decodeBody(t, resp)
		assert.Equal(t, "Already joined", parsed["message"])
		assert.Equal(t, true, parsed["already_joined"])
	})

	t.Run("unknown challenge", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Challenge", uint(99)))

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/join/99", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateChallengeHandler(t *testing.T) {
	repo := new(MockChallengeRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Challenge) bool {
		return c.RewardXP == models.DefaultRewardXP && !c.IsPredefined
	})).Return(nil)

	s, token := newChallengeTestServer(repo)
	app := challengeApp(s)

	body, _ := json.Marshal(map[string]any{
		"title":         "Cold Showers",
		"duration_days": 14,
		"emoji":         "🚿",
	})
	resp, err := app.Test(authedReq(http.MethodPost, "/challenges/create", body, token))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	parsed := decodeBody(t, resp)
	assert.Equal(t, float64(42), parsed["challenge_id"])
}

func TestCheckInHandler(t *testing.T) {
	t.Run("completion awards xp", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("CheckIn", mock.Anything, uint(1), uint(3), mock.Anything).
			Return(&repository.CheckInResult{
				Enrollment: &models.Enrollment{Streak: 7, DaysCompleted: 7, IsCompleted: true},
				Completed:  true,
				AwardedXP:  150,
			}, nil)

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/checkin/3", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		parsed := decodeBody(t, resp)
		assert.Equal(t, true, parsed["completed"])
		assert.Equal(t, float64(150), parsed["awarded_xp"])
	})

	t.Run("second check-in today conflicts", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("CheckIn", mock.Anything, uint(1), uint(3), mock.Anything).
			Return(nil, models.NewConflictError("Already checked in today"))

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/checkin/3", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		parsed := decodeBody(t, resp)
		assert.Equal(t, models.CodeConflict, parsed["code"])
	})

	t.Run("not enrolled", func(t *testing.T) {
		repo := new(MockChallengeRepository)
		repo.On("CheckIn", mock.Anything, uint(1), uint(8), mock.Anything).
			Return(nil, models.NewNotFoundError("Enrollment", uint(8)))

		s, token := newChallengeTestServer(repo)
		app := challengeApp(s)

		resp, err := app.Test(authedReq(http.MethodPost, "/challenges/checkin/8", nil, token))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDiscoverChallenges(t *testing.T) {
	repo := new(MockChallengeRepository)
	repo.On("List", mock.Anything).Return([]models.Challenge{
		{ID: 1, Title: "Morning Run", IsPredefined: true},
		{ID: 2, Title: "Cold Showers"},
	}, nil)

	s, token := newChallengeTestServer(repo)
	app := challengeApp(s)

	resp, err := app.Test(authedReq(http.MethodGet, "/challenges/discover", nil, token))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	parsed := decodeBody(t, resp)
	challenges, ok := parsed["challenges"].([]any)
	require.True(t, ok)
	assert.Len(t, challenges, 2)
}
