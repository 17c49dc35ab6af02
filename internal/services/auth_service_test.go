package services

import (
	"context"
	"testing"
	"time"

	"corpsite/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetService(ctx context.Context, serviceID int) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockCacheService) SetService(ctx context.Context, service *models.Service, ttl time.Duration) error {
	args := m.Called(ctx, service, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteService(ctx context.Context, serviceID int) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

func (m *MockCacheService) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompanyInfo), args.Error(1)
}

func (m *MockCacheService) SetCompanyInfo(ctx context.Context, info *models.CompanyInfo, ttl time.Duration) error {
	args := m.Called(ctx, info, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteCompanyInfo(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateCatalogCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestAuthService(userRepo *MockUserRepository, cache *MockCacheService) AuthService {
	return NewAuthService(userRepo, cache, "test-secret", 15*time.Minute, 24*time.Hour)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:       "user-1",
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hash),
	}
}

func TestLoginIssuesSignedToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	user := hashedUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	cache.On("SetString", mock.Anything, mock.Anything, "user-1", 24*time.Hour).Return(nil)

	tokens, err := svc.Login(context.Background(), "admin@example.com", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, int((15 * time.Minute).Seconds()), tokens.ExpiresIn)
	assert.NotEmpty(t, tokens.RefreshToken)

	parsed, err := jwt.ParseWithClaims(tokens.AccessToken, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*TokenClaims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	user := hashedUser(t, "correct-horse")
	userRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), "admin@example.com", "battery-staple")
	assert.ErrorIs(t, err, ErrUnauthorized)
	cache.AssertNotCalled(t, "SetString")
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	cache.On("GetString", mock.Anything, refreshTokenKey("old-token")).Return("user-1", nil)
	cache.On("Delete", mock.Anything, refreshTokenKey("old-token")).Return(nil)
	cache.On("SetString", mock.Anything, mock.Anything, "user-1", 24*time.Hour).Return(nil)

	tokens, err := svc.Refresh(context.Background(), "old-token")

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", tokens.RefreshToken)
	cache.AssertExpectations(t)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	cache.On("GetString", mock.Anything, mock.Anything).Return("", nil)

	_, err := svc.Refresh(context.Background(), "forged-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
	cache.AssertNotCalled(t, "Delete")
}

func TestRegisterHashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, pgx.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("long-enough-pw")) == nil
	})).Return(nil)

	user, err := svc.Register(context.Background(), "New Admin", "new@example.com", "long-enough-pw")

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	userRepo.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := new(MockCacheService)
	svc := newTestAuthService(userRepo, cache)

	_, err := svc.Register(context.Background(), "X", "x@example.com", "short")
	assert.ErrorIs(t, err, ErrValidation)
	userRepo.AssertNotCalled(t, "Create")
}
