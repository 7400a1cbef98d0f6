package service_test

import (
	"context"
	"testing"

	"bookhub/internal/httpapi/models"
	"bookhub/internal/httpapi/service"
	"bookhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			// a bcrypt hash is stored, never the plaintext
			return u.Username == "alice" &&
				u.HashedPassword != "secret" &&
				auth.VerifyPassword(u.HashedPassword, "secret") == nil
		})).Return(nil).Once()

		s := service.NewAuthService(repo)
		user, err := s.Register(ctx, "alice", "secret")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo := new(MockUserRepository)
		existing := &models.User{ID: 1, Username: "alice"}
		repo.On("FindByUsername", ctx, "alice").Return(existing, nil).Once()

		s := service.NewAuthService(repo)
		user, err := s.Register(ctx, "alice", "other")

		assert.ErrorIs(t, err, service.ErrUsernameTaken)
		assert.Nil(t, user)
		// no second row is created
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RaceSettledByUniqueIndex", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()

		s := service.NewAuthService(repo)
		_, err := s.Register(ctx, "alice", "secret")

		assert.ErrorIs(t, err, service.ErrUsernameTaken)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hashed, err := auth.HashPassword("secret")
	assert.NoError(t, err)
	stored := &models.User{ID: 1, Username: "alice", HashedPassword: hashed}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "alice").Return(stored, nil).Once()

		s := service.NewAuthService(repo)
		user, err := s.Authenticate(ctx, "alice", "secret")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "alice").Return(stored, nil).Once()

		s := service.NewAuthService(repo)
		user, err := s.Authenticate(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "mallory").Return(nil, gorm.ErrRecordNotFound).Once()

		s := service.NewAuthService(repo)
		user, err := s.Authenticate(ctx, "mallory", "whatever")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}
