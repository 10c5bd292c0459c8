package service

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/repo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	alice := &model.User{ID: "u2", Email: "alice@arsenal.dev", Password: string(hash)}

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@arsenal.dev").Return(alice, nil).Once()

		user, err := svc.Login(ctx, "alice@arsenal.dev", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "u2", user.ID)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@arsenal.dev").Return(alice, nil).Once()

		user, err := svc.Login(ctx, "alice@arsenal.dev", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@arsenal.dev").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		user, err := svc.Login(ctx, "bob@arsenal.dev", "secret")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("empty fields", func(t *testing.T) {
		fresh := new(mockUserRepo)
		svc := NewUserService(fresh)
		_, err := svc.Login(ctx, "", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(ctx, "alice@arsenal.dev", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		fresh.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@arsenal.dev").Return((*model.User)(nil), errors.New("db down")).Once()

		_, err := svc.Login(ctx, "alice@arsenal.dev", "secret")
		assert.EqualError(t, err, "db down")
	})
}

func TestUserService_EnsureUser(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	t.Run("creates when email free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "admin@arsenal.dev").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "admin@arsenal.dev" &&
				u.Name != nil && *u.Name == "Administrador" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Arsenal@2024")) == nil
		})).Return(&model.User{ID: "u1", Email: "admin@arsenal.dev"}, nil).Once()

		user, err := svc.EnsureUser(ctx, "admin@arsenal.dev", "Arsenal@2024", "Administrador")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		m.AssertExpectations(t)
	})

	t.Run("existing user untouched", func(t *testing.T) {
		fresh := new(mockUserRepo)
		svc := NewUserService(fresh)
		existing := &model.User{ID: "u1", Email: "admin@arsenal.dev", Password: "old-hash"}
		fresh.On("GetUserByEmail", mock.Anything, "admin@arsenal.dev").Return(existing, nil).Once()

		user, err := svc.EnsureUser(ctx, "admin@arsenal.dev", "another", "")
		assert.NoError(t, err)
		assert.Equal(t, "old-hash", user.Password)
		fresh.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("requires email and password", func(t *testing.T) {
		_, err := svc.EnsureUser(ctx, "", "x", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
