package service

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/repo"
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost — стоимость bcrypt для новых паролей.
const PasswordCost = 12

// UserService отвечает за проверку учётных данных и провижининг пользователей.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming тратит время на сравнение с фиктивным хешем,
// чтобы ответ для неизвестного email не был быстрее, чем для неверного пароля.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("arsenal-dummy-password"), PasswordCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Login проверяет email и пароль.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if u == nil {
		equalizeTiming(password)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureUser создаёт пользователя, если email свободен. Существующий возвращается без изменений.
func (s *UserService) EnsureUser(ctx context.Context, email, password, name string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil && u != nil {
		return u, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Email: email, Password: string(hash)}
	if name != "" {
		user.Name = &name
	}
	return s.repo.CreateUser(ctx, user)
}
