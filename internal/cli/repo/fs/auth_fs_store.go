package fs

import (
	"MeuArsenal/internal/cli/repo"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AuthFSStore — файловое хранилище токена и email последнего входа для CLI.
// Email хранится рядом с токеном в файле last_login.
type AuthFSStore struct {
	TokenPath string
}

var _ repo.TokenStore = AuthFSStore{}

// NewAuthFSStore создаёт хранилище с токеном по указанному пути.
func NewAuthFSStore(tokenPath string) AuthFSStore {
	return AuthFSStore{TokenPath: tokenPath}
}

func (s AuthFSStore) lastLoginPath() string {
	return filepath.Join(filepath.Dir(s.TokenPath), "last_login")
}

func (s AuthFSStore) write(p, value string) error {
	if s.TokenPath == "" {
		return errors.New("token file path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

func read(p, what string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	v := strings.TrimRight(string(b), " \t\r\n")
	if v == "" {
		return "", errors.New("empty " + what + " file")
	}
	return v, nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	return s.write(s.TokenPath, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	return read(s.TokenPath, "token")
}

// Clear удаляет токен и email последнего входа.
func (s AuthFSStore) Clear() error {
	for _, p := range []string{s.TokenPath, s.lastLoginPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SaveLogin сохраняет email пользователя.
func (s AuthFSStore) SaveLogin(email string) error {
	if email == "" {
		return errors.New("empty login")
	}
	return s.write(s.lastLoginPath(), email)
}

// LoadLogin читает email последнего входа.
func (s AuthFSStore) LoadLogin() (string, error) {
	return read(s.lastLoginPath(), "login")
}
