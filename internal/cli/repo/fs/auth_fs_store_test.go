package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func newTempStore(t *testing.T) AuthFSStore {
	t.Helper()
	return NewAuthFSStore(filepath.Join(t.TempDir(), "nested", "auth_token"))
}

func TestAuthFSStore_SaveLoad_Token_TrimsWhitespace(t *testing.T) {
	st := newTempStore(t)
	// Сохранение токена (каталог создаётся автоматически)
	if err := st.Save("tok-123\n\n"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	f, _ := os.OpenFile(st.TokenPath, os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	tok, err := st.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token not trimmed, got %q", tok)
	}
	if fi, err := os.Stat(st.TokenPath); err == nil && fi.Mode().Perm()&0o077 != 0 {
		t.Fatalf("token file must not be group/world readable: %v", fi.Mode())
	}
}

func TestAuthFSStore_Load_TokenMissingOrEmpty(t *testing.T) {
	st := newTempStore(t)
	// отсутствует файл
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for missing token file")
	}
	// пустой файл
	_ = os.MkdirAll(filepath.Dir(st.TokenPath), 0o700)
	_ = os.WriteFile(st.TokenPath, []byte(" \n"), 0o600)
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for empty token file")
	}
}

func TestAuthFSStore_LoginAndClear(t *testing.T) {
	st := newTempStore(t)
	if err := st.SaveLogin(""); err == nil {
		t.Fatalf("expected error for empty login")
	}
	if err := st.Save("tok"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := st.SaveLogin("admin@arsenal.dev\n"); err != nil {
		t.Fatalf("save login: %v", err)
	}
	if l, err := st.LoadLogin(); err != nil || l != "admin@arsenal.dev" {
		t.Fatalf("login not loaded: %q %v", l, err)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := st.Load(); err == nil {
		t.Fatalf("token must be gone after Clear")
	}
	if _, err := st.LoadLogin(); err == nil {
		t.Fatalf("login must be gone after Clear")
	}
	// повторная очистка не ошибка
	if err := st.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestAuthFSStore_NoPath(t *testing.T) {
	if err := (AuthFSStore{}).Save("tok"); err == nil {
		t.Fatalf("expected error without configured path")
	}
}
