package commands

import (
	"MeuArsenal/internal/config"
	"path/filepath"
	"runtime"
	"testing"
)

// withTempConfig переопределяет пользовательские каталоги на время теста
// и возвращает конфиг, у которого токен/логин лежат в temp.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(dir, "MeuArsenal", "auth_token"),
	}
}
