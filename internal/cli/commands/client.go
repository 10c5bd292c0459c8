package commands

import (
	"MeuArsenal/internal/cli/api"
	fsrepo "MeuArsenal/internal/cli/repo/fs"
	"MeuArsenal/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func tokenStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.NewAuthFSStore(cfg.TokenFile)
}

func endpoint(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + path
}

// call выполняет авторизованный запрос к API и декодирует ответ в out (если out != nil).
// Перевыпущенный сервером cookie сохраняется обратно в хранилище.
func call(ctx context.Context, cfg *config.Config, method, path string, payload, out any) error {
	store := tokenStore(cfg)
	token, _ := store.Load()
	resp, body, err := api.DoJSON(ctx, method, endpoint(cfg, path), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return api.ErrorFromResponse(resp, body)
	}
	_ = api.PersistAuthFromResponse(resp, store)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
