package commands

import (
	"MeuArsenal/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"

	"MeuArsenal/internal/cli/api"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "End the session and forget the stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	// сервер сессий не хранит, поэтому локальный токен удаляется даже при сетевой ошибке
	err := call(ctx, cfg, http.MethodPost, "/api/auth/logout", nil, nil)
	if cerr := tokenStore(cfg).Clear(); cerr != nil {
		return cerr
	}
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		fmt.Fprintf(Out, "Logged out locally (server: %v)\n", err)
		return nil
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
