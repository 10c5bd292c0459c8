package commands

import (
	"MeuArsenal/internal/config"
	"context"
	"fmt"
	"net/http"
)

type sessionResponse struct {
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show current session" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var sr sessionResponse
	if err := call(ctx, cfg, http.MethodGet, "/api/auth/session", nil, &sr); err != nil {
		return err
	}
	if sr.User == nil {
		fmt.Fprintln(Out, "Status: not logged in")
		return nil
	}
	login, _ := tokenStore(cfg).LoadLogin()
	if login != "" {
		fmt.Fprintf(Out, "Status: logged in as %s (id=%s)\n", login, sr.User.ID)
		return nil
	}
	fmt.Fprintf(Out, "Status: logged in (id=%s)\n", sr.User.ID)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
