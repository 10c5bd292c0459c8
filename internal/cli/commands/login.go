package commands

import (
	"MeuArsenal/internal/cli/api"
	"MeuArsenal/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	email, password := args[0], args[1]
	req := LoginRequest{Email: email, Password: password}
	resp, body, err := api.PostJSON(ctx, endpoint(cfg, "/api/auth/login"), req, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return errors.New("invalid email or password")
	default:
		return api.ErrorFromResponse(resp, body)
	}

	store := tokenStore(cfg)
	if err := api.PersistAuthFromResponse(resp, store); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := store.SaveLogin(email); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err == nil && lr.Name != "" {
		fmt.Fprintf(Out, "Logged in as %s <%s>\n", lr.Name, lr.Email)
		return nil
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
