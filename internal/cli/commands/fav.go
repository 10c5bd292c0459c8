package commands

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type favCmd struct{}

func (favCmd) Name() string        { return "fav" }
func (favCmd) Description() string { return "Toggle favorite, or set it with on|off" }
func (favCmd) Usage() string       { return "fav <id> [on|off]" }

func (favCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return ErrUsage
	}
	var body any
	if len(args) == 2 {
		switch args[1] {
		case "on":
			body = map[string]bool{"favorite": true}
		case "off":
			body = map[string]bool{"favorite": false}
		default:
			return ErrUsage
		}
	}
	var it model.Item
	if err := call(ctx, cfg, http.MethodPatch, "/api/items/"+url.PathEscape(args[0])+"/favorite", body, &it); err != nil {
		return err
	}
	if it.Favorite {
		fmt.Fprintf(Out, "★ %s is a favorite\n", it.Title)
	} else {
		fmt.Fprintf(Out, "☆ %s is not a favorite\n", it.Title)
	}
	return nil
}

func init() { RegisterCmd(favCmd{}) }
