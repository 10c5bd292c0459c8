package commands

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/model"
	"context"
	"net/http"
	"net/url"
)

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Show an item by id" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	var it model.Item
	if err := call(ctx, cfg, http.MethodGet, "/api/items/"+url.PathEscape(args[0]), nil, &it); err != nil {
		return err
	}
	printItem(it)
	return nil
}

func init() { RegisterCmd(itemGetCmd{}) }
