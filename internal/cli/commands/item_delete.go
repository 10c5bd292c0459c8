package commands

import (
	"MeuArsenal/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Delete an item permanently" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	if err := call(ctx, cfg, http.MethodDelete, "/api/items/"+url.PathEscape(args[0]), nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted: %s\n", args[0])
	return nil
}

func init() { RegisterCmd(itemDeleteCmd{}) }
