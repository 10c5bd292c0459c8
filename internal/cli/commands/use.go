package commands

import (
	"MeuArsenal/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type useCmd struct{}

func (useCmd) Name() string        { return "use" }
func (useCmd) Description() string { return "Record one use of an item" }
func (useCmd) Usage() string       { return "use <id>" }

func (useCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	var res struct {
		UsageCount int64 `json:"usageCount"`
	}
	if err := call(ctx, cfg, http.MethodPost, "/api/items/"+url.PathEscape(args[0])+"/use", nil, &res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Usage count: %d\n", res.UsageCount)
	return nil
}

func init() { RegisterCmd(useCmd{}) }
