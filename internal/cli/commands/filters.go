package commands

import (
	"MeuArsenal/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type filtersCmd struct{}

func (filtersCmd) Name() string        { return "filters" }
func (filtersCmd) Description() string { return "Show categories and stacks in use" }
func (filtersCmd) Usage() string       { return "filters" }

func (filtersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var res struct {
		Categories []string `json:"categories"`
		Stacks     []string `json:"stacks"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/api/items/filters", nil, &res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "categories: %s\n", strings.Join(res.Categories, ", "))
	fmt.Fprintf(Out, "stacks:     %s\n", strings.Join(res.Stacks, ", "))
	return nil
}

func init() { RegisterCmd(filtersCmd{}) }
