package commands

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/model"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List items (most recently updated first)" }
func (itemsCmd) Usage() string {
	return "items [-search <text>] [-type <type>] [-category <c>] [-stack <s>] [-favorite]"
}

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "")
	typ := fs.String("type", "", "")
	category := fs.String("category", "", "")
	stack := fs.String("stack", "", "")
	favorite := fs.Bool("favorite", false, "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	if *typ != "" && !model.ItemType(*typ).Valid() {
		return ErrUsage
	}

	q := url.Values{}
	for k, v := range map[string]string{"search": *search, "type": *typ, "category": *category, "stack": *stack} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if *favorite {
		q.Set("favorite", "true")
	}
	path := "/api/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []model.Item
	if err := call(ctx, cfg, http.MethodGet, path, nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return nil
	}
	for _, it := range list {
		printItemLine(it)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(itemsCmd{}) }
