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

type itemEditCmd struct{}

func (itemEditCmd) Name() string        { return "item-edit" }
func (itemEditCmd) Description() string { return "Edit item fields; unset flags keep current values" }
func (itemEditCmd) Usage() string {
	return "item-edit [-type <t>] [-title <t>] [-description <d>] [-content <c>] [-tags <a,b>] [-category <c>] [-stack <s>] <id>"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("item-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	typ := fs.String("type", "", "")
	title := fs.String("title", "", "")
	description := fs.String("description", "", "")
	content := fs.String("content", "", "")
	tags := fs.String("tags", "", "")
	category := fs.String("category", "", "")
	stack := fs.String("stack", "", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return ErrUsage
	}
	if set["type"] && !model.ItemType(*typ).Valid() {
		return ErrUsage
	}

	// PUT заменяет запись целиком, поэтому сначала читаем текущую
	path := "/api/items/" + url.PathEscape(fs.Arg(0))
	var cur model.Item
	if err := call(ctx, cfg, http.MethodGet, path, nil, &cur); err != nil {
		return err
	}
	payload := itemPayload{
		Type:        cur.Type,
		Title:       cur.Title,
		Description: deref(cur.Description),
		Content:     cur.Content,
		Tags:        cur.Tags,
		Category:    deref(cur.Category),
		Stack:       deref(cur.Stack),
	}
	if set["type"] {
		payload.Type = model.ItemType(*typ)
	}
	if set["title"] {
		payload.Title = *title
	}
	if set["description"] {
		payload.Description = *description
	}
	if set["content"] {
		payload.Content = *content
	}
	if set["tags"] {
		payload.Tags = model.SplitTags(*tags)
	}
	if set["category"] {
		payload.Category = *category
	}
	if set["stack"] {
		payload.Stack = *stack
	}

	var it model.Item
	if err := call(ctx, cfg, http.MethodPut, path, payload, &it); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	fmt.Fprintf(Out, "  id:    %s\n", it.ID)
	fmt.Fprintf(Out, "  title: %s\n", it.Title)
	return nil
}

func init() { RegisterCmd(itemEditCmd{}) }
