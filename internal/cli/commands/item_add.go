package commands

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/model"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
)

// itemPayload повторяет тело POST/PUT /api/items.
type itemPayload struct {
	Type        model.ItemType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Tags        []string       `json:"tags"`
	Category    string         `json:"category"`
	Stack       string         `json:"stack"`
	Favorite    *bool          `json:"favorite,omitempty"`
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Create an item" }
func (itemAddCmd) Usage() string {
	return "item-add [-description <d>] [-tags <a,b>] [-category <c>] [-stack <s>] [-favorite] <type> <title> <content>"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("item-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	description := fs.String("description", "", "")
	tags := fs.String("tags", "", "")
	category := fs.String("category", "", "")
	stack := fs.String("stack", "", "")
	favorite := fs.Bool("favorite", false, "")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 3 {
		return ErrUsage
	}
	typ := model.ItemType(rest[0])
	if !typ.Valid() || rest[1] == "" || rest[2] == "" {
		return ErrUsage
	}

	payload := itemPayload{
		Type:        typ,
		Title:       rest[1],
		Description: *description,
		Content:     rest[2],
		Tags:        model.SplitTags(*tags),
		Category:    *category,
		Stack:       *stack,
		Favorite:    favorite,
	}
	var it model.Item
	if err := call(ctx, cfg, http.MethodPost, "/api/items", payload, &it); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %s\n", it.ID)
	fmt.Fprintf(Out, "  type:  %s\n", it.Type)
	fmt.Fprintf(Out, "  title: %s\n", it.Title)
	return nil
}

func init() { RegisterCmd(itemAddCmd{}) }
