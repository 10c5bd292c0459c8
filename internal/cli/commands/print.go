package commands

import (
	"MeuArsenal/internal/model"
	"fmt"
	"strings"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func printItemLine(it model.Item) {
	fav := ""
	if it.Favorite {
		fav = " ★"
	}
	fmt.Fprintf(Out, "- %s  [%s] %s%s  uses=%d\n", it.ID, it.Type, it.Title, fav, it.UsageCount)
}

func printItem(it model.Item) {
	fmt.Fprintf(Out, "id:          %s\n", it.ID)
	fmt.Fprintf(Out, "type:        %s\n", it.Type)
	fmt.Fprintf(Out, "title:       %s\n", it.Title)
	fmt.Fprintf(Out, "description: %s\n", deref(it.Description))
	fmt.Fprintf(Out, "tags:        %s\n", strings.Join(it.Tags, ", "))
	fmt.Fprintf(Out, "category:    %s\n", deref(it.Category))
	fmt.Fprintf(Out, "stack:       %s\n", deref(it.Stack))
	fmt.Fprintf(Out, "favorite:    %t\n", it.Favorite)
	fmt.Fprintf(Out, "uses:        %d\n", it.UsageCount)
	fmt.Fprintf(Out, "created:     %s\n", it.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(Out, "updated:     %s\n", it.UpdatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(Out, "content:")
	fmt.Fprintln(Out, it.Content)
}
