package handlers

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/web"
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
	"unicode/utf8"
)

var typeLabels = map[model.ItemType]string{
	model.ItemTypePrompt:    "Prompt",
	model.ItemTypeTemplate:  "Template",
	model.ItemTypeSnippet:   "Snippet",
	model.ItemTypeTool:      "Ferramenta",
	model.ItemTypeChecklist: "Checklist",
}

var typeIcons = map[model.ItemType]string{
	model.ItemTypePrompt:    "💬",
	model.ItemTypeTemplate:  "📄",
	model.ItemTypeSnippet:   "💻",
	model.ItemTypeTool:      "🔧",
	model.ItemTypeChecklist: "✅",
}

var monthsPT = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

func formatDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%02d de %s. de %d", t.Day(), monthsPT[t.Month()-1], t.Year())
}

// relativeDate — «agora», «há 5min», «há 3h», «há 2d», дальше обычная дата.
func relativeDate(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		return fmt.Sprintf("há %dmin", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("há %dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("há %dd", int(d.Hours()/24))
	}
	return formatDate(t)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"typeLabel": func(t model.ItemType) string {
			if l, ok := typeLabels[t]; ok {
				return l
			}
			return string(t)
		},
		"typeIcon":  func(t model.ItemType) string { return typeIcons[t] },
		"date":      formatDate,
		"relDate":   relativeDate,
		"truncate":  truncate,
		"joinTags":  joinTags,
		"byType":    func(m map[model.ItemType]int64, t model.ItemType) int64 { return m[t] },
		"itemTypes": func() []model.ItemType { return model.ItemTypes },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

var pageTemplates = []string{
	"login.html",
	"dashboard.html",
	"items.html",
	"item_detail.html",
	"item_form.html",
	"not_found.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := web.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}
	for _, page := range pageTemplates {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl, err := template.New(page).Funcs(FuncMap()).Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		if tmpl, err = tmpl.Parse(string(pageBytes)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}
	return ts, nil
}

// Render исполняет шаблон в буфер, чтобы ошибка шаблона не оставила полстраницы.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
