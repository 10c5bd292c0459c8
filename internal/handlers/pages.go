package handlers

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/middleware"
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/service"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Подсказки для полей формы, к ним добавляются значения из базы.
var (
	defaultCategories = []string{"Desenvolvimento", "Frontend", "Backend", "DevOps", "Design", "Documentação", "Produtividade", "Outro"}
	defaultStacks     = []string{"Geral", "React", "Next.js", "Vue", "Node.js", "Python", "TypeScript", "JavaScript", "CSS", "Docker", "AWS"}
)

// PageData is the base data passed to all templates.
type PageData struct {
	Title         string
	Error         string
	Path          string
	Authenticated bool
}

// PageHandler отдаёт серверные HTML-страницы.
type PageHandler struct {
	UserService *service.UserService
	ItemService *service.ItemService
	Templates   *Templates
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewPageHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	templates *Templates,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *PageHandler {
	return &PageHandler{
		UserService: userService,
		ItemService: itemService,
		Templates:   templates,
		Logger:      logger,
		Config:      cfg,
	}
}

func (h *PageHandler) page(r *http.Request, title string) PageData {
	_, ok := middleware.GetUserIDFromContext(r.Context())
	return PageData{Title: title, Path: r.URL.Path, Authenticated: ok}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	if err := h.Templates.Render(w, status, name, data); err != nil {
		h.Logger.Errorw("failed to render template", "template", name, "error", err)
	}
}

func (h *PageHandler) serverError(w http.ResponseWriter, op string, err error) {
	h.Logger.Errorw(op+": service error", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// NotFound рендерит страницу 404.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "not_found.html", h.page(r, "Não encontrado"))
}

type loginPage struct {
	PageData
	Email string
	Next  string
}

// LoginPage handles GET /login.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login.html", &loginPage{
		PageData: h.page(r, "Entrar"),
		Next:     r.URL.Query().Get("next"),
	})
}

// LoginSubmit handles POST /login.
func (h *PageHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	next := r.FormValue("next")

	user, err := h.UserService.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		data := &loginPage{PageData: h.page(r, "Entrar"), Email: email, Next: next}
		if errors.Is(err, service.ErrInvalidCredentials) {
			data.Error = "Email ou senha inválidos"
			h.render(w, http.StatusUnauthorized, "login.html", data)
			return
		}
		h.Logger.Errorw("LoginSubmit: service error", "error", err)
		data.Error = "Erro ao entrar. Tente novamente."
		h.render(w, http.StatusInternalServerError, "login.html", data)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.serverError(w, "LoginSubmit", err)
		return
	}
	h.Logger.Infow("user logged in", "user_id", user.ID)
	http.Redirect(w, r, middleware.SafeNext(next), http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// Dashboard handles GET /dashboard.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ItemService.Stats(r.Context())
	if err != nil {
		h.serverError(w, "Dashboard", err)
		return
	}
	h.render(w, http.StatusOK, "dashboard.html", &struct {
		PageData
		Stats *model.Stats
	}{
		PageData: h.page(r, "Dashboard"),
		Stats:    stats,
	})
}

// ItemsPage handles GET /items.
func (h *PageHandler) ItemsPage(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	items, err := h.ItemService.List(r.Context(), filter)
	if err != nil {
		h.serverError(w, "ItemsPage", err)
		return
	}
	opts, err := h.ItemService.FilterOptions(r.Context())
	if err != nil {
		h.serverError(w, "ItemsPage", err)
		return
	}

	title := "Todos os Itens"
	if l, ok := typeLabels[filter.Type]; ok {
		title = l + "s"
	} else if filter.FavoriteOnly {
		title = "Favoritos"
	}

	h.render(w, http.StatusOK, "items.html", &struct {
		PageData
		Items   []model.Item
		Filter  model.ItemFilter
		Options service.FilterOptions
	}{
		PageData: h.page(r, title),
		Items:    items,
		Filter:   filter,
		Options:  opts,
	})
}

// formValues — значения полей формы элемента (для предзаполнения и повторного показа).
type formValues struct {
	Type        model.ItemType
	Title       string
	Description string
	Content     string
	Tags        string
	Category    string
	Stack       string
	Favorite    bool
}

func formFromItem(it *model.Item) formValues {
	f := formValues{
		Type:     it.Type,
		Title:    it.Title,
		Content:  it.Content,
		Tags:     joinTags(it.Tags),
		Favorite: it.Favorite,
	}
	if it.Description != nil {
		f.Description = *it.Description
	}
	if it.Category != nil {
		f.Category = *it.Category
	}
	if it.Stack != nil {
		f.Stack = *it.Stack
	}
	return f
}

func formFromRequest(r *http.Request) formValues {
	return formValues{
		Type:        model.ItemType(r.FormValue("type")),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		Tags:        r.FormValue("tags"),
		Category:    r.FormValue("category"),
		Stack:       r.FormValue("stack"),
		Favorite:    r.FormValue("favorite") != "",
	}
}

func (f formValues) input() service.ItemInput {
	return service.ItemInput{
		Type:        f.Type,
		Title:       f.Title,
		Description: f.Description,
		Content:     f.Content,
		Tags:        model.SplitTags(f.Tags),
		Category:    f.Category,
		Stack:       f.Stack,
	}
}

func joinTags(t model.Tags) string {
	return strings.Join(t, ", ")
}

type formPage struct {
	PageData
	Item       *model.Item
	Form       formValues
	Categories []string
	Stacks     []string
}

// renderForm показывает форму создания (item == nil) или редактирования.
func (h *PageHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, item *model.Item, form formValues, errMsg string) {
	opts, err := h.ItemService.FilterOptions(r.Context())
	if err != nil {
		h.serverError(w, "renderForm", err)
		return
	}
	title := "Novo Item"
	if item != nil {
		title = "Editar Item"
	}
	data := &formPage{
		PageData:   h.page(r, title),
		Item:       item,
		Form:       form,
		Categories: mergeOptions(defaultCategories, opts.Categories),
		Stacks:     mergeOptions(defaultStacks, opts.Stacks),
	}
	data.Error = errMsg
	h.render(w, status, "item_form.html", data)
}

func mergeOptions(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// NewItemPage handles GET /items/new?type=.
func (h *PageHandler) NewItemPage(w http.ResponseWriter, r *http.Request) {
	t := model.ItemType(r.URL.Query().Get("type"))
	if !t.Valid() {
		t = model.ItemTypePrompt
	}
	h.renderForm(w, r, http.StatusOK, nil, formValues{Type: t}, "")
}

// CreateItem handles POST /items.
func (h *PageHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	form := formFromRequest(r)
	in := form.input()
	in.Favorite = &form.Favorite

	it, err := h.ItemService.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, r, http.StatusBadRequest, nil, form, "Preencha tipo, título e conteúdo")
			return
		}
		h.serverError(w, "CreateItem", err)
		return
	}
	http.Redirect(w, r, "/items/"+it.ID, http.StatusSeeOther)
}

// ItemDetailPage handles GET /items/{id}; ?edit=1 открывает форму редактирования.
func (h *PageHandler) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, "ItemDetailPage", err)
		return
	}

	if r.URL.Query().Get("edit") == "1" {
		h.renderForm(w, r, http.StatusOK, it, formFromItem(it), "")
		return
	}

	h.render(w, http.StatusOK, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: h.page(r, it.Title),
		Item:     it,
	})
}

// UpdateItem handles POST /items/{id}. Избранное формой редактирования не меняется.
func (h *PageHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := formFromRequest(r)

	it, err := h.ItemService.Update(r.Context(), id, form.input())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			h.NotFound(w, r)
		case errors.Is(err, service.ErrValidation):
			existing, getErr := h.ItemService.Get(r.Context(), id)
			if getErr != nil {
				h.serverError(w, "UpdateItem", getErr)
				return
			}
			h.renderForm(w, r, http.StatusBadRequest, existing, form, "Preencha tipo, título e conteúdo")
		default:
			h.serverError(w, "UpdateItem", err)
		}
		return
	}
	http.Redirect(w, r, "/items/"+it.ID, http.StatusSeeOther)
}

// DeleteItem handles POST /items/{id}/delete.
func (h *PageHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, "DeleteItem", err)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ToggleFavorite handles POST /items/{id}/favorite.
func (h *PageHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.ItemService.SetFavorite(r.Context(), id, nil); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, "ToggleFavorite", err)
		return
	}
	redirectBack(w, r, "/items/"+id)
}

// UseItem handles POST /items/{id}/use.
func (h *PageHandler) UseItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.ItemService.RecordUse(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, "UseItem", err)
		return
	}
	redirectBack(w, r, "/items/"+id)
}

// redirectBack возвращает на страницу из Referer того же хоста, иначе на fallback.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && ref.Path != "" {
		target = ref.RequestURI()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
