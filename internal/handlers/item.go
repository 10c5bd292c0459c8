package handlers

import (
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/service"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler — JSON API над элементами арсенала.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

// itemRequest — тело POST/PUT. tags принимается массивом или строкой с JSON-массивом.
type itemRequest struct {
	Type        model.ItemType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Tags        model.Tags     `json:"tags"`
	Category    string         `json:"category"`
	Stack       string         `json:"stack"`
	Favorite    *bool          `json:"favorite"`
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		Category:    req.Category,
		Stack:       req.Stack,
		Favorite:    req.Favorite,
	}
}

// filterFromQuery собирает фильтр списка из query-параметров.
func filterFromQuery(r *http.Request) model.ItemFilter {
	q := r.URL.Query()
	return model.ItemFilter{
		Search:       q.Get("search"),
		Type:         model.ItemType(q.Get("type")),
		Category:     q.Get("category"),
		Stack:        q.Get("stack"),
		FavoriteOnly: q.Get("favorite") == "true",
	}
}

// fail переводит ошибку сервиса в HTTP-ответ.
func (h *ItemHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// List GET /api/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.List(r.Context(), filterFromQuery(r))
	if err != nil {
		h.fail(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	it, err := h.ItemService.Create(r.Context(), req.input())
	if err != nil {
		h.fail(w, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// Get GET /api/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Update PUT /api/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	it, err := h.ItemService.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.fail(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Delete DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Favorite PATCH /api/items/{id}/favorite.
// Тело {"favorite": bool} необязательно: без него значение переключается.
func (h *ItemHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var req struct {
		Favorite *bool `json:"favorite"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.Logger.Warnw("Favorite: invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	it, err := h.ItemService.SetFavorite(r.Context(), chi.URLParam(r, "id"), req.Favorite)
	if err != nil {
		h.fail(w, "Favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Use POST /api/items/{id}/use
func (h *ItemHandler) Use(w http.ResponseWriter, r *http.Request) {
	n, err := h.ItemService.RecordUse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "Use", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"usageCount": n})
}

// Filters GET /api/items/filters
func (h *ItemHandler) Filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.ItemService.FilterOptions(r.Context())
	if err != nil {
		h.fail(w, "Filters", err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// Stats GET /api/stats
func (h *ItemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.ItemService.Stats(r.Context())
	if err != nil {
		h.fail(w, "Stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
