package handlers

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/middleware"
	"MeuArsenal/internal/service"
	"MeuArsenal/web"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	logger *zap.SugaredLogger,
	config *config.Config,
) (*Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))
	r.Use(middleware.RequireAuth)

	// Handlers
	authHandler := NewAuthHandler(userService, logger, config)
	itemHandler := NewItemHandler(itemService, logger)
	pages := NewPageHandler(userService, itemService, templates, logger, config)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		// Item routes
		r.Get("/items", itemHandler.List)
		r.Post("/items", itemHandler.Create)
		r.Get("/items/filters", itemHandler.Filters)
		r.Get("/items/{id}", itemHandler.Get)
		r.Put("/items/{id}", itemHandler.Update)
		r.Delete("/items/{id}", itemHandler.Delete)
		r.Patch("/items/{id}/favorite", itemHandler.Favorite)
		r.Post("/items/{id}/use", itemHandler.Use)

		r.Get("/stats", itemHandler.Stats)
	})

	// Pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	r.Get("/login", pages.LoginPage)
	r.Post("/login", pages.LoginSubmit)
	r.Post("/logout", pages.Logout)
	r.Get("/dashboard", pages.Dashboard)
	r.Get("/items", pages.ItemsPage)
	r.Get("/items/new", pages.NewItemPage)
	r.Post("/items", pages.CreateItem)
	r.Get("/items/{id}", pages.ItemDetailPage)
	r.Post("/items/{id}", pages.UpdateItem)
	r.Post("/items/{id}/delete", pages.DeleteItem)
	r.Post("/items/{id}/favorite", pages.ToggleFavorite)
	r.Post("/items/{id}/use", pages.UseItem)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		pages.NotFound(w, r)
	})

	return &Handler{Router: r}, nil
}
