package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// LoginPath — страница входа, куда отправляются неаутентифицированные навигации.
const LoginPath = "/login"

var publicPrefixes = []string{"/api/auth/", "/static/"}

var publicPaths = map[string]struct{}{
	LoginPath:   {},
	"/api/auth": {},
	"/healthz":  {},
}

// IsPublicPath — маршруты, доступные без сессии.
func IsPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequireAuth пропускает публичные маршруты и запросы с сессией.
// Остальные: /api/* получает 401 в JSON, страницы — редирект на вход.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := GetUserIDFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}

		target := LoginPath
		if r.Method == http.MethodGet && r.URL.Path != "/" {
			target += "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

// SafeNext возвращает локальный путь для редиректа после входа.
// Внешние адреса (//host, схемы) отбрасываются.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/dashboard"
	}
	return next
}
