package handlers_test

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/handlers"
	"MeuArsenal/internal/middleware"
	"MeuArsenal/internal/model"
	"MeuArsenal/internal/repo"
	"MeuArsenal/internal/service"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// testServer — роутер поверх настоящей sqlite-базы во временном каталоге.
type testServer struct {
	router http.Handler
	items  *service.ItemService
	users  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "arsenal.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	users := service.NewUserService(repo.NewUserRepository(db))
	items := service.NewItemService(repo.NewItemRepository(db), logger)
	h, err := handlers.NewHandler(users, items, logger, &config.Config{AuthSecret: testSecret})
	require.NoError(t, err)
	return &testServer{router: h.Router, items: items, users: users}
}

// newMockRouter — роутер с замоканным репозиторием пользователей.
func newMockRouter(t *testing.T, ur repo.UserRepository) http.Handler {
	t.Helper()
	logger := zap.NewNop().Sugar()
	userSvc := service.NewUserService(ur)
	// для user-тестов item-сервис не используется
	itemSvc := service.NewItemService(nil, logger)
	h, err := handlers.NewHandler(userSvc, itemSvc, logger, &config.Config{AuthSecret: testSecret})
	require.NoError(t, err)
	return h.Router
}

func authCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := middleware.BuildJWT(userID, testSecret, time.Now())
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.CookieName, Value: token}
}

func addAuthCookie(t *testing.T, req *http.Request, userID string) {
	t.Helper()
	req.AddCookie(authCookie(t, userID))
}

// do выполняет запрос от имени аутентифицированного пользователя.
func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuthCookie(t, req, "test-user")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// form отправляет HTML-форму от имени аутентифицированного пользователя.
func (s *testServer) form(t *testing.T, path string, values url.Values, referer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	addAuthCookie(t, req, "test-user")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) createItem(t *testing.T, body string) model.Item {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/items", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeItem(t, rr)
}

func decodeItem(t *testing.T, rr *httptest.ResponseRecorder) model.Item {
	t.Helper()
	var it model.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &it))
	return it
}

func decodeItems(t *testing.T, rr *httptest.ResponseRecorder) []model.Item {
	t.Helper()
	var items []model.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	return items
}

func titles(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
