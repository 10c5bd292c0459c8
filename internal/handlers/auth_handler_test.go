package handlers_test

import (
	"MeuArsenal/internal/middleware"
	"MeuArsenal/internal/model"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuth_Login(t *testing.T) {
	m := new(mockUserRepo)
	router := newMockRouter(t, m)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	name := "Alice"
	alice := &model.User{ID: "u-1", Email: "alice@example.com", Password: string(hash), Name: &name}

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":"u-1","email":"alice@example.com","name":"Alice"}`, rr.Body.String())
		c := findCookie(rr, middleware.CookieName)
		if assert.NotNil(t, c, "Set-Cookie auth_token expected") {
			assert.True(t, c.HttpOnly)
			claims, err := middleware.ParseJWT(c.Value, testSecret)
			assert.NoError(t, err)
			assert.Equal(t, "u-1", claims.Subject)
		}
		m.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rr.Body.String())
		assert.Nil(t, findCookie(rr, middleware.CookieName))
		m.AssertExpectations(t)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ghost@example.com","password":"secret"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rr.Body.String())
		m.AssertExpectations(t)
	})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuth_LogoutAndSession(t *testing.T) {
	router := newMockRouter(t, new(mockUserRepo))

	t.Run("anonymous session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"user":null}`, rr.Body.String())
	})

	t.Run("authorized session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		addAuthCookie(t, req, "u-77")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "u-77", body.User.ID)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		addAuthCookie(t, req, "u-77")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true}`, rr.Body.String())
		c := findCookie(rr, middleware.CookieName)
		if assert.NotNil(t, c) {
			assert.Less(t, c.MaxAge, 0)
		}
	})
}

func TestPages_LoginForm(t *testing.T) {
	m := new(mockUserRepo)
	router := newMockRouter(t, m)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	bob := &model.User{ID: "u-2", Email: "bob@example.com", Password: string(hash)}

	post := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("login page renders", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login?next=/items", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="next" value="/items"`)
	})

	t.Run("success redirects to next", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(bob, nil).Once()

		rr := post(url.Values{"email": {"bob@example.com"}, "password": {"secret"}, "next": {"/items?type=tool"}})
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/items?type=tool", rr.Header().Get("Location"))
		assert.NotNil(t, findCookie(rr, middleware.CookieName))
	})

	t.Run("external next is ignored", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(bob, nil).Once()

		rr := post(url.Values{"email": {"bob@example.com"}, "password": {"secret"}, "next": {"//evil.example"}})
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	})

	t.Run("failure re-renders with error", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(bob, nil).Once()

		rr := post(url.Values{"email": {"bob@example.com"}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email ou senha inválidos")
		assert.Nil(t, findCookie(rr, middleware.CookieName))
	})

	t.Run("logout redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		addAuthCookie(t, req, "u-2")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})
}
