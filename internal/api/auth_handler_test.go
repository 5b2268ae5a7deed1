package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollinate/task-api/internal/config"
	"github.com/pollinate/task-api/internal/mocks"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "test-secret-that-is-at-least-32-chars",
		TokenTTLSeconds: 3600,
		CookieName:      "token",
		CookieSecure:    false,
	}
}

type authHandlerDeps struct {
	userStore  *mocks.MockUserStore
	jwtService *mocks.MockJWTService
	hasher     *mocks.MockPasswordHasher
	verifier   *mocks.MockPasswordVerifier
	cfg        *config.AuthConfig
}

func newAuthHandler(t *testing.T) (*AuthHandler, *authHandlerDeps) {
	t.Helper()
	deps := &authHandlerDeps{
		userStore:  mocks.NewMockUserStore(),
		jwtService: &mocks.MockJWTService{Token: "signed.jwt.token"},
		hasher:     &mocks.MockPasswordHasher{},
		verifier:   &mocks.MockPasswordVerifier{ShouldSucceed: true},
		cfg:        testAuthConfig(),
	}
	handler := NewAuthHandler(deps.userStore, deps.jwtService, deps.hasher, deps.verifier, deps.cfg)
	return handler, deps
}

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAuthResponse(t *testing.T, rr *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Run("registers a new user", func(t *testing.T) {
		handler, deps := newAuthHandler(t)
		rr := httptest.NewRecorder()

		handler.Register(rr, postJSON(t, "/register", AuthRequest{
			Username: "alice",
			Password: "correct horse battery",
		}))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "User registered successfully!", decodeAuthResponse(t, rr).Response)

		stored, ok := deps.userStore.Users["alice"]
		require.True(t, ok, "user should be persisted")
		assert.Equal(t, "hashed:correct horse battery", stored.HashedPassword)
		assert.Empty(t, stored.Password, "plaintext password must not be stored")
	})

	t.Run("rejects a duplicate username with 409", func(t *testing.T) {
		handler, _ := newAuthHandler(t)
		first := httptest.NewRecorder()
		handler.Register(first, postJSON(t, "/register", AuthRequest{
			Username: "alice", Password: "first password",
		}))
		require.Equal(t, http.StatusCreated, first.Code)

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON(t, "/register", AuthRequest{
			Username: "alice", Password: "second password",
		}))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error: Username alice is already taken!")
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		handler, _ := newAuthHandler(t)

		tests := []struct {
			name string
			body AuthRequest
		}{
			{name: "missing username", body: AuthRequest{Password: "some password"}},
			{name: "missing password", body: AuthRequest{Username: "alice"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				handler.Register(rr, postJSON(t, "/register", tt.body))
				assert.Equal(t, http.StatusBadRequest, rr.Code)
			})
		}
	})

	t.Run("rejects a blank username", func(t *testing.T) {
		handler, _ := newAuthHandler(t)
		rr := httptest.NewRecorder()

		handler.Register(rr, postJSON(t, "/register", AuthRequest{
			Username: "   ", Password: "some password",
		}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler, _ := newAuthHandler(t)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))

		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 500 when hashing fails", func(t *testing.T) {
		handler, deps := newAuthHandler(t)
		deps.hasher.Err = errors.New("bcrypt failure")
		rr := httptest.NewRecorder()

		handler.Register(rr, postJSON(t, "/register", AuthRequest{
			Username: "alice", Password: "some password",
		}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "bcrypt", "internal details must not leak")
	})
}

func TestLogin(t *testing.T) {
	registerAlice := func(t *testing.T, handler *AuthHandler) {
		t.Helper()
		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON(t, "/register", AuthRequest{
			Username: "alice", Password: "correct horse battery",
		}))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	t.Run("sets the session cookie on success", func(t *testing.T) {
		handler, deps := newAuthHandler(t)
		registerAlice(t, handler)
		rr := httptest.NewRecorder()

		handler.Login(rr, postJSON(t, "/login", AuthRequest{
			Username: "alice", Password: "correct horse battery",
		}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Successfully authenticated user", decodeAuthResponse(t, rr).Response)
		assert.NotContains(t, rr.Body.String(), "signed.jwt.token", "token must not appear in the body")

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, deps.cfg.CookieName, cookie.Name)
		assert.Equal(t, "signed.jwt.token", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, deps.cfg.TokenTTLSeconds, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		handler, deps := newAuthHandler(t)
		registerAlice(t, handler)
		deps.verifier.ShouldSucceed = false

		unknown := httptest.NewRecorder()
		handler.Login(unknown, postJSON(t, "/login", AuthRequest{
			Username: "nobody", Password: "whatever",
		}))

		wrongPassword := httptest.NewRecorder()
		handler.Login(wrongPassword, postJSON(t, "/login", AuthRequest{
			Username: "alice", Password: "wrong password",
		}))

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.JSONEq(t, unknown.Body.String(), wrongPassword.Body.String())
		assert.Empty(t, unknown.Result().Cookies())
		assert.Empty(t, wrongPassword.Result().Cookies())
	})

	t.Run("returns 500 when token generation fails", func(t *testing.T) {
		handler, deps := newAuthHandler(t)
		registerAlice(t, handler)
		deps.jwtService.Token = ""
		deps.jwtService.Err = errors.New("signing failure")
		rr := httptest.NewRecorder()

		handler.Login(rr, postJSON(t, "/login", AuthRequest{
			Username: "alice", Password: "correct horse battery",
		}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})
}

func TestLogout(t *testing.T) {
	handler, deps := newAuthHandler(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)

	handler.Logout(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, deps.cfg.CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge, "cookie should expire immediately")
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	handler, _ := newAuthHandler(t)

	register := httptest.NewRecorder()
	handler.Register(register, postJSON(t, "/register", AuthRequest{
		Username: "alice", Password: "correct horse battery",
	}))
	require.Equal(t, http.StatusCreated, register.Code)

	login := httptest.NewRecorder()
	handler.Login(login, postJSON(t, "/login", AuthRequest{
		Username: "alice", Password: "correct horse battery",
	}))
	require.Equal(t, http.StatusOK, login.Code)
	require.Len(t, login.Result().Cookies(), 1)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	handler, _ := newAuthHandler(t)
	rr := httptest.NewRecorder()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	handler.Register(rr, postJSON(t, "/register", AuthRequest{
		Username: "alice", Password: string(long),
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NotContains(t, rr.Body.String(), string(long), "password must not be echoed back")
}
