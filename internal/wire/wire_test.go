package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jua-kali/internal/adaptor"
	"jua-kali/internal/data/repository/repotest"
	"jua-kali/pkg/auth"
	"jua-kali/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testApp struct {
	t      *testing.T
	router http.Handler
}

func newTestApp(t *testing.T, probes map[string]adaptor.Pinger) *testApp {
	t.Helper()

	tokens, err := auth.NewTokenIssuer([]byte("wire-test-secret"), time.Hour)
	require.NoError(t, err)

	config := &utils.Config{
		App:      utils.AppConfig{Name: "jua-kali-test"},
		JWT:      utils.JWTConfig{Secret: "wire-test-secret", ExpiryMinutes: 60},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost},
		CORS:     utils.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	store := repotest.NewStore("Plumbing", "Carpentry")
	app := Wiring(store.Repository(), tokens, config, zap.NewNop(), probes)

	return &testApp{t: t, router: app.Router}
}

func (a *testApp) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (a *testApp) register(body map[string]any) string {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, code, string(env.Errors))

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(a.t, data.Token)
	return data.Token
}

func artisanBody() map[string]any {
	return map[string]any{
		"full_name":        "Wanjiru Kamau",
		"email":            "wanjiru@example.com",
		"phone_number":     "0712345678",
		"password":         "s3cret-pass",
		"role":             "artisan",
		"location":         "Nairobi",
		"bio":              "Plumber",
		"years_experience": 4,
		"skills":           []string{"Plumbing", "Welding"},
	}
}

func clientBody() map[string]any {
	return map[string]any{
		"full_name":    "Otieno Ouma",
		"email":        "otieno@example.com",
		"phone_number": "0798765432",
		"password":     "s3cret-pass",
		"role":         "client",
	}
}

func TestRouter_ArtisanRegisterThenMe(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.register(artisanBody())

	code, env := app.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "wanjiru@example.com", me.Email)
	assert.Equal(t, "artisan", me.Role)

	code, _ = app.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_ClientOnArtisanRoute(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.register(clientBody())

	code, env := app.do(http.MethodPut, "/api/artisans/me", token, map[string]any{
		"bio": "not an artisan",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.Status)
}

func TestRouter_DuplicateEmail(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(artisanBody())

	again := clientBody()
	again["email"] = "Wanjiru@Example.com"

	code, env := app.do(http.MethodPost, "/api/auth/register", "", again)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Status)
}

func TestRouter_RegisterBlankFields(t *testing.T) {
	app := newTestApp(t, nil)

	body := clientBody()
	body["full_name"] = "   "
	body["phone_number"] = "          "

	code, env := app.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Errors, &fields))
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "phone_number")
}

func TestRouter_Unauthenticated(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"no token", http.MethodGet, "/api/auth/me", ""},
		{"garbage token", http.MethodGet, "/api/users/me", "not.a.token"},
		{"guarded artisan route", http.MethodPut, "/api/artisans/me", ""},
		{"guarded client route", http.MethodPost, "/api/jobs", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := app.do(tt.method, tt.path, tt.token, map[string]any{})
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}
}

func TestRouter_LoginAndSession(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(artisanBody())

	code, env := app.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "wanjiru@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	code, env = app.do(http.MethodGet, "/api/auth/session?role=artisan", login.Token, nil)
	require.Equal(t, http.StatusOK, code)

	var session struct {
		State string `json:"state"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, string(auth.AccessAuthenticated), session.State)
	assert.Equal(t, "artisan", session.Role)

	code, env = app.do(http.MethodGet, "/api/auth/session", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, string(auth.AccessAnonymous), session.State)

	code, _ = app.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "wanjiru@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_PublicListings(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(artisanBody())

	code, _ := app.do(http.MethodGet, "/api/skills", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = app.do(http.MethodGet, "/api/artisans?skill=Plumbing", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = app.do(http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env := app.do(http.MethodGet, "/api/jobs?page=9223372036854775807&per_page=100", "", nil)
	require.Equal(t, http.StatusOK, code)

	var jobs struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Empty(t, jobs.Data)
}

func TestRouter_Health(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		app := newTestApp(t, map[string]adaptor.Pinger{
			"postgres": func(context.Context) error { return nil },
		})

		code, _ := app.do(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, code)

		code, _ = app.do(http.MethodGet, "/health/ready", "", nil)
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("degraded", func(t *testing.T) {
		app := newTestApp(t, map[string]adaptor.Pinger{
			"postgres": func(context.Context) error { return errors.New("connection refused") },
		})

		code, _ := app.do(http.MethodGet, "/health/ready", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})
}
