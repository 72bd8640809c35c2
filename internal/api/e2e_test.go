package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"example.com/fitjournal/internal/auth"
	"example.com/fitjournal/internal/domain"
)

// newTestServer wires the full stack the way cmd/api does, with in-memory
// repositories standing in for Postgres.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	users := newMemUsers()
	accounts := domain.NewAccounts(users, auth.NewPasswordHasher(4), tokens)
	handler := NewHandler(accounts, memRepositories())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	skipper := func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/api/auth/") || r.URL.Path == "/healthz"
	}
	return auth.NewMiddleware(tokens, users, skipper).Wrap(mux)
}

func register(t *testing.T, server http.Handler, email, password string) UserView {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	var user UserView
	if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
		t.Fatalf("register: failed to decode response: %v", err)
	}
	return user
}

func login(t *testing.T, server http.Handler, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp TokenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login: failed to decode response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("login: expected token_type bearer got %q", resp.TokenType)
	}
	return resp.AccessToken
}

func doBearer(server http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func TestRegisterLoginCreateListDeleteFlow(t *testing.T) {
	server := newTestServer(t)

	register(t, server, "a@x.com", "secret123")
	token := login(t, server, "a@x.com", "secret123")

	rr := doBearer(server, token, http.MethodPost, "/api/exercises/", `{"name":"Squat","category":"Strength"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d: %s", rr.Code, rr.Body.String())
	}
	var created ExerciseView
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: failed to decode response: %v", err)
	}

	rr = doBearer(server, token, http.MethodGet, "/api/exercises/", "")
	var listed []ExerciseView
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("list: failed to decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Squat" || listed[0].Category != "Strength" {
		t.Fatalf("list: unexpected contents %+v", listed)
	}

	rr = doBearer(server, token, http.MethodDelete, "/api/exercises/1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d", rr.Code)
	}

	rr = doBearer(server, token, http.MethodGet, "/api/exercises/1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404 got %d", rr.Code)
	}
}

func TestTwoUsersSeeOnlyTheirOwnGoals(t *testing.T) {
	server := newTestServer(t)

	register(t, server, "a@x.com", "secret123")
	register(t, server, "b@x.com", "secret456")
	tokenA := login(t, server, "a@x.com", "secret123")
	tokenB := login(t, server, "b@x.com", "secret456")

	if rr := doBearer(server, tokenA, http.MethodPost, "/api/goals/", `{"title":"Run 5k"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rr.Code)
	}
	if rr := doBearer(server, tokenB, http.MethodPost, "/api/goals/", `{"title":"Run 5k"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rr.Code)
	}

	for _, token := range []string{tokenA, tokenB} {
		rr := doBearer(server, token, http.MethodGet, "/api/goals/", "")
		var goals []GoalView
		if err := json.Unmarshal(rr.Body.Bytes(), &goals); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(goals) != 1 || goals[0].Title != "Run 5k" {
			t.Fatalf("each user must see exactly their own goal, got %+v", goals)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server := newTestServer(t)

	register(t, server, "a@x.com", "secret123")

	body := `{"email":"a@x.com","password":"other"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "email_taken") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestRegisterNeverExposesPasswordHash(t *testing.T) {
	server := newTestServer(t)

	body := `{"email":"a@x.com","password":"secret123","full_name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "password") || strings.Contains(rr.Body.String(), "secret123") {
		t.Fatalf("credential material leaked: %s", rr.Body.String())
	}
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	server := newTestServer(t)

	register(t, server, "a@x.com", "secret123")

	attempt := func(email, password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {email}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		return rr
	}

	wrongPassword := attempt("a@x.com", "nope")
	unknownEmail := attempt("nobody@x.com", "secret123")

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("login failures must be indistinguishable")
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/exercises/", "/api/goals/", "/api/progress/", "/api/workouts/", "/api/plans/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, rr.Code)
		}
		if rr.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("%s: missing challenge header", path)
		}
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", "HS256", -time.Minute)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	users := newMemUsers()
	accounts := domain.NewAccounts(users, auth.NewPasswordHasher(4), tokens)
	handler := NewHandler(accounts, memRepositories())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	skipper := func(r *http.Request) bool { return strings.HasPrefix(r.URL.Path, "/api/auth/") }
	server := auth.NewMiddleware(tokens, users, skipper).Wrap(mux)

	register(t, server, "a@x.com", "secret123")
	token := login(t, server, "a@x.com", "secret123")

	rr := doBearer(server, token, http.MethodGet, "/api/exercises/", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token got %d", rr.Code)
	}
}
