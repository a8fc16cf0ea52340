package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notekeeper/auth"
	"github.com/oliverisaac/notekeeper/credentials"
	"github.com/oliverisaac/notekeeper/notes"
	"github.com/oliverisaac/notekeeper/store"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := types.Config{
		AllowSignup:       true,
		CookeSecret:       []byte("test-secret-test-secret-test-sec"),
		DBDriver:          types.DBDriverSqlite,
		DBPath:            filepath.Join(t.TempDir(), "test.db"),
		DBConnectAttempts: 1,
		BcryptCost:        bcrypt.MinCost,
	}

	db, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	creds, err := credentials.NewService(db, credentials.BcryptHasher{Cost: cfg.BcryptCost}, cfg)
	require.NoError(t, err)

	e, err := newServer(cfg, auth.NewGuard(db), notes.NewService(db), creds)
	require.NoError(t, err)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signIn(t *testing.T, e *echo.Echo, email string) []*http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password1"}`, email)

	rec := do(t, e, http.MethodPost, "/api/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/login", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createTestNote(t *testing.T, e *echo.Echo, cookies []*http.Cookie, title string) noteResponse {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"content":"1234567890"}`, title)
	rec := do(t, e, http.MethodPost, "/api/note", body, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[noteResponse](t, rec)
}

func TestHealthAndVersion(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = do(t, e, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, version, decode[map[string]string](t, rec)["version"])
}

func TestRegisterErrors(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"password1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"password2"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/register", `{"email":"not-an-email","password":"short"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode[map[string]map[string][]string](t, rec)["errors"]
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	rec = do(t, e, http.MethodPost, "/api/register", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/api/register", `{"email":"a@b.com","password":"password1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := do(t, e, http.MethodPost, "/api/login", `{"email":"nouser@x.com","password":"whatever1"}`, nil)
	wrong := do(t, e, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"wrongpass"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Empty(t, unknown.Result().Cookies())
}

func TestNoteLifecycle(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")

	created := createTestNote(t, e, cookies, "Hello World")
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	path := fmt.Sprintf("/api/note/%d", created.ID)
	rec := do(t, e, http.MethodGet, path, "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[noteResponse](t, rec))

	rec = do(t, e, http.MethodPatch, path, `{"content":"0987654321"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[noteResponse](t, rec)
	assert.Equal(t, "Hello World", patched.Title)
	assert.Equal(t, "0987654321", patched.Content)
	assert.Equal(t, created.CreatedAt, patched.CreatedAt)

	rec = do(t, e, http.MethodPatch, path, `{}`, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPatch, path, `{"title":"  "}`, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, e, http.MethodDelete, path, "", cookies)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, http.MethodDelete, path, "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateNoteValidation(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")

	rec := do(t, e, http.MethodPost, "/api/note", `{"title":"Hi","content":"short"}`, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode[map[string]map[string][]string](t, rec)["errors"]
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "content")
}

func TestAnonymousAccess(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")
	note := createTestNote(t, e, cookies, "Alice note")

	rec := do(t, e, http.MethodPost, "/api/note", `{"title":"Hello World","content":"1234567890"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/note", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/note/%d", note.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOtherUsersNotesAreHidden(t *testing.T) {
	e := newTestServer(t)
	alice := signIn(t, e, "alice@b.com")
	bob := signIn(t, e, "bob@b.com")
	note := createTestNote(t, e, alice, "Alice note")
	path := fmt.Sprintf("/api/note/%d", note.ID)
	missing := fmt.Sprintf("/api/note/%d", note.ID+1000)

	foreign := do(t, e, http.MethodGet, path, "", bob)
	absent := do(t, e, http.MethodGet, missing, "", bob)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, absent.Code)

	rec := do(t, e, http.MethodPatch, path, `{"title":"Hijacked"}`, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodDelete, path, "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/note", "", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]noteListResponse](t, rec)["notes"]
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(0), list.Meta.Total)

	rec = do(t, e, http.MethodGet, path, "", alice)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListNotesQuery(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")
	createTestNote(t, e, cookies, "Apple Pie")
	createTestNote(t, e, cookies, "Banana Bread")

	rec := do(t, e, http.MethodGet, "/api/note?search=apple&page=-3&limit=abc", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]noteListResponse](t, rec)["notes"]
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Apple Pie", list.Items[0].Title)
	assert.Equal(t, listMetaResponse{Page: 1, Limit: notes.DefaultLimit, Total: 1}, list.Meta)

	rec = do(t, e, http.MethodGet, "/api/note?sortBy=title&order=asc&limit=50", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[map[string]noteListResponse](t, rec)["notes"]
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Apple Pie", list.Items[0].Title)
	assert.Equal(t, notes.MaxLimit, list.Meta.Limit)
}

func TestRegisterLongPassword(t *testing.T) {
	e := newTestServer(t)
	body := fmt.Sprintf(`{"email":"long@b.com","password":%q}`, strings.Repeat("x", 80))

	rec := do(t, e, http.MethodPost, "/api/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/login", body, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListHugePage(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")
	for _, title := range []string{"First note", "Second note", "Third note"} {
		createTestNote(t, e, cookies, title)
	}

	rec := do(t, e, http.MethodGet, fmt.Sprintf("/api/note?page=%d&limit=2", math.MaxInt), "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]noteListResponse](t, rec)["notes"]
	assert.Empty(t, list.Items)
	assert.Equal(t, listMetaResponse{Page: math.MaxInt, Limit: 2, Total: 3}, list.Meta)
}

func TestInvalidNoteID(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")

	rec := do(t, e, http.MethodGet, "/api/note/abc", "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout(t *testing.T) {
	e := newTestServer(t)
	cookies := signIn(t, e, "alice@b.com")

	rec := do(t, e, http.MethodPost, "/api/logout", "", cookies)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cleared := rec.Result().Cookies()
	require.NotEmpty(t, cleared)
	rec = do(t, e, http.MethodGet, "/api/note", "", cleared)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
