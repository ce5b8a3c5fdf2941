package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/application/services"
	"notes-service/internal/infrastructure"
	"notes-service/internal/infrastructure/db"
	"notes-service/internal/infrastructure/db/dbtest"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb := dbtest.New(t)
	log := zerolog.Nop()
	noteRepo := db.NewNoteRepository(gdb)
	tagRepo := db.NewTagRepository(gdb)

	h := NewHandler(
		services.NewNoteService(noteRepo, tagRepo, infrastructure.NewMailer(infrastructure.MailerOptions{}, log), nil, log),
		services.NewUserService(
			db.NewUserRepository(gdb),
			infrastructure.NewRedisServiceWithClient(nil),
			infrastructure.NewJWTService("test-secret", time.Hour),
			infrastructure.NewRateLimiter(time.Minute, 100),
			log,
		),
		services.NewTagService(tagRepo),
	)
	return &testServer{t: t, e: NewServer(h, ServerConfig{Logger: log})}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// signup registers and logs in a user, returning its id and token.
func (s *testServer) signup(username string) (uint, string) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var user struct {
		Id uint `json:"id"`
	}
	decode(s.t, rec, &user)

	rec = s.do(http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, rec, &login)
	return user.Id, login.AccessToken
}

func (s *testServer) createNote(token string, userID uint, title string) uint {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/note", token, map[string]any{
		"title": title, "content": "content of " + title, "user_id": userID,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var note struct {
		Id uint `json:"id"`
	}
	decode(s.t, rec, &note)
	return note.Id
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	decode(t, rec, &body)
	return body
}

func TestNoteLifecycleAcrossUsers(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	_, bob := s.signup("bob")

	rec := s.do(http.MethodPost, "/note", alice, map[string]any{"title": "T", "content": "C", "user_id": aliceID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	decode(t, rec, &created)
	assert.EqualValues(t, 1, created["id"])
	assert.NotEmpty(t, created["date"])
	assert.NotContains(t, created, "user_id")
	assert.Equal(t, "alice", created["user"].(map[string]any)["username"])

	rec = s.do(http.MethodGet, "/note/1", bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, http.StatusForbidden, body.Code)
	assert.Equal(t, "Forbidden", body.Status)

	rec = s.do(http.MethodDelete, "/note/1", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Note deleted."}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/note/1", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found.", errorBody(t, rec).Message)
}

func TestCreateNoteForAnotherUserIsForbidden(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.signup("alice")
	bobID, bob := s.signup("bob")

	rec := s.do(http.MethodPost, "/note", alice, map[string]any{"title": "T", "content": "C", "user_id": bobID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/note", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_notes":0`)
}

func TestCreateAndUpdateNoteAcceptLongTitles(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	long := strings.Repeat("t", 1000)

	rec := s.do(http.MethodPost, "/note", alice, map[string]any{"title": long, "content": "C", "user_id": aliceID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var note struct {
		Id    uint   `json:"id"`
		Title string `json:"title"`
	}
	decode(t, rec, &note)
	assert.Equal(t, long, note.Title)

	rec = s.do(http.MethodPut, fmt.Sprintf("/note/%d", note.Id), alice, map[string]any{"title": long + "!"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateNote(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	_, bob := s.signup("bob")
	noteID := s.createNote(alice, aliceID, "original")
	path := fmt.Sprintf("/note/%d", noteID)

	rec := s.do(http.MethodPut, path, alice, map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var note map[string]any
	decode(t, rec, &note)
	assert.Equal(t, "renamed", note["title"])
	assert.Equal(t, "content of original", note["content"])

	rec = s.do(http.MethodPut, path, bob, map[string]any{"title": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, "/note/999", alice, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/note/abc", alice, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotes(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	for _, title := range []string{"b", "d", "a", "c"} {
		s.createNote(alice, aliceID, title)
	}

	rec := s.do(http.MethodGet, "/note?page=2&per_page=3&sort_by=title&order=asc", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Notes []struct {
			Title  string `json:"title"`
			UserId uint   `json:"user_id"`
		} `json:"notes"`
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		TotalPages int `json:"total_pages"`
		TotalNotes int `json:"total_notes"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 3, list.PerPage)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 4, list.TotalNotes)
	require.Len(t, list.Notes, 1)
	assert.Equal(t, "d", list.Notes[0].Title)
	assert.Equal(t, aliceID, list.Notes[0].UserId)

	rec = s.do(http.MethodGet, "/note?page=5", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)

	rec = s.do(http.MethodGet, "/note?page=9223372036854775807", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)
	assert.Contains(t, rec.Body.String(), `"total_notes":4`)

	for _, q := range []string{"sort_by=owner", "order=sideways", "per_page=101", "page=-1", "page=abc"} {
		rec = s.do(http.MethodGet, "/note?"+q, alice, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, q)
	}

	body := errorBody(t, s.do(http.MethodGet, "/note?sort_by=owner", alice, nil))
	assert.Equal(t, "must be one of: date title", body.Errors["sort_by"])
}

func TestTagFlow(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	noteID := s.createNote(alice, aliceID, "tagged")
	s.createNote(alice, aliceID, "untagged")

	rec := s.do(http.MethodPost, "/tag", alice, map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tag struct {
		Id   uint   `json:"id"`
		Name string `json:"name"`
	}
	decode(t, rec, &tag)

	rec = s.do(http.MethodPost, "/tag", alice, map[string]string{"name": "Work"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/note/%d/tag/%d", noteID, tag.Id), alice, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/note?tag=WOR", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_notes":1`)
	assert.Contains(t, rec.Body.String(), `"name":"Work"`)

	rec = s.do(http.MethodGet, "/tag/autocomplete?query=wo", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":["Work"]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/tag/autocomplete", alice, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/note/%d/tag/%d", noteID, tag.Id), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/note?tag=work", alice, nil)
	assert.Contains(t, rec.Body.String(), `"total_notes":0`)

	rec = s.do(http.MethodPost, "/tag", alice, map[string]string{"name": "École"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &tag)
	rec = s.do(http.MethodPost, fmt.Sprintf("/note/%d/tag/%d", noteID, tag.Id), alice, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, filter := range []string{"École", "ÉCOLE", "éco"} {
		rec = s.do(http.MethodGet, "/note?tag="+url.QueryEscape(filter), alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_notes":1`, filter)
	}
}

func TestShareNote(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	noteID := s.createNote(alice, aliceID, "shared")
	path := fmt.Sprintf("/note/%d/share", noteID)

	rec := s.do(http.MethodPost, path, alice, map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "must be a valid email address", errorBody(t, rec).Errors["email"])

	rec = s.do(http.MethodPost, path, alice, map[string]string{"email": "friend@example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.signup("alice")

	rec := s.do(http.MethodGet, "/note", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization token.", errorBody(t, rec).Message)

	rec = s.do(http.MethodGet, "/note", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/register", "", map[string]string{"username": "al", "email": "x", "password": "1"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := errorBody(t, rec)
	assert.Len(t, body.Errors, 3)
	assert.Equal(t, "must be at least 3 characters", body.Errors["username"])

	rec = s.do(http.MethodPost, "/logout", alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.signup("alice")

	rec := s.do(http.MethodPut, "/profile", alice, map[string]string{"full_name": "Alice L", "bio": "hello"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/profile", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice","email":"alice@example.com","full_name":"Alice L","profile_picture":"","bio":"hello"}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/profile", alice, map[string]string{"bio": "no name"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", errorBody(t, rec).Status)
}
