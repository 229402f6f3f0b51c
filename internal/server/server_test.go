package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/storage"
	"chirp/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	root := t.TempDir()
	cfg := &config.Config{
		Env:              "test",
		JWTSecret:        testSecret,
		MediaRoot:        root,
		MediaMaxUploadMB: 1,
	}
	s := NewServerWithDeps(cfg, db, storage.NewLocalSaver(root, 1<<20))
	return s.NewApp(), db
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return resp.StatusCode, body
}

func call(t *testing.T, app *fiber.App, method, path, handle string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if handle != "" {
		req.Header.Set("api-key", handle)
	}
	return send(t, app, req)
}

func upload(t *testing.T, app *fiber.App, handle, field, filename string, content []byte) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/medias", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("api-key", handle)
	return send(t, app, req)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestHealthChecks(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])

	status, body = call(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["database"])
}

func TestAPI_RequiresCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["result"])
	assert.Equal(t, "UNAUTHORIZED", body["error_type"])
}

func TestProfileEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	bob := testutil.CreateAccount(t, db, "bob", "Bob")
	testutil.CreateFollow(t, db, bob.ID, alice.ID)

	status, body := call(t, app, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["result"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	followers := user["followers"].([]interface{})
	require.Len(t, followers, 1)
	assert.Equal(t, "Bob", followers[0].(map[string]interface{})["name"])
	assert.Empty(t, user["following"])

	status, body = call(t, app, http.MethodGet, "/api/users/999", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])

	status, _ = call(t, app, http.MethodGet, "/api/users/me", "nobody", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/api/users/abc", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidArgument, body["error_type"])
}

func TestProfile_BearerToken(t *testing.T) {
	app, db := newTestApp(t)
	testutil.CreateAccount(t, db, "alice", "Alice")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	status, body := send(t, app, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alice", body["user"].(map[string]interface{})["name"])
}

func TestFollowEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	bob := testutil.CreateAccount(t, db, "bob", "Bob")

	path := "/api/users/" + itoa(bob.ID) + "/follow"

	status, _ := call(t, app, http.MethodPost, path, "alice", nil)
	assert.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodPost, path, "alice", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeIntegrityViolation, body["error_type"])

	status, body = call(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidArgument, body["error_type"])

	status, _ = call(t, app, http.MethodPost, "/api/users/999/follow", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodDelete, path, "alice", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodDelete, path, "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	alice := testutil.CreateAccount(t, db, "alice", "Alice")
	testutil.CreateAccount(t, db, "bob", "Bob")
	carol := testutil.CreateAccount(t, db, "carol", "Carol")
	testutil.CreateFollow(t, db, carol.ID, alice.ID)

	status, body := upload(t, app, "alice", "file", "cat.gif", []byte("GIF89a"))
	require.Equal(t, http.StatusCreated, status)
	mediaID := uint(body["media_id"].(float64))

	status, body = call(t, app, http.MethodPost, "/api/tweets", "alice", fiber.Map{
		"tweet_data":      "hello world",
		"tweet_media_ids": []uint{mediaID},
	})
	require.Equal(t, http.StatusCreated, status)
	postID := uint(body["tweet_id"].(float64))
	postPath := "/api/tweets/" + itoa(postID)

	status, body = call(t, app, http.MethodPost, "/api/tweets", "alice", fiber.Map{
		"tweet_data":      "reuse",
		"tweet_media_ids": []uint{mediaID},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, models.CodeConflict, body["error_type"])

	status, body = call(t, app, http.MethodPost, "/api/tweets", "alice", fiber.Map{"tweet_data": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidArgument, body["error_type"])

	status, _ = call(t, app, http.MethodPost, postPath+"/likes", "carol", nil)
	assert.Equal(t, http.StatusCreated, status)
	status, body = call(t, app, http.MethodPost, postPath+"/likes", "carol", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, models.CodeConflict, body["error_type"])

	status, body = call(t, app, http.MethodGet, "/api/tweets", "carol", nil)
	require.Equal(t, http.StatusOK, status)
	tweets := body["tweets"].([]interface{})
	require.Len(t, tweets, 1)
	tweet := tweets[0].(map[string]interface{})
	assert.Equal(t, "hello world", tweet["content"])
	require.Len(t, tweet["attachments"], 1)
	require.Len(t, tweet["likes"], 1)

	status, _ = call(t, app, http.MethodDelete, postPath+"/likes", "carol", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodDelete, postPath+"/likes", "carol", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodDelete, postPath, "bob", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, models.CodePermissionDenied, body["error_type"])

	status, _ = call(t, app, http.MethodDelete, "/api/tweets/999", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodDelete, postPath, "alice", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, testutil.Count(t, db, &models.Post{}))
}

func TestFeed_EmptyIsArray(t *testing.T) {
	app, db := newTestApp(t)
	testutil.CreateAccount(t, db, "alice", "Alice")

	status, body := call(t, app, http.MethodGet, "/api/tweets", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["tweets"])
}

func TestUploadMedia_Rejections(t *testing.T) {
	app, db := newTestApp(t)
	testutil.CreateAccount(t, db, "alice", "Alice")

	status, body := upload(t, app, "alice", "file", "run.exe", []byte("MZ"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.CodeUnprocessable, body["error_type"])

	status, body = upload(t, app, "alice", "attachment", "cat.gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidArgument, body["error_type"])

	status, _ = upload(t, app, "nobody", "file", "cat.gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewNotFoundMessage("x"), fiber.StatusNotFound},
		{models.NewConflictError("x"), fiber.StatusConflict},
		{models.NewPermissionError("x"), fiber.StatusForbidden},
		{models.NewIntegrityError("x", nil), fiber.StatusBadRequest},
		{models.NewInvalidArgumentError("x"), fiber.StatusBadRequest},
		{models.NewUnprocessableError("x", nil), fiber.StatusUnprocessableEntity},
		{models.NewInternalError(io.EOF), fiber.StatusInternalServerError},
		{io.EOF, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), models.CodeOf(tt.err))
	}
}
