package resthttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/sir_venger/images_lite/internal/config"
	"github.com/sir_venger/images_lite/internal/models"
	"github.com/sir_venger/images_lite/internal/usecase/filesvc"
	adapters "github.com/sir_venger/images_lite/internal/usecase/filesvc/adapters/storage"
	"github.com/sir_venger/images_lite/pkg/httperrors"
	"github.com/sir_venger/images_lite/pkg/imagesproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fileIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{20}$`)

func newTestHandler(t *testing.T) (http.Handler, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "files")
	h, _, err := NewServer(&config.Config{FilesDir: root}, zap.NewNop())
	require.NoError(t, err)

	return h, root
}

func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func TestNewServer_CreatesStorageRoot(t *testing.T) {
	_, root := newTestHandler(t)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewServer_FailsOnBadRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")
	require.NoError(t, os.WriteFile(root, nil, 0o644))

	_, _, err := NewServer(&config.Config{FilesDir: root}, zap.NewNop())
	require.Error(t, err)
}

func TestIndex(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{"/", "/?foo=bar", "/?download=1&upload"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Anything", "1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, imagesproto.IndexBody, rec.Body.String(), target)
	}
}

func TestUploadDownload(t *testing.T) {
	h, root := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("hello")))
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Body.String()
	require.Regexp(t, fileIDPattern, id)

	stored, err := os.ReadFile(filepath.Join(root, id))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))

	rec = serve(h, http.MethodGet, "/download/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Equal(t, "5", rec.Header().Get("Content-Length"))
	assert.Equal(t, imagesproto.ContentTypeBinary, rec.Header().Get("Content-Type"))
}

func TestUploadDownload_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/upload", http.NoBody)
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Body.String()
	require.Regexp(t, fileIDPattern, id)

	rec = serve(h, http.MethodGet, "/download/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Equal(t, "0", rec.Header().Get("Content-Length"))
}

func TestUpload_DistinctIDsForSameContent(t *testing.T) {
	h, root := newTestHandler(t)

	ids := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("same")))
		require.Equal(t, http.StatusOK, rec.Code)
		ids[rec.Body.String()] = struct{}{}
	}
	assert.Len(t, ids, 5)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestDownload_InvalidPath(t *testing.T) {
	h, root := newTestHandler(t)

	// Файл с "правильным" именем есть, но путь к нему невалиден.
	const id = "aB3kL9mQ2xT7vR1nP4zW"
	require.NoError(t, os.WriteFile(filepath.Join(root, id), []byte("secret"), 0o644))

	for _, target := range []string{
		"/download/aB3kL9mQ2xT7vR1nP4z!",
		"/download/aB3kL9mQ2xT7vR1nP4z",
		"/download/aB3kL9mQ2xT7vR1nP4zWW",
		"/download/" + id + "/",
		"/download/" + id + "/extra",
		"/download/",
		"/download/../../../../etc/passwd",
		"/download/%2e%2e%2f%2e%2e%2fetc%2fpasswd",
		"/download/aB3kL9mQ2xT7vR1n%2FP4zW",
	} {
		rec := serve(h, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, httperrors.MsgInvalidPath, rec.Body.String(), target)
	}
}

func TestDownload_Missing(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/download/"+imagesproto.NewFileID(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httperrors.MsgFileNotFound, rec.Body.String())
}

func TestUnknownRoutes(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct{ method, target string }{
		{http.MethodPut, "/upload"},
		{http.MethodGet, "/upload"},
		{http.MethodDelete, "/upload"},
		{http.MethodPost, "/"},
		{http.MethodPost, "/download/aB3kL9mQ2xT7vR1nP4zW"},
		{http.MethodDelete, "/download/aB3kL9mQ2xT7vR1nP4zW"},
		{http.MethodGet, "/download"},
		{http.MethodGet, "/files/aB3kL9mQ2xT7vR1nP4zW"},
		{http.MethodGet, "/upload/extra"},
		{http.MethodPost, "/upload/"},
	}
	for _, tc := range cases {
		rec := serve(h, tc.method, tc.target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.target)
		assert.Equal(t, httperrors.MsgNotFound, rec.Body.String(), "%s %s", tc.method, tc.target)
	}
}

func TestStorageErrors_Return500WithoutDetails(t *testing.T) {
	h, root := newTestHandler(t)

	rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("hello")))
	require.Equal(t, http.StatusOK, rec.Code)

	// Корень подменяется обычным файлом: и создание, и открытие падают с ENOTDIR.
	require.NoError(t, os.RemoveAll(root))
	require.NoError(t, os.WriteFile(root, nil, 0o644))

	rec = serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("hello")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httperrors.MsgStorage, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), root)

	rec = serve(h, http.MethodGet, "/download/"+imagesproto.NewFileID(), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), root)
}

func TestUpload_IDCollision(t *testing.T) {
	const id = "aB3kL9mQ2xT7vR1nP4zW"
	disk, err := adapters.NewDisk(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(disk.Root(), id), []byte("taken"), 0o644))

	files := filesvc.New(filesvc.Deps{Storage: disk, NewID: func() string { return id }})
	h := New(files, nil).Routes()

	rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("hello")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httperrors.MsgCreateFailed, rec.Body.String())

	rec = serve(h, http.MethodGet, "/download/"+id, nil)
	assert.Equal(t, "taken", rec.Body.String())
}

func TestUpload_TooLarge(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")
	h, _, err := NewServer(&config.Config{FilesDir: root, MaxUploadBytes: 4}, zap.NewNop())
	require.NoError(t, err)

	rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("hello")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type panickingService struct {
	filesvc.Service
}

func (panickingService) Upload(context.Context, io.Reader) (models.UploadResult, error) {
	panic(fmt.Sprintf("unexpected state %d", 42))
}

func TestRecoverPanics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := New(panickingService{}, zap.New(core)).Routes()

	rec := serve(h, http.MethodPost, "/upload", bytes.NewReader([]byte("x")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httperrors.MsgInternal, rec.Body.String())

	assert.Equal(t, 1, logs.FilterMessage("recovered from panic").Len())
	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.EqualValues(t, http.StatusInternalServerError, failed[0].ContextMap()["http_status_code"])
}

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := New(filesvc.New(filesvc.Deps{}), zap.New(core)).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(imagesproto.HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(imagesproto.HeaderRequestID))

	rec = serve(h, http.MethodGet, "/nope", nil)
	generated := rec.Header().Get(imagesproto.HeaderRequestID)
	assert.Len(t, generated, 36)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "request processed", entries[0].Message)
	assert.Equal(t, generated, entries[1].ContextMap()["request_id"])
	assert.Equal(t, "request rejected", entries[1].Message)
}
