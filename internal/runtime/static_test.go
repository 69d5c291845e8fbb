package runtime

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridhost/vhostd/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeIndexFile(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, true, true)

	recorder := doRequest(handler, "/")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "welcome", recorder.Body.String())
}

func TestServeNestedFile(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, true, true)

	recorder := doRequest(handler, "/assets/app.css")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "body {}", recorder.Body.String())
}

func TestMissingFileNotFound(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, true, true)

	recorder := doRequest(handler, "/missing.html")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDirectoryListingDisabled(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, true, true)

	// assets has no index file and listing is disabled
	recorder := doRequest(handler, "/assets/")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDirectoryRedirect(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, true, true)

	recorder := doRequest(handler, "/assets")
	assert.Equal(t, http.StatusMovedPermanently, recorder.Code)
	assert.Equal(t, "/assets/", recorder.Header().Get("Location"))
}

func TestOverrideFileRefused(t *testing.T) {
	docRoot := createDocRoot(t)
	err := os.WriteFile(filepath.Join(docRoot, ".htaccess"), []byte("AllowOverride All"), 0644)
	require.Nil(t, err)

	handler := createStaticHandler(t, docRoot, true, true)

	recorder := doRequest(handler, "/.htaccess")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestMultiViewsIndexFallback(t *testing.T) {
	docRoot := t.TempDir()
	err := os.WriteFile(filepath.Join(docRoot, "index.txt"), []byte("plain index"), 0644)
	require.Nil(t, err)

	handler := createStaticHandler(t, docRoot, true, true)
	recorder := doRequest(handler, "/")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "plain index", recorder.Body.String())

	handler = createStaticHandler(t, docRoot, true, false)
	recorder = doRequest(handler, "/")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestSymlinkPolicy(t *testing.T) {
	docRoot := createDocRoot(t)
	outsideDir := t.TempDir()

	outsideFile := filepath.Join(outsideDir, "secret.txt")
	err := os.WriteFile(outsideFile, []byte("secret"), 0644)
	require.Nil(t, err)

	err = os.Symlink(outsideFile, filepath.Join(docRoot, "link.txt"))
	require.Nil(t, err)

	handler := createStaticHandler(t, docRoot, false, true)
	recorder := doRequest(handler, "/link.txt")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	handler = createStaticHandler(t, docRoot, true, true)
	recorder = doRequest(handler, "/link.txt")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "secret", recorder.Body.String())
}

func TestPathTraversalStaysInRoot(t *testing.T) {
	docRoot := createDocRoot(t)
	handler := createStaticHandler(t, docRoot, false, true)

	recorder := doRequest(handler, "/../../etc/passwd")
	assert.NotEqual(t, http.StatusOK, recorder.Code)
}

func createDocRoot(t *testing.T) string {
	docRoot := t.TempDir()

	err := os.WriteFile(filepath.Join(docRoot, "index.html"), []byte("welcome"), 0644)
	require.Nil(t, err)

	err = os.Mkdir(filepath.Join(docRoot, "assets"), 0755)
	require.Nil(t, err)

	err = os.WriteFile(filepath.Join(docRoot, "assets", "app.css"), []byte("body {}"), 0644)
	require.Nil(t, err)

	return docRoot
}

func createStaticHandler(t *testing.T, docRoot string, followSymlinks, multiViews bool) *StaticHandler {
	return &StaticHandler{
		Root:           docRoot,
		FollowSymlinks: followSymlinks,
		MultiViews:     multiViews,
		Logger:         &logger.TestLogger{T: t},
	}
}

func doRequest(handler http.Handler, target string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}
