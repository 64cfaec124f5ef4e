package core

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUI_DevServesReadableDocument(t *testing.T) {
	ui, err := NewUI(DefaultConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	body := rec.Body.String()
	assert.Contains(t, body, `data-feed="/__items_feed"`)
	assert.Contains(t, body, `fetch(path, opts)`)
}

func TestUI_TitleFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "   "
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	doc, err := ui.Render()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<title>Items</title>")
}

func TestUI_TitleIsEscaped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "<b>Mine</b>"
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	doc, err := ui.Render()
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<b>Mine</b>")
	assert.Contains(t, string(doc), "&lt;b&gt;Mine&lt;/b&gt;")
}

func TestUI_ProdMinifiesAndGzips(t *testing.T) {
	dev, err := NewUI(DefaultConfig())
	require.NoError(t, err)
	devDoc, err := dev.Render()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Env = "prod"
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	prodDoc, err := ui.Render()
	require.NoError(t, err)
	assert.Less(t, len(prodDoc), len(devDoc))
	assert.Contains(t, string(prodDoc), "Items")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Empty(t, rec.Header().Get("Cache-Control"))

	zr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, prodDoc, plain)
}

func TestUI_ProdWithoutGzipSupport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Env = "prod"
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(strings.ToLower(rec.Body.String()), "<!doctype html>"))
}

func TestUI_NotModified(t *testing.T) {
	ui, err := NewUI(DefaultConfig())
	require.NoError(t, err)

	first := httptest.NewRecorder()
	ui.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", first.Header().Get("ETag"))
	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestUI_GzipVariantHasOwnETag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Env = "prod"
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	plain := httptest.NewRecorder()
	ui.ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	zipped := httptest.NewRecorder()
	ui.ServeHTTP(zipped, req)

	plainTag := plain.Header().Get("ETag")
	zippedTag := zipped.Header().Get("ETag")
	assert.NotEqual(t, plainTag, zippedTag)
	assert.True(t, strings.HasSuffix(zippedTag, `-gz"`))
	assert.Equal(t, "Accept-Encoding", plain.Header().Get("Vary"))

	// the identity tag must not validate the gzip body
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("If-None-Match", plainTag)
	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUI_NotModifiedMatchesListsAndWildcard(t *testing.T) {
	ui, err := NewUI(DefaultConfig())
	require.NoError(t, err)

	first := httptest.NewRecorder()
	ui.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	etag := first.Header().Get("ETag")

	for _, header := range []string{
		`"stale", ` + etag,
		"W/" + etag,
		"*",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("If-None-Match", header)
		rec := httptest.NewRecorder()
		ui.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotModified, rec.Code, header)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUI_OverrideFileAndReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(file, []byte(`<p>{{ .Title | upper }}</p>`), 0644))

	cfg := DefaultConfig()
	cfg.UIFile = file
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	doc, err := ui.Render()
	require.NoError(t, err)
	assert.Equal(t, "<p>ITEMS</p>", string(doc))

	require.NoError(t, os.WriteFile(file, []byte(`<p>v2</p>`), 0644))
	require.NoError(t, ui.Reload())

	rec := httptest.NewRecorder()
	ui.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "<p>v2</p>", rec.Body.String())
}

func TestUI_BrokenTemplate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(file, []byte(`{{ .Title `), 0644))

	cfg := DefaultConfig()
	cfg.UIFile = file
	_, err := NewUI(cfg)
	assert.ErrorContains(t, err, "parse ui template")

	cfg.UIFile = filepath.Join(t.TempDir(), "missing.html")
	_, err = NewUI(cfg)
	assert.ErrorContains(t, err, "read ui file")
}

func TestAcceptsGzip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	if !acceptsGzip(req) {
		t.Error("expected true for Accept-Encoding with gzip")
	}

	req.Header.Set("Accept-Encoding", "br")
	if acceptsGzip(req) {
		t.Error("expected false for Accept-Encoding without gzip")
	}
}
