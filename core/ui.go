package core

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	_ "embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

//go:embed ui/index.html
var embeddedUI string

type uiData struct {
	Title    string
	FeedPath string
	Env      string
}

// UI serves the single HTML document that drives the item endpoints.
// The document is rendered up front; Reload renders it again.
type UI struct {
	env   string
	title string
	file  string

	mu   sync.RWMutex
	doc  []byte
	gz   []byte
	etag string
}

func NewUI(config Config) (*UI, error) {
	u := &UI{
		env:   config.Env,
		title: config.Title,
		file:  config.UIFile,
	}
	if err := u.Reload(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UI) source() (string, error) {
	if u.file == "" {
		return embeddedUI, nil
	}
	data, err := os.ReadFile(u.file)
	if err != nil {
		return "", fmt.Errorf("read ui file: %w", err)
	}
	return string(data), nil
}

// Render executes the UI template without touching the served copy.
func (u *UI) Render() ([]byte, error) {
	src, err := u.source()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("ui").Funcs(sprig.FuncMap()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse ui template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, uiData{Title: u.title, FeedPath: FeedPath, Env: u.env})
	if err != nil {
		return nil, fmt.Errorf("render ui template: %w", err)
	}

	if u.env != "prod" {
		return buf.Bytes(), nil
	}
	return minifyHTML(buf.Bytes())
}

func (u *UI) Reload() error {
	doc, err := u.Render()
	if err != nil {
		return err
	}

	var gz []byte
	if u.env == "prod" {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(doc); err != nil {
			return fmt.Errorf("gzip ui: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("gzip ui: %w", err)
		}
		gz = buf.Bytes()
	}

	h := md5.Sum(doc)

	u.mu.Lock()
	u.doc = doc
	u.gz = gz
	u.etag = `"` + hex.EncodeToString(h[:])[:12] + `"`
	u.mu.Unlock()
	return nil
}

func (u *UI) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	u.mu.RLock()
	doc, gz, etag := u.doc, u.gz, u.etag
	u.mu.RUnlock()

	body := doc
	if gz != nil {
		w.Header().Set("Vary", "Accept-Encoding")
		if acceptsGzip(req) {
			body = gz
			etag = strings.TrimSuffix(etag, `"`) + `-gz"`
			w.Header().Set("Content-Encoding", "gzip")
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	if u.env == "dev" {
		w.Header().Set("Cache-Control", "no-store")
	}

	if etagMatches(req.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// etagMatches applies the weak comparison If-None-Match calls for.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func minifyHTML(doc []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), minjs.Minify)

	var buf bytes.Buffer
	if err := m.Minify("text/html", &buf, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("minify ui: %w", err)
	}
	return buf.Bytes(), nil
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}
