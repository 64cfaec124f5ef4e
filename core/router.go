package core

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-barry/items/store"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

type handlerFunc func(w http.ResponseWriter, req *http.Request, params []string)

// Route maps a trimmed path to handlers by method. An empty method key
// matches any method.
type Route struct {
	Name       string
	URLPattern *regexp.Regexp
	Handlers   map[string]handlerFunc
}

type RouterDeps struct {
	Store  store.Store
	IDs    store.IDAllocator
	UI     http.Handler
	Feed   FeedInterface
	Logger *zap.Logger
}

type Router struct {
	config Config
	store  store.Store
	ids    store.IDAllocator
	ui     http.Handler
	feed   FeedInterface
	logger *zap.Logger
	routes []Route
}

type message struct {
	Message string      `json:"message"`
	Item    *store.Item `json:"item,omitempty"`
}

func NewRouter(config Config, deps RouterDeps) *Router {
	r := &Router{
		config: config,
		store:  deps.Store,
		ids:    deps.IDs,
		ui:     deps.UI,
		feed:   deps.Feed,
		logger: deps.Logger,
	}
	if r.store == nil {
		r.store = store.NewMemoryStore()
	}
	if r.ids == nil {
		r.ids = store.NewSequence(0)
	}
	if r.feed == nil {
		r.feed = nopFeed{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.config.MaxBodyBytes <= 0 {
		r.config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	r.loadRoutes()
	return r
}

func (r *Router) loadRoutes() {
	r.routes = []Route{
		{
			Name:       "ui",
			URLPattern: regexp.MustCompile(`^$`),
			Handlers:   map[string]handlerFunc{"": r.serveUI},
		},
		{
			Name:       "items",
			URLPattern: regexp.MustCompile(`^items$`),
			Handlers: map[string]handlerFunc{
				http.MethodGet:  r.listItems,
				http.MethodPost: r.createItem,
			},
		},
		{
			Name:       "item",
			URLPattern: regexp.MustCompile(`^items/(-?[0-9]+)$`),
			Handlers: map[string]handlerFunc{
				http.MethodPut:    r.updateItem,
				http.MethodDelete: r.deleteItem,
			},
		},
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")

	for _, route := range r.routes {
		matches := route.URLPattern.FindStringSubmatch(path)
		if matches == nil {
			continue
		}

		handle, ok := route.Handlers[req.Method]
		if !ok {
			handle, ok = route.Handlers[""]
		}
		if !ok {
			break
		}

		if r.config.DebugHeaders {
			w.Header().Set("X-Items-Route", route.Name)
		}
		handle(w, req, matches[1:])
		return
	}

	writeJSON(w, http.StatusNotFound, message{Message: "Not Found"})
}

func (r *Router) serveUI(w http.ResponseWriter, req *http.Request, _ []string) {
	if r.ui == nil {
		writeJSON(w, http.StatusNotFound, message{Message: "Not Found"})
		return
	}
	r.ui.ServeHTTP(w, req)
}

func (r *Router) listItems(w http.ResponseWriter, req *http.Request, _ []string) {
	items, err := r.store.Snapshot(req.Context())
	if err != nil {
		r.storeFailure(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (r *Router) createItem(w http.ResponseWriter, req *http.Request, _ []string) {
	name, err := readName(w, req, r.config.MaxBodyBytes)
	if err != nil {
		r.bodyFailure(w, err)
		return
	}

	item := store.Item{ID: r.ids.NextID(), Name: name}
	if err := r.store.Append(req.Context(), item); err != nil {
		r.storeFailure(w, "create", err)
		return
	}

	r.logger.Debug("item created", zap.Int64("id", item.ID))
	r.feed.Publish(Event{Type: EventCreated, Item: &item})
	writeJSON(w, http.StatusCreated, message{Message: "Item added", Item: &item})
}

func (r *Router) updateItem(w http.ResponseWriter, req *http.Request, params []string) {
	id, ok := parseID(params)
	if !ok {
		writeJSON(w, http.StatusNotFound, message{Message: "Not Found"})
		return
	}

	name, err := readName(w, req, r.config.MaxBodyBytes)
	if err != nil {
		r.bodyFailure(w, err)
		return
	}

	if err := r.store.UpdateFirst(req.Context(), id, name); err != nil {
		if IsNotFoundError(err) {
			writeJSON(w, http.StatusNotFound, message{Message: "Item not found"})
			return
		}
		r.storeFailure(w, "update", err)
		return
	}

	item := store.Item{ID: id, Name: name}
	r.feed.Publish(Event{Type: EventUpdated, Item: &item})
	writeJSON(w, http.StatusOK, message{Message: "Item updated"})
}

// deleteItem answers 200 whether or not anything matched.
func (r *Router) deleteItem(w http.ResponseWriter, req *http.Request, params []string) {
	id, ok := parseID(params)
	if !ok {
		writeJSON(w, http.StatusNotFound, message{Message: "Not Found"})
		return
	}

	removed, err := r.store.RemoveAll(req.Context(), id)
	if err != nil {
		r.storeFailure(w, "delete", err)
		return
	}

	if removed > 0 {
		r.feed.Publish(Event{Type: EventDeleted, ID: &id, Removed: removed})
	}
	writeJSON(w, http.StatusOK, message{Message: "Item deleted"})
}

func (r *Router) bodyFailure(w http.ResponseWriter, err error) {
	var bodyErr *BodyError
	if errors.As(err, &bodyErr) {
		r.logger.Debug("rejected request body", zap.Error(err))
		writeJSON(w, bodyErr.Status, message{Message: bodyErr.Message})
		return
	}
	writeJSON(w, http.StatusBadRequest, message{Message: "Invalid JSON"})
}

func (r *Router) storeFailure(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	r.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, message{Message: "Internal Server Error"})
}

func parseID(params []string) (int64, bool) {
	if len(params) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(params[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
