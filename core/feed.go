package core

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-barry/items/store"
	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

const FeedPath = "/__items_feed"

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
	EventReload  = "reload"
)

const (
	feedWriteWait  = 5 * time.Second
	feedSendBuffer = 64
)

type Event struct {
	Type    string      `json:"type"`
	Item    *store.Item `json:"item,omitempty"`
	ID      *int64      `json:"id,omitempty"`
	Removed int         `json:"removed,omitempty"`
}

type FeedInterface interface {
	Publish(Event)
	Handler(http.ResponseWriter, *http.Request)
	Close() error
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed pushes store changes to every connected browser. Publish never
// waits on a client: each client has its own writer and is dropped when
// its queue is full.
type Feed struct {
	clients  map[*websocket.Conn]*feedClient
	lock     sync.Mutex
	closed   bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

var NewFeed = func(logger *zap.Logger) FeedInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		clients: make(map[*websocket.Conn]*feedClient),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

func (f *Feed) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Debug("feed upgrade failed", zap.Error(err))
		return
	}

	c := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}

	f.lock.Lock()
	if f.closed {
		f.lock.Unlock()
		conn.Close()
		return
	}
	f.clients[conn] = c
	f.lock.Unlock()

	go f.writeLoop(c)
	go func() {
		defer f.drop(c)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (f *Feed) writeLoop(c *feedClient) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			f.logger.Debug("feed write failed", zap.Error(err))
			f.drop(c)
			return
		}
	}
}

// drop forgets c and closes its connection. It is safe to call more
// than once.
func (f *Feed) drop(c *feedClient) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.dropLocked(c)
}

func (f *Feed) dropLocked(c *feedClient) {
	if f.clients[c.conn] != c {
		return
	}
	delete(f.clients, c.conn)
	close(c.send)
	c.conn.Close()
}

func (f *Feed) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		f.logger.Error("encode feed event", zap.Error(err))
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	for _, c := range f.clients {
		select {
		case c.send <- msg:
		default:
			f.logger.Warn("dropping slow feed client", zap.String("remote", c.conn.RemoteAddr().String()))
			f.dropLocked(c)
		}
	}
}

func (f *Feed) Clients() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.clients)
}

// Close disconnects every client and refuses new ones.
func (f *Feed) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.closed = true
	for _, c := range f.clients {
		f.dropLocked(c)
	}
	return nil
}

type nopFeed struct{}

func (nopFeed) Publish(Event) {}

func (nopFeed) Handler(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

func (nopFeed) Close() error { return nil }
