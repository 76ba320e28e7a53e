package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hovercraft-go/bus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // bench tool, local use
	},
}

// frame is one bus message as sent to websocket clients.
type frame struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// feed streams hover/# telemetry to websocket clients. New clients first get
// the latest frame of every topic seen so far.
type feed struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
	last    map[string][]byte
	order   []string
}

func newFeed(log *zap.Logger) *feed {
	return &feed{
		log:     log,
		clients: make(map[*feedClient]struct{}),
		last:    make(map[string][]byte),
	}
}

// pump forwards bus messages until ctx is done.
func (f *feed) pump(ctx context.Context, conn *bus.Connection) error {
	sub := conn.Subscribe(bus.T("hover", "#"))
	defer conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			f.closeAll()
			return nil
		case m := <-sub.Channel():
			data, err := json.Marshal(frame{Topic: m.Topic.String(), Payload: m.Payload})
			if err != nil {
				f.log.Warn("encode", zap.String("topic", m.Topic.String()), zap.Error(err))
				continue
			}
			f.broadcast(m.Topic.String(), data)
		}
	}
}

func (f *feed) broadcast(topic string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.last[topic]; !ok {
		f.order = append(f.order, topic)
	}
	f.last[topic] = data
	for c := range f.clients {
		select {
		case c.send <- data:
		default:
			// slow client
			f.dropLocked(c)
		}
	}
}

func (f *feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &feedClient{conn: conn, send: make(chan []byte, 64)}

	f.mu.Lock()
	for _, t := range f.order {
		select {
		case c.send <- f.last[t]:
		default:
		}
	}
	f.clients[c] = struct{}{}
	n := len(f.clients)
	f.mu.Unlock()
	f.log.Info("feed client connected", zap.Int("clients", n))

	go f.writePump(c)
	go f.readPump(c)
}

func (f *feed) writePump(c *feedClient) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump only watches for the client going away.
func (f *feed) readPump(c *feedClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			f.mu.Lock()
			f.dropLocked(c)
			f.mu.Unlock()
			return
		}
	}
}

func (f *feed) dropLocked(c *feedClient) {
	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.send)
}

func (f *feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		f.dropLocked(c)
	}
}
