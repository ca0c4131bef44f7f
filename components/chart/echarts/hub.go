package echarts

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Op names an instance command understood by the browser runtime.
type Op string

const (
	OpInit        Op = "init"
	OpSetOption   Op = "setOption"
	OpResize      Op = "resize"
	OpDispose     Op = "dispose"
	OpRegisterMap Op = "registerMap"
)

// Command is one instruction streamed to browsers hosting chart instances.
// Option carries a JavaScript object literal produced by Encode.
type Command struct {
	Op        Op              `json:"op"`
	Instance  string          `json:"instance,omitempty"`
	Container string          `json:"container,omitempty"`
	Option    string          `json:"option,omitempty"`
	Version   int             `json:"version,omitempty"`
	Map       string          `json:"map,omitempty"`
	Geo       json.RawMessage `json:"geo,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// ClientMessage is sent by browsers over the WebSocket, typically to report
// container size changes.
type ClientMessage struct {
	Op        string  `json:"op"`
	Session   string  `json:"session,omitempty"`
	Container string  `json:"container"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// Publisher receives instance commands.
type Publisher interface {
	Publish(ctx context.Context, cmd Command) error
}

// ClientHandler consumes messages sent back by browsers.
type ClientHandler func(ctx context.Context, msg ClientMessage)

type subscription struct {
	ch        chan Command
	instances map[string]struct{}

	mu      sync.Mutex
	pending map[string]Command
	order   []string
}

func (s *subscription) wants(cmd Command) bool {
	if len(s.instances) == 0 || cmd.Instance == "" {
		return true
	}
	_, ok := s.instances[cmd.Instance]
	return ok
}

type delivery int

const (
	delivered delivery = iota
	coalesced
	dropped
)

// offer queues cmd without blocking. A setOption that does not fit is kept
// as the instance's pending option, replacing any older one, and goes out
// before later commands once the subscriber catches up.
func (s *subscription) offer(cmd Command) delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cmd.Op == OpDispose && cmd.Instance != "" {
		s.dropPendingLocked(cmd.Instance)
	}
	s.flushLocked()

	if cmd.Op == OpSetOption && cmd.Instance != "" {
		if _, waiting := s.pending[cmd.Instance]; waiting {
			s.pending[cmd.Instance] = cmd
			return coalesced
		}
	}
	select {
	case s.ch <- cmd:
		return delivered
	default:
	}
	if cmd.Op != OpSetOption || cmd.Instance == "" {
		return dropped
	}
	if s.pending == nil {
		s.pending = map[string]Command{}
	}
	s.pending[cmd.Instance] = cmd
	s.order = append(s.order, cmd.Instance)
	return coalesced
}

func (s *subscription) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *subscription) flushLocked() {
	for len(s.order) > 0 {
		inst := s.order[0]
		select {
		case s.ch <- s.pending[inst]:
			delete(s.pending, inst)
			s.order = s.order[1:]
		default:
			return
		}
	}
}

func (s *subscription) dropPendingLocked(inst string) {
	delete(s.pending, inst)
	for i, name := range s.order {
		if name == inst {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Hub fans out instance commands to in-process subscribers and connected
// browsers.
type Hub struct {
	mu      sync.RWMutex
	subs    map[int]*subscription
	next    int
	buffer  int
	client  ClientHandler
	logger  zerolog.Logger
	dropped atomic.Uint64
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithClientHandler forwards WebSocket client messages to fn.
func WithClientHandler(fn ClientHandler) HubOption {
	return func(h *Hub) {
		h.client = fn
	}
}

// WithSubscriberBuffer sets the per-subscriber channel size.
func WithSubscriberBuffer(size int) HubOption {
	return func(h *Hub) {
		if size > 0 {
			h.buffer = size
		}
	}
}

// WithHubLogger sets the logger reporting commands lost to slow subscribers.
func WithHubLogger(logger zerolog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   make(map[int]*subscription),
		buffer: 16,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish delivers cmd to every interested subscriber without blocking the
// engine. For a subscriber that is behind, the latest setOption of each
// instance is held back and delivered once it catches up; other commands are
// dropped and counted.
func (h *Hub) Publish(_ context.Context, cmd Command) error {
	if cmd.Timestamp.IsZero() {
		cmd.Timestamp = time.Now().UTC()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, sub := range h.subs {
		if !sub.wants(cmd) {
			continue
		}
		switch sub.offer(cmd) {
		case coalesced:
			h.logger.Debug().Int("subscriber", id).Str("instance", cmd.Instance).Int("version", cmd.Version).
				Msg("subscriber behind, option held for resync")
		case dropped:
			h.dropped.Add(1)
			h.logger.Warn().Int("subscriber", id).Str("op", string(cmd.Op)).Str("instance", cmd.Instance).
				Msg("subscriber behind, command dropped")
		}
	}
	return nil
}

// Flush pushes held-back options to subscribers that have room again.
func (h *Hub) Flush() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		sub.flush()
	}
}

// Dropped reports how many commands were discarded for slow subscribers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Subscribe returns a channel of commands for the given instances (all
// instances when none are named) and a cancel func.
func (h *Hub) Subscribe(instances ...string) (<-chan Command, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	sub := &subscription{ch: make(chan Command, h.buffer)}
	for _, inst := range instances {
		if inst = strings.TrimSpace(inst); inst != "" {
			if sub.instances == nil {
				sub.instances = map[string]struct{}{}
			}
			sub.instances[inst] = struct{}{}
		}
	}
	h.subs[id] = sub
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			s.mu.Lock()
			close(s.ch)
			s.mu.Unlock()
		}
	}
	return sub.ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func instanceFilter(r *http.Request) []string {
	raw := r.URL.Query()["instance"]
	var out []string
	for _, value := range raw {
		out = append(out, strings.Split(value, ",")...)
	}
	return out
}

// ServeWebSocket upgrades the request and streams commands as JSON. Messages
// sent by the client are decoded and handed to the client handler.
func (h *Hub) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	commands, cancel := h.Subscribe(instanceFilter(r)...)
	defer cancel()

	ctx, stop := context.WithCancel(r.Context())
	defer stop()
	go h.readClient(ctx, stop, conn)

	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			if err := conn.WriteJSON(cmd); err != nil {
				return
			}
			h.Flush()
		}
	}
}

func (h *Hub) readClient(ctx context.Context, stop context.CancelFunc, conn *websocket.Conn) {
	defer stop()
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if h.client != nil {
			h.client(ctx, msg)
		}
	}
}

// ServeSSE provides a Server-Sent Events stream of commands.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	commands, cancel := h.Subscribe(instanceFilter(r)...)
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			w.Write([]byte("event: " + string(cmd.Op) + "\ndata: "))
			if err := encoder.Encode(cmd); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
			h.Flush()
		}
	}
}
