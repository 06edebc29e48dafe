package ws

import (
	"sync"

	"go.uber.org/zap"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        *zap.Logger

	// closed is closed when Run stops
	closed    chan struct{}
	closeOnce sync.Once
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        log,
		closed:     make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("ws client connected", zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					// slow consumer
					h.remove(client)
				}
			}
			h.log.Debug("ws broadcast", zap.Int("clients", len(snapshot)))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.log.Debug("ws client disconnected", zap.Int("total_clients", total))
}

// shutdown closes every client, including ones still queued for
// registration, and releases callers blocked in Register or Unregister.
func (h *Hub) shutdown() {
	h.closeOnce.Do(func() { close(h.closed) })
	h.closeAll()
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		case <-h.unregister:
		default:
			return
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Register adds client to the hub. Once the hub has stopped the client's
// send channel is closed instead.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case <-h.closed:
		if client != nil {
			close(client.send)
		}
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.closed:
		if client != nil {
			close(client.send)
		}
	}
}

// Unregister removes client from the hub. It is a no-op once the hub has
// stopped, since shutdown already closed every client.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case <-h.closed:
	default:
		select {
		case h.unregister <- client:
		case <-h.closed:
		}
	}
}

// Broadcast queues message for every client, dropping it when the queue is full.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
