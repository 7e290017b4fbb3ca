package notifier

import (
	"sync"
)

const sendBuffer = 32

// Client 一条在线连接，写协程从 Send 中取消息
type Client struct {
	UserID int64
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (c *Client) Send() <-chan []byte {
	return c.send
}

// Done 连接被注销或因积压被踢下线时关闭
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

// Hub 在线用户注册表，同一用户可以有多条连接
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(uid int64) *Client {
	c := &Client{UserID: uid, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	h.mu.Lock()
	set, ok := h.clients[uid]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[uid] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) Online(uid int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uid]) > 0
}

// OnlineUsers 在线用户数
func (h *Hub) OnlineUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Push 投递给某个用户的所有连接，返回成功入队的连接数；缓冲区满的连接会被断开
func (h *Hub) Push(uid int64, payload []byte) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[uid]))
	for c := range h.clients[uid] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		select {
		case <-c.done:
			continue
		default:
		}
		select {
		case c.send <- payload:
			delivered++
		default:
			h.Unregister(c)
		}
	}
	return delivered
}

func (h *Hub) Broadcast(uids []int64, payload []byte) int {
	delivered := 0
	for _, uid := range uids {
		delivered += h.Push(uid, payload)
	}
	return delivered
}
