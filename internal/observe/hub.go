// Package observe реализует подписки "текущий снимок + последующие снимки"
// поверх топиков, в которые сервис публикует факт изменения данных.
package observe

import (
	"sync"

	"go.uber.org/zap"
)

// Hub раздаёт уведомления об изменениях подписчикам топиков.
// Уведомление несёт только факт изменения; содержимое подписчик перечитывает сам.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*subscription]struct{}
	closed bool
	done   chan struct{}
	log    *zap.SugaredLogger
}

type subscription struct {
	kick chan struct{}
}

// NewHub создаёт пустой Hub.
func NewHub(log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		topics: make(map[string]map[*subscription]struct{}),
		done:   make(chan struct{}),
		log:    log,
	}
}

// Publish помечает топики изменёнными. Никогда не блокируется: если подписчик
// ещё не обработал предыдущее уведомление, новое с ним сливается.
func (h *Hub) Publish(topics ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, topic := range topics {
		for sub := range h.topics[topic] {
			select {
			case sub.kick <- struct{}{}:
			default:
			}
		}
	}
}

// subscribe регистрирует подписчика топика. После Close возвращает nil.
func (h *Hub) subscribe(topic string) *subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	sub := &subscription{kick: make(chan struct{}, 1)}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(topic string, sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.topics[topic]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Subscribers возвращает число активных подписок на топик.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Close завершает все потоки, подписанные на Hub. Новые потоки после Close
// закрываются сразу.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	h.log.Debugw("observe hub closed", "topics", len(h.topics))
}
