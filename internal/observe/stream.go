package observe

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Stream доставляет снимки одного запроса. Первый снимок отражает состояние
// на момент подписки, каждый следующий приходит после изменения в топике.
// Промежуточные снимки могут быть пропущены, последний всегда доставляется.
type Stream[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once

	mu  sync.Mutex
	err error
}

// Watch подписывается на topic и сразу же запускает первое чтение query;
// query перечитывает текущее состояние наблюдаемых данных.
// Поток живёт до ctx.Done(), вызова Close или закрытия hub.
func Watch[T any](ctx context.Context, hub *Hub, topic string, query func(context.Context) (T, error), log *zap.SugaredLogger) *Stream[T] {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		updates: make(chan T),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	sub := hub.subscribe(topic)

	go func() {
		defer close(s.done)
		defer close(s.updates)
		defer cancel()
		if sub == nil {
			return
		}
		defer hub.unsubscribe(topic, sub)
		for {
			snapshot, err := query(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Errorw("observe query failed", "topic", topic, "error", err)
				s.setErr(err)
			} else {
				s.setErr(nil)
				// ждём, пока снимок заберут; свежее изменение вытесняет неотданный снимок
				select {
				case s.updates <- snapshot:
				case <-sub.kick:
					continue
				case <-ctx.Done():
					return
				case <-hub.done:
					return
				}
			}
			select {
			case <-sub.kick:
			case <-ctx.Done():
				return
			case <-hub.done:
				return
			}
		}
	}()
	return s
}

// Updates возвращает канал снимков. Канал закрывается, когда поток остановлен.
func (s *Stream[T]) Updates() <-chan T {
	return s.updates
}

// Err возвращает ошибку последнего чтения или nil, если оно удалось.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Close отписывает поток и дожидается остановки. После возврата снимки
// больше не доставляются. Повторный вызов безопасен.
func (s *Stream[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done закрывается, когда поток остановлен.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}
