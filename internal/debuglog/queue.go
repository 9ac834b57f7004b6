package debuglog

import (
	"log/slog"
	"sync"
)

// queue runs scheduled callbacks on one worker goroutine, in FIFO order.
type queue struct {
	log *slog.Logger

	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	stop chan struct{}
	once sync.Once
	done chan struct{}
}

func newQueue(log *slog.Logger) *queue {
	q := &queue{
		log:  log,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *queue) schedule(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *queue) loop() {
	defer close(q.done)
	for {
		select {
		case <-q.stop:
			return
		case <-q.wake:
		}

		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, fn := range batch {
			select {
			case <-q.stop:
				return
			default:
			}
			q.run(fn)
		}
	}
}

func (q *queue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil && q.log != nil {
			q.log.Warn("debug log update callback panicked", "panic", r)
		}
	}()
	fn()
}

func (q *queue) close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.pending = nil
		q.mu.Unlock()
		close(q.stop)
	})
	<-q.done
}
