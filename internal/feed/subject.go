package feed

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Subject holds a current value and pushes every new value to its
// subscribers, synchronously and in the order Set was called.
//
// Observers must not call Set or Subscribe on the same subject from inside a
// notification. Value and unsubscribe are safe there.
type Subject[T any] struct {
	name string

	emitMu sync.Mutex // held across store+notify so every observer sees the same sequence

	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber[T]
	closed bool
}

type subscriber[T any] struct {
	id      int
	fn      func(T)
	onClose func()
}

// NewSubject returns a subject whose current value is initial. The name only
// shows up in logs.
func NewSubject[T any](name string, initial T) *Subject[T] {
	return &Subject[T]{name: name, value: initial}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies every subscriber before returning.
func (s *Subject[T]) Set(v T) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.value = v
	if s.closed {
		s.mu.Unlock()
		return
	}
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe calls fn with the current value right away and then with every
// value passed to Set. The returned func removes the subscription and may be
// called more than once.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return s.subscribe(fn, nil)
}

func (s *Subject[T]) subscribe(fn func(T), onClose func()) func() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		v := s.value
		s.mu.Unlock()
		fn(v)
		if onClose != nil {
			onClose()
		}
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn, onClose: onClose})
	v := s.value
	count := len(s.subs)
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"subject": s.name,
		"count":   count,
	}).Debug("Added subscriber")

	fn(v)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Subject[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			break
		}
	}
	log.WithFields(log.Fields{
		"subject": s.name,
		"count":   len(s.subs),
	}).Debug("Removed subscriber")
}

// Watch returns a channel that always holds the most recent value. Older
// values that were never received are dropped, so a slow reader only sees the
// latest state. The channel is closed when ctx is done or the subject closes.
func (s *Subject[T]) Watch(ctx context.Context) <-chan T {
	w := &watcher[T]{
		ch:   make(chan T, 1),
		done: make(chan struct{}),
	}
	unsub := s.subscribe(w.push, w.close)

	go func() {
		select {
		case <-ctx.Done():
		case <-w.done:
		}
		unsub()
		w.close()
	}()
	return w.ch
}

// Close drops every subscriber and closes every watch channel. The current
// value can still be read and set afterwards.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.onClose != nil {
			sub.onClose()
		}
	}
	log.WithField("subject", s.name).Debug("Closed subject")
}

type watcher[T any] struct {
	mu     sync.Mutex
	ch     chan T
	done   chan struct{}
	closed bool
}

func (w *watcher[T]) push(v T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// Only this method sends, under w.mu, so after the drain there is room.
	select {
	case <-w.ch:
	default:
	}
	w.ch <- v
}

func (w *watcher[T]) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.done)
	close(w.ch)
}
