// Package pubsub is a small in-process fan-out used for auth-change
// notifications.
package pubsub

import "sync"

type Broker[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(T)
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is safe.
func (b *Broker[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish calls every subscriber synchronously, outside the lock.
func (b *Broker[T]) Publish(v T) {
	b.mu.RLock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}
