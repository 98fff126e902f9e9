// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"log/slog"
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. A slow subscriber
// loses messages rather than blocking publishers; losing a change message only
// delays the reload until the next one.
const subscriberBuffer = 16

type memorySubscriber struct {
	collection string
	ch         chan Message
}

// MemoryBus is an in-process Bus for single-node deployments.
type MemoryBus struct {
	mu     sync.Mutex
	subs   map[*memorySubscriber]struct{}
	closed bool
	logger *slog.Logger
}

// NewMemoryBus creates an in-process notification bus.
func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		subs:   make(map[*memorySubscriber]struct{}),
		logger: logger,
	}
}

// Publish implements Bus.
func (b *MemoryBus) Publish(_ context.Context, msg Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	for sub := range b.subs {
		if sub.collection != msg.Collection {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
			b.logger.Debug("dropping change message for slow subscriber",
				"collection", msg.Collection, "op", msg.Op)
		}
	}
	return nil
}

// Subscribe implements Bus.
func (b *MemoryBus) Subscribe(ctx context.Context, collection string) (<-chan Message, error) {
	sub := &memorySubscriber{
		collection: collection,
		ch:         make(chan Message, subscriberBuffer),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, nil
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(sub)
	}()

	return sub.ch, nil
}

// remove detaches a subscriber and closes its channel.
func (b *MemoryBus) remove(sub *memorySubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

// Close implements Bus.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
	return nil
}
