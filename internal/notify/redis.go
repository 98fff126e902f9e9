// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBusOptions holds Redis notification bus configuration.
type RedisBusOptions struct {
	// URL is the Redis connection URL (redis://...)
	URL string

	// Prefix is prepended to pub/sub channel names
	Prefix string

	// ConnectTimeout is the timeout for establishing a connection
	ConnectTimeout time.Duration
}

// DefaultRedisBusOptions returns sensible defaults.
func DefaultRedisBusOptions() RedisBusOptions {
	return RedisBusOptions{
		Prefix:         "folio:notify:",
		ConnectTimeout: 5 * time.Second,
	}
}

// RedisBus is a Bus backed by Redis pub/sub, for deployments where admin
// mutations and the public site run in separate processes.
type RedisBus struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisBus creates a Redis-backed notification bus with the given options.
func NewRedisBus(opts RedisBusOptions, logger *slog.Logger) (*RedisBus, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBus{
		client: client,
		prefix: opts.Prefix,
		logger: logger,
	}, nil
}

// NewRedisBusFromURL creates a Redis bus from just a URL with default options.
func NewRedisBusFromURL(url string, logger *slog.Logger) (*RedisBus, error) {
	opts := DefaultRedisBusOptions()
	opts.URL = url
	return NewRedisBus(opts, logger)
}

// channelName maps a collection to its pub/sub channel.
func (b *RedisBus) channelName(collection string) string {
	return b.prefix + collection
}

// Publish implements Bus.
func (b *RedisBus) Publish(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channelName(msg.Collection), payload).Err()
}

// Subscribe implements Bus.
func (b *RedisBus) Subscribe(ctx context.Context, collection string) (<-chan Message, error) {
	pubsub := b.client.Subscribe(ctx, b.channelName(collection))

	// Confirm the subscription before handing back the channel
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan Message, subscriberBuffer)
	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()

		in := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.logger.Warn("discarding malformed change message",
						"channel", m.Channel, "error", err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close implements Bus.
func (b *RedisBus) Close() error {
	return b.client.Close()
}
