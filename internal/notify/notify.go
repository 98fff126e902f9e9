// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify delivers row-change notifications for watched collections.
// Subscribers receive an opaque "something changed" message; they are expected
// to re-read whatever state they care about rather than interpret the payload.
package notify

import (
	"context"
	"time"
)

// Change operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Message describes one row-level change in a watched collection.
// The payload is deliberately minimal: consumers reload, they do not merge.
type Message struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         string    `json:"id,omitempty"`
	At         time.Time `json:"at"`
}

// Bus publishes and subscribes to change messages for named collections.
type Bus interface {
	// Publish delivers msg to all current subscribers of msg.Collection.
	Publish(ctx context.Context, msg Message) error
	// Subscribe returns a channel of messages for one collection. The channel
	// is closed when ctx is canceled or the bus shuts down. A dropped channel
	// is not re-established.
	Subscribe(ctx context.Context, collection string) (<-chan Message, error)
	// Close shuts the bus down and closes all subscriber channels.
	Close() error
}
