// Package persistence keeps a durable snapshot of the cart in sync with the
// cart store and restores it at startup.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopflow/storefront/internal/cart"
)

// SnapshotKey is the versioned storage key for the cart snapshot. A format
// change bumps the suffix instead of migrating in place.
const SnapshotKey = "cart-state-v1"

// KeyValue is the storage medium behind the bridge. Get reports absence
// through its second return value rather than an error.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Bridge persists the cart line sequence after every committed transition
// and seeds the store from the stored snapshot at startup. Storage and
// decode failures are recovered locally: the cart simply starts empty.
type Bridge struct {
	kv     KeyValue
	logger *slog.Logger
}

// NewBridge creates a bridge over the given storage.
func NewBridge(kv KeyValue, logger *slog.Logger) *Bridge {
	return &Bridge{
		kv:     kv,
		logger: logger.With("component", "persistence"),
	}
}

// Restore reads the stored snapshot and seeds the store via a Load
// transition. A missing key, unreadable storage or malformed payload leaves
// the store at its default empty state; none of these conditions is
// propagated to the caller.
func (b *Bridge) Restore(ctx context.Context, store *cart.Store) {
	raw, ok, err := b.kv.Get(ctx, SnapshotKey)
	if err != nil {
		b.logger.WarnContext(ctx, "Failed to read cart snapshot, starting with an empty cart", "key", SnapshotKey, "error", err)
		return
	}
	if !ok {
		b.logger.DebugContext(ctx, "No cart snapshot found", "key", SnapshotKey)
		return
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		b.logger.WarnContext(ctx, "Malformed cart snapshot, starting with an empty cart", "key", SnapshotKey, "error", err)
		return
	}

	store.Load(lines)
	b.logger.InfoContext(ctx, "Cart restored from snapshot", "lines", len(lines))
}

// Attach subscribes the bridge to the store so every committed transition
// is written through to storage. Writes are detached from the startup
// context's cancellation: a command committed during shutdown must still
// reach storage, or the final snapshot would be lost.
func (b *Bridge) Attach(ctx context.Context, store *cart.Store) {
	persistCtx := context.WithoutCancel(ctx)
	store.Subscribe(func(lines []cart.Line) {
		if err := b.persist(persistCtx, lines); err != nil {
			b.logger.ErrorContext(persistCtx, "Failed to persist cart snapshot", "key", SnapshotKey, "error", err)
		}
	})
}

func (b *Bridge) persist(ctx context.Context, lines []cart.Line) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := b.kv.Set(ctx, SnapshotKey, string(payload)); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}
