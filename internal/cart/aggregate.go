package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/domain"
	"github.com/arjunsaxaena/CraveConnect/internal/store"
)

// Command rejections. The aggregate validates input itself instead of
// trusting the caller's pre-validation; a rejected command leaves state
// untouched and nothing is persisted.
var (
	ErrInvalidItem         = errors.New("invalid line item")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// Aggregate owns one cart: line items in insertion order plus derived totals.
// Every accepted mutation recomputes the totals and mirrors the full snapshot
// to the store under a fixed key. The in-memory state stays authoritative for
// the session even when a mirror write fails.
//
// Commands are serialized by an internal mutex; they are applied in the order
// they are invoked. Two processes sharing the same store key still
// last-write-wins each other's snapshots; there is no cross-session conflict
// resolution.
type Aggregate struct {
	mu    sync.Mutex
	key   string
	store store.SnapshotStore
	log   logrus.FieldLogger

	items       []domain.LineItem
	totalItems  int
	totalAmount float64
}

// New builds the aggregate for the given store key, rehydrating from a
// previously persisted snapshot when one exists. The decoded snapshot is
// trusted verbatim, totals included; absent or malformed content degrades
// to an empty cart and is never surfaced as an error.
func New(ctx context.Context, s store.SnapshotStore, key string, log logrus.FieldLogger) *Aggregate {
	a := &Aggregate{
		key:   key,
		store: s,
		log:   log.WithField("cart_key", key),
	}

	data, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return a
	}
	if err != nil {
		a.log.WithError(err).Warn("cart rehydration read failed, starting empty")
		return a
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		a.log.WithError(err).Warn("cart snapshot malformed, starting empty")
		return a
	}

	a.items = snap.Items
	a.totalItems = snap.TotalItems
	a.totalAmount = snap.TotalAmount
	return a
}

// AddItem merges the item into an existing line with the same ID (quantity is
// additive, every other field of the existing line wins) or appends it as a
// new line, preserving insertion order.
func (a *Aggregate) AddItem(ctx context.Context, item domain.LineItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	item.SpecialInstructions = strings.TrimSpace(item.SpecialInstructions)

	a.mu.Lock()
	defer a.mu.Unlock()

	merged := false
	for i := range a.items {
		if a.items[i].ID == item.ID {
			a.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		a.items = append(a.items, item)
	}

	a.recompute()
	a.persist(ctx)
	return nil
}

// RemoveItem removes one unit of the line with the given ID: a line at
// quantity 1 is deleted entirely, otherwise the quantity is decremented.
// An unknown ID is a no-op, not an error.
func (a *Aggregate) RemoveItem(ctx context.Context, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := -1
	for i := range a.items {
		if a.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	if a.items[idx].Quantity == 1 {
		a.items = append(a.items[:idx], a.items[idx+1:]...)
	} else {
		a.items[idx].Quantity--
	}

	a.recompute()
	a.persist(ctx)
}

// UpdateQuantity sets the line's quantity to the given value (absolute
// replace, not additive). Non-positive quantities are rejected; this command
// never deletes a line. An unknown ID leaves the items unchanged.
func (a *Aggregate) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return ErrNonPositiveQuantity
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i].Quantity = quantity
			break
		}
	}

	a.recompute()
	a.persist(ctx)
	return nil
}

// Clear empties the cart and deletes the persisted mirror entirely. The store
// key is absent afterward, so the next rehydration starts empty rather than
// decoding an empty snapshot.
func (a *Aggregate) Clear(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = nil
	a.totalItems = 0
	a.totalAmount = 0

	if err := a.store.Delete(ctx, a.key); err != nil {
		a.log.WithError(err).Warn("cart snapshot delete failed")
	}
}

// Snapshot returns a copy of the current state. Safe to retain.
func (a *Aggregate) Snapshot() domain.CartSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]domain.LineItem, len(a.items))
	copy(items, a.items)
	return domain.CartSnapshot{
		Items:       items,
		TotalItems:  a.totalItems,
		TotalAmount: a.totalAmount,
	}
}

// recompute derives both totals from the full item sequence. Callers hold the
// mutex. No rounding here; display formatting is a presentation concern.
func (a *Aggregate) recompute() {
	totalItems := 0
	totalAmount := 0.0
	for _, item := range a.items {
		totalItems += item.Quantity
		totalAmount += item.Subtotal()
	}
	a.totalItems = totalItems
	a.totalAmount = totalAmount
}

// persist mirrors the current state to the store. A write failure is logged
// and swallowed: the in-memory state is not rolled back.
func (a *Aggregate) persist(ctx context.Context) {
	snap := domain.CartSnapshot{
		Items:       a.items,
		TotalItems:  a.totalItems,
		TotalAmount: a.totalAmount,
	}
	if snap.Items == nil {
		snap.Items = []domain.LineItem{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		a.log.WithError(err).Warn("cart snapshot marshal failed")
		return
	}
	if err := a.store.Set(ctx, a.key, data); err != nil {
		a.log.WithError(err).Warn("cart snapshot persist failed")
	}
}

func validateItem(item domain.LineItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return fmt.Errorf("%w: price is not finite", ErrInvalidItem)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidItem)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: quantity below 1", ErrInvalidItem)
	}
	return nil
}
