// Package session scopes one cart aggregate per authenticated owner and hands
// it to request handlers through explicit context propagation. There is no
// ambient global cart: anything that needs cart state receives the same
// instance via the manager or the request context.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/arjunsaxaena/CraveConnect/internal/cart"
	"github.com/arjunsaxaena/CraveConnect/internal/store"
)

// ErrNoCartScope is the usage error for cart access outside an initialized
// session scope. Hitting it means a wiring bug, not bad request data.
var ErrNoCartScope = errors.New("no cart in scope: request is outside an initialized session")

type Manager struct {
	store store.SnapshotStore
	log   logrus.FieldLogger

	mu    sync.RWMutex
	carts map[string]*cart.Aggregate
	sfg   singleflight.Group // at most one rehydration per owner
}

func NewManager(s store.SnapshotStore, log logrus.FieldLogger) *Manager {
	return &Manager{
		store: s,
		log:   log,
		carts: make(map[string]*cart.Aggregate),
	}
}

// Cart returns the owner's aggregate, materializing it on first access by
// rehydrating from the snapshot store. Concurrent first accesses for the same
// owner share a single rehydration and receive the same instance.
func (m *Manager) Cart(ctx context.Context, owner string) *cart.Aggregate {
	m.mu.RLock()
	a, ok := m.carts[owner]
	m.mu.RUnlock()
	if ok {
		return a
	}

	v, _, _ := m.sfg.Do(owner, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.carts[owner]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created := cart.New(ctx, m.store, snapshotKey(owner), m.log)

		m.mu.Lock()
		m.carts[owner] = created
		m.mu.Unlock()
		return created, nil
	})
	return v.(*cart.Aggregate)
}

func snapshotKey(owner string) string {
	return fmt.Sprintf("cart:%s", owner)
}

type ctxKey struct{}

// NewContext attaches the aggregate to the request context.
func NewContext(ctx context.Context, a *cart.Aggregate) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext retrieves the in-scope aggregate. Calling it outside a session
// scope returns ErrNoCartScope.
func FromContext(ctx context.Context) (*cart.Aggregate, error) {
	a, ok := ctx.Value(ctxKey{}).(*cart.Aggregate)
	if !ok {
		return nil, ErrNoCartScope
	}
	return a, nil
}
