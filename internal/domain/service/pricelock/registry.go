package pricelock

import (
	"sync"

	"github.com/benbjohnson/clock"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/errcodes"
)

// Registry держит по одному локу на сессию заказа. Инвариант "не больше
// одного активного лока на заявку" обеспечивает сам Lock, реестр лишь
// находит его по сессии.
type Registry struct {
	mu       sync.Mutex
	clk      clock.Clock
	onExpire ExpireFunc
	locks    map[string]*Lock
}

func NewRegistry(clk clock.Clock, onExpire ExpireFunc) *Registry {
	if clk == nil {
		clk = clock.New()
	}

	return &Registry{
		clk:      clk,
		onExpire: onExpire,
		locks:    make(map[string]*Lock),
	}
}

// Obtain возвращает лок сессии, создавая его под запрошенную политику.
// Сменить политику можно только при неактивном локе.
func (r *Registry) Obtain(sessionID string, policy Policy) (*Lock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.locks[sessionID]
	if !ok {
		l := New(policy, r.clk, r.onExpire)
		r.locks[sessionID] = l

		return l, nil
	}

	if existing.policy == policy {
		return existing, nil
	}

	if existing.State() == entity.LockStateLocked {
		return nil, domain.NewError(errcodes.LockAlreadyActive, "price lock already active")
	}

	l := New(policy, r.clk, r.onExpire)
	r.locks[sessionID] = l

	return l, nil
}

// Get возвращает лок сессии, если он есть.
func (r *Registry) Get(sessionID string) (*Lock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[sessionID]
	if !ok {
		return nil, domain.NewError(errcodes.LockNotFound, "no price lock for session")
	}

	return l, nil
}

// Release отменяет и забывает лок сессии. Идемпотентна.
func (r *Registry) Release(sessionID string) {
	r.mu.Lock()
	l, ok := r.locks[sessionID]
	delete(r.locks, sessionID)
	r.mu.Unlock()

	if ok {
		l.Cancel()
	}
}
