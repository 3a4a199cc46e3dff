// Package game owns the live instances a server plays on: creation,
// lookup, idle expiry and write-through persistence.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"janggi/internal/janggi"
	"janggi/internal/server/store"
)

// ErrNotFound is returned by Get and Remove for unknown game ids.
var ErrNotFound = errors.New("game not found")

const defaultMaxIdle = 30 * time.Minute

// Manager owns the id-to-instance map. The store may be nil; games
// then live only as long as the process.
type Manager struct {
	mu      sync.RWMutex
	games   map[string]*Instance
	maxIdle time.Duration
	store   store.Store
}

func NewManager(st store.Store, maxIdle time.Duration) *Manager {
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	return &Manager{
		games:   make(map[string]*Instance),
		maxIdle: maxIdle,
		store:   st,
	}
}

// Create starts a fresh game and writes its opening record through.
func (m *Manager) Create(ctx context.Context) (*Instance, error) {
	inst := newInstance(uuid.NewString(), janggi.NewGame(), time.Now())

	m.mu.Lock()
	m.games[inst.ID] = inst
	m.mu.Unlock()

	if err := m.Persist(ctx, inst); err != nil {
		m.mu.Lock()
		delete(m.games, inst.ID)
		m.mu.Unlock()
		return nil, err
	}
	return inst, nil
}

func (m *Manager) Get(id string) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return inst, nil
}

// Remove drops the game from memory and the store.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if m.store != nil {
		return m.store.Delete(ctx, id)
	}
	return nil
}

// Count reports how many instances are live.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Persist writes the instance's current record through the store.
// Callers invoke it after every successful play.
func (m *Manager) Persist(ctx context.Context, inst *Instance) error {
	if m.store == nil {
		return nil
	}
	v := inst.View()
	return m.store.Save(ctx, store.Record{
		ID:        v.ID,
		Position:  v.Position,
		Status:    v.Status,
		Ply:       v.Ply,
		UpdatedAt: v.UpdatedAt,
	})
}

// Restore loads every stored record back into memory, so a restarted
// server resumes its games. A record whose position text no longer
// decodes is skipped rather than fatal.
func (m *Manager) Restore(ctx context.Context) (int, error) {
	if m.store == nil {
		return 0, nil
	}
	recs, err := m.store.List(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, r := range recs {
		pos, err := janggi.DecodePosition(r.Position)
		if err != nil {
			log.Warn().Str("game_id", r.ID).Err(err).Msg("skipping unreadable record")
			continue
		}
		g := janggi.NewGameFromPosition(pos)
		g.Ply = r.Ply
		inst := newInstance(r.ID, g, r.UpdatedAt)
		inst.updated.Store(r.UpdatedAt.UnixNano())

		m.mu.Lock()
		m.games[inst.ID] = inst
		m.mu.Unlock()
		restored++
	}
	return restored, nil
}

// Janitor expires idle games until ctx is done.
func (m *Manager) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := m.sweep(ctx, now); n > 0 {
				log.Info().Int("expired", n).Msg("janitor swept idle games")
			}
		}
	}
}

// sweep removes every instance idle past maxIdle, in memory and in
// the store, and reports how many went.
func (m *Manager) sweep(ctx context.Context, now time.Time) int {
	m.mu.Lock()
	var expired []string
	for id, inst := range m.games {
		if now.Sub(inst.LastActive()) > m.maxIdle {
			expired = append(expired, id)
			delete(m.games, id)
		}
	}
	m.mu.Unlock()

	if m.store != nil {
		for _, id := range expired {
			if err := m.store.Delete(ctx, id); err != nil {
				log.Warn().Str("game_id", id).Err(err).Msg("janitor delete failed")
			}
		}
	}
	return len(expired)
}
