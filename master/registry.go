package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"sync"
	"time"
)

// TableInfo describes a running encounter server visible to clients looking
// for a table to join.
type TableInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	MapName    string `json:"mapName"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
}

type tableRecord struct {
	TableInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active tables with TTL-based expiry.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*tableRecord
	ttl    time.Duration
	stopCh chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		tables: make(map[string]*tableRecord),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

func (r *Registry) Register(info TableInfo) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)

	info.ID = id

	r.mu.Lock()
	r.tables[id] = &tableRecord{
		TableInfo: info,
		LastSeen:  time.Now(),
	}
	r.mu.Unlock()

	return id
}

// Heartbeat refreshes a table's TTL and updates its live player count and
// active map. Returns false for unknown ids so the table re-registers.
func (r *Registry) Heartbeat(id, mapName string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tables[id]
	if !ok {
		return false
	}
	rec.LastSeen = time.Now()
	rec.Players = players
	if mapName != "" {
		rec.MapName = mapName
	}
	return true
}

func (r *Registry) List() []TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TableInfo, 0, len(r.tables))
	for _, rec := range r.tables {
		out = append(out, rec.TableInfo)
	}
	return out
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(r.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.expire()
		}
	}
}

func (r *Registry) expire() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.tables {
		if rec.LastSeen.Before(cutoff) {
			delete(r.tables, id)
			log.Printf("[master] expired table %q (id=%s)", rec.Name, id)
		}
	}
}
