// File: session/store.go
// Package session
// Author: momentics <momentics@gmail.com>
//
// Sharded, thread-safe registry of live sessions for container code.

package session

import (
	"hash/fnv"
	"sync"
)

// Store holds sessions keyed by id across power-of-two shards.
type Store struct {
	shards []*storeShard
	mask   uint32
}

type storeShard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore constructs a sharded store with shardCount shards.
func NewStore(shardCount int) *Store {
	if shardCount <= 0 {
		shardCount = 16
	}
	// find power-of-two shards for bitmasking
	m := nextPowerOfTwo(uint32(shardCount))
	shards := make([]*storeShard, m)
	for i := range shards {
		shards[i] = &storeShard{sessions: make(map[string]*Session)}
	}
	return &Store{shards: shards, mask: m - 1}
}

// shard picks the correct shard for a given id.
func (st *Store) shard(id string) *storeShard {
	h := fnv32(id)
	return st.shards[h&st.mask]
}

// Add registers s under its id, replacing any previous entry.
func (st *Store) Add(s *Session) {
	sh := st.shard(s.ID())
	sh.mu.Lock()
	sh.sessions[s.ID()] = s
	sh.mu.Unlock()
}

// Get fetches a session if present.
func (st *Store) Get(id string) (*Session, bool) {
	sh := st.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[id]
	return s, ok
}

// Remove closes and deregisters the session.
func (st *Store) Remove(id string) {
	sh := st.shard(id)
	sh.mu.Lock()
	s, ok := sh.sessions[id]
	if ok {
		delete(sh.sessions, id)
	}
	sh.mu.Unlock()
	if ok {
		_ = s.Close()
	}
}

// Range applies fn to all sessions.
func (st *Store) Range(fn func(*Session)) {
	for _, sh := range st.shards {
		sh.mu.RLock()
		for _, s := range sh.sessions {
			fn(s)
		}
		sh.mu.RUnlock()
	}
}

// Len returns the number of registered sessions.
func (st *Store) Len() int {
	n := 0
	for _, sh := range st.shards {
		sh.mu.RLock()
		n += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return n
}

// Stats aggregates routing counters across all registered sessions.
func (st *Store) Stats() map[string]any {
	var open, framesIn, errorsIn, writes int64
	st.Range(func(s *Session) {
		stats := s.Stats()
		if stats["open"].(bool) {
			open++
		}
		framesIn += stats["frames_in"].(int64)
		errorsIn += stats["errors_in"].(int64)
		writes += stats["writes"].(int64)
	})
	return map[string]any{
		"sessions":  st.Len(),
		"open":      open,
		"frames_in": framesIn,
		"errors_in": errorsIn,
		"writes":    writes,
	}
}

// fnv32 hashes a string to uint32.
func fnv32(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// nextPowerOfTwo returns the next power-of-two >= v.
func nextPowerOfTwo(v uint32) uint32 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	return v
}
