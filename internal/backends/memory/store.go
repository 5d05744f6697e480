// Package memory is the in-process settings backend. It is the default
// for tests and local runs; it keeps the same wire form as the remote
// backends (see codec) so the value path is identical everywhere.
package memory

import (
	"context"
	"sync"

	"siteconf/internal/codec"
	"siteconf/internal/types"
)

type Store struct {
	mu      sync.RWMutex
	global  map[string]string
	tenants map[int64]map[string]string
}

func NewStore() *Store {
	return &Store{
		global:  make(map[string]string),
		tenants: make(map[int64]map[string]string),
	}
}

func (s *Store) GetGlobal(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	v, ok := s.global[key]
	s.mu.RUnlock()
	if !ok {
		return "", types.ErrNotFound
	}
	return codec.Decode(v)
}

func (s *Store) SetGlobal(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.global[key] = codec.Encode(value)
	s.mu.Unlock()
	return nil
}

func (s *Store) GetTenant(ctx context.Context, tenantID int64, key string) (string, error) {
	s.mu.RLock()
	part, ok := s.tenants[tenantID]
	var v string
	if ok {
		v, ok = part[key]
	}
	s.mu.RUnlock()
	if !ok {
		return "", types.ErrNotFound
	}
	return codec.Decode(v)
}

func (s *Store) SetTenant(ctx context.Context, tenantID int64, key, value string) error {
	s.mu.Lock()
	part, ok := s.tenants[tenantID]
	if !ok {
		part = make(map[string]string)
		s.tenants[tenantID] = part
	}
	part[key] = codec.Encode(value)
	s.mu.Unlock()
	return nil
}
