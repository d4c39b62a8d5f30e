// Package memstore keeps the user directory in process memory.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/user"
)

type Store struct {
	mu    sync.RWMutex
	users []user.User // newest first
}

func New(seed []*user.User) *Store {
	s := &Store{users: make([]user.User, 0, len(seed))}
	for _, u := range seed {
		s.users = append(s.users, *u)
	}

	return s
}

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = slices.Insert(s.users, 0, *u)

	return nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return nil, user.ErrNotFound
	}

	u := s.users[i]

	return &u, nil
}

func (s *Store) UpdateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(u.ID)
	if i < 0 {
		return user.ErrNotFound
	}

	s.users[i] = *u

	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return user.ErrNotFound
	}

	s.users = slices.Delete(s.users, i, i+1)

	return nil
}

func (s *Store) ListUsers(_ context.Context, query string) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]*user.User, 0, len(s.users))

	for _, u := range s.users {
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}

		out = append(out, &u)
	}

	return out, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users), nil
}

func (s *Store) index(id uuid.UUID) int {
	return slices.IndexFunc(s.users, func(u user.User) bool { return u.ID == id })
}
