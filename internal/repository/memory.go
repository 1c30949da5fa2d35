package repository

import (
	"context"
	"sync"

	"github.com/Rgonzalez7/elias-portfolio/internal/model"
)

// Memory is the default store: process-lifetime only, lost on restart. The
// source demo relied on a single-threaded runtime for map safety; here the
// map is guarded because handlers run on concurrent goroutines.
type Memory struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]model.User)}
}

func (s *Memory) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Memory) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

func (s *Memory) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, ErrNotFound
}
