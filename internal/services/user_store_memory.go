package services

import (
	"context"
	"sync"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
)

// MemoryUserStore is a UserStore kept in process memory, used in tests and
// local runs without Postgres.
type MemoryUserStore struct {
	mu       sync.Mutex
	byID     map[string]models.User
	recovery map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byID: map[string]models.User{}, recovery: map[string]string{}}
}

func (m *MemoryUserStore) Create(_ context.Context, u *models.User, recoveryEmailEncrypted string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	u.CreatedAt = time.Now()
	u.IsActive = true
	m.byID[u.ID] = *u
	if recoveryEmailEncrypted != "" {
		m.recovery[u.ID] = recoveryEmailEncrypted
	}
	return nil
}

func (m *MemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, ErrUserNotFound
}

// Recovery returns the stored encrypted recovery email for userID.
func (m *MemoryUserStore) Recovery(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recovery[userID]
}

// SetActive flips a user's active flag.
func (m *MemoryUserStore) SetActive(userID string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[userID]; ok {
		u.IsActive = active
		m.byID[userID] = u
	}
}
