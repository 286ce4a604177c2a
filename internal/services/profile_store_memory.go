package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/AnshRaj112/biography-backend/internal/models"
)

// MemoryProfileStore keeps documents in process. It backs local development
// without Mongo and the package tests. Setting FetchErr or UpsertErr makes
// the matching calls fail.
type MemoryProfileStore struct {
	mu      sync.Mutex
	docs    map[string]models.ProfileDocument
	upserts int
	lookups int

	FetchErr  error
	UpsertErr error
	SearchErr error
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{docs: make(map[string]models.ProfileDocument)}
}

// Put seeds a document without counting as an upsert.
func (m *MemoryProfileStore) Put(userID string, doc models.ProfileDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID] = doc.Clone()
}

// Get returns the stored document as-is.
func (m *MemoryProfileStore) Get(userID string) (models.ProfileDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[userID]
	return d.Clone(), ok
}

func (m *MemoryProfileStore) Upserts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}

// Lookups counts search calls (friend code and name).
func (m *MemoryProfileStore) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

func (m *MemoryProfileStore) Fetch(_ context.Context, userID string) (*models.ProfileDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	d, ok := m.docs[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	out := d.Clone()
	return &out, nil
}

func (m *MemoryProfileStore) Upsert(_ context.Context, userID string, doc *models.ProfileDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.docs[userID] = doc.Clone()
	return nil
}

func (m *MemoryProfileStore) FindByFriendCode(_ context.Context, code string) (*ProfileMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	code = strings.ToUpper(code)
	for _, id := range m.sortedIDs() {
		if d := m.docs[id]; d.FriendCode == code {
			return &ProfileMatch{ID: id, Profile: d.Clone()}, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (m *MemoryProfileStore) SearchByName(_ context.Context, query string, limit int) ([]ProfileMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	q := strings.ToLower(query)
	out := make([]ProfileMatch, 0)
	for _, id := range m.sortedIDs() {
		if len(out) == limit {
			break
		}
		if d := m.docs[id]; strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, ProfileMatch{ID: id, Profile: d.Clone()})
		}
	}
	return out, nil
}

func (m *MemoryProfileStore) sortedIDs() []string {
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
