package services

import (
	"context"
	"sync"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/rs/zerolog/log"
)

// EditorHub keeps at most one editor session per user.
type EditorHub struct {
	profiles *ProfileService
	clock    Clock
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]*EditorSession
}

func NewEditorHub(profiles *ProfileService, clock Clock, debounce time.Duration) *EditorHub {
	return &EditorHub{
		profiles: profiles,
		clock:    clock,
		debounce: debounce,
		sessions: make(map[string]*EditorSession),
	}
}

// Open returns the user's session, loading their document through the owner
// path if none is open. A closed session that still has unsaved edits is
// resumed instead. ErrNeedsOnboarding means there is nothing to edit yet.
func (h *EditorHub) Open(ctx context.Context, userID string) (*EditorSession, error) {
	h.mu.Lock()
	if s, ok := h.sessions[userID]; ok && s.Resume() {
		h.mu.Unlock()
		return s, nil
	}
	h.mu.Unlock()

	res, err := h.profiles.Load(ctx, userID, false, userID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	// another request may have opened it while we were loading
	if s, ok := h.sessions[userID]; ok && s.Resume() {
		return s, nil
	}
	s := NewEditorSession(userID, *res.Profile, h.commitFor(userID), h.clock, h.debounce)
	h.sessions[userID] = s
	return s, nil
}

func (h *EditorHub) Get(userID string) (*EditorSession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[userID]
	if !ok || s.Closed() {
		return nil, false
	}
	return s, true
}

// Close ends the user's session without flushing a pending autosave. A
// session with unsaved edits stays registered so Open can resume it.
func (h *EditorHub) Close(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[userID]
	if !ok || s.Closed() {
		return false
	}
	s.Close()
	if !s.Unsaved() {
		delete(h.sessions, userID)
	}
	return true
}

// Committer routes friend-list changes through the open session when there
// is one so the editor's working copy stays authoritative.
func (h *EditorHub) Committer(userID string) Committer {
	if s, ok := h.Get(userID); ok {
		return s
	}
	return DirectCommitter{Profiles: h.profiles, UserID: userID}
}

// Shutdown saves every session that still has unsaved edits, closed ones
// included, and then closes all of them. It is called when the process
// stops, where a scheduled timer would otherwise be lost.
func (h *EditorHub) Shutdown(ctx context.Context) {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*EditorSession)
	h.mu.Unlock()

	for userID, s := range sessions {
		if s.Unsaved() && s.Resume() {
			if err := s.SaveNow(ctx); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("flush on shutdown failed")
			}
		}
		s.Close()
	}
}

func (h *EditorHub) commitFor(userID string) CommitFunc {
	return func(ctx context.Context, doc *models.ProfileDocument) error {
		return h.profiles.SaveProfile(ctx, userID, doc)
	}
}
