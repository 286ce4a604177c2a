package services

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAutosaveDebounce is the quiet period before an edit is committed.
	DefaultAutosaveDebounce = 2 * time.Second
	// commitTimeout bounds a debounced commit, which runs detached from any request.
	commitTimeout = 15 * time.Second
	statusBuffer  = 8
)

// Clock abstracts time for the autosave timer.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}

type SaveStatus string

const (
	StatusSaved  SaveStatus = "saved"
	StatusSaving SaveStatus = "saving"
	StatusError  SaveStatus = "error"
)

// StatusEvent describes the editor's save state after a transition.
type StatusEvent struct {
	Status      SaveStatus `json:"status"`
	LastSavedAt *time.Time `json:"lastSavedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// CommitFunc persists a full document.
type CommitFunc func(ctx context.Context, doc *models.ProfileDocument) error

// EditorSession holds an owner's working copy and commits it after a quiet
// period. Every mutation restarts the debounce; the commit always carries the
// whole accumulated document. A commit is identified by a generation number
// so a stale timer or a slow commit never overwrites a newer status.
type EditorSession struct {
	userID   string
	commit   CommitFunc
	clock    Clock
	debounce time.Duration

	mu          sync.Mutex
	doc         models.ProfileDocument
	committed   models.ProfileDocument
	status      SaveStatus
	lastErr     error
	lastSavedAt time.Time
	timer       Timer
	gen         uint64
	closed      bool
	subs        map[int]chan StatusEvent
	nextSub     int
}

func NewEditorSession(userID string, doc models.ProfileDocument, commit CommitFunc, clock Clock, debounce time.Duration) *EditorSession {
	if clock == nil {
		clock = SystemClock
	}
	if debounce <= 0 {
		debounce = DefaultAutosaveDebounce
	}
	return &EditorSession{
		userID:    userID,
		commit:    commit,
		clock:     clock,
		debounce:  debounce,
		doc:       doc.Clone(),
		committed: doc.Clone(),
		status:    StatusSaved,
		subs:      make(map[int]chan StatusEvent),
	}
}

func (s *EditorSession) UserID() string { return s.userID }

// Document returns a copy of the working document.
func (s *EditorSession) Document() models.ProfileDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *EditorSession) Status() StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventLocked()
}

// Mutate applies fn to a copy of the working document. If fn fails nothing
// changes. If the result differs from the last committed snapshot the
// session goes to saving and the debounce restarts; if an edit brings the
// document back to the committed state the pending commit is dropped.
func (s *EditorSession) Mutate(fn func(doc *models.ProfileDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.doc = next

	s.stopTimerLocked()
	s.gen++
	if reflect.DeepEqual(s.doc, s.committed) {
		s.setStatusLocked(StatusSaved, nil)
		return nil
	}

	gen := s.gen
	s.timer = s.clock.AfterFunc(s.debounce, func() { s.fire(gen) })
	s.setStatusLocked(StatusSaving, nil)
	return nil
}

// SaveNow commits the working document immediately, cancelling any pending
// debounce.
func (s *EditorSession) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.stopTimerLocked()
	s.gen++
	gen := s.gen
	snapshot := s.doc.Clone()
	s.setStatusLocked(StatusSaving, nil)
	s.mu.Unlock()

	return s.run(ctx, gen, snapshot)
}

// Commit applies fn and saves at once. It lets friend-list changes go
// through an open editor without diverging from its working copy.
func (s *EditorSession) Commit(ctx context.Context, fn func(doc *models.ProfileDocument) error) error {
	if err := s.Mutate(fn); err != nil {
		return err
	}
	return s.SaveNow(ctx)
}

// Close detaches the session from its subscribers. A pending debounced
// commit is neither flushed nor cancelled; it still fires on schedule.
func (s *EditorSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *EditorSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Unsaved reports whether the working copy differs from the last successful
// commit.
func (s *EditorSession) Unsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !reflect.DeepEqual(s.doc, s.committed)
}

// Resume reopens a closed session that still holds unsaved edits, so a
// pending or failed commit is not lost behind a fresh load. It reports
// whether the session is open.
func (s *EditorSession) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		return true
	}
	if reflect.DeepEqual(s.doc, s.committed) {
		return false
	}
	s.closed = false
	return true
}

// Pending reports whether a debounced commit is scheduled.
func (s *EditorSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Subscribe streams status transitions. Slow readers miss events rather
// than block the editor. The returned func unsubscribes.
func (s *EditorSession) Subscribe() (<-chan StatusEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan StatusEvent, statusBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.eventLocked()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

func (s *EditorSession) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	snapshot := s.doc.Clone()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), commitTimeout)
	defer cancel()
	if err := s.run(ctx, gen, snapshot); err != nil {
		log.Warn().Err(err).Str("user_id", s.userID).Msg("autosave failed")
	}
}

func (s *EditorSession) run(ctx context.Context, gen uint64, snapshot models.ProfileDocument) error {
	err := s.commit(ctx, &snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.committed = snapshot
	}
	if gen != s.gen {
		// a newer edit or save owns the status now
		return err
	}
	if err != nil {
		s.setStatusLocked(StatusError, err)
		return err
	}
	s.lastSavedAt = s.clock.Now()
	s.setStatusLocked(StatusSaved, nil)
	return nil
}

func (s *EditorSession) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *EditorSession) setStatusLocked(status SaveStatus, err error) {
	changed := s.status != status || err != nil || status == StatusSaved
	s.status = status
	s.lastErr = err
	if !changed {
		return
	}
	ev := s.eventLocked()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *EditorSession) eventLocked() StatusEvent {
	ev := StatusEvent{Status: s.status}
	if !s.lastSavedAt.IsZero() {
		t := s.lastSavedAt
		ev.LastSavedAt = &t
	}
	if s.lastErr != nil {
		ev.Error = s.lastErr.Error()
	}
	return ev
}
