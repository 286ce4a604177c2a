package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
	"github.com/rs/zerolog/log"
)

// backfillTimeout bounds the background write that persists defaults added
// during a load.
const backfillTimeout = 10 * time.Second

// LoadResult is a profile that passed the privacy gate.
type LoadResult struct {
	Profile *models.ProfileDocument
	// Cached is set when the remote store had nothing usable and the owner's
	// local copy was served instead.
	Cached bool
	// Backfilled is set when defaults were filled in and a background
	// persist was started.
	Backfilled bool
}

// ProfileService loads and saves whole profile documents against the remote
// store and the local cache.
type ProfileService struct {
	store ProfileStore
	cache DocumentCache

	bg sync.WaitGroup
}

func NewProfileService(store ProfileStore, cache DocumentCache) *ProfileService {
	return &ProfileService{store: store, cache: cache}
}

// Backfill fills in fields that older documents may lack: an empty friend
// list, a fresh friend code and public privacy. It reports whether anything
// changed.
func Backfill(doc *models.ProfileDocument) bool {
	changed := false
	if doc.SavedProfiles == nil {
		doc.SavedProfiles = []models.FriendRef{}
		changed = true
	}
	if doc.FriendCode == "" {
		doc.FriendCode = utils.GenerateFriendCode()
		changed = true
	}
	if doc.Privacy == "" {
		doc.Privacy = models.PrivacyPublic
		changed = true
	}
	return changed
}

// CanView is the privacy gate: owners, anyone on a public profile, and
// users on the owner's friend list may view.
func CanView(doc *models.ProfileDocument, ownerID, viewerID string) bool {
	if viewerID != "" && viewerID == ownerID {
		return true
	}
	if doc.Privacy != models.PrivacyPrivate {
		return true
	}
	return doc.IsFriend(viewerID)
}

// Load resolves targetID's document for viewerID. Owner loads (isPublicView
// false) prefer remote data but fall back to the local cache, and to
// ErrNeedsOnboarding when neither has a document. Public loads treat every
// failure as ErrProfileNotFound. A private document the viewer may not see
// yields *AccessDeniedError.
func (s *ProfileService) Load(ctx context.Context, targetID string, isPublicView bool, viewerID string) (*LoadResult, error) {
	var cached *models.ProfileDocument
	if !isPublicView {
		if doc, ok := s.cache.Load(ctx, targetID); ok {
			Backfill(doc)
			cached = doc
		}
	}

	doc, err := s.store.Fetch(ctx, targetID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			log.Warn().Err(err).Str("user_id", targetID).Bool("public", isPublicView).Msg("profile fetch failed")
		}
		if isPublicView {
			return nil, ErrProfileNotFound
		}
		if cached != nil {
			return &LoadResult{Profile: cached, Cached: true}, nil
		}
		return nil, ErrNeedsOnboarding
	}

	// a code backfilled by an earlier load that never reached the store
	// survives in the cache and is reused
	reused := false
	if doc.FriendCode == "" && cached != nil && cached.FriendCode != "" {
		doc.FriendCode = cached.FriendCode
		reused = true
	}
	backfilled := Backfill(doc) || reused
	if backfilled {
		s.persistAsync(targetID, doc.Clone())
	}

	if !CanView(doc, targetID, viewerID) {
		return nil, &AccessDeniedError{FriendCode: doc.FriendCode}
	}

	if !isPublicView {
		s.cache.Store(ctx, targetID, doc)
	}
	return &LoadResult{Profile: doc, Backfilled: backfilled}, nil
}

// persistAsync writes a backfilled document without blocking the caller.
// Failure is logged only; the next owner load retries with the cached code.
func (s *ProfileService) persistAsync(userID string, doc models.ProfileDocument) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
		defer cancel()
		if err := s.store.Upsert(ctx, userID, &doc); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("background profile update failed")
		}
	}()
}

// Wait blocks until background backfill writes have finished.
func (s *ProfileService) Wait() {
	s.bg.Wait()
}

// SaveProfile commits the whole document: friend code ensured, local cache
// written (best effort), then the remote upsert. A remote failure returns
// *SaveFailedError; the cached copy stays in place.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, doc *models.ProfileDocument) error {
	if doc.FriendCode == "" {
		doc.FriendCode = utils.GenerateFriendCode()
	}
	s.cache.Store(ctx, userID, doc)

	if err := s.store.Upsert(ctx, userID, doc); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("saved locally, sync failed")
		return &SaveFailedError{Err: err}
	}
	return nil
}

// Fetch reads a document straight from the store with defaults filled in.
// It skips the privacy gate and the cache; callers use it for snapshots.
func (s *ProfileService) Fetch(ctx context.Context, userID string) (*models.ProfileDocument, error) {
	doc, err := s.store.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	Backfill(doc)
	return doc, nil
}

// Store exposes the underlying document store for search.
func (s *ProfileService) Store() ProfileStore {
	return s.store
}
