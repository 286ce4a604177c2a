package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// MinSearchLength is the shortest query that reaches the store.
	MinSearchLength = 3
	// NameSearchLimit caps name candidates; the first one wins.
	NameSearchLimit = 5
)

// Committer applies a change to a user's current document and persists it.
// The editor session and a plain load-modify-save both satisfy it.
type Committer interface {
	Commit(ctx context.Context, fn func(doc *models.ProfileDocument) error) error
}

// SearchResult is the uniform answer to a friend search.
type SearchResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Friend  *models.FriendRef `json:"friend,omitempty"`
}

// FriendService manages friend lists. Friendship is one-directional: adding
// someone needs no approval and does not notify them.
type FriendService struct {
	store ProfileStore
}

func NewFriendService(store ProfileStore) *FriendService {
	return &FriendService{store: store}
}

// AddFriend appends a snapshot of target to the owner's friend list.
func (f *FriendService) AddFriend(ctx context.Context, ownerID string, target models.FriendRef, c Committer) error {
	if target.ID == ownerID {
		return ErrSelfFriend
	}
	return c.Commit(ctx, func(doc *models.ProfileDocument) error {
		if doc.IsFriend(target.ID) {
			return ErrAlreadyFriend
		}
		if doc.SavedProfiles == nil {
			doc.SavedProfiles = []models.FriendRef{}
		}
		doc.SavedProfiles = append(doc.SavedProfiles, target)
		return nil
	})
}

// RemoveFriend drops friendID from the owner's friend list.
func (f *FriendService) RemoveFriend(ctx context.Context, friendID string, c Committer) error {
	return c.Commit(ctx, func(doc *models.ProfileDocument) error {
		kept := make([]models.FriendRef, 0, len(doc.SavedProfiles))
		for _, p := range doc.SavedProfiles {
			if p.ID != friendID {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(doc.SavedProfiles) {
			return ErrFriendNotFound
		}
		doc.SavedProfiles = kept
		return nil
	})
}

// Find looks a user up by friend code first, then by name. Queries shorter
// than MinSearchLength return ErrSearchTooShort without touching the store.
func (f *FriendService) Find(ctx context.Context, query string) (*ProfileMatch, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinSearchLength {
		return nil, ErrSearchTooShort
	}

	match, err := f.store.FindByFriendCode(ctx, strings.ToUpper(q))
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	matches, err := f.store.SearchByName(ctx, q, NameSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrProfileNotFound
	}
	return &matches[0], nil
}

// SearchAndAdd finds a user and adds them to ownerID's friend list.
func (f *FriendService) SearchAndAdd(ctx context.Context, ownerID, query string, c Committer) SearchResult {
	match, err := f.Find(ctx, query)
	switch {
	case errors.Is(err, ErrSearchTooShort):
		return SearchResult{Message: "Search too short."}
	case errors.Is(err, ErrProfileNotFound):
		return SearchResult{Message: "User not found."}
	case err != nil:
		log.Error().Err(err).Str("user_id", ownerID).Msg("friend search failed")
		return SearchResult{Message: "Connection error."}
	}

	friend := match.Profile.Snapshot(match.ID)
	err = f.AddFriend(ctx, ownerID, friend, c)
	switch {
	case errors.Is(err, ErrSelfFriend):
		return SearchResult{Message: "You cannot add yourself."}
	case errors.Is(err, ErrAlreadyFriend):
		return SearchResult{Message: "Already in friends list."}
	case err != nil:
		log.Warn().Err(err).Str("user_id", ownerID).Msg("saving friend failed")
		return SearchResult{Message: "Failed to save."}
	}
	return SearchResult{
		Success: true,
		Message: fmt.Sprintf("Added %s!", friend.Name),
		Friend:  &friend,
	}
}

// DirectCommitter commits through a fresh owner load and a full save. It is
// used when the owner has no editor session open.
type DirectCommitter struct {
	Profiles *ProfileService
	UserID   string
}

func (d DirectCommitter) Commit(ctx context.Context, fn func(doc *models.ProfileDocument) error) error {
	res, err := d.Profiles.Load(ctx, d.UserID, false, d.UserID)
	if err != nil {
		return err
	}
	doc := res.Profile
	if err := fn(doc); err != nil {
		return err
	}
	return d.Profiles.SaveProfile(ctx, d.UserID, doc)
}
