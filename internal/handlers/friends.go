package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type AddFriendRequest struct {
	TargetID string `json:"targetId"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

// ownerDocument returns the working copy when an editor is open, otherwise
// the owner's loaded document.
func (a *API) ownerDocument(ctx context.Context, userID string) (*models.ProfileDocument, error) {
	if s, ok := a.Editors.Get(userID); ok {
		doc := s.Document()
		return &doc, nil
	}
	res, err := a.Profiles.Load(ctx, userID, false, userID)
	if err != nil {
		return nil, err
	}
	return res.Profile, nil
}

func (a *API) ListFriends(w http.ResponseWriter, r *http.Request) {
	doc, err := a.ownerDocument(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	friends := doc.SavedProfiles
	if friends == nil {
		friends = []models.FriendRef{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "friends": friends})
}

// AddFriend saves a snapshot of the target's header to the caller's list.
func (a *API) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var req AddFriendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	targetID := strings.TrimSpace(req.TargetID)
	if targetID == "" {
		writeMessage(w, http.StatusBadRequest, "targetId is required")
		return
	}
	if targetID == userID {
		writeError(w, r, services.ErrSelfFriend)
		return
	}

	target, err := a.Profiles.Fetch(r.Context(), targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	friend := target.Snapshot(targetID)
	if err := a.Friends.AddFriend(r.Context(), userID, friend, a.Editors.Committer(userID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Added " + friend.Name + "!",
		"friend":  friend,
	})
}

func (a *API) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := a.Friends.RemoveFriend(r.Context(), chi.URLParam(r, "id"), a.Editors.Committer(userID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed")
}

// SearchFriend finds a user by friend code or name and adds them. The
// outcome is always reported in the body with status 200.
func (a *API) SearchFriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := a.Friends.SearchAndAdd(r.Context(), userID, req.Query, a.Editors.Committer(userID))
	writeJSON(w, http.StatusOK, res)
}
