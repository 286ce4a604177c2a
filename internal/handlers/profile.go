package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/internal/services"
)

// ProfileHeader is the part of a document shown above the grid. Friend
// code and friend list are only included for the owner.
type ProfileHeader struct {
	Name          string             `json:"name"`
	Role          string             `json:"role"`
	Location      string             `json:"location"`
	AvatarURL     string             `json:"avatarUrl"`
	BannerURL     string             `json:"bannerUrl,omitempty"`
	Font          models.Font        `json:"font,omitempty"`
	Theme         models.Theme       `json:"theme"`
	Privacy       models.Privacy     `json:"privacy"`
	FriendCode    string             `json:"friendCode,omitempty"`
	SavedProfiles []models.FriendRef `json:"savedProfiles,omitempty"`
}

func headerFor(doc *models.ProfileDocument, isOwner bool) ProfileHeader {
	h := ProfileHeader{
		Name:      doc.Name,
		Role:      doc.Role,
		Location:  doc.Location,
		AvatarURL: doc.AvatarURL,
		BannerURL: doc.BannerURL,
		Font:      doc.Font,
		Theme:     doc.Theme,
		Privacy:   doc.Privacy,
	}
	if isOwner {
		h.FriendCode = doc.FriendCode
		h.SavedProfiles = doc.SavedProfiles
	}
	return h
}

type SessionResponse struct {
	Success    bool              `json:"success"`
	Mode       services.ViewMode `json:"mode"`
	ViewerID   string            `json:"viewerId,omitempty"`
	TargetID   string            `json:"targetId,omitempty"`
	HasProfile bool              `json:"hasProfile"`
	Following  bool              `json:"following"`
}

// Session resolves which of the four views the caller gets for ?uid=.
func (a *API) Session(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	view, err := a.Profiles.ResolveSession(r.Context(), viewerID, strings.TrimSpace(r.URL.Query().Get("uid")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Success:    true,
		Mode:       view.Mode,
		ViewerID:   view.ViewerID,
		TargetID:   view.TargetID,
		HasProfile: view.Viewer != nil,
		Following:  view.Following,
	})
}

// Onboard creates the caller's first document. It refuses to overwrite an
// existing one.
func (a *API) Onboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var req services.OnboardingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := a.Profiles.Load(r.Context(), userID, false, userID)
	switch {
	case err == nil:
		writeMessage(w, http.StatusConflict, "Profile already exists")
		return
	case !errors.Is(err, services.ErrNeedsOnboarding):
		writeError(w, r, err)
		return
	}

	doc, err := a.Profiles.CreateInitialProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"profile": doc,
	})
}

type ProfileResponse struct {
	Success bool           `json:"success"`
	UserID  string         `json:"userId"`
	IsOwner bool           `json:"isOwner"`
	Cached  bool           `json:"cached,omitempty"`
	Profile ProfileHeader  `json:"profile"`
	Grid    *services.Grid `json:"grid"`
}

// Profile renders one level of a profile for the caller. ?uid= defaults to
// the caller; ?stack= opens a stack.
func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	targetID := strings.TrimSpace(r.URL.Query().Get("uid"))
	if targetID == "" {
		targetID = viewerID
	}
	if targetID == "" {
		writeMessage(w, http.StatusBadRequest, "uid is required")
		return
	}
	isOwner := viewerID == targetID

	var doc *models.ProfileDocument
	var cached bool
	if s, ok := a.Editors.Get(targetID); ok && isOwner {
		// the owner sees unsaved edits
		d := s.Document()
		doc = &d
	} else {
		res, err := a.Profiles.Load(r.Context(), targetID, !isOwner, viewerID)
		if errors.Is(err, services.ErrNeedsOnboarding) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "needsOnboarding": true})
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		doc, cached = res.Profile, res.Cached
	}

	grid, err := services.RenderGrid(doc, r.URL.Query().Get("stack"), services.Viewer{
		IsOwner:  isOwner,
		SignedIn: viewerID != "",
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		UserID:  targetID,
		IsOwner: isOwner,
		Cached:  cached,
		Profile: headerFor(doc, isOwner),
		Grid:    grid,
	})
}
