package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type EditorResponse struct {
	Success     bool                    `json:"success"`
	Profile     *models.ProfileDocument `json:"profile,omitempty"`
	Status      services.SaveStatus     `json:"status"`
	LastSavedAt *time.Time              `json:"lastSavedAt,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

type AddBlockRequest struct {
	Type     models.BlockType `json:"type"`
	ParentID string           `json:"parentId"`
}

type FieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// session opens the caller's editor. It writes the response itself and
// returns nil when there is nothing to edit.
func (a *API) session(w http.ResponseWriter, r *http.Request) *services.EditorSession {
	s, err := a.Editors.Open(r.Context(), middleware.UserID(r.Context()))
	if errors.Is(err, services.ErrNeedsOnboarding) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"success":         false,
			"message":         "Create your profile first",
			"needsOnboarding": true,
		})
		return nil
	}
	if err != nil {
		writeError(w, r, err)
		return nil
	}
	return s
}

// mutate applies fn to the working document and reports the new save
// status. The commit itself happens after the debounce.
func (a *API) mutate(w http.ResponseWriter, r *http.Request, fn func(doc *models.ProfileDocument) error, extra map[string]any) {
	s := a.session(w, r)
	if s == nil {
		return
	}
	if err := s.Mutate(fn); err != nil {
		writeError(w, r, err)
		return
	}
	ev := s.Status()
	body := map[string]any{
		"success":     true,
		"status":      ev.Status,
		"lastSavedAt": ev.LastSavedAt,
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func statusBody(s *services.EditorSession, withDoc bool) EditorResponse {
	ev := s.Status()
	resp := EditorResponse{
		Success:     true,
		Status:      ev.Status,
		LastSavedAt: ev.LastSavedAt,
		Error:       ev.Error,
	}
	if withDoc {
		doc := s.Document()
		resp.Profile = &doc
	}
	return resp
}

// OpenEditor opens or resumes the caller's session.
func (a *API) OpenEditor(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, statusBody(s, true))
}

func (a *API) EditorStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := a.Editors.Get(middleware.UserID(r.Context()))
	if !ok {
		writeMessage(w, http.StatusNotFound, "No editor session open")
		return
	}
	writeJSON(w, http.StatusOK, statusBody(s, false))
}

// CloseEditor drops the session. A pending autosave still runs.
func (a *API) CloseEditor(w http.ResponseWriter, r *http.Request) {
	if !a.Editors.Close(middleware.UserID(r.Context())) {
		writeMessage(w, http.StatusNotFound, "No editor session open")
		return
	}
	writeMessage(w, http.StatusOK, "Editor closed")
}

func (a *API) SaveEditor(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if s == nil {
		return
	}
	if err := s.SaveNow(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusBody(s, false))
}

// ListBlocks returns the live blocks under ?parent= (root when empty).
func (a *API) ListBlocks(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if s == nil {
		return
	}
	doc := s.Document()
	tree := services.NewBlockTree(&doc)
	parentID := r.URL.Query().Get("parent")
	resp := map[string]any{
		"success": true,
		"blocks":  tree.ListVisible(parentID),
	}
	if parentID != "" {
		resp["parentOfParent"] = tree.ParentOf(parentID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) ListArchive(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if s == nil {
		return
	}
	doc := s.Document()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"blocks":  services.NewBlockTree(&doc).Archived(),
	})
}

func (a *API) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req AddBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var added models.Block
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		b, err := services.NewBlockTree(doc).Add(req.Type, req.ParentID)
		added = b
		return err
	}, map[string]any{"block": &added})
}

// QuickAdd adds a block and saves at once instead of waiting for the
// debounce.
func (a *API) QuickAdd(w http.ResponseWriter, r *http.Request) {
	var req AddBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := a.session(w, r)
	if s == nil {
		return
	}
	var added models.Block
	err := s.Commit(r.Context(), func(doc *models.ProfileDocument) error {
		b, err := services.NewBlockTree(doc).QuickAdd(req.Type, req.ParentID)
		added = b
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"block":   added,
		"status":  s.Status().Status,
	})
}

func (a *API) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		return services.NewBlockTree(doc).UpdateField(id, req.Field, req.Value)
	}, nil)
}

func (a *API) ArchiveBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		return services.NewBlockTree(doc).Archive(id)
	}, nil)
}

func (a *API) RestoreBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		return services.NewBlockTree(doc).Restore(id)
	}, nil)
}

// DeleteBlock removes a block and everything nested under it.
func (a *API) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var removed int
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		n, err := services.NewBlockTree(doc).RemoveRecursive(id)
		removed = n
		return err
	}, map[string]any{"removed": &removed})
}

func (a *API) PurgeArchive(w http.ResponseWriter, r *http.Request) {
	var removed int
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		n, err := services.NewBlockTree(doc).PurgeArchived()
		removed = n
		return err
	}, map[string]any{"removed": &removed})
}

func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		return services.UpdateProfileField(doc, req.Field, req.Value)
	}, nil)
}

func (a *API) TogglePrivacy(w http.ResponseWriter, r *http.Request) {
	var privacy models.Privacy
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		privacy = services.TogglePrivacy(doc)
		return nil
	}, map[string]any{"privacy": &privacy})
}

func (a *API) RandomTheme(w http.ResponseWriter, r *http.Request) {
	var p services.Presentation
	a.mutate(w, r, func(doc *models.ProfileDocument) error {
		doc.Theme = services.RandomTheme(doc.Theme)
		p = services.PresentationFor(doc.Theme, doc.Font)
		return nil
	}, map[string]any{"presentation": &p})
}
