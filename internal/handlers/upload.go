package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/rs/zerolog/log"
)

type UploadResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	URL     string              `json:"url,omitempty"`
	Target  string              `json:"target,omitempty"`
	Status  services.SaveStatus `json:"status,omitempty"`
}

// UploadImage stores an image in Cloudinary and writes its URL into the
// editor: ?target=avatar, banner or a block id.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	if a.Uploader == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	userID := middleware.UserID(r.Context())
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	if target == "" {
		writeMessage(w, http.StatusBadRequest, "target is required")
		return
	}

	s := a.session(w, r)
	if s == nil {
		return
	}
	if target != "avatar" && target != "banner" {
		doc := s.Document()
		if _, ok := services.NewBlockTree(&doc).Find(target); !ok {
			writeError(w, r, services.ErrBlockNotFound)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(services.MaxImageBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file provided")
		return
	}
	file.Close()
	if fileHeader.Size > services.MaxImageBytes {
		writeMessage(w, http.StatusRequestEntityTooLarge, "Image must be 10MB or smaller")
		return
	}

	url, err := services.UploadFileFromHeader(r.Context(), a.Uploader, fileHeader, services.UploadFolder(userID, target))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("target", target).Msg("image upload failed")
		writeMessage(w, http.StatusBadGateway, "Failed to upload image")
		return
	}

	if err := s.Mutate(func(doc *models.ProfileDocument) error {
		return services.ApplyUploadedImage(doc, target, url)
	}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "Image uploaded",
		URL:     url,
		Target:  target,
		Status:  s.Status().Status,
	})
}

// Export downloads the caller's whole document. When object storage is
// configured the same bytes are archived; archive failures do not fail the
// download.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	doc, err := a.ownerDocument(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := services.ExportJSON(doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := services.BackupFilename(a.now())

	if err := a.Backups.Archive(r.Context(), userID, filename, data); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("backup archive failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
