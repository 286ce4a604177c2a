package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
	"github.com/rs/zerolog/log"
)

// API holds the services the HTTP handlers call into.
type API struct {
	Accounts *services.AccountService
	Profiles *services.ProfileService
	Editors  *services.EditorHub
	Friends  *services.FriendService

	// Uploader is nil when Cloudinary is not configured.
	Uploader services.ImageUploader
	// Backups is nil when object storage is not configured.
	Backups *services.BackupArchiver

	Now func() time.Time
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: status < 400, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var denied *services.AccessDeniedError
	var saveFailed *services.SaveFailedError
	var invalid *utils.ValidationError

	switch {
	case errors.As(err, &denied):
		return http.StatusForbidden
	case errors.As(err, &saveFailed):
		return http.StatusBadGateway
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrBlockNotFound),
		errors.Is(err, services.ErrFriendNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidParent),
		errors.Is(err, services.ErrUnknownBlockType),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrImmutableField),
		errors.Is(err, services.ErrFieldType),
		errors.Is(err, services.ErrStackNotEmpty),
		errors.Is(err, services.ErrSearchTooShort),
		errors.Is(err, services.ErrSelfFriend),
		errors.Is(err, services.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyFriend),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSessionClosed),
		errors.Is(err, services.ErrNeedsOnboarding):
		return http.StatusConflict
	case errors.Is(err, services.ErrTreeCycle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountInactive):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// writeError answers with the status for err. Unexpected errors are logged
// and their text is not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("user_id", middleware.UserID(r.Context())).Msg("request failed")
		writeMessage(w, status, "Internal server error")
		return
	}

	var denied *services.AccessDeniedError
	if errors.As(err, &denied) {
		writeJSON(w, status, map[string]any{
			"success":    false,
			"message":    "This profile is private.",
			"friendCode": denied.FriendCode,
		})
		return
	}
	if status == http.StatusBadGateway {
		log.Warn().Err(err).Str("user_id", middleware.UserID(r.Context())).Msg("remote save failed")
		writeJSON(w, status, map[string]any{
			"success":      false,
			"message":      "Saved on this server but sync failed. Try again.",
			"savedLocally": true,
		})
		return
	}
	writeMessage(w, status, err.Error())
}
