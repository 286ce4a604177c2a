package handlers

import (
	"net/http"

	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/AnshRaj112/biography-backend/internal/models"
)

// SignupRequest creates an account. RecoveryEmail is optional and stored
// encrypted.
type SignupRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	RecoveryEmail string `json:"recovery_email,omitempty"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

func (a *API) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, token, err := a.Accounts.SignUp(r.Context(), req.Username, req.Password, req.RecoveryEmail)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created",
		User:    user,
		Token:   token,
	})
}

func (a *API) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, token, err := a.Accounts.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in",
		User:    user,
		Token:   token,
	})
}

func (a *API) Signout(w http.ResponseWriter, r *http.Request) {
	if err := a.Accounts.SignOut(r.Context(), middleware.BearerToken(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Signed out")
}

// Me returns the signed-in account.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Accounts.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
}

func (a *API) CheckUsername(w http.ResponseWriter, r *http.Request) {
	var req CheckUsernameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	available, err := a.Accounts.UsernameAvailable(r.Context(), req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	message := "Username is already taken"
	if available {
		message = "Username is available"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"available": available,
		"username":  req.Username,
		"message":   message,
	})
}
