package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

type SignupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Token   string                 `json:"token,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
}

// Signup registers an account. The profile document appears on first
// sign-in, created by the session context.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	user, err := identityProvider.SignUp(ctx, req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created. You can sign in now.",
		User: map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Signin verifies credentials and returns a session token.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	user, token, err := identityProvider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in",
		Token:   token,
		User: map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Signout invalidates the caller's session token.
func Signout(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	if auth == nil {
		writeError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := identityProvider.SignOut(ctx, auth.Token); err != nil {
		log.Printf("failed to invalidate session: %v", err)
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Signed out"})
}

// Me returns the caller's user, profile and derived role.
func Me(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	if auth == nil {
		writeError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    auth.User.ID,
			"name":  auth.User.Name,
			"email": auth.User.Email,
		},
		"profile": auth.Profile,
		"role":    auth.Role,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the signed-in caller's password after checking
// the current one. The session rotates, so the response carries the
// replacement token.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	token, err := identityProvider.ChangePassword(ctx, auth.User.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	store.LogActivity(ctx, models.ActivityEntry{
		UserID:      auth.User.ID,
		Action:      models.ActionPasswordChanged,
		Description: "Account password was changed",
	})

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Password changed",
		Token:   token,
	})
}

// ForgotPassword issues a reset token. The response never reveals
// whether the email has an account.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	token, err := identityProvider.SendPasswordReset(ctx, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process reset request")
		return
	}
	if token != "" {
		// Mail delivery is deployment-specific; the token is logged so
		// operators can relay it until a mailer is wired in.
		// TODO: send the reset token by email once SMTP credentials exist.
		log.Printf("password reset token issued for %s", req.Email)
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "If that email has an account, a reset link is on its way.",
	})
}

// ResetPassword consumes a reset token and sets the new password.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := identityProvider.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Password updated. Sign in with the new password."})
}
