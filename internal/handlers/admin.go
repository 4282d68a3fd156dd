package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

// GetUsers lists profiles for the admin user table.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"profiles": store.ListProfiles(ctx),
	})
}

type UpdateRoleRequest struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
}

// UpdateUserRole changes a user's role. Admin only; role is the single
// profile field its owner can never set.
func UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if !models.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := store.SetProfileRole(ctx, req.UserID, req.Role); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Role updated"})
}
