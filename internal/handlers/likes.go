package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

type LikeRequest struct {
	TargetID string `json:"target_id"`
}

// LikeTarget records a like. Repeats are harmless: the relation's
// composite key makes the write idempotent.
func LikeTarget(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "target_id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := store.Like(ctx, req.TargetID, auth.User.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Liked"})
}

// UnlikeTarget removes a like. Removing one that never existed is
// success, not an error.
func UnlikeTarget(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "target_id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := store.Unlike(ctx, req.TargetID, auth.User.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Unliked"})
}

// GetLikes returns a target's like count and whether the caller likes it.
func GetLikes(w http.ResponseWriter, r *http.Request) {
	targetID := r.URL.Query().Get("target_id")
	if targetID == "" {
		writeError(w, http.StatusBadRequest, "target_id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	liked := false
	if auth := middleware.AuthFromRequest(r); auth != nil {
		liked = store.Liked(ctx, targetID, auth.User.ID)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   store.LikeCount(ctx, targetID),
		"liked":   liked,
	})
}
