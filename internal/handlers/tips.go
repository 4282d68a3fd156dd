package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
	"github.com/hygienewatch/hygienewatch-backend/pkg/utils"
)

type CreateTipRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    models.TipCategory `json:"category"`
}

type CreateTipResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// GetTips returns the community tip browser feed.
func GetTips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tips":    store.ListTips(ctx),
	})
}

// GetMyTips returns the caller's own tips.
func GetMyTips(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tips":    store.ListTipsByAuthor(ctx, auth.User.ID, store.UserTipsLimit),
	})
}

// GetTip returns one tip by the `id` query parameter.
func GetTip(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	tip := store.GetTip(ctx, id)
	if tip == nil {
		writeError(w, http.StatusNotFound, "Tip not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "tip": tip})
}

// CreateTip submits a hygiene tip in the caller's name.
func CreateTip(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateRequiredText("title", req.Title, utils.MaxTitleLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateRequiredText("description", req.Description, utils.MaxBodyLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	id, err := store.CreateTip(ctx, store.NewTip{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      auth.User.Name,
		AuthorID:    auth.User.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, CreateTipResponse{
		Success: true,
		Message: "Tip submitted",
		ID:      id,
	})
}

type ApproveTipRequest struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}

// ApproveTip toggles a tip's approval flag. Admin only.
func ApproveTip(w http.ResponseWriter, r *http.Request) {
	var req ApproveTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := store.SetTipApproval(ctx, req.ID, req.Approved); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Tip updated"})
}
