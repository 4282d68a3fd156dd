package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/services"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
	"github.com/hygienewatch/hygienewatch-backend/pkg/utils"
)

type CreateCommentRequest struct {
	TargetType models.TargetType `json:"target_type"`
	TargetID   string            `json:"target_id"`
	Body       string            `json:"body"`
}

// GetComments returns a target's discussion thread oldest-first.
func GetComments(w http.ResponseWriter, r *http.Request) {
	targetType := models.TargetType(r.URL.Query().Get("target_type"))
	targetID := r.URL.Query().Get("target_id")
	if !models.ValidTargetType(targetType) || targetID == "" {
		writeError(w, http.StatusBadRequest, "target_type and target_id are required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"comments": store.ListComments(ctx, targetType, targetID),
	})
}

// CreateComment appends a comment and pushes it to live watchers.
func CreateComment(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidTargetType(req.TargetType) || req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "target_type and target_id are required")
		return
	}
	if err := utils.ValidateRequiredText("body", req.Body, utils.MaxBodyLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	comment, err := store.CreateComment(ctx, models.Comment{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Author:     auth.User.Name,
		AuthorID:   auth.User.ID,
		Body:       req.Body,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	services.PublishComment(ctx, *comment)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Comment added",
		"comment": comment,
	})
}
