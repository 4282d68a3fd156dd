package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
	"github.com/hygienewatch/hygienewatch-backend/pkg/utils"
)

type CreateReportRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    models.ReportCategory `json:"category,omitempty"`
	Location    string                `json:"location,omitempty"`
	PhotoURL    string                `json:"photo_url,omitempty"`
	Lat         *float64              `json:"lat,omitempty"`
	Lng         *float64              `json:"lng,omitempty"`
}

type CreateReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// GetMyReports returns the caller's own reports.
func GetMyReports(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reports": store.ListReportsByUser(ctx, auth.User.ID, store.UserReportsLimit),
	})
}

// GetReport returns one report by the `id` query parameter.
func GetReport(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	report := store.GetReport(ctx, id)
	if report == nil {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "report": report})
}

// CreateReport files a sanitation report. A missing title is composed
// from the category and location, matching the submission form's shape.
func CreateReport(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		location := strings.TrimSpace(req.Location)
		if location == "" {
			location = "Unspecified location"
		}
		if len(location) > 50 {
			location = location[:50]
		}
		category := req.Category
		if category == "" {
			category = models.ReportOther
		}
		req.Title = fmt.Sprintf("%s - %s", category, location)
	}
	if err := utils.ValidateRequiredText("description", req.Description, utils.MaxBodyLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	id, err := store.CreateReport(ctx, store.NewReport{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		PhotoURL:      req.PhotoURL,
		Lat:           req.Lat,
		Lng:           req.Lng,
		SubmittedBy:   auth.User.Name,
		SubmittedByID: auth.User.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, CreateReportResponse{
		Success: true,
		Message: "Report submitted",
		ID:      id,
	})
}

type UpdateReportStatusRequest struct {
	ID     string              `json:"id"`
	Status models.ReportStatus `json:"status"`
}

// UpdateReportStatus moves a report through triage. Inspector or above.
func UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if !models.ValidReportStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := store.SetReportStatus(ctx, req.ID, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Report updated"})
}

// GetReportQueue lists reports for triage, optionally filtered by the
// `status` query parameter. Inspector or above.
func GetReportQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	status := models.ReportStatus(r.URL.Query().Get("status"))
	var reports []models.Report
	if status != "" {
		if !models.ValidReportStatus(status) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		reports = store.ListReportsByStatus(ctx, status)
	} else {
		reports = store.ListRecentReports(ctx, store.AdminListLimit)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "reports": reports})
}
