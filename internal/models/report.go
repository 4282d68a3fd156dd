package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReportCategory is the closed vocabulary for sanitation reports. It
// overlaps with but is not identical to the tip vocabulary.
type ReportCategory string

const (
	ReportWasteManagement ReportCategory = "Waste Management"
	ReportWaterSafety     ReportCategory = "Water Safety"
	ReportSanitation      ReportCategory = "Sanitation"
	ReportDrainage        ReportCategory = "Drainage"
	ReportPersonalHygiene ReportCategory = "Personal Hygiene"
	ReportFoodSafety      ReportCategory = "Food Safety"
	ReportOther           ReportCategory = "Other"
)

var reportCategories = map[ReportCategory]struct{}{
	ReportWasteManagement: {},
	ReportWaterSafety:     {},
	ReportSanitation:      {},
	ReportDrainage:        {},
	ReportPersonalHygiene: {},
	ReportFoodSafety:      {},
	ReportOther:           {},
}

// ValidReportCategory reports whether c is a known report category.
func ValidReportCategory(c ReportCategory) bool {
	_, ok := reportCategories[c]
	return ok
}

// ReportStatus is the triage state of a report. Transitions are
// admin/inspector only; submitters never edit a report after filing.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusInReview ReportStatus = "in_review"
	StatusResolved ReportStatus = "resolved"
	StatusRejected ReportStatus = "rejected"
)

var reportStatuses = map[ReportStatus]struct{}{
	StatusPending:  {},
	StatusInReview: {},
	StatusResolved: {},
	StatusRejected: {},
}

// ValidReportStatus reports whether s is a known status.
func ValidReportStatus(s ReportStatus) bool {
	_, ok := reportStatuses[s]
	return ok
}

// Report is a user-submitted sanitation report.
type Report struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      ReportCategory     `bson:"category,omitempty" json:"category,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	PhotoURL      string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Lat           *float64           `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng           *float64           `bson:"lng,omitempty" json:"lng,omitempty"`
	Status        ReportStatus       `bson:"status" json:"status"`
	SubmittedBy   string             `bson:"submitted_by" json:"submitted_by"`
	SubmittedByID string             `bson:"submitted_by_id" json:"submitted_by_id"`
	CreatedAt     string             `bson:"created_at" json:"created_at"`
	UpdatedAt     string             `bson:"updated_at" json:"updated_at"`
}

// Normalize fills defaults for fields that may be absent in stored documents.
// Category deliberately stays empty when unset: it is optional on reports.
func (r *Report) Normalize() {
	if !ValidReportStatus(r.Status) {
		r.Status = StatusPending
	}
	if r.Category != "" && !ValidReportCategory(r.Category) {
		r.Category = ReportOther
	}
}
