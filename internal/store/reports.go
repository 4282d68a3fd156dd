package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// NewReport carries the caller-supplied fields of a report. Status and
// timestamps are stamped by CreateReport; optional fields stay out of the
// stored document when unset.
type NewReport struct {
	Title         string
	Description   string
	Category      models.ReportCategory
	Location      string
	PhotoURL      string
	Lat           *float64
	Lng           *float64
	SubmittedBy   string
	SubmittedByID string
}

// ListRecentReports returns the newest reports community-wide.
func ListRecentReports(ctx context.Context, limit int64) []models.Report {
	return findReports(ctx, bson.M{}, limit)
}

// ListReportsByUser returns the newest reports filed by one user.
func ListReportsByUser(ctx context.Context, userID string, limit int64) []models.Report {
	return findReports(ctx, reportsByUserFilter(userID), limit)
}

// ListReportsByStatus returns the newest reports in one triage state,
// for the admin/inspector queue.
func ListReportsByStatus(ctx context.Context, status models.ReportStatus) []models.Report {
	return findReports(ctx, reportsByStatusFilter(status), AdminListLimit)
}

func findReports(ctx context.Context, filter bson.M, limit int64) []models.Report {
	if !Configured() {
		return []models.Report{}
	}

	cursor, err := database.DB.Collection(reportsCollection).Find(ctx, filter, newestFirst(limit))
	if err != nil {
		return []models.Report{}
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return []models.Report{}
	}
	for i := range reports {
		reports[i].Normalize()
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports
}

// GetReport returns one report by id, or nil when absent or unreadable.
func GetReport(ctx context.Context, id string) *models.Report {
	if !Configured() {
		return nil
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	var report models.Report
	if err := database.DB.Collection(reportsCollection).
		FindOne(ctx, bson.M{"_id": objectID}).Decode(&report); err != nil {
		return nil
	}
	report.Normalize()
	return &report
}

// CreateReport inserts a report in the pending state, stamps both
// timestamps and returns the generated id.
func CreateReport(ctx context.Context, p NewReport) (string, error) {
	if !Configured() {
		return "", ErrNotConfigured
	}
	if p.Category != "" && !models.ValidReportCategory(p.Category) {
		p.Category = models.ReportOther
	}

	now := models.Timestamp()
	report := models.Report{
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		Location:      p.Location,
		PhotoURL:      p.PhotoURL,
		Lat:           p.Lat,
		Lng:           p.Lng,
		Status:        models.StatusPending,
		SubmittedBy:   p.SubmittedBy,
		SubmittedByID: p.SubmittedByID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := database.DB.Collection(reportsCollection).InsertOne(ctx, report)
	if err != nil {
		return "", fmt.Errorf("failed to submit report: %w", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()

	LogActivity(ctx, models.ActivityEntry{
		UserID:      p.SubmittedByID,
		Action:      models.ActionReportSubmitted,
		Description: fmt.Sprintf("Report %q was submitted", p.Title),
		TargetType:  models.TargetReport,
		TargetID:    id,
	})

	return id, nil
}

// SetReportStatus moves a report to a new triage state and bumps the
// updated timestamp. Role-gated at the handler layer.
func SetReportStatus(ctx context.Context, id string, status models.ReportStatus) error {
	if !Configured() {
		return ErrNotConfigured
	}
	if !models.ValidReportStatus(status) {
		return fmt.Errorf("invalid report status %q", status)
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid report id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": models.Timestamp(),
	}}
	res, err := database.DB.Collection(reportsCollection).
		UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}
