package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hygienewatch/hygienewatch-backend/internal/handlers"
	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes. Credential endpoints get the tighter per-IP limiter on
	// top of the global one.
	r.With(middleware.LoginRateLimit).Post("/api/auth/signup", handlers.Signup)
	r.With(middleware.LoginRateLimit).Post("/api/auth/signin", handlers.Signin)
	r.With(middleware.LoginRateLimit).Post("/api/auth/forgot-password", handlers.ForgotPassword)
	r.Post("/api/auth/reset-password", handlers.ResetPassword)

	// Public browse routes (community tips, like counts, geocoding)
	r.Get("/api/tips", handlers.GetTips)
	r.Get("/api/tips/one", handlers.GetTip)
	r.Get("/api/likes", handlers.GetLikes)
	r.Get("/api/comments", handlers.GetComments)
	r.Get("/api/geocode", handlers.GeocodeSearch)
	r.Get("/api/activity/recent", handlers.GetRecentActivity)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/api/auth/signout", handlers.Signout)
		r.Get("/api/auth/me", handlers.Me)
		r.Post("/api/auth/change-password", handlers.ChangePassword)

		r.Get("/api/profile", handlers.GetProfile)
		r.Put("/api/profile", handlers.UpdateProfile)
		r.Put("/api/profile/privacy", handlers.UpdatePrivacy)

		r.Post("/api/tips", handlers.CreateTip)
		r.Get("/api/tips/mine", handlers.GetMyTips)

		r.Post("/api/reports", handlers.CreateReport)
		r.Get("/api/reports/mine", handlers.GetMyReports)
		r.Get("/api/reports/one", handlers.GetReport)

		r.Post("/api/comments", handlers.CreateComment)

		r.Post("/api/likes", handlers.LikeTarget)
		r.Delete("/api/likes", handlers.UnlikeTarget)

		r.Get("/api/activity/mine", handlers.GetMyActivity)
		r.Get("/api/activity/log", handlers.GetMyActivityLog)

		r.Post("/api/upload", handlers.UploadFile)
	})

	// Inspector routes (report triage)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleInspector))

		r.Get("/api/reports/queue", handlers.GetReportQueue)
		r.Put("/api/reports/status", handlers.UpdateReportStatus)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Get("/api/admin/users", handlers.GetUsers)
		r.Put("/api/admin/users/role", handlers.UpdateUserRole)
		r.Put("/api/admin/tips/approve", handlers.ApproveTip)
	})

	// WebSocket endpoint for live comment streams (token passed as query
	// parameter; auth is checked inside the handler before upgrading)
	r.Get("/ws/comments", handlers.CommentsWebSocket)
}
