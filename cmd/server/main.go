package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/hygienewatch/hygienewatch-backend/internal/config"
	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/handlers"
	"github.com/hygienewatch/hygienewatch-backend/internal/identity"
	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/routes"
	"github.com/hygienewatch/hygienewatch-backend/internal/services"
	"github.com/hygienewatch/hygienewatch-backend/internal/session"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "change-me-in-production" {
		log.Println("⚠️  WARNING: JWT_SECRET not set. Password-reset tokens use the default secret.")
		log.Println("   Generate one with: openssl rand -base64 32")
	}

	// Connect to PostgreSQL (account credentials live here)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (session tokens, rate limits, comment pub/sub)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB. An unreachable or unconfigured document store is
	// not fatal: reads serve empty, writes report the failure.
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Printf("⚠️  WARNING: MongoDB unavailable: %v", err)
		log.Println("   Tips, reports, comments and profiles will be empty until it comes back.")
	}
	defer database.Disconnect()

	if store.Configured() {
		if err := store.EnsureIndexes(context.Background()); err != nil {
			log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
		} else {
			log.Println("✅ MongoDB indexes ensured")
		}
	}

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// Identity provider and the session context it drives
	provider := identity.NewProvider(cfg.JWTSecret)

	var authCtx *session.Context
	authCtx = session.NewContext(store.ProfileStore{}, func(ctx context.Context) error {
		if u := authCtx.User(); u != nil {
			return session.InvalidateAccount(ctx, u.ID)
		}
		return nil
	})
	provider.OnAuthChange(func(u *session.User) {
		authCtx.HandleAuthChange(context.Background(), u)
	})
	// Initial resolution: nobody signed in yet, loading done.
	authCtx.HandleAuthChange(context.Background(), nil)

	// Warm community feed (recent reports + approved tips, merged)
	communityFeed := services.StartCommunityFeed()
	defer communityFeed.Stop()
	log.Println("✅ Community activity feed started")

	geocoder := services.NewGeocodeClient(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent)

	handlers.Init(provider, authCtx, geocoder, communityFeed)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.RateLimit)
	r.Use(middleware.Authenticate(provider))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 HygieneWatch backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
