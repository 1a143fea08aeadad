package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/peenly/backend/internal/config"
	"github.com/peenly/backend/internal/handlers"
	appMiddleware "github.com/peenly/backend/internal/middleware"
	"github.com/peenly/backend/internal/services"
	"github.com/peenly/backend/internal/storage"
	"github.com/peenly/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	snapshotter := newSnapshotterFactory(cfg)

	// Stores hydrate from their snapshots as they are constructed.
	profileStore := store.NewProfileStore(snapshotter(store.ProfileStoreKey))
	postStore := store.NewPostStore(snapshotter(store.PostStoreKey))
	messageStore := store.NewMessageStore(snapshotter(store.MessageStoreKey))

	upstream := services.NewUpstreamClient(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		log.Printf("Warning: API_BASE_URL is not set; metadata degrades to placeholders and uploads are disabled")
	}

	authHandler := handlers.NewAuthHandler(upstream)
	metadataHandler := handlers.NewMetadataHandler(upstream)
	profileHandler := handlers.NewProfileHandler(profileStore)
	postHandler := handlers.NewPostHandler(postStore)
	messageHandler := handlers.NewMessageHandler(messageStore, profileStore)
	uploadHandler := handlers.NewUploadHandler(upstream, cfg.MaxUploadSizeMB)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register-guardian", authHandler.RegisterGuardian)
		r.Get("/guardian/{guardianId}/metadata", metadataHandler.GuardianMetadata)
		r.Get("/tutor/{tutorId}/metadata", metadataHandler.TutorMetadata)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.TokenAuth(cfg.JWTSecret))

			r.Route("/parent", func(r chi.Router) {
				r.Get("/profile", profileHandler.GetProfile)
				r.Patch("/profile", profileHandler.UpdateProfile)
				r.Post("/token", profileHandler.SetToken)
				r.Post("/logout", profileHandler.Logout)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postHandler.ListPosts)
				r.Put("/", postHandler.ReplacePosts)
				r.Post("/", postHandler.CreatePost)
				r.Patch("/{postId}", postHandler.UpdatePost)
				r.Delete("/{postId}", postHandler.DeletePost)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/state", messageHandler.GetState)
				r.Post("/initialize", messageHandler.Initialize)
				r.Post("/conversations", messageHandler.CreateConversation)
				r.Put("/conversations", messageHandler.ReplaceConversations)
				r.Get("/conversations/{conversationId}", messageHandler.ListMessages)
				r.Post("/active", messageHandler.SetActive)
				r.Post("/send", messageHandler.Send)
			})

			r.Post("/upload", uploadHandler.Upload)
		})
	})

	log.Printf("Peenly BFF server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// newSnapshotterFactory returns a per-key Snapshotter constructor for the
// configured backend.
func newSnapshotterFactory(cfg *config.Config) func(key string) storage.Snapshotter {
	if cfg.StorageBackend == "mongo" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := storage.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		return func(key string) storage.Snapshotter {
			return storage.NewMongoStore(client, cfg.MongoDB, key)
		}
	}

	return func(key string) storage.Snapshotter {
		snap, err := storage.NewJSONStore(cfg.DataDir, key)
		if err != nil {
			log.Fatalf("Failed to initialize storage for %s: %v", key, err)
		}
		return snap
	}
}
