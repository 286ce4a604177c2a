package routes

import (
	"github.com/AnshRaj112/biography-backend/internal/handlers"
	"github.com/AnshRaj112/biography-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes registers the API. redisClient backs the shared search limiter
// and may be nil, which disables it.
func SetupRoutes(r chi.Router, api *handlers.API, redisClient *redis.Client) {
	optionalAuth := middleware.OptionalAuth(api.Accounts)
	requireAuth := middleware.RequireAuth(api.Accounts)

	r.Get("/health", handlers.Health)

	// Accounts
	r.Post("/api/auth/signup", api.Signup)
	r.Post("/api/auth/signin", api.Signin)
	r.Post("/api/auth/check-username", api.CheckUsername)
	r.With(requireAuth).Post("/api/auth/signout", api.Signout)
	r.With(requireAuth).Get("/api/auth/me", api.Me)

	// Viewer
	r.With(optionalAuth).Get("/api/session", api.Session)
	r.With(optionalAuth).Get("/api/profile", api.Profile)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/api/onboarding", api.Onboard)
		r.Post("/api/upload", api.UploadImage)
		r.Get("/api/export", api.Export)

		r.Route("/api/friends", func(r chi.Router) {
			r.Get("/", api.ListFriends)
			r.Post("/", api.AddFriend)
			r.Delete("/{id}", api.RemoveFriend)
			if redisClient != nil {
				r.With(middleware.NewWindowLimiter(redisClient, "friend_search").Middleware).Post("/search", api.SearchFriend)
			} else {
				r.Post("/search", api.SearchFriend)
			}
		})

		// Editor (owner only)
		r.Route("/api/editor", func(r chi.Router) {
			r.Use(middleware.EditorWriteRateLimit)

			r.Get("/", api.OpenEditor)
			r.Delete("/", api.CloseEditor)
			r.Get("/status", api.EditorStatus)
			r.Post("/save", api.SaveEditor)

			r.Get("/blocks", api.ListBlocks)
			r.Post("/blocks", api.AddBlock)
			r.Post("/quick-add", api.QuickAdd)
			r.Patch("/blocks/{id}", api.UpdateBlock)
			r.Delete("/blocks/{id}", api.DeleteBlock)
			r.Post("/blocks/{id}/archive", api.ArchiveBlock)
			r.Post("/blocks/{id}/restore", api.RestoreBlock)

			r.Get("/archive", api.ListArchive)
			r.Delete("/archive", api.PurgeArchive)

			r.Patch("/profile", api.UpdateProfile)
			r.Post("/privacy/toggle", api.TogglePrivacy)
			r.Post("/theme/random", api.RandomTheme)
		})

		r.Get("/ws/editor", api.EditorSocket)
	})
}
