package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"microblog/internal/handler"
	"microblog/internal/httputil"
	authmw "microblog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	FollowHandler  *handler.FollowHandler
	JWTSecret      string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
	})

	// Public listings; profiles additionally show the follow state for a
	// known identity
	r.Get("/", cfg.PostHandler.Index)
	r.Get("/group/{slug}", cfg.PostHandler.GroupPosts)
	r.With(authmw.OptionalUser(cfg.JWTSecret)).Get("/profile/{username}", cfg.PostHandler.Profile)
	r.Get("/posts/{id}", cfg.PostHandler.Detail)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireUser(cfg.JWTSecret))

		r.Get("/me", cfg.AuthHandler.Me)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)
		r.Post("/auth/logout-all", cfg.AuthHandler.LogoutAll)

		// Post authoring
		r.Get("/create", cfg.PostHandler.CreateForm)
		r.Post("/create", cfg.PostHandler.Create)
		r.Get("/posts/{id}/edit", cfg.PostHandler.EditForm)
		r.Post("/posts/{id}/edit", cfg.PostHandler.Edit)

		// Comments
		r.Post("/posts/{id}/comment", cfg.CommentHandler.Create)

		// Follow graph and the followed-authors feed
		r.Get("/follow", cfg.FollowHandler.Feed)
		r.Post("/profile/{username}/follow", cfg.FollowHandler.Follow)
		r.Post("/profile/{username}/unfollow", cfg.FollowHandler.Unfollow)
	})

	return r
}
