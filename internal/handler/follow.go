package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Feed handles GET /follow
// Lists posts by authors the current identity follows, newest first.
func (h *FollowHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RedirectToLogin(w, r)
		return
	}

	page := pagination.ParsePageParam(r.URL.Query().Get("page"))
	resp, err := h.followService.Feed(r.Context(), userID, page)
	if err != nil {
		log.Printf("[ERROR] Feed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Follow handles POST /profile/{username}/follow
// Idempotent; a self-follow changes nothing. Either way the caller lands
// back on the profile.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.followService.Follow)
}

// Unfollow handles POST /profile/{username}/unfollow
// Removing an absent edge is a silent no-op.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.followService.Unfollow)
}

func (h *FollowHandler) toggle(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, followerID int64, username string) error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RedirectToLogin(w, r)
		return
	}

	username := chi.URLParam(r, "username")
	if err := action(r.Context(), userID, username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Follow toggle handler: user=%d target=%s err=%v", userID, username, err)
		httputil.WriteInternalError(w, "Failed to update follow")
		return
	}

	httputil.Redirect(w, r, "/profile/"+username)
}
