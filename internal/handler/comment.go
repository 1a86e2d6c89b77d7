package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"microblog/internal/form"
	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
	postService    *service.PostService
}

func NewCommentHandler(commentService *service.CommentService, postService *service.PostService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		postService:    postService,
	}
}

// commentFormPayload is the detail-page re-render for an invalid comment:
// the post, its existing comments, and the rejected form values.
type commentFormPayload struct {
	model.PostDetailResponse
	Errors []form.FieldError `json:"errors"`
}

// Create handles POST /posts/{id}/comment
// Adds a comment to the post and redirects back to the detail view. An
// invalid submission re-renders the detail payload with field errors and
// stores nothing.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RedirectToLogin(w, r)
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}
	f := model.CommentForm{Text: strings.TrimSpace(r.FormValue("text"))}

	if res := f.Validate(); !res.Valid() {
		h.renderDetail(w, r, postID, f, res)
		return
	}

	_, err = h.commentService.Create(r.Context(), postID, userID, f)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentTextRequired):
			res := form.Result{}
			res.AddError("text", "Text is required")
			h.renderDetail(w, r, postID, f, res)
		default:
			log.Printf("[ERROR] Create comment handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to add comment")
		}
		return
	}

	httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", postID))
}

func (h *CommentHandler) renderDetail(w http.ResponseWriter, r *http.Request, postID int64, f model.CommentForm, res form.Result) {
	detail, err := h.postService.Detail(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] renderDetail: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to load post")
		return
	}

	detail.Form = f
	httputil.WriteJSON(w, http.StatusOK, commentFormPayload{
		PostDetailResponse: *detail,
		Errors:             res.Errors,
	})
}
