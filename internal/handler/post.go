package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/form"
	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// maxPostFormSize bounds a post submission: the image size limit plus form overhead.
const maxPostFormSize = int64(model.MaxImageSizeBytes) + 1024*1024

type PostHandler struct {
	postService  *service.PostService
	userService  *service.UserService
	mediaService *service.MediaService
	pageCache    cache.PageCache
	cfg          *config.Config
}

func NewPostHandler(
	postService *service.PostService,
	userService *service.UserService,
	mediaService *service.MediaService,
	pageCache cache.PageCache,
	cfg *config.Config,
) *PostHandler {
	return &PostHandler{
		postService:  postService,
		userService:  userService,
		mediaService: mediaService,
		pageCache:    pageCache,
		cfg:          cfg,
	}
}

// postFormPayload is the re-render payload for create/edit: the submitted
// values, field errors, and the group choices for the form.
type postFormPayload struct {
	Form   model.PostForm    `json:"form"`
	Groups []model.Group     `json:"groups"`
	Errors []form.FieldError `json:"errors,omitempty"`
	IsEdit bool              `json:"is_edit,omitempty"`
}

// Index handles GET /
// Lists all posts newest first. The rendered payload is cached under a
// single fixed key for cfg.IndexCacheTTL seconds, so every request within
// the window gets byte-identical output regardless of query parameters.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, found, err := h.pageCache.Get(ctx, cache.IndexPageKey)
	if err != nil {
		// Cache trouble degrades to a direct render
		log.Printf("[PostHandler] Index cache get failed: %v", err)
	}
	if found {
		writeCachedPage(w, payload)
		return
	}

	page := pagination.ParsePageParam(r.URL.Query().Get("page"))
	resp, err := h.postService.Index(ctx, page)
	if err != nil {
		log.Printf("[ERROR] Index handler: %v", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	payload, err = json.Marshal(resp)
	if err != nil {
		log.Printf("[ERROR] Index handler: marshal: %v", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	ttl := time.Duration(h.cfg.IndexCacheTTL) * time.Second
	if err := h.pageCache.Set(ctx, cache.IndexPageKey, payload, ttl); err != nil {
		log.Printf("[PostHandler] Index cache set failed: %v", err)
	}

	writeCachedPage(w, payload)
}

// GroupPosts handles GET /group/{slug}
func (h *PostHandler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pagination.ParsePageParam(r.URL.Query().Get("page"))

	resp, err := h.postService.GroupPosts(r.Context(), slug, page)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			httputil.WriteNotFound(w, "Group not found")
			return
		}
		log.Printf("[ERROR] GroupPosts handler: slug=%s err=%v", slug, err)
		httputil.WriteInternalError(w, "Failed to list group posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Profile handles GET /profile/{username}
// Public, but a known identity additionally sees whether they follow the author.
func (h *PostHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page := pagination.ParsePageParam(r.URL.Query().Get("page"))

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	resp, err := h.postService.Profile(r.Context(), username, page, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Profile handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Detail handles GET /posts/{id}
// Returns the post, its comments newest first, and a blank comment form.
// A non-numeric id is as absent as an unknown one.
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	resp, err := h.postService.Detail(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Detail handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to load post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// CreateForm handles GET /create
// Returns a blank post form with the available group choices.
func (h *PostHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	groups, err := h.postService.GroupChoices(r.Context())
	if err != nil {
		log.Printf("[ERROR] CreateForm handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load form")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, postFormPayload{
		Form:   model.PostForm{},
		Groups: groups,
	})
}

// Create handles POST /create
// Persists a new post owned by the current identity and redirects to their
// profile. An invalid submission re-renders the form values with field
// errors and persists nothing.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RedirectToLogin(w, r)
		return
	}

	f, res, err := h.parsePostForm(w, r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if !res.Valid() {
		h.renderPostForm(w, r, f, res, false)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, f)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			res.AddError("group", "Unknown group")
			h.renderPostForm(w, r, f, res, false)
			return
		}
		log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	author, err := h.userService.GetByID(r.Context(), post.AuthorID)
	if err != nil {
		// Post is saved; fall back to its detail page
		httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID))
		return
	}
	httputil.Redirect(w, r, "/profile/"+author.Username)
}

// EditForm handles GET /posts/{id}/edit
// Only the author sees the edit form; anyone else is sent to the detail view.
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.postService.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] EditForm handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to load post")
		return
	}

	if post.AuthorID != userID {
		httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", postID))
		return
	}

	groups, err := h.postService.GroupChoices(r.Context())
	if err != nil {
		log.Printf("[ERROR] EditForm handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load form")
		return
	}

	f := model.PostForm{Text: post.Text, ImageURL: post.ImageURL}
	if post.Group != nil {
		f.Group = post.Group.Slug
	}

	httputil.WriteJSON(w, http.StatusOK, postFormPayload{
		Form:   f,
		Groups: groups,
		IsEdit: true,
	})
}

// Edit handles POST /posts/{id}/edit
// Updates the record in place for the author; a non-author is silently
// redirected to the detail view with the record untouched. Ownership is
// checked before the form is read, so a non-author submission is never
// parsed, validated, or allowed to upload anything.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.postService.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Edit post handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to edit post")
		return
	}
	if post.AuthorID != userID {
		httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", postID))
		return
	}

	f, res, err := h.parsePostForm(w, r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if !res.Valid() {
		h.renderPostForm(w, r, f, res, true)
		return
	}

	_, err = h.postService.Edit(r.Context(), postID, userID, f)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", postID))
		case errors.Is(err, model.ErrGroupNotFound):
			res.AddError("group", "Unknown group")
			h.renderPostForm(w, r, f, res, true)
		default:
			log.Printf("[ERROR] Edit post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to edit post")
		}
		return
	}

	httputil.Redirect(w, r, fmt.Sprintf("/posts/%d", postID))
}

// parsePostForm reads a create/edit submission: text, optional group slug,
// optional image upload. Upload problems become field errors so the form
// re-renders instead of failing the request.
func (h *PostHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (model.PostForm, form.Result, error) {
	var f model.PostForm

	r.Body = http.MaxBytesReader(w, r.Body, maxPostFormSize)
	if err := r.ParseMultipartForm(maxPostFormSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return f, form.Result{}, err
	}

	f.Text = strings.TrimSpace(r.FormValue("text"))
	f.Group = strings.TrimSpace(r.FormValue("group"))

	res := f.Validate()

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		if h.mediaService == nil {
			res.AddError("image", "Image uploads are not enabled")
			break
		}
		upload, uploadErr := h.mediaService.UploadPostImage(r.Context(), file, header)
		if uploadErr != nil {
			switch {
			case errors.Is(uploadErr, model.ErrFileTooLarge):
				res.AddError("image", "Image exceeds the 10MB limit")
			case errors.Is(uploadErr, model.ErrInvalidImageType):
				res.AddError("image", "Unsupported image type. Allowed: jpeg, png, gif, webp")
			default:
				log.Printf("[ERROR] Image upload failed: %v", uploadErr)
				res.AddError("image", "Failed to store image")
			}
			break
		}
		f.ImageURL = &upload.URL
		f.ImageKey = &upload.Key
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		// No image attached
	default:
		res.AddError("image", "Invalid image upload")
	}

	return f, res, nil
}

// renderPostForm writes the 200 re-render for an invalid submission.
func (h *PostHandler) renderPostForm(w http.ResponseWriter, r *http.Request, f model.PostForm, res form.Result, isEdit bool) {
	groups, err := h.postService.GroupChoices(r.Context())
	if err != nil {
		log.Printf("[ERROR] renderPostForm: %v", err)
		groups = []model.Group{}
	}

	httputil.WriteJSON(w, http.StatusOK, postFormPayload{
		Form:   f,
		Groups: groups,
		Errors: res.Errors,
		IsEdit: isEdit,
	})
}

// writeCachedPage writes a previously rendered JSON payload verbatim.
func writeCachedPage(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func parsePostID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
