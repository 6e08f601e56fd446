package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/middleware"
	"github.com/baharkarakas/blog-backend/internal/services"
)

type BlogHandler struct {
	blogs *services.BlogService
}

func NewBlogHandler(bs *services.BlogService) *BlogHandler {
	return &BlogHandler{blogs: bs}
}

type stateReq struct {
	State string `json:"state"`
}

type messageResp struct {
	Message string `json:"message"`
}

// GET /blogs?page=&limit=&search=&state=&sortBy=
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	viewer, _ := middleware.UserID(r.Context())

	blogs, err := h.blogs.List(r.Context(), viewer, services.ListQuery{
		Page:   parsePositiveInt(q.Get("page"), 0),
		Limit:  parsePositiveInt(q.Get("limit"), 0),
		Search: q.Get("search"),
		State:  q.Get("state"),
		SortBy: q.Get("sortBy"),
	})
	if errors.Is(err, services.ErrAccessDenied) && middleware.TokenRejected(r.Context()) {
		metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
		httpx.WriteError(w, http.StatusForbidden, "invalid_token", middleware.MsgInvalidToken, nil)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req services.CreateBlogInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	b, err := h.blogs.Create(r.Context(), uid, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *BlogHandler) SetState(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req stateReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	b, err := h.blogs.SetState(r.Context(), chi.URLParam(r, "id"), uid, req.State)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var req services.EditBlogInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	b, err := h.blogs.Edit(r.Context(), chi.URLParam(r, "id"), uid, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id"), uid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResp{Message: "Blog deleted successfully"})
}

// GET /user/blogs
func (h *BlogHandler) Mine(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	blogs, err := h.blogs.ListByAuthor(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blogs)
}

// parsePositiveInt falls back to def for empty, malformed or non-positive input.
func parsePositiveInt(v string, def int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}
