// internal/handlers/blog/blog_handler.go
package blog

import (
	"net/http"

	blogdomain "lifesure-service/internal/domain/blog"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	blogsvc "lifesure-service/internal/service/blog"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type BlogHandler struct {
	blogService *blogsvc.Service
}

func NewBlogHandler(blogService *blogsvc.Service) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List returns posts, optionally filtered by author. Public.
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogService.List(c.Request.Context(), c.Query("author"))
	if err != nil {
		response.FromError(c, "failed to list blogs", err)
		return
	}
	response.Success(c, http.StatusOK, "blogs retrieved", blogs)
}

// Read returns one post and counts the visit. Public.
func (h *BlogHandler) Read(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid blog ID", err)
		return
	}

	b, err := h.blogService.Read(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to read blog", err)
		return
	}
	response.Success(c, http.StatusOK, "blog retrieved", b)
}

// Create publishes a post. Author-agent or admin.
func (h *BlogHandler) Create(c *gin.Context) {
	var req blogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid blog payload", err)
		return
	}

	b, err := h.blogService.Create(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to create blog", err)
		return
	}
	response.Success(c, http.StatusCreated, "blog published", b)
}

// Update edits a post. Author-agent or admin.
func (h *BlogHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid blog ID", err)
		return
	}

	var req blogdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid blog payload", err)
		return
	}

	b, err := h.blogService.Update(c.Request.Context(), middleware.MustCaller(c), id, &req)
	if err != nil {
		response.FromError(c, "failed to update blog", err)
		return
	}
	response.Success(c, http.StatusOK, "blog updated", b)
}

// Delete removes a post. Author-agent or admin.
func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid blog ID", err)
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), middleware.MustCaller(c), id); err != nil {
		response.FromError(c, "failed to delete blog", err)
		return
	}
	response.Success(c, http.StatusOK, "blog deleted", nil)
}
