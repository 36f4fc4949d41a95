package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"easyblog/internal/models"
	"easyblog/internal/repository"
	"easyblog/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON CRUD surface over posts.
type APIHandler struct {
	postService *services.PostService
}

func NewAPIHandler(postService *services.PostService) *APIHandler {
	return &APIHandler{postService: postService}
}

// bindPostInput decodes a Post-shaped JSON body into the explicit partial
// schema, rejecting bodies with unknown fields.
func bindPostInput(c *gin.Context) (services.PostInput, error) {
	var in services.PostInput
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return services.PostInput{}, err
	}
	return in, nil
}

// ListPosts handles GET /posts.
func (h *APIHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error fetching posts",
			"details": err.Error(),
		})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost handles POST /posts. Any id in the body is ignored and the
// date is stamped server-side.
func (h *APIHandler) CreatePost(c *gin.Context) {
	in, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id, err := h.postService.CreatePost(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error creating post",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": id})
}

// GetPost handles GET /posts/:id.
func (h *APIHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid post id",
			"details": err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error fetching post",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusOK, post)
	}
}

// UpdatePost handles PUT /posts/:id. Fields absent from the body are left
// untouched; any id in the body is stripped before the write.
func (h *APIHandler) UpdatePost(c *gin.Context) {
	in, err := bindPostInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	modified, err := h.postService.UpdatePost(c.Request.Context(), c.Param("id"), in)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid post id",
			"details": err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error updating post",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
	}
}

// DeletePost handles DELETE /posts/:id.
func (h *APIHandler) DeletePost(c *gin.Context) {
	deleted, err := h.postService.DeletePost(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid post id",
			"details": err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error deleting post",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
	}
}
