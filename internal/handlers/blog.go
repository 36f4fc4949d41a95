package handlers

import (
	"errors"
	"net/http"

	"easyblog/internal/constants"
	"easyblog/internal/models"
	"easyblog/internal/repository"
	"easyblog/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	postService *services.PostService
}

func NewBlogHandler(postService *services.PostService) *BlogHandler {
	return &BlogHandler{postService: postService}
}

// Index renders the front page: the first post as hero, the rest as a
// preview grid.
func (h *BlogHandler) Index(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	var hero *models.RenderedPost
	var more []*models.RenderedPost
	for i := range posts {
		rendered := h.postService.RenderPost(&posts[i])
		if hero == nil {
			hero = rendered
			continue
		}
		more = append(more, rendered)
	}

	session := sessions.Default(c)
	flashes := session.Flashes(constants.SessionKeySuccessFlash)
	_ = session.Save() // clear flashes after reading

	c.HTML(http.StatusOK, "index.html", gin.H{
		"hero":    hero,
		"posts":   more,
		"Flashes": flashes,
	})
}

// ShowPost renders a single post's detail page.
func (h *BlogHandler) ShowPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Failed to load the post",
		})
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"post": h.postService.RenderPost(post),
	})
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}
