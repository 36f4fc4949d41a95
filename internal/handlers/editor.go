package handlers

import (
	"net/http"

	"easyblog/internal/constants"
	"easyblog/internal/form"
	"easyblog/internal/media"
	"easyblog/internal/models"
	"easyblog/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// EditorHandler serves the server-rendered create/edit form. Draft state
// round-trips through the form fields on every submission, so a fresh
// controller is rebuilt per request.
type EditorHandler struct {
	postService *services.PostService
	prober      media.Prober
}

func NewEditorHandler(postService *services.PostService, prober media.Prober) *EditorHandler {
	return &EditorHandler{postService: postService, prober: prober}
}

// Editor renders the form: empty for a new post, prefilled when an id query
// parameter names an existing one.
func (h *EditorHandler) Editor(c *gin.Context) {
	idStr := c.Query("id")
	ctrl := form.NewController(h.prober)

	if idStr != "" {
		post, err := h.postService.GetPost(c.Request.Context(), idStr)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		ctrl.Load(post)
	}
	h.renderEditor(c, idStr, ctrl, "")
}

// SavePost handles every editor form submission. The action field selects
// between verifying a candidate cover URL, removing the cover, and saving
// the draft.
func (h *EditorHandler) SavePost(c *gin.Context) {
	idStr := c.PostForm("id")
	ctrl := h.buildController(c)

	switch c.PostForm("action") {
	case "verify-cover":
		if err := ctrl.SubmitCoverURL(c.Request.Context(), c.PostForm("cover_input")); err == nil {
			ctrl.WaitCover()
		}
		h.renderEditor(c, idStr, ctrl, "")

	case "remove-cover":
		ctrl.RemoveCover()
		h.renderEditor(c, idStr, ctrl, "")

	default: // save
		if err := ctrl.Validate(); err != nil {
			h.renderEditor(c, idStr, ctrl, err.Error())
			return
		}
		if _, err := h.postService.SavePost(c.Request.Context(), idStr, ctrl.Payload()); err != nil {
			h.renderEditor(c, idStr, ctrl, "Failed to save the post: "+err.Error())
			return
		}

		session := sessions.Default(c)
		session.AddFlash("Post saved.", constants.SessionKeySuccessFlash)
		_ = session.Save()
		c.Redirect(http.StatusFound, "/")
	}
}

// DeletePost removes a post and returns to the front page.
func (h *EditorHandler) DeletePost(c *gin.Context) {
	if _, err := h.postService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Failed to delete the post",
		})
		return
	}

	session := sessions.Default(c)
	session.AddFlash("Post deleted.", constants.SessionKeySuccessFlash)
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

// buildController reconstructs the draft from the submitted form fields,
// applying the edit-path normalization as each field is set.
func (h *EditorHandler) buildController(c *gin.Context) *form.Controller {
	ctrl := form.NewController(h.prober)
	if c.PostForm("summary_excerpt") != "on" {
		ctrl.SetExcerptMode(form.ExcerptManual)
	}
	ctrl.SetTitle(c.PostForm("title"))
	ctrl.SetAuthor(c.PostForm("author"))
	ctrl.SetContent(c.PostForm("content"))
	ctrl.SetExcerpt(c.PostForm("excerpt"))
	ctrl.RestoreCover(models.CoverKind(c.PostForm("cover_kind")), c.PostForm("cover_url"))
	return ctrl
}

func (h *EditorHandler) renderEditor(c *gin.Context, idStr string, ctrl *form.Controller, errMsg string) {
	data := gin.H{
		"id":             idStr,
		"title":          ctrl.Title(),
		"author":         ctrl.Author(),
		"content":        ctrl.Content(),
		"excerpt":        ctrl.Excerpt(),
		"summaryExcerpt": ctrl.ExcerptMode() == form.ExcerptAuto,
		"coverError":     ctrl.CoverError(),
		"error":          errMsg,
	}
	if cover := ctrl.Cover(); cover != nil {
		mode := string(cover.Kind)
		if media.IsYouTubeURL(cover.URL) {
			mode = "youtube"
		}
		data["coverKind"] = string(cover.Kind)
		data["coverURL"] = cover.URL
		data["coverMode"] = mode
	}
	c.HTML(http.StatusOK, "editor.html", data)
}
