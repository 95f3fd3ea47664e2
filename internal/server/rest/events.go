package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createEvent(c *gin.Context) {
	var e models.Event
	if err := c.ShouldBindJSON(&e); err != nil {
		h.badRequest(c, err)
		return
	}
	created, err := h.events.Create(c.Request.Context(), identity(c), &e)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listEvents(c *gin.Context) {
	list, err := h.events.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) listEventsByCategory(c *gin.Context) {
	list, err := h.events.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) categories(c *gin.Context) {
	cats, err := h.events.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) getEvent(c *gin.Context) {
	e, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) likeEvent(c *gin.Context) {
	e, err := h.events.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) updateEvent(c *gin.Context) {
	var upd models.Event
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.badRequest(c, err)
		return
	}
	e, err := h.events.Update(c.Request.Context(), identity(c), c.Param("id"), &upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *Handler) cleanupCategories(c *gin.Context) {
	n, err := h.events.CleanupCategories(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

type uploadRequest struct {
	ContentType string `json:"content_type"`
}

// imageUploadURL takes an optional {"content_type": "..."} body.
func (h *Handler) imageUploadURL(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}

	up, err := h.media.ImageUploadURL(c.Request.Context(), identity(c), req.ContentType)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}

// image redirects to a short-lived download URL for an uploaded image.
func (h *Handler) image(c *gin.Context) {
	url, err := h.media.ImageURL(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
