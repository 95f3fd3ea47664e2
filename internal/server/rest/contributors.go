package rest

import (
	"net/http"

	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listContributors(c *gin.Context) {
	status := models.ContributorStatus(c.Query("status"))
	list, err := h.contributors.List(c.Request.Context(), identity(c), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]*profileView, 0, len(list))
	for _, ct := range list {
		out = append(out, viewOf(ct))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) acceptContributor(c *gin.Context) {
	ct, err := h.contributors.Accept(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ct))
}

func (h *Handler) declineContributor(c *gin.Context) {
	ct, err := h.contributors.Decline(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ct))
}
