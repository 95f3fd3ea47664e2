package rest

import (
	"net/http"

	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createTicket(c *gin.Context) {
	var t models.Ticket
	if err := c.ShouldBindJSON(&t); err != nil {
		h.badRequest(c, err)
		return
	}
	created, err := h.tickets.Create(c.Request.Context(), identity(c), &t)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": created})
}

func (h *Handler) listTickets(c *gin.Context) {
	list, err := h.tickets.List(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) listUserTickets(c *gin.Context) {
	list, err := h.tickets.ListForUser(c.Request.Context(), identity(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) deleteTicket(c *gin.Context) {
	if err := h.tickets.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}
