package rest

import (
	"net/http"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/services"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileView is the public shape of an account of any role.
type profileView struct {
	ID     string                   `json:"_id"`
	Name   string                   `json:"name"`
	Email  string                   `json:"email"`
	Role   models.Role              `json:"role"`
	Photo  string                   `json:"photo,omitempty"`
	Bio    string                   `json:"bio,omitempty"`
	Skills []string                 `json:"skills,omitempty"`
	Status models.ContributorStatus `json:"status,omitempty"`
	Token  string                   `json:"token,omitempty"`
}

func viewOf(p models.Profile) *profileView {
	base := p.Base()
	v := &profileView{ID: base.ID, Name: base.Name, Email: base.Email, Role: p.Role()}
	switch t := p.(type) {
	case *models.User:
		v.Photo, v.Bio, v.Skills = t.Photo, t.Bio, t.Skills
	case *models.Contributor:
		v.Photo, v.Bio, v.Skills = t.Photo, t.Bio, t.Skills
		v.Status = t.Status
	}
	return v
}

func (h *Handler) register(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in credentialsRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			h.badRequest(c, err)
			return
		}

		ctx := c.Request.Context()
		if id := identity(c); id != nil {
			ctx = services.WithActor(ctx, id.SubjectID)
		}

		p, err := h.accounts.Register(ctx, role, in.Name, in.Email, in.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, viewOf(p))
	}
}

func (h *Handler) login(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in credentialsRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			h.badRequest(c, err)
			return
		}

		s, err := h.sessions.Login(c.Request.Context(), role, in.Email, in.Password)
		if err != nil {
			h.fail(c, err)
			return
		}

		h.setTokenCookie(c, s.Token, int(time.Until(s.ExpiresAt).Seconds()))
		v := viewOf(s.Profile)
		v.Token = s.Token
		c.JSON(http.StatusOK, v)
	}
}

// profile answers null unless the caller resolves to role. An empty role
// accepts any caller.
func (h *Handler) profile(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identity(c)
		if id == nil || (role != "" && id.Role != role) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, viewOf(id.Profile))
	}
}

func (h *Handler) logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, true)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.badRequest(c, err)
		return
	}
	p, err := h.accounts.UpdateProfile(c.Request.Context(), identity(c), upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(p))
}

func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.TokenCookieName, token, maxAge, "/", "", h.cookieSecure, true)
}
