package rest

import (
	"net/http"
	"time"

	"github.com/Ouarghii/evento/internal/logging"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/Ouarghii/evento/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the handlers call into.
type Deps struct {
	Gate         Authorizer
	Accounts     *services.AccountService
	Sessions     *services.SessionService
	Contributors *services.ContributorService
	Events       *services.EventService
	Tickets      *services.TicketService
	Media        *services.MediaService

	CookieSecure bool
	CORSOrigins  []string

	// Mode is passed to gin.SetMode when set.
	Mode string
}

type Handler struct {
	gate         Authorizer
	accounts     *services.AccountService
	sessions     *services.SessionService
	contributors *services.ContributorService
	events       *services.EventService
	tickets      *services.TicketService
	media        *services.MediaService
	cookieSecure bool
	corsOrigins  []string
	mode         string
	logger       logging.Logger
}

func NewHandler(d Deps, l logging.Logger) *Handler {
	return &Handler{
		gate:         d.Gate,
		accounts:     d.Accounts,
		sessions:     d.Sessions,
		contributors: d.Contributors,
		events:       d.Events,
		tickets:      d.Tickets,
		media:        d.Media,
		cookieSecure: d.CookieSecure,
		corsOrigins:  d.CORSOrigins,
		mode:         d.Mode,
		logger:       l.With("module", "rest"),
	}
}

// route is one entry of the routing table. A nil roles slice marks a
// public route; anything else is wrapped in the gate.
type route struct {
	method  string
	path    string
	roles   []models.Role
	handler gin.HandlerFunc
}

// public routes still resolve a caller when a token is present.
var public []models.Role

var (
	anyRole   = models.AllRoles()
	adminOnly = []models.Role{models.RoleAdmin}
	staff     = []models.Role{models.RoleAdmin, models.RoleContributor}
)

func (h *Handler) routes() []route {
	return []route{
		{http.MethodGet, "/test", public, h.ping},

		// accounts
		{http.MethodPost, "/register", public, h.register(models.RoleUser)},
		{http.MethodPost, "/login", public, h.login(models.RoleUser)},
		{http.MethodGet, "/profile", public, h.profile(models.RoleUser)},
		{http.MethodPost, "/logout", public, h.logout},
		{http.MethodPost, "/contributor/register", public, h.register(models.RoleContributor)},
		{http.MethodPost, "/contributor/login", public, h.login(models.RoleContributor)},
		{http.MethodGet, "/contributor/profile", public, h.profile(models.RoleContributor)},
		{http.MethodPost, "/contributor/logout", public, h.logout},
		{http.MethodPost, "/admin/login", public, h.login(models.RoleAdmin)},
		{http.MethodGet, "/admin/profile", public, h.profile(models.RoleAdmin)},
		{http.MethodPost, "/admin/logout", public, h.logout},
		{http.MethodGet, "/user/profile", public, h.profile("")},
		{http.MethodPut, "/profile", anyRole, h.updateProfile},
		{http.MethodPost, "/admin/register", adminOnly, h.register(models.RoleAdmin)},

		// contributor approval
		{http.MethodGet, "/admin/contributors", adminOnly, h.listContributors},
		{http.MethodPost, "/admin/contributors/:id/accept", adminOnly, h.acceptContributor},
		{http.MethodPost, "/admin/contributors/:id/decline", adminOnly, h.declineContributor},

		// events
		{http.MethodPost, "/createEvent", staff, h.createEvent},
		{http.MethodGet, "/createEvent", public, h.listEvents},
		{http.MethodGet, "/events", public, h.listEvents},
		{http.MethodGet, "/events/category/:category", public, h.listEventsByCategory},
		{http.MethodGet, "/categories", public, h.categories},
		{http.MethodPatch, "/events/cleanup-categories", adminOnly, h.cleanupCategories},
		{http.MethodPost, "/events/image-upload-url", staff, h.imageUploadURL},
		{http.MethodGet, "/uploads/*key", public, h.image},
		{http.MethodGet, "/event/:id", public, h.getEvent},
		{http.MethodPost, "/event/:id/like", public, h.likeEvent},
		{http.MethodPut, "/event/:id", staff, h.updateEvent},
		{http.MethodDelete, "/event/:id", staff, h.deleteEvent},

		// tickets
		{http.MethodPost, "/tickets", anyRole, h.createTicket},
		{http.MethodGet, "/tickets", staff, h.listTickets},
		{http.MethodGet, "/tickets/user/:userId", anyRole, h.listUserTickets},
		{http.MethodDelete, "/tickets/:id", anyRole, h.deleteTicket},
	}
}

// Router builds the gin engine with CORS, request logging and every route.
func (h *Handler) Router() *gin.Engine {
	if h.mode != "" {
		gin.SetMode(h.mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	if len(h.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	for _, rt := range h.routes() {
		chain := []gin.HandlerFunc{rt.handler}
		if rt.roles != nil {
			chain = append([]gin.HandlerFunc{h.require(rt.roles...)}, chain...)
		} else {
			chain = append([]gin.HandlerFunc{h.optional()}, chain...)
		}
		r.Handle(rt.method, rt.path, chain...)
	}
	return r
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, "test ok")
}
