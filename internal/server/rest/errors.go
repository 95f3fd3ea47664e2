package rest

import (
	"errors"
	"net/http"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/gin-gonic/gin"
)

// Stable error codes carried in the "error" field of every error body.
const (
	CodeValidation             = "validation"
	CodeInvalidCategory        = "invalid_category"
	CodeNotFound               = "not_found"
	CodeDuplicateEmail         = "duplicate_email"
	CodeInvalidTransition      = "invalid_transition"
	CodeBadPassword            = "bad_password"
	CodeUnauthenticated        = "unauthenticated"
	CodeForbidden              = "forbidden"
	CodeContributorNotApproved = "contributor_not_approved"
	CodeInternal               = "internal"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{common.ErrValidation, http.StatusBadRequest, CodeValidation},
	{common.ErrInvalidCategory, http.StatusBadRequest, CodeInvalidCategory},
	{common.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{common.ErrDuplicateEmail, http.StatusConflict, CodeDuplicateEmail},
	{common.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
	{common.ErrBadPassword, http.StatusUnauthorized, CodeBadPassword},
	{common.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
	{common.ErrContributorNotApproved, http.StatusForbidden, CodeContributorNotApproved},
	{common.ErrForbidden, http.StatusForbidden, CodeForbidden},
}

// statusFor maps a service error onto an HTTP status and error code.
// Anything unrecognised is a 500 whose message is not exposed.
func statusFor(err error) (int, string, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.code, err.Error()
		}
	}
	return http.StatusInternalServerError, CodeInternal, "internal error"
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, errorBody{Error: code, Message: msg})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: CodeValidation, Message: err.Error()})
}
