package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/authz"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/middleware"
)

// requireIdentity pulls the caller identity set by the auth middleware.
// A missing identity means the route was wired without RequireAuth.
func requireIdentity(c *gin.Context) (authz.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return authz.Identity{}, false
	}
	return identity, true
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
