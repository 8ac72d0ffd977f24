package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/api/middleware"
)

// getUserID reads the authenticated user's ID stored by the JWT middleware.
// It renders a 401 and returns false when the request is unauthenticated.
func getUserID(ctx *gin.Context) (uint, bool) {
	userID := ctx.GetUint(middleware.ContextKeyUserID)
	if userID == 0 {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("not authenticated")))

		return 0, false
	}

	return userID, true
}
