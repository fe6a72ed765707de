package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/shared/server/middleware"
	"bottling-backend/internal/shared/server/respond"
)

// registerMeRoutes exposes the caller's resolved identity. The planner UI
// uses it to label the session and decide whether a login banner is shown.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		body := gin.H{"userId": userID}
		if email := middleware.UserEmailFromContext(c); email != "" {
			body["email"] = email
		}
		if name := middleware.UserNameFromContext(c); name != "" {
			body["name"] = name
		}
		if picture := middleware.UserPictureFromContext(c); picture != "" {
			body["picture"] = picture
		}
		respond.JSON(c, http.StatusOK, body)
	})
}
