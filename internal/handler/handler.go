package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice/internal/apperror"
	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/pkg/response"
)

// actorFrom rebuilds the caller identity from the context values the auth
// middleware set.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get(middleware.CtxOrgID); ok {
		if id, ok := v.(uuid.UUID); ok {
			actor.OrgID = id
		}
	}
	actor.Role = c.GetString(middleware.CtxUserRole)
	return actor
}

// fail maps a service error to the standard error envelope.
func fail(c *gin.Context, err error) {
	appErr := apperror.From(err)
	c.JSON(appErr.HTTPStatus, response.Error(appErr.HTTPStatus, appErr.Message))
}
