package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin", middleware.RequireRole(model.RoleAdmin))
	{
		admin.DELETE("/data", h.ClearData)
	}
}

// ClearData wipes all business records for the caller's org
// @Summary      Clear organization data
// @Description  Deletes clients, contractors, employees, assets, approvals, stock and departments. Users and audit logs survive.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]int64}
// @Failure      403  {object}  response.Response
// @Router       /api/admin/data [delete]
func (h *AdminHandler) ClearData(c *gin.Context) {
	counts, err := h.adminService.ClearOrgData(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, counts))
}
