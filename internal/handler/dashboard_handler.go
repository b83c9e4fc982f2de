package handler

import (
	"net/http"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	dashboard := router.Group("/api/dashboard", anyRole)
	{
		dashboard.GET("", h.Summary)
		dashboard.GET("/pl", h.DepartmentPL)
		dashboard.GET("/profitability", h.ClientProfitability)
		dashboard.GET("/utilization", h.ResourceUtilization)
	}
}

// Summary returns the dashboard alerts and per-department metrics
// @Summary      Dashboard summary
// @Description  Expiring/expired agreements, upcoming birthdays, and department maps
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardSummary}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context(), actorFrom(c), time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// DepartmentPL returns profit and loss per department
// @Summary      Department P&L
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.DepartmentPL}
// @Router       /api/dashboard/pl [get]
func (h *DashboardHandler) DepartmentPL(c *gin.Context) {
	rows, err := h.dashboardService.DepartmentPL(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ClientProfitability returns per-client profitability with resource shares
// @Summary      Client profitability
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        department  query     string  false  "Department filter"
// @Success      200  {object}  response.Response{data=[]model.ClientProfitability}
// @Router       /api/dashboard/profitability [get]
func (h *DashboardHandler) ClientProfitability(c *gin.Context) {
	rows, err := h.dashboardService.ClientProfitability(c.Request.Context(), actorFrom(c), c.Query("department"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ResourceUtilization returns each active person's project spread
// @Summary      Resource utilization
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ResourceUtilization}
// @Router       /api/dashboard/utilization [get]
func (h *DashboardHandler) ResourceUtilization(c *gin.Context) {
	rows, err := h.dashboardService.ResourceUtilization(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
