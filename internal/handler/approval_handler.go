package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/pagination"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/api/approvals")
	{
		approvals.POST("", middleware.RequireRole(model.RoleStaff), h.Request)
		approvals.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff), h.List)
		approvals.PATCH("/:id", middleware.RequireRole(model.RoleDirector), h.Decide)
		approvals.DELETE("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.Reset)
	}
}

// Request raises an approval request for an item's financial terms
// @Summary      Request approval
// @Description  Staff raise a request; one approval per item, including resolved ones
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RequestApprovalDTO  true  "Request Approval Payload"
// @Success      201      {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Request(c *gin.Context) {
	var req service.RequestApprovalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Request(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, approval))
}

// List returns approvals, optionally filtered by status
// @Summary      List approvals
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Status filter (Requested/Approved/Rejected/Hold)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	approvals, total, err := h.approvalService.List(c.Request.Context(), actorFrom(c), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"approvals": approvals,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// Decide approves, rejects or holds a pending request
// @Summary      Decide approval
// @Description  Directors act on a request; Hold stays decidable, Approved/Rejected are final
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Approval ID"
// @Param        payload  body      service.DecideApprovalDTO  true  "Decision Payload"
// @Success      200      {object}  response.Response{data=service.ApprovalResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id} [patch]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	var req service.DecideApprovalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Decide(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, approval))
}

// Reset clears all approval records for the org
// @Summary      Reset approvals
// @Description  Deletes every approval record in the org. Not available to Directors.
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/approvals [delete]
func (h *ApprovalHandler) Reset(c *gin.Context) {
	deleted, err := h.approvalService.Reset(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": deleted}))
}
