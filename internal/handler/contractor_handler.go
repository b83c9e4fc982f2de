package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContractorHandler struct {
	contractorService service.ContractorService
}

func NewContractorHandler(contractorService service.ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

func (h *ContractorHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	contractors := router.Group("/api/contractors", anyRole)
	{
		contractors.POST("", h.Create)
		contractors.GET("", h.List)
		contractors.GET("/:id", h.Get)
		contractors.PUT("/:id", h.Update)
		contractors.PATCH("/:id/toggle", h.Toggle)
		contractors.DELETE("/:id", h.Delete)
	}
}

// Create adds a new contractor record
// @Summary      Create contractor
// @Tags         contractors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateContractorDTO  true  "Create Contractor Payload"
// @Success      201      {object}  response.Response{data=model.Contractor}
// @Failure      400      {object}  response.Response
// @Router       /api/contractors [post]
func (h *ContractorHandler) Create(c *gin.Context) {
	var req service.CreateContractorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contractor, err := h.contractorService.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, contractor))
}

// List returns contractors with optional filters
// @Summary      List contractors
// @Tags         contractors
// @Security     BearerAuth
// @Produce      json
// @Param        status      query     string  false  "Status filter (Active/Terminated)"
// @Param        department  query     string  false  "Department filter"
// @Success      200  {object}  response.Response{data=[]model.Contractor}
// @Router       /api/contractors [get]
func (h *ContractorHandler) List(c *gin.Context) {
	contractors, err := h.contractorService.List(c.Request.Context(), actorFrom(c), c.Query("status"), c.Query("department"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, contractors))
}

// Get returns a single contractor
// @Summary      Get contractor
// @Tags         contractors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Contractor ID"
// @Success      200  {object}  response.Response{data=model.Contractor}
// @Failure      404  {object}  response.Response
// @Router       /api/contractors/{id} [get]
func (h *ContractorHandler) Get(c *gin.Context) {
	contractor, err := h.contractorService.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, contractor))
}

// Update patches a contractor record
// @Summary      Update contractor
// @Tags         contractors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Contractor ID"
// @Param        payload  body      service.UpdateContractorDTO  true  "Update Contractor Payload"
// @Success      200      {object}  response.Response{data=model.Contractor}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/contractors/{id} [put]
func (h *ContractorHandler) Update(c *gin.Context) {
	var req service.UpdateContractorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contractor, err := h.contractorService.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, contractor))
}

// Toggle flips a two-state status field
// @Summary      Toggle contractor status
// @Description  Flips sign_status (Signed/Not signed) or status (Active/Terminated)
// @Tags         contractors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Contractor ID"
// @Param        payload  body      service.ToggleStatusDTO  true  "Toggle Payload"
// @Success      200      {object}  response.Response{data=model.Contractor}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/contractors/{id}/toggle [patch]
func (h *ContractorHandler) Toggle(c *gin.Context) {
	var req service.ToggleStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	contractor, err := h.contractorService.Toggle(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, contractor))
}

// Delete soft-removes a contractor
// @Summary      Delete contractor
// @Tags         contractors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Contractor ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/contractors/{id} [delete]
func (h *ContractorHandler) Delete(c *gin.Context) {
	if err := h.contractorService.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "contractor deleted"}))
}
