package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

func (h *OnboardingHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	onboarding := router.Group("/api/onboarding", anyRole)
	{
		onboarding.POST("", h.Create)
		onboarding.GET("", h.List)
		onboarding.GET("/:id", h.Get)
		onboarding.PUT("/:id", h.Update)
		onboarding.DELETE("/:id", h.Delete)
	}
}

// Create adds a prospective client to the pipeline
// @Summary      Create onboarding record
// @Tags         onboarding
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOnboardingDTO  true  "Create Onboarding Payload"
// @Success      201      {object}  response.Response{data=model.ClientOnboarding}
// @Failure      400      {object}  response.Response
// @Router       /api/onboarding [post]
func (h *OnboardingHandler) Create(c *gin.Context) {
	var req service.CreateOnboardingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.onboardingService.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// List returns the onboarding pipeline
// @Summary      List onboarding records
// @Tags         onboarding
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ClientOnboarding}
// @Router       /api/onboarding [get]
func (h *OnboardingHandler) List(c *gin.Context) {
	records, err := h.onboardingService.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// Get returns a single onboarding record
// @Summary      Get onboarding record
// @Tags         onboarding
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Onboarding ID"
// @Success      200  {object}  response.Response{data=model.ClientOnboarding}
// @Failure      404  {object}  response.Response
// @Router       /api/onboarding/{id} [get]
func (h *OnboardingHandler) Get(c *gin.Context) {
	record, err := h.onboardingService.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// Update patches an onboarding record
// @Summary      Update onboarding record
// @Tags         onboarding
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Onboarding ID"
// @Param        payload  body      service.UpdateOnboardingDTO  true  "Update Onboarding Payload"
// @Success      200      {object}  response.Response{data=model.ClientOnboarding}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/onboarding/{id} [put]
func (h *OnboardingHandler) Update(c *gin.Context) {
	var req service.UpdateOnboardingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.onboardingService.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// Delete removes an onboarding record
// @Summary      Delete onboarding record
// @Tags         onboarding
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Onboarding ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/onboarding/{id} [delete]
func (h *OnboardingHandler) Delete(c *gin.Context) {
	if err := h.onboardingService.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "onboarding record deleted"}))
}
