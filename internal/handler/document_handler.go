package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	generator         service.DocumentGenerator
	userService       service.UserService
	clientService     service.ClientService
	contractorService service.ContractorService
	employeeService   service.EmployeeService
}

func NewDocumentHandler(
	generator service.DocumentGenerator,
	userService service.UserService,
	clientService service.ClientService,
	contractorService service.ContractorService,
	employeeService service.EmployeeService,
) *DocumentHandler {
	return &DocumentHandler{
		generator:         generator,
		userService:       userService,
		clientService:     clientService,
		contractorService: contractorService,
		employeeService:   employeeService,
	}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	documents := router.Group("/api/documents", anyRole)
	{
		documents.GET("/clients/:id/:kind", h.ClientAgreement)
		documents.GET("/contractors/:id/agreement", h.ContractorAgreement)
		documents.GET("/employees/:id/offer-letter", h.OfferLetter)
	}
}

// ClientAgreement renders a client-facing agreement document
// @Summary      Generate client agreement
// @Description  Renders an SLA or NDA from the client record
// @Tags         documents
// @Security     BearerAuth
// @Produce      plain
// @Param        id    path      string  true  "Client ID"
// @Param        kind  path      string  true  "Document kind (sla or nda)"
// @Success      200   {string}  string
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/documents/clients/{id}/{kind} [get]
func (h *DocumentHandler) ClientAgreement(c *gin.Context) {
	actor := actorFrom(c)

	client, err := h.clientService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	org, err := h.userService.GetOrg(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	doc, err := h.generator.ClientAgreement(c.Request.Context(), org, client, c.Param("kind"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}

// ContractorAgreement renders an independent contractor agreement
// @Summary      Generate contractor agreement
// @Tags         documents
// @Security     BearerAuth
// @Produce      plain
// @Param        id   path      string  true  "Contractor ID"
// @Success      200  {string}  string
// @Failure      404  {object}  response.Response
// @Router       /api/documents/contractors/{id}/agreement [get]
func (h *DocumentHandler) ContractorAgreement(c *gin.Context) {
	actor := actorFrom(c)

	contractor, err := h.contractorService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	org, err := h.userService.GetOrg(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	doc, err := h.generator.ContractorAgreement(c.Request.Context(), org, contractor)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}

// OfferLetter renders an employee offer letter
// @Summary      Generate offer letter
// @Tags         documents
// @Security     BearerAuth
// @Produce      plain
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {string}  string
// @Failure      404  {object}  response.Response
// @Router       /api/documents/employees/{id}/offer-letter [get]
func (h *DocumentHandler) OfferLetter(c *gin.Context) {
	actor := actorFrom(c)

	employee, err := h.employeeService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	org, err := h.userService.GetOrg(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	doc, err := h.generator.OfferLetter(c.Request.Context(), org, employee)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}
