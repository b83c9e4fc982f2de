package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type SpreadsheetHandler struct {
	spreadsheetService service.SpreadsheetService
}

func NewSpreadsheetHandler(spreadsheetService service.SpreadsheetService) *SpreadsheetHandler {
	return &SpreadsheetHandler{spreadsheetService: spreadsheetService}
}

func (h *SpreadsheetHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	export := router.Group("/api/export", anyRole)
	{
		export.GET("/clients", h.ExportClients)
		export.GET("/contractors", h.ExportContractors)
		export.GET("/employees", h.ExportEmployees)
		export.GET("/assets", h.ExportAssets)
	}

	importGroup := router.Group("/api/import", adminOnly)
	{
		importGroup.POST("/clients", h.ImportClients)
		importGroup.POST("/contractors", h.ImportContractors)
		importGroup.POST("/employees", h.ImportEmployees)
		importGroup.POST("/assets", h.ImportAssets)
	}

	router.GET("/api/samples/:entity", anyRole, h.Sample)
}

// ExportClients downloads all clients as CSV
// @Summary      Export clients
// @Tags         spreadsheet
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/clients [get]
func (h *SpreadsheetHandler) ExportClients(c *gin.Context) {
	data, err := h.spreadsheetService.ExportClients(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="clients.csv"`)
	c.Data(http.StatusOK, service.ExportContentType, data)
}

// ExportEmployees downloads all employees as CSV
// @Summary      Export employees
// @Tags         spreadsheet
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/employees [get]
func (h *SpreadsheetHandler) ExportEmployees(c *gin.Context) {
	data, err := h.spreadsheetService.ExportEmployees(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="employees.csv"`)
	c.Data(http.StatusOK, service.ExportContentType, data)
}

// ExportContractors downloads all contractors as CSV
// @Summary      Export contractors
// @Tags         spreadsheet
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/contractors [get]
func (h *SpreadsheetHandler) ExportContractors(c *gin.Context) {
	data, err := h.spreadsheetService.ExportContractors(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contractors.csv"`)
	c.Data(http.StatusOK, service.ExportContentType, data)
}

// ExportAssets downloads all assets as CSV
// @Summary      Export assets
// @Tags         spreadsheet
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/export/assets [get]
func (h *SpreadsheetHandler) ExportAssets(c *gin.Context) {
	data, err := h.spreadsheetService.ExportAssets(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="assets.csv"`)
	c.Data(http.StatusOK, service.ExportContentType, data)
}

// ImportClients bulk-creates clients from an uploaded CSV
// @Summary      Import clients
// @Description  Valid rows are created; failed rows are reported individually
// @Tags         spreadsheet
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/import/clients [post]
func (h *SpreadsheetHandler) ImportClients(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.spreadsheetService.ImportClients(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ImportEmployees bulk-creates employees from an uploaded CSV
// @Summary      Import employees
// @Description  Valid rows are created; failed rows are reported individually
// @Tags         spreadsheet
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/import/employees [post]
func (h *SpreadsheetHandler) ImportEmployees(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.spreadsheetService.ImportEmployees(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ImportContractors bulk-creates contractors from an uploaded CSV
// @Summary      Import contractors
// @Description  Valid rows are created; failed rows are reported individually
// @Tags         spreadsheet
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/import/contractors [post]
func (h *SpreadsheetHandler) ImportContractors(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.spreadsheetService.ImportContractors(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ImportAssets bulk-creates assets from an uploaded CSV
// @Summary      Import assets
// @Description  Valid rows are created; failed rows are reported individually
// @Tags         spreadsheet
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/import/assets [post]
func (h *SpreadsheetHandler) ImportAssets(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.spreadsheetService.ImportAssets(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Sample downloads a filled-in CSV upload template
// @Summary      Download sample CSV
// @Tags         spreadsheet
// @Security     BearerAuth
// @Produce      text/csv
// @Param        entity  path  string  true  "clients, contractors, employees or assets"
// @Success      200  {string}  string
// @Failure      400  {object}  response.Response
// @Router       /api/samples/{entity} [get]
func (h *SpreadsheetHandler) Sample(c *gin.Context) {
	entity := c.Param("entity")
	data, err := h.spreadsheetService.Sample(entity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+entity+`_sample.csv"`)
	c.Data(http.StatusOK, service.ExportContentType, data)
}
