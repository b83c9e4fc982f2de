package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleDirector, model.RoleStaff)
	stock := router.Group("/api/stock", anyRole)
	{
		stock.POST("/in", h.StockIn)
		stock.POST("/out", h.StockOut)
		stock.GET("/availability", h.ListAvailability)
		stock.GET("/transactions", h.ListTransactions)
		stock.PATCH("/:id/notes", h.UpdateNotes)
	}
}

// StockIn records an inbound stock movement
// @Summary      Stock in
// @Description  Adds quantity for a product and appends a ledger entry
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockInDTO  true  "Stock In Payload"
// @Success      201      {object}  response.Response{data=model.StockTransaction}
// @Failure      400      {object}  response.Response
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *gin.Context) {
	var req service.StockInDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tx, err := h.stockService.StockIn(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tx))
}

// StockOut records an outbound stock movement
// @Summary      Stock out
// @Description  Issues quantity for a product; rejected if insufficient stock
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockOutDTO  true  "Stock Out Payload"
// @Success      201      {object}  response.Response{data=model.StockTransaction}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *gin.Context) {
	var req service.StockOutDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tx, err := h.stockService.StockOut(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tx))
}

// ListAvailability returns the current balance per product
// @Summary      Stock availability
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.StockAvailability}
// @Router       /api/stock/availability [get]
func (h *StockHandler) ListAvailability(c *gin.Context) {
	stocks, err := h.stockService.ListAvailability(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stocks))
}

// ListTransactions returns the full movement ledger, newest first
// @Summary      Stock transactions
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.StockTransaction}
// @Router       /api/stock/transactions [get]
func (h *StockHandler) ListTransactions(c *gin.Context) {
	txs, err := h.stockService.ListTransactions(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, txs))
}

// UpdateNotes edits the notes on an availability record
// @Summary      Update stock notes
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Stock Availability ID"
// @Param        payload  body      service.UpdateStockNotesDTO  true  "Notes Payload"
// @Success      200      {object}  response.Response{data=model.StockAvailability}
// @Failure      404      {object}  response.Response
// @Router       /api/stock/{id}/notes [patch]
func (h *StockHandler) UpdateNotes(c *gin.Context) {
	var req service.UpdateStockNotesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stock, err := h.stockService.UpdateNotes(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stock))
}
