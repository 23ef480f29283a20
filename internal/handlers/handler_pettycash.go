package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
)

// pettyCashHandler handles HTTP requests for petty cash records.
type pettyCashHandler struct {
	pettyCashService portssvc.PettyCashSvcFacade
}

// newPettyCashHandler creates a new pettyCashHandler.
func newPettyCashHandler(ps portssvc.PettyCashSvcFacade) *pettyCashHandler {
	return &pettyCashHandler{
		pettyCashService: ps,
	}
}

// registerPettyCashRoutes registers petty cash routes nested under an
// organization.
func registerPettyCashRoutes(rg *gin.RouterGroup, pettyCashService portssvc.PettyCashSvcFacade) {
	h := newPettyCashHandler(pettyCashService)

	pettyCash := rg.Group("/petty-cash")
	{
		pettyCash.POST("", h.createPettyCash)
		pettyCash.GET("", h.listPettyCash)
		pettyCash.GET("/:petty_cash_id", h.getPettyCash)
		pettyCash.POST("/:petty_cash_id/post", h.postPettyCash)
		pettyCash.POST("/:petty_cash_id/void", h.voidPettyCash)
	}
}

// createPettyCash godoc
// @Summary Create a petty cash record
// @Description Creates a draft single-account record. Exactly one of debit or credit must be positive.
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   record body dto.CreatePettyCashRequest true "Record details"
// @Success 201 {object} dto.PettyCashResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /organizations/{organization_id}/petty-cash [post]
func (h *pettyCashHandler) createPettyCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreatePettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePettyCash", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.pettyCashService.CreatePettyCash(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		h.writePettyCashError(c, err, "Failed to create petty cash record")
		return
	}

	logger.Info("Petty cash record created", slog.String("petty_cash_id", record.PettyCashID))
	c.JSON(http.StatusCreated, dto.ToPettyCashResponse(record))
}

// listPettyCash godoc
// @Summary List petty cash records
// @Tags petty-cash
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPettyCashResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/petty-cash [get]
func (h *pettyCashHandler) listPettyCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListPettyCashParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.pettyCashService.ListPettyCash(c.Request.Context(), organizationID, params)
	if err != nil {
		logger.Error("Failed to list petty cash records", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list petty cash records"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// getPettyCash godoc
// @Summary Get a petty cash record
// @Tags petty-cash
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   petty_cash_id path string true "Petty cash record ID"
// @Success 200 {object} dto.PettyCashResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/petty-cash/{petty_cash_id} [get]
func (h *pettyCashHandler) getPettyCash(c *gin.Context) {
	organizationID := c.Param("organization_id")
	pettyCashID := c.Param("petty_cash_id")

	record, err := h.pettyCashService.GetPettyCashByID(c.Request.Context(), organizationID, pettyCashID)
	if err != nil {
		h.writePettyCashError(c, err, "Failed to retrieve petty cash record")
		return
	}

	c.JSON(http.StatusOK, dto.ToPettyCashResponse(record))
}

// postPettyCash godoc
// @Summary Post a petty cash record
// @Description Applies the record's balance impact to its account. Only DRAFT records can be posted.
// @Tags petty-cash
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   petty_cash_id path string true "Petty cash record ID"
// @Success 200 {object} dto.PettyCashResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 409 {object} map[string]string "Record is not a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/petty-cash/{petty_cash_id}/post [post]
func (h *pettyCashHandler) postPettyCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	pettyCashID := c.Param("petty_cash_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.pettyCashService.PostPettyCash(c.Request.Context(), organizationID, pettyCashID, userID)
	if err != nil {
		h.writePettyCashError(c, err, "Failed to post petty cash record")
		return
	}

	logger.Info("Petty cash record posted", slog.String("petty_cash_id", pettyCashID))
	c.JSON(http.StatusOK, dto.ToPettyCashResponse(record))
}

// voidPettyCash godoc
// @Summary Void a petty cash record
// @Description Cancels a record. Voiding a posted record also unwinds its balance impact.
// @Tags petty-cash
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   petty_cash_id path string true "Petty cash record ID"
// @Success 200 {object} dto.PettyCashResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 409 {object} map[string]string "Record is already void"
// @Security BearerAuth
// @Router /organizations/{organization_id}/petty-cash/{petty_cash_id}/void [post]
func (h *pettyCashHandler) voidPettyCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	pettyCashID := c.Param("petty_cash_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.pettyCashService.VoidPettyCash(c.Request.Context(), organizationID, pettyCashID, userID)
	if err != nil {
		h.writePettyCashError(c, err, "Failed to void petty cash record")
		return
	}

	logger.Info("Petty cash record voided", slog.String("petty_cash_id", pettyCashID))
	c.JSON(http.StatusOK, dto.ToPettyCashResponse(record))
}

// writePettyCashError maps service errors to HTTP responses.
func (h *pettyCashHandler) writePettyCashError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Petty cash record or account not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
