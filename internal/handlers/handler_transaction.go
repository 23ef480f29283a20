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

// transactionHandler handles HTTP requests for the transaction lifecycle.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers transaction routes nested under an
// organization.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.POST("/from-costing", h.createFromCosting)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransaction)
		transactions.POST("/:transaction_id/post", h.postTransaction)
		transactions.POST("/:transaction_id/reverse", h.reverseTransaction)
		transactions.DELETE("/:transaction_id", h.deleteTransaction)
		transactions.GET("/:transaction_id/voucher", h.getVoucher)
	}
}

// createTransaction godoc
// @Summary Create a draft transaction
// @Description Validates a balanced entry set and persists it as a draft. Balances are untouched until posting.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction with entries"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entries"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createFromCosting godoc
// @Summary Create a draft transaction from costing lines
// @Description Builds a draft transaction from job costing candidate lines, tagged with the job booking.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   costing body dto.CreateFromCostingRequest true "Costing lines"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced lines"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/from-costing [post]
func (h *transactionHandler) createFromCosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateFromCostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFromCosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateFromCostingLines(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to create transaction from costing lines")
		return
	}

	logger.Info("Transaction created from costing lines", slog.String("transaction_id", txn.TransactionID), slog.String("job_booking_id", req.JobBookingID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns a page of transaction headers, newest first, with keyset pagination.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, VOID)
// @Param   type query string false "Filter by transaction type"
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Param   includeEntries query bool false "Include entries per transaction"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.transactionService.ListTransactions(c.Request.Context(), organizationID, params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// getTransaction godoc
// @Summary Get a transaction with its entries
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	organizationID := c.Param("organization_id")
	transactionID := c.Param("transaction_id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), organizationID, transactionID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// postTransaction godoc
// @Summary Post a draft transaction
// @Description Applies the draft's entries to account balances. Only DRAFT transactions can be posted; a second post is rejected.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), organizationID, transactionID, userID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// reverseTransaction godoc
// @Summary Reverse a posted transaction
// @Description Creates and posts a mirrored counter-transaction. The original stays POSTED and is linked to its reversal.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 201 {object} dto.TransactionResponse "The reversal transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Not posted, already reversed, or itself a reversal"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id}/reverse [post]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.transactionService.ReverseTransaction(c.Request.Context(), organizationID, transactionID, userID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Transaction reversed", slog.String("original_transaction_id", transactionID), slog.String("reversal_transaction_id", reversal.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal))
}

// deleteTransaction godoc
// @Summary Delete a draft transaction
// @Description Removes a draft and its entries. Posted transactions must be reversed instead.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	organizationID := c.Param("organization_id")
	transactionID := c.Param("transaction_id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), organizationID, transactionID); err != nil {
		h.writeTransactionError(c, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// getVoucher godoc
// @Summary Get a transaction voucher
// @Description Returns the read-only voucher projection with account and organization names resolved, for export rendering.
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} domain.TransactionVoucher
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id}/voucher [get]
func (h *transactionHandler) getVoucher(c *gin.Context) {
	organizationID := c.Param("organization_id")
	transactionID := c.Param("transaction_id")

	voucher, err := h.transactionService.GetVoucher(c.Request.Context(), organizationID, transactionID)
	if err != nil {
		h.writeTransactionError(c, err, "Failed to load voucher")
		return
	}

	c.JSON(http.StatusOK, voucher)
}

// writeTransactionError maps service errors to HTTP responses.
func (h *transactionHandler) writeTransactionError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction or referenced account not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
