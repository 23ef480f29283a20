package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransactionSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:     as,
		transactionService: ts,
	}
}

// registerAccountRoutes registers the organization-independent account
// routes. Head accounts can be global, so creation is not nested under an
// organization path.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService, nil)

	rg.GET("/account-types", h.listAccountTypes)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/head", h.createHeadAccount)
		accounts.POST("/:account_id/sub", h.createSubAccount)
		accounts.GET("/:account_id", h.getAccount)
		accounts.DELETE("/:account_id", h.deleteAccount)
		accounts.PATCH("/:account_id/deactivate", h.deactivateAccount)
	}
}

// registerOrgAccountRoutes registers the account routes scoped to one
// organization: listing, parent lookup and the per-account ledger.
func registerOrgAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newAccountHandler(accountService, transactionService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/valid-parents", h.listValidParents)
		accounts.GET("/:account_id/entries", h.listAccountEntries)
	}
}

// listAccountTypes godoc
// @Summary List account types
// @Description Returns the fixed enumeration of account types with display labels.
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountTypeResponse
// @Security BearerAuth
// @Router /account-types [get]
func (h *accountHandler) listAccountTypes(c *gin.Context) {
	infos := domain.AccountTypes()
	res := make([]dto.AccountTypeResponse, len(infos))
	for i, info := range infos {
		res[i] = dto.AccountTypeResponse{Type: info.Type, Label: info.Label}
	}
	c.JSON(http.StatusOK, res)
}

// createHeadAccount godoc
// @Summary Create a head account
// @Description Creates a top-level account. Omit organizationID to create a global parent shared by all organizations.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateHeadAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account number already exists"
// @Security BearerAuth
// @Router /accounts/head [post]
func (h *accountHandler) createHeadAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateHeadAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateHeadAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateHeadAccount(c.Request.Context(), req, userID)
	if err != nil {
		h.writeAccountError(c, err, "Failed to create head account")
		return
	}

	logger.Info("Head account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// createSubAccount godoc
// @Summary Create a sub-account
// @Description Creates a child account under a parent. The account number is generated from the parent's number.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account_id path string true "Parent account ID"
// @Param   account body dto.CreateSubAccountRequest true "Sub-account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Parent not found"
// @Security BearerAuth
// @Router /accounts/{account_id}/sub [post]
func (h *accountHandler) createSubAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	parentID := c.Param("account_id")

	var req dto.CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSubAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateSubAccount(c.Request.Context(), parentID, req, userID)
	if err != nil {
		h.writeAccountError(c, err, "Failed to create sub-account")
		return
	}

	logger.Info("Sub-account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		h.writeAccountError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Permanently removes an account. Rejected when the account has ledger entries or child accounts.
// @Tags accounts
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has entries or children"
// @Security BearerAuth
// @Router /accounts/{account_id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("account_id")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		h.writeAccountError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-disables an account so new transactions cannot reference it.
// @Tags accounts
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{account_id}/deactivate [patch]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, userID); err != nil {
		h.writeAccountError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}

// listAccounts godoc
// @Summary List accounts visible to an organization
// @Description Returns the organization's accounts plus global head accounts, ordered by account number.
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), organizationID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// listValidParents godoc
// @Summary List valid parent accounts
// @Description Returns accounts the organization can create sub-accounts under.
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/valid-parents [get]
func (h *accountHandler) listValidParents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	accounts, err := h.accountService.GetValidParents(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list valid parents", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list valid parent accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// listAccountEntries godoc
// @Summary List an account's ledger entries
// @Description Returns the posted ledger lines of an account, newest first, with keyset pagination.
// @Tags accounts
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/entries [get]
func (h *accountHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	accountID := c.Param("account_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.transactionService.ListEntriesByAccount(c.Request.Context(), organizationID, accountID, params)
	if err != nil {
		logger.Error("Failed to list account entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account entries"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// writeAccountError maps service errors to HTTP responses.
func (h *accountHandler) writeAccountError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
