package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divya9658/financial-ledger-api/internal/apperrors"
	"github.com/divya9658/financial-ledger-api/internal/core/locking"
	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
	"github.com/divya9658/financial-ledger-api/internal/core/services"
	"github.com/divya9658/financial-ledger-api/internal/dto"
	"github.com/divya9658/financial-ledger-api/internal/middleware"
)

// transactionHandler handles the money-movement endpoints and transaction reads.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ledgerService portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ledgerService}
}

// registerTransactionRoutes wires the money-movement endpoints into the group.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)
	rg.POST("/deposits", h.deposit)
	rg.POST("/withdrawals", h.withdraw)
	rg.POST("/transfers", h.transfer)
	rg.GET("/transactions/:transactionID", h.getTransaction)
}

func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	result, err := h.ledgerService.Deposit(c.Request.Context(), req)
	if err != nil {
		h.respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	result, err := h.ledgerService.Withdraw(c.Request.Context(), req)
	if err != nil {
		h.respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// getTransaction returns a committed transaction with its ledger entries.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, entries, err := h.ledgerService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.GetTransactionResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Entries:     dto.ToEntryResponses(entries),
	})
}

// respondTransactionError maps orchestrator errors onto HTTP status codes.
// Insufficient funds is a semantic rejection of a well-formed request, hence
// 422; a lock acquisition timeout is transient, hence 503.
func (h *transactionHandler) respondTransactionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, locking.ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrCurrencyMismatch),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Transaction failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
	}
}
