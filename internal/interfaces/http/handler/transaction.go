package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/hesab/backend/internal/application/ledger"
)

// TransactionService manages posted transactions
type TransactionService interface {
	List(ctx context.Context, input appledger.ListTransactionsInput) ([]appledger.TransactionInfo, error)
	Get(ctx context.Context, id uuid.UUID) (*appledger.TransactionInfo, error)
	Create(ctx context.Context, input appledger.CreateTransactionInput) (*appledger.TransactionInfo, error)
	Update(ctx context.Context, id uuid.UUID, input appledger.UpdateTransactionInput) (*appledger.TransactionInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	BaseHandler
	transactionService TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List godoc
// @ID           listTransactions
// @Summary      List transactions
// @Description  Newest first. The limit defaults to 100 and is capped at 1000.
// @Tags         transactions
// @Produce      json
// @Param        account_id query string false "Only this account" format(uuid)
// @Param        limit query int false "Maximum rows" minimum(1) maximum(1000)
// @Success      200 {object} APIResponse[[]TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appledger.ListTransactionsInput{Limit: q.Limit}
	if q.AccountID != "" {
		accountID := uuid.MustParse(q.AccountID)
		input.AccountID = &accountID
	}

	txs, err := h.transactionService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponses(txs))
}

// Get godoc
// @ID           getTransaction
// @Summary      Get transaction by ID
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponse(*tx))
}

// Create godoc
// @ID           createTransaction
// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[TransactionResponse]
// @Failure      400 {object} ErrorResponse "Validation failed or ACCOUNT_NOT_FOUND"
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), appledger.CreateTransactionInput{
		AccountID:   uuid.MustParse(req.AccountID),
		Date:        req.Date,
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toTransactionResponse(*tx))
}

// Update godoc
// @ID           updateTransaction
// @Summary      Update transaction
// @Description  Partial update of date, description and amount
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body UpdateTransactionRequest true "Fields to change"
// @Success      200 {object} APIResponse[TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tx, err := h.transactionService.Update(c.Request.Context(), id, appledger.UpdateTransactionInput{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponse(*tx))
}

// Delete godoc
// @ID           deleteTransaction
// @Summary      Delete transaction
// @Tags         transactions
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
