package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/hesab/backend/internal/application/ledger"
)

// AccountService manages the chart of accounts
type AccountService interface {
	List(ctx context.Context) ([]appledger.AccountInfo, error)
	Get(ctx context.Context, id uuid.UUID) (*appledger.AccountInfo, error)
	Create(ctx context.Context, input appledger.CreateAccountInput) (*appledger.AccountInfo, error)
	Update(ctx context.Context, id uuid.UUID, input appledger.UpdateAccountInput) (*appledger.AccountInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	BaseHandler
	accountService AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List godoc
// @ID           listAccounts
// @Summary      List accounts
// @Description  Returns the chart of accounts ordered by code
// @Tags         accounts
// @Produce      json
// @Success      200 {object} APIResponse[[]AccountResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	h.Success(c, out)
}

// Get godoc
// @ID           getAccount
// @Summary      Get account by ID
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} APIResponse[AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountResponse(*account))
}

// Create godoc
// @ID           createAccount
// @Summary      Create account
// @Description  Name and, when set, code must be unique
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body CreateAccountRequest true "Account"
// @Success      201 {object} APIResponse[AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), appledger.CreateAccountInput{
		Code: req.Code,
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toAccountResponse(*account))
}

// Update godoc
// @ID           updateAccount
// @Summary      Update account
// @Description  Partial update; omitted fields keep their value
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body UpdateAccountRequest true "Fields to change"
// @Success      200 {object} APIResponse[AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /accounts/{id} [patch]
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, appledger.UpdateAccountInput{
		Code: req.Code,
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountResponse(*account))
}

// Delete godoc
// @ID           deleteAccount
// @Summary      Delete account
// @Description  Deletes the account and its transactions
// @Tags         accounts
// @Param        id path string true "Account ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
