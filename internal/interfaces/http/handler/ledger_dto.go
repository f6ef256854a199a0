package handler

import (
	"time"

	"github.com/google/uuid"
	appledger "github.com/hesab/backend/internal/application/ledger"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the body of POST /accounts
// @Description New account
type CreateAccountRequest struct {
	Code string `json:"code" binding:"max=50" example:"1102"`
	Name string `json:"name" binding:"required,max=255" example:"Cash"`
	Type string `json:"type" binding:"required,oneof=asset liability income expense equity" example:"asset"`
}

// UpdateAccountRequest is a partial update of an account
// @Description Account fields to change
type UpdateAccountRequest struct {
	Code *string `json:"code" binding:"omitempty,max=50"`
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
	Type *string `json:"type" binding:"omitempty,oneof=asset liability income expense equity"`
}

// AccountResponse is an account as served to clients
// @Description Account
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code,omitempty" example:"1102"`
	Name      string    `json:"name" example:"Cash"`
	Type      string    `json:"type" example:"asset"`
	CreatedAt time.Time `json:"created_at"`
}

// ListTransactionsQuery narrows GET /transactions
type ListTransactionsQuery struct {
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// CreateTransactionRequest is the body of POST /transactions
// @Description New transaction. A missing date means now.
type CreateTransactionRequest struct {
	AccountID   string           `json:"account_id" binding:"required,uuid"`
	Date        *time.Time       `json:"date"`
	Description string           `json:"description" binding:"max=1000"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"1500000"`
}

// UpdateTransactionRequest is a partial update of a transaction
// @Description Transaction fields to change
type UpdateTransactionRequest struct {
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string"`
}

// TransactionResponse is a transaction as served to clients
// @Description Transaction
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"1500000"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ChartQuery selects the window of GET /stats/chart
type ChartQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

func toAccountResponse(a appledger.AccountInfo) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
	}
}

func toTransactionResponse(t appledger.TransactionInfo) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionResponses(txs []appledger.TransactionInfo) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toTransactionResponse(t)
	}
	return out
}
