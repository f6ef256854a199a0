package handler

import (
	"time"

	"github.com/google/uuid"
	appvoucher "github.com/hesab/backend/internal/application/voucher"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
)

// EntryRequest is one row of a voucher form
// @Description Voucher entry
type EntryRequest struct {
	AccountCode  string          `json:"account_code" binding:"max=50" example:"1102"`
	AccountName  string          `json:"account_name" binding:"max=255" example:"Cash"`
	Description  string          `json:"description" binding:"max=1000"`
	DebitAmount  decimal.Decimal `json:"debit_amount" swaggertype:"string" example:"1500000"`
	CreditAmount decimal.Decimal `json:"credit_amount" swaggertype:"string" example:"0"`
}

// VoucherRequest is a voucher form. Rows that fail validation are reported,
// not rejected, so a half-filled form can still be checked.
// @Description Voucher form
type VoucherRequest struct {
	VoucherNumber string         `json:"voucher_number" binding:"max=50" example:"1"`
	Date          string         `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-20"`
	Description   string         `json:"description" binding:"max=1000"`
	Entries       []EntryRequest `json:"entries" binding:"max=500,dive"`
	Version       int            `json:"version" binding:"min=0" example:"1"`
}

// ListVouchersQuery narrows GET /vouchers
type ListVouchersQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=date voucher_number created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search" binding:"max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=draft approved"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

// VoucherResponse is a stored voucher
// @Description Voucher
type VoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	VoucherNumber string          `json:"voucher_number" example:"1"`
	Date          string          `json:"date" example:"2024-03-20"`
	Description   string          `json:"description"`
	Status        string          `json:"status" example:"draft"`
	Period        string          `json:"period" example:"1403"`
	Entries       []voucher.Entry `json:"entries"`
	Version       int             `json:"version" example:"1"`
	CreatedBy     *uuid.UUID      `json:"created_by,omitempty"`
	ApprovedBy    *uuid.UUID      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// VoucherResultResponse is a voucher with its current balance report
// @Description Voucher and balance report
type VoucherResultResponse struct {
	Voucher VoucherResponse       `json:"voucher"`
	Report  voucher.BalanceReport `json:"report"`
}

func (r VoucherRequest) toInput() appvoucher.VoucherInput {
	in := appvoucher.VoucherInput{
		VoucherNumber: r.VoucherNumber,
		Description:   r.Description,
		Entries:       make([]appvoucher.EntryInput, len(r.Entries)),
		Version:       r.Version,
	}
	if d := parseDate(r.Date); d != nil {
		in.Date = *d
	}
	for i, e := range r.Entries {
		in.Entries[i] = appvoucher.EntryInput{
			AccountCode:  e.AccountCode,
			AccountName:  e.AccountName,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return in
}

func (q ListVouchersQuery) toInput() appvoucher.ListInput {
	return appvoucher.ListInput{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
		Status:   q.Status,
		DateFrom: parseDate(q.DateFrom),
		DateTo:   parseDate(q.DateTo),
	}
}

func toVoucherResponse(d *voucher.Document) VoucherResponse {
	entries := d.Entries
	if entries == nil {
		entries = []voucher.Entry{}
	}
	resp := VoucherResponse{
		ID:            d.ID,
		VoucherNumber: d.VoucherNumber,
		Description:   d.Description,
		Status:        string(d.Status),
		Period:        d.Period,
		Entries:       entries,
		Version:       d.Version,
		CreatedBy:     d.CreatedBy,
		ApprovedBy:    d.ApprovedBy,
		ApprovedAt:    d.ApprovedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if !d.Date.IsZero() {
		resp.Date = d.Date.Format(dateLayout)
	}
	return resp
}

func toVoucherResult(r *appvoucher.VoucherResult) VoucherResultResponse {
	report := r.Report
	if report.Violations == nil {
		report.Violations = []voucher.Violation{}
	}
	return VoucherResultResponse{Voucher: toVoucherResponse(r.Document), Report: report}
}
