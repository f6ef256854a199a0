package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appvoucher "github.com/hesab/backend/internal/application/voucher"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
)

// VoucherService is the voucher application as used over HTTP
type VoucherService interface {
	Check(ctx context.Context, input appvoucher.VoucherInput) voucher.BalanceReport
	Template(ctx context.Context) (*appvoucher.VoucherResult, error)
	Create(ctx context.Context, input appvoucher.VoucherInput, by uuid.UUID) (*appvoucher.VoucherResult, error)
	Update(ctx context.Context, id uuid.UUID, input appvoucher.VoucherInput) (*appvoucher.VoucherResult, error)
	Get(ctx context.Context, id uuid.UUID) (*appvoucher.VoucherResult, error)
	List(ctx context.Context, input appvoucher.ListInput) (shared.Paginated[voucher.Document], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID, by uuid.UUID) (*appvoucher.VoucherResult, error)
	Export(ctx context.Context, id uuid.UUID) (*appvoucher.ExportResult, error)
}

// VoucherHandler handles voucher-related HTTP requests
type VoucherHandler struct {
	BaseHandler
	voucherService VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// List godoc
// @ID           listVouchers
// @Summary      List vouchers
// @Tags         vouchers
// @Produce      json
// @Param        page query int false "Page number" minimum(1) default(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(100) default(20)
// @Param        order_by query string false "Sort field" Enums(date, voucher_number, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        search query string false "Number or description"
// @Param        status query string false "Status" Enums(draft, approved)
// @Param        date_from query string false "First date" format(date)
// @Param        date_to query string false "Last date" format(date)
// @Success      200 {object} APIResponse[[]VoucherResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	var q ListVouchersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.voucherService.List(c.Request.Context(), q.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]VoucherResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toVoucherResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Template godoc
// @ID           getVoucherTemplate
// @Summary      Blank voucher
// @Description  Today's date, the next free number and one empty entry. Nothing is saved.
// @Tags         vouchers
// @Produce      json
// @Success      200 {object} APIResponse[VoucherResultResponse]
// @Security     BearerAuth
// @Router       /vouchers/template [get]
func (h *VoucherHandler) Template(c *gin.Context) {
	result, err := h.voucherService.Template(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResult(result))
}

// Check godoc
// @ID           checkVoucher
// @Summary      Check a voucher form
// @Description  Validates every entry and the debit/credit balance without saving
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        request body VoucherRequest true "Voucher form"
// @Success      200 {object} APIResponse[voucher.BalanceReport]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/check [post]
func (h *VoucherHandler) Check(c *gin.Context) {
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	report := h.voucherService.Check(c.Request.Context(), req.toInput())
	if report.Violations == nil {
		report.Violations = []voucher.Violation{}
	}
	h.Success(c, report)
}

// Create godoc
// @ID           createVoucher
// @Summary      Save a new voucher
// @Description  Refused with VOUCHER_NOT_READY unless the form is balanced and every entry is valid
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        request body VoucherRequest true "Voucher form"
// @Success      201 {object} APIResponse[VoucherResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.voucherService.Create(c.Request.Context(), req.toInput(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toVoucherResult(result))
}

// Get godoc
// @ID           getVoucher
// @Summary      Get voucher by ID
// @Tags         vouchers
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} APIResponse[VoucherResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.voucherService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResult(result))
}

// Update godoc
// @ID           updateVoucher
// @Summary      Replace a draft voucher
// @Description  A non-zero version must match the stored one
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Param        request body VoucherRequest true "Voucher form"
// @Success      200 {object} APIResponse[VoucherResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/{id} [put]
func (h *VoucherHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.voucherService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResult(result))
}

// Delete godoc
// @ID           deleteVoucher
// @Summary      Delete a draft voucher
// @Tags         vouchers
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/{id} [delete]
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.voucherService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Approve godoc
// @ID           approveVoucher
// @Summary      Approve a voucher
// @Tags         vouchers
// @Produce      json
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {object} APIResponse[VoucherResultResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/{id}/approve [post]
func (h *VoucherHandler) Approve(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.voucherService.Approve(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResult(result))
}

// Export godoc
// @ID           exportVoucher
// @Summary      Download a voucher as XLSX
// @Tags         vouchers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "Voucher ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vouchers/{id}/export [get]
func (h *VoucherHandler) Export(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	file, err := h.voucherService.Export(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
