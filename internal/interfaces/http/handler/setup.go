package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/hesab/backend/internal/application/identity"
)

// dateLayout is the wire format of calendar dates
const dateLayout = "2006-01-02"

// SetupService is the first-run part of the identity application
type SetupService interface {
	Setup(ctx context.Context, input appidentity.SetupInput) (*appidentity.SetupResult, error)
	Status(ctx context.Context) (*appidentity.SetupStatus, error)
}

// SetupHandler handles first-run company setup
type SetupHandler struct {
	BaseHandler
	setupService SetupService
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(setupService SetupService) *SetupHandler {
	return &SetupHandler{setupService: setupService}
}

// SetupRequest is the first-run form
// @Description Company and admin user created by setup
type SetupRequest struct {
	Company SetupCompanyRequest `json:"company" binding:"required"`
	Admin   SetupAdminRequest   `json:"admin" binding:"required"`
}

// SetupCompanyRequest is the company part of SetupRequest
type SetupCompanyRequest struct {
	Name           string   `json:"name" binding:"required,min=2,max=200" example:"Hesab Co"`
	Type           string   `json:"type" binding:"omitempty,oneof=private public limited industrial commercial service" example:"private"`
	FiscalYear     string   `json:"fiscal_year" binding:"required,max=50" example:"1403"`
	FiscalYearFrom string   `json:"fiscal_year_from" binding:"omitempty,datetime=2006-01-02" example:"2024-03-20"`
	FiscalYearTo   string   `json:"fiscal_year_to" binding:"omitempty,datetime=2006-01-02" example:"2025-03-20"`
	Currency       string   `json:"currency" binding:"omitempty,len=3" example:"IRR"`
	Address        string   `json:"address" binding:"max=500"`
	Phone          string   `json:"phone" binding:"max=50"`
	Features       []string `json:"features" binding:"dive,oneof=accounting inventory sales purchase payroll automation"`
}

// SetupAdminRequest is the admin part of SetupRequest
type SetupAdminRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100" example:"admin"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// CompanyResponse is the public view of the company
// @Description Company
type CompanyResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	FiscalYear     string    `json:"fiscal_year"`
	FiscalYearFrom string    `json:"fiscal_year_from,omitempty"`
	FiscalYearTo   string    `json:"fiscal_year_to,omitempty"`
	Currency       string    `json:"currency"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Features       []string  `json:"features"`
	CreatedAt      time.Time `json:"created_at"`
}

// SetupResponse is returned by a successful setup
// @Description Created company and admin
type SetupResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
}

// SetupStatusResponse reports whether setup has run
// @Description Setup status
type SetupStatusResponse struct {
	Completed bool `json:"completed"`
}

// Setup godoc
// @ID           setup
// @Summary      Run first-time setup
// @Description  Create the company and its admin user. Allowed once.
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        request body SetupRequest true "Setup form"
// @Success      201 {object} APIResponse[SetupResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /setup [post]
func (h *SetupHandler) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.setupService.Setup(c.Request.Context(), appidentity.SetupInput{
		Company: appidentity.CompanyInput{
			Name:           req.Company.Name,
			Type:           req.Company.Type,
			FiscalYear:     req.Company.FiscalYear,
			FiscalYearFrom: parseDate(req.Company.FiscalYearFrom),
			FiscalYearTo:   parseDate(req.Company.FiscalYearTo),
			Currency:       req.Company.Currency,
			Address:        req.Company.Address,
			Phone:          req.Company.Phone,
			Features:       req.Company.Features,
		},
		Admin: appidentity.AdminInput{
			Username:    req.Admin.Username,
			Password:    req.Admin.Password,
			DisplayName: req.Admin.DisplayName,
			Email:       req.Admin.Email,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, SetupResponse{
		Company: toCompanyResponse(result.Company),
		User:    toUserResponse(result.User),
	})
}

// Status godoc
// @ID           getSetupStatus
// @Summary      Get setup status
// @Tags         setup
// @Produce      json
// @Success      200 {object} APIResponse[SetupStatusResponse]
// @Router       /setup/status [get]
func (h *SetupHandler) Status(c *gin.Context) {
	status, err := h.setupService.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SetupStatusResponse{Completed: status.Completed})
}

func toCompanyResponse(ci appidentity.CompanyInfo) CompanyResponse {
	features := ci.Features
	if features == nil {
		features = []string{}
	}
	return CompanyResponse{
		ID:             ci.ID,
		Name:           ci.Name,
		Type:           ci.Type,
		FiscalYear:     ci.FiscalYear,
		FiscalYearFrom: formatDate(ci.FiscalYearFrom),
		FiscalYearTo:   formatDate(ci.FiscalYearTo),
		Currency:       ci.Currency,
		Address:        ci.Address,
		Phone:          ci.Phone,
		Features:       features,
		CreatedAt:      ci.CreatedAt,
	}
}

// parseDate parses an already validated date. Empty input yields nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
