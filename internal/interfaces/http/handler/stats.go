package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appledger "github.com/hesab/backend/internal/application/ledger"
	"github.com/hesab/backend/internal/domain/ledger"
)

// StatsService computes the dashboard figures
type StatsService interface {
	Summary(ctx context.Context) (*ledger.Summary, error)
	Recent(ctx context.Context) ([]appledger.TransactionInfo, error)
	Chart(ctx context.Context, days int) ([]ledger.ChartPoint, error)
}

// StatsHandler serves the dashboard
type StatsHandler struct {
	BaseHandler
	statsService StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Summary godoc
// @ID           getStatsSummary
// @Summary      Dashboard summary
// @Description  Total balance with account and transaction counts
// @Tags         stats
// @Produce      json
// @Success      200 {object} APIResponse[ledger.Summary]
// @Security     BearerAuth
// @Router       /stats/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.statsService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Recent godoc
// @ID           getStatsRecent
// @Summary      Latest transactions
// @Tags         stats
// @Produce      json
// @Success      200 {object} APIResponse[[]TransactionResponse]
// @Security     BearerAuth
// @Router       /stats/recent [get]
func (h *StatsHandler) Recent(c *gin.Context) {
	txs, err := h.statsService.Recent(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponses(txs))
}

// Chart godoc
// @ID           getStatsChart
// @Summary      Daily totals
// @Description  One point per day with transactions, oldest first
// @Tags         stats
// @Produce      json
// @Param        days query int false "Window in days" minimum(1) maximum(365) default(30)
// @Success      200 {object} APIResponse[[]ledger.ChartPoint]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stats/chart [get]
func (h *StatsHandler) Chart(c *gin.Context) {
	var q ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	points, err := h.statsService.Chart(c.Request.Context(), q.Days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if points == nil {
		points = []ledger.ChartPoint{}
	}
	h.Success(c, points)
}
