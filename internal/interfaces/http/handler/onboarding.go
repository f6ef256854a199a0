package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/hesab/backend/internal/application/identity"
)

// OnboardingService resolves and advances the first-run state of a user
type OnboardingService interface {
	State(ctx context.Context, userID uuid.UUID) (appidentity.StateInfo, error)
	AcceptAgreement(ctx context.Context, userID uuid.UUID) (appidentity.StateInfo, error)
}

// OnboardingHandler exposes the onboarding state machine
type OnboardingHandler struct {
	BaseHandler
	onboardingService OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingService OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// GetState godoc
// @ID           getOnboardingState
// @Summary      Get onboarding state
// @Description  Returns the first unmet onboarding step of the current user
// @Tags         onboarding
// @Produce      json
// @Success      200 {object} APIResponse[StateResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding [get]
func (h *OnboardingHandler) GetState(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	state, err := h.onboardingService.State(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStateResponse(state))
}

// AcceptAgreement godoc
// @ID           acceptAgreement
// @Summary      Accept the user agreement
// @Tags         onboarding
// @Produce      json
// @Success      200 {object} APIResponse[StateResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/agreement [post]
func (h *OnboardingHandler) AcceptAgreement(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	state, err := h.onboardingService.AcceptAgreement(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStateResponse(state))
}
