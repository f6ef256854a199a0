package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/hesab/backend/internal/application/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// OnboardingStateKey holds the resolved appidentity.StateInfo on the gin context
const OnboardingStateKey = "onboarding_state"

// StateResolver reports where a user is in the first-run flow
type StateResolver interface {
	State(ctx context.Context, userID uuid.UUID) (appidentity.StateInfo, error)
}

// incompleteData is the data payload of an ONBOARDING_INCOMPLETE response
type incompleteData struct {
	State string `json:"state"`
	Next  string `json:"next"`
}

// RequireReady lets a request through only when the authenticated user has
// finished onboarding. It must run after JWTAuthMiddleware.
func RequireReady(resolver StateResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString(RequestIDKey)

		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", requestID))
			return
		}

		info, err := resolver.State(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// The token outlived its user
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeUnauthorized, "Authentication required", requestID))
				return
			}
			if logger != nil {
				logger.Error("Failed to resolve onboarding state",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "An unexpected error occurred", requestID))
			return
		}

		c.Set(OnboardingStateKey, info)
		if info.State != onboarding.StateReady {
			resp := dto.NewErrorResponseWithRequestID(dto.CodeOnboardingIncomplete,
				"Onboarding must be completed first", requestID)
			resp.Data = incompleteData{State: info.State.String(), Next: info.Next}
			c.AbortWithStatusJSON(http.StatusForbidden, resp)
			return
		}

		c.Next()
	}
}
