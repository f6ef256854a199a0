package handler

import (
	"time"

	"github.com/google/uuid"
	appidentity "github.com/hesab/backend/internal/application/identity"
	"github.com/hesab/backend/internal/infrastructure/auth"
)

// LoginRequest represents the login request body
// @Description Login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=128" example:"secret123"`
}

// RefreshTokenRequest represents the refresh token request body
// @Description Refresh token payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse represents the token information in responses
// @Description Access and refresh token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// UserResponse represents the user information in auth responses
// @Description Authenticated user
type UserResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username" example:"admin"`
	DisplayName         string     `json:"display_name,omitempty"`
	Email               string     `json:"email,omitempty"`
	AgreementAcceptedAt *time.Time `json:"agreement_accepted_at,omitempty"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// StateResponse is an onboarding state and the client step that follows it
// @Description Onboarding state
type StateResponse struct {
	State string `json:"state" example:"AGREEMENT_PENDING"`
	Next  string `json:"next" example:"agreement"`
}

// LoginResponse represents the login response
// @Description Tokens, user and onboarding state after login
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
	State StateResponse `json:"state"`
}

// MeResponse is the current user with their onboarding state
// @Description Current user
type MeResponse struct {
	User  UserResponse  `json:"user"`
	State StateResponse `json:"state"`
}

// RefreshTokenResponse represents the refresh token response
// @Description New token pair
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

func toTokenResponse(p *auth.TokenPair) TokenResponse {
	if p == nil {
		return TokenResponse{}
	}
	return TokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}

func toUserResponse(u appidentity.UserInfo) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		DisplayName:         u.DisplayName,
		Email:               u.Email,
		AgreementAcceptedAt: u.AgreementAcceptedAt,
		LastLoginAt:         u.LastLoginAt,
	}
}

func toStateResponse(s appidentity.StateInfo) StateResponse {
	return StateResponse{State: string(s.State), Next: s.Next}
}
