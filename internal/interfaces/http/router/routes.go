package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers mounted under the API base path
type Handlers struct {
	Setup        *handler.SetupHandler
	Auth         *handler.AuthHandler
	Onboarding   *handler.OnboardingHandler
	Accounts     *handler.AccountHandler
	Transactions *handler.TransactionHandler
	Stats        *handler.StatsHandler
	Vouchers     *handler.VoucherHandler
	System       *handler.SystemHandler
}

// Guards are the per-group middleware. A nil guard is skipped.
type Guards struct {
	// Authenticate validates the bearer token
	Authenticate gin.HandlerFunc
	// Ready rejects users whose onboarding is incomplete
	Ready gin.HandlerFunc
	// LoginLimit throttles login attempts per client
	LoginLimit gin.HandlerFunc
}

// APIRoutes builds the hesab route groups. Public routes come first, then
// token-only routes, then business routes that also need a finished onboarding.
func APIRoutes(h Handlers, g Guards) []*DomainGroup {
	setup := NewDomainGroup("setup", "/setup").
		POST("", h.Setup.Setup).
		GET("/status", h.Setup.Status)

	auth := NewDomainGroup("auth", "/auth").
		POST("/login", g.LoginLimit, h.Auth.Login).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/logout", g.Authenticate, h.Auth.Logout).
		GET("/me", g.Authenticate, h.Auth.GetCurrentUser)

	system := NewDomainGroup("system", "/system").
		GET("/ping", h.System.Ping).
		GET("/info", h.System.GetSystemInfo).
		POST("/connection/validate", h.System.ValidateConnection)

	onboarding := NewDomainGroup("onboarding", "/onboarding").
		Use(g.Authenticate).
		GET("", h.Onboarding.GetState).
		POST("/agreement", h.Onboarding.AcceptAgreement)

	accounts := NewDomainGroup("accounts", "/accounts").
		Use(g.Authenticate, g.Ready).
		GET("", h.Accounts.List).
		POST("", h.Accounts.Create).
		GET("/:id", h.Accounts.Get).
		PATCH("/:id", h.Accounts.Update).
		DELETE("/:id", h.Accounts.Delete)

	transactions := NewDomainGroup("transactions", "/transactions").
		Use(g.Authenticate, g.Ready).
		GET("", h.Transactions.List).
		POST("", h.Transactions.Create).
		GET("/:id", h.Transactions.Get).
		PATCH("/:id", h.Transactions.Update).
		DELETE("/:id", h.Transactions.Delete)

	stats := NewDomainGroup("stats", "/stats").
		Use(g.Authenticate, g.Ready).
		GET("/summary", h.Stats.Summary).
		GET("/recent", h.Stats.Recent).
		GET("/chart", h.Stats.Chart)

	vouchers := NewDomainGroup("vouchers", "/vouchers").
		Use(g.Authenticate, g.Ready).
		GET("", h.Vouchers.List).
		POST("", h.Vouchers.Create).
		GET("/template", h.Vouchers.Template).
		POST("/check", h.Vouchers.Check).
		GET("/:id", h.Vouchers.Get).
		PUT("/:id", h.Vouchers.Update).
		DELETE("/:id", h.Vouchers.Delete).
		POST("/:id/approve", h.Vouchers.Approve).
		GET("/:id/export", h.Vouchers.Export)

	return []*DomainGroup{setup, auth, system, onboarding, accounts, transactions, stats, vouchers}
}
