package router

import (
	"dealflow/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
	users.PUT("/me", handler.UpdateMe, authRequired)
}

func SetupOnboardingRoutes(api *echo.Group, handler *rest.OnboardingHandler, authRequired echo.MiddlewareFunc) {
	onboarding := api.Group("/onboarding", authRequired)

	onboarding.POST("", handler.Start)
	onboarding.GET("", handler.Get)
	onboarding.PUT("/preferences", handler.UpdatePreferences)
	onboarding.POST("/skip", handler.SkipStep)
}

func SetupEngagementRoutes(api *echo.Group, handler *rest.EngagementHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	engagement := api.Group("/engagement", authRequired)

	engagement.POST("/activation-path", handler.DetermineActivationPath)
	engagement.GET("/progress", handler.EvaluateProgress)
	engagement.POST("/milestones", handler.CompleteMilestone)
	engagement.GET("/nudges", handler.GenerateNudges)
	engagement.POST("/nudges/dismiss", handler.DismissNudge)
	engagement.POST("/re-engagement/check", handler.CheckReEngagement)

	engagement.POST("/re-engagement/sweep", handler.RunRetentionSweep, adminOnly)
}

func SetupInsightsRoutes(api *echo.Group, handler *rest.InsightsHandler, authRequired echo.MiddlewareFunc) {
	insights := api.Group("/insights", authRequired)

	insights.POST("/deals/source", handler.SourceDeals)
	insights.GET("/deals", handler.ListDeals)
	insights.GET("/risk/:id", handler.AssessRisk)
	insights.POST("/trends", handler.AnalyzeMarketTrends)
	insights.GET("/forecast", handler.ForecastIncome)
}

func SetupPortfolioRoutes(api *echo.Group, handler *rest.PortfolioHandler, authRequired echo.MiddlewareFunc) {
	portfolio := api.Group("/portfolio", authRequired)

	portfolio.POST("/investments", handler.AddInvestment)
	portfolio.GET("/investments", handler.ListInvestments)
	portfolio.GET("/investments/:id", handler.GetInvestment)
	portfolio.PUT("/investments/:id", handler.UpdateInvestment)
	portfolio.DELETE("/investments/:id", handler.DeleteInvestment)
	portfolio.GET("/summary", handler.Summary)
}
