package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizsearch.app/leadagent/internal/http/handler"
	"bizsearch.app/leadagent/internal/http/middleware"
	"bizsearch.app/leadagent/internal/service"
	"bizsearch.app/leadagent/internal/store"
)

func SetupRoutes(router *gin.Engine, services *service.Services, stores *store.Stores) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	leadHandler := handler.NewLeadHandler(services.Leads)
	LeadRouter(router, leadHandler)

	quoteHandler := handler.NewQuoteHandler(services.Quotes)
	QuoteRouter(router.Group("/quotes"), quoteHandler, stores.Profiles())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func LeadRouter(router *gin.Engine, h *handler.LeadHandler) {
	router.POST("/process", h.Process)
	router.POST("/process-all", h.ProcessAll)
	router.POST("/update/:lead_id", h.UpdateStatus)
	router.GET("/seller/:seller_id", h.SellerQueue)
}

func QuoteRouter(rg *gin.RouterGroup, h *handler.QuoteHandler, profiles store.ProfileStore) {
	// The sweep endpoint is hit by cron, not end users, so it sits outside
	// the bearer-auth wall.
	rg.POST("/process", h.ProcessPending)

	authed := rg.Group("")
	authed.Use(middleware.RequireAuth(profiles))
	authed.POST("", h.Create)
	authed.GET("", h.List)
	authed.GET("/:quote_id", h.Status)
}
