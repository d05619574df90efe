package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/shipsheet/shipsheet/internal/server/http/handlers"
	"github.com/shipsheet/shipsheet/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.SheetFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	vendorHandler := handlers.NewVendorHandler(facade)
	importHandler := handlers.NewImportHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/auth/profile", authHandler.Profile)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders", orderHandler.Create)
	authed.PATCH("/orders", orderHandler.Patch)
	authed.DELETE("/orders", orderHandler.Delete)
	authed.GET("/orders/export", orderHandler.ExportCSV)
	authed.GET("/orders/:id/updates", orderHandler.History)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/vendors", vendorHandler.List)
	admin.POST("/vendors", vendorHandler.Create)
	admin.PATCH("/vendors", vendorHandler.SetActive)
	admin.POST("/import", importHandler.Import)
	admin.POST("/notify-test", importHandler.NotifyTest)

	return engine
}
