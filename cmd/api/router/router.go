package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"doc-pager/cmd/api/handlers"
	"doc-pager/cmd/api/middleware"
	"doc-pager/cmd/api/services"
	"doc-pager/config"
	"doc-pager/db"
	_ "doc-pager/docs"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

// New wires repositories, services and handlers over database d.
func New(cfg config.AppConfig, d *mongo.Database) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.RequestLogging())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine := pagination.New(cfg.Pagination)

	// v1 routes
	api := r.Group("/api/v1", middleware.RequestTimeout(cfg.Server.RequestTimeout))
	{
		addressSvc := services.NewAddressService(repositories.NewAddressRepository(d), engine)
		api.GET("/addresses", handlers.ListAddressesHandler(addressSvc))
		api.GET("/addresses/cursor", handlers.ListAddressesAfterHandler(addressSvc))
		api.GET("/addresses/filters/cities", handlers.CityFiltersHandler(addressSvc))
		api.GET("/addresses/totals", handlers.UserTotalsHandler(addressSvc))
		api.DELETE("/addresses/:order_number", handlers.DeleteAddressHandler(addressSvc))

		userSvc := services.NewUserService(repositories.NewUserRepository(d), engine)
		api.POST("/users", handlers.CreateUserHandler(userSvc))
		api.GET("/users", handlers.ListUsersHandler(userSvc))
		api.GET("/users/:id", handlers.GetUserHandler(userSvc))
	}

	return r
}
