package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(reports *handlers.ReportHandler, ledger *handlers.LedgerHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	raport := r.Group("/raport")
	raport.GET("/stats", reports.Stats)
	raport.GET("/stats/:year", reports.StatsByYear)
	raport.GET("/years", reports.Years)
	raport.GET("/range", reports.Range)
	raport.GET("/range/stats", reports.RangeStats)

	clients := r.Group("/clients")
	clients.GET("", ledger.ListClients)
	clients.POST("", ledger.CreateClient)
	clients.PUT("", ledger.UpdateClient)
	clients.PUT("/restore", ledger.RestoreClient)
	clients.DELETE("/:id", ledger.HideClient)

	receivings := r.Group("/receivings")
	receivings.GET("", ledger.ListReceivings)
	receivings.GET("/year/:year", ledger.ReceivingsByYear)
	receivings.POST("", ledger.CreateReceiving)
	receivings.PUT("", ledger.UpdateReceiving)
	receivings.DELETE("/:id", ledger.DeleteReceiving)

	sales := r.Group("/sales")
	sales.GET("", ledger.ListSales)
	sales.GET("/year/:year", ledger.SalesByYear)
	sales.POST("", ledger.CreateSale)
	sales.PUT("", ledger.UpdateSale)
	sales.DELETE("/:id", ledger.DeleteSale)

	own := r.Group("/own_receivings")
	own.GET("", ledger.ListOwnReceivings)
	own.GET("/year/:year", ledger.OwnReceivingsByYear)
	own.POST("", ledger.CreateOwnReceiving)
	own.PUT("", ledger.UpdateOwnReceiving)
	own.DELETE("/:id", ledger.DeleteOwnReceiving)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
