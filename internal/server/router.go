package server

import (
	"net/http"

	"brokerage/internal/lock"
	applog "brokerage/internal/logger"
	"brokerage/internal/middleware"
	"brokerage/internal/modules/catalog"
	"brokerage/internal/modules/contact"
	"brokerage/internal/modules/rental"
	"brokerage/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB              *gorm.DB
	Locker          lock.PropertyLocker
	Logger          *zap.Logger
	DefaultCurrency string
	AllowedOrigins  []string
}

// NewRouter wires repositories, services and handlers under /api/v1.
func NewRouter(d Deps) *gin.Engine {
	logger := applog.OrNop(d.Logger)

	store := repository.NewStore(d.DB)

	catalogService := catalog.NewService(store.Properties(), d.DefaultCurrency, logger.Named("catalog"))
	rentalService := rental.NewService(store, catalogService, d.Locker, d.DefaultCurrency, logger.Named("rental"))
	contactService := contact.NewService(store, catalogService, rentalService, logger.Named("contact"))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(d.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		catalog.NewHandler(catalogService).RegisterRoutes(v1)
		rental.NewHandler(rentalService).RegisterRoutes(v1)
		contact.NewHandler(contactService).RegisterRoutes(v1)
	}
	return r
}
