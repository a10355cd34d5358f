package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SystemHandler serves the root, health-check and database metadata routes.
type SystemHandler struct {
	db          *gorm.DB
	log         *zap.Logger
	serviceName string
}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler(db *gorm.DB, log *zap.Logger, serviceName string) *SystemHandler {
	return &SystemHandler{db: db, log: log, serviceName: serviceName}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome to " + h.serviceName,
		"status":   "running",
		"database": "PostgreSQL",
	})
}

// Health handles GET /health. It probes the database and answers 503 when
// the probe fails, so load balancers can take the instance out of rotation.
func (h *SystemHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "database_unavailable",
			Message: "database connection failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// DBInfo handles GET /db/info, returning server version, database name and
// the connected role.
func (h *SystemHandler) DBInfo(c *gin.Context) {
	ctx := c.Request.Context()

	var version, database, currentUser string
	if err := h.db.WithContext(ctx).Raw("SELECT version()").Scan(&version).Error; err != nil {
		h.dbInfoError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Raw("SELECT current_database()").Scan(&database).Error; err != nil {
		h.dbInfoError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Raw("SELECT current_user").Scan(&currentUser).Error; err != nil {
		h.dbInfoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  version,
		"database": database,
		"user":     currentUser,
	})
}

func (h *SystemHandler) dbInfoError(c *gin.Context, err error) {
	h.log.Error("failed to fetch database info", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "error fetching database info: " + err.Error(),
	})
}
