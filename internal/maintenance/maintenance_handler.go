package maintenance

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	service *MaintenanceService
}

func NewHandler(service *MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

type sendRepairRequest struct {
	AssetTag string `json:"asset_tag" binding:"required"`
	Vendor   string `json:"vendor_name" binding:"required"`
	Issue    string `json:"issue" binding:"required"`
}

type finishRepairRequest struct {
	AssetTag string  `json:"asset_tag" binding:"required"`
	Cost     float64 `json:"cost"`
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.Engine) {
	maintenanceRoutes := router.Group("/maintenance")
	maintenanceRoutes.Use(security.JWTMiddleware())
	{
		maintenanceRoutes.POST("/send", h.SendRepair)
		maintenanceRoutes.POST("/finish", h.FinishRepair)
		maintenanceRoutes.GET("/logs", h.GetLogs)
	}
}

func (h *MaintenanceHandler) SendRepair(c *gin.Context) {
	var req sendRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SendRepair(req.AssetTag, req.Vendor, req.Issue); err != nil {
		respondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset sent to repair", "asset_tag": req.AssetTag})
}

func (h *MaintenanceHandler) FinishRepair(c *gin.Context) {
	var req finishRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.FinishRepair(req.AssetTag, req.Cost); err != nil {
		respondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair completed", "asset_tag": req.AssetTag})
}

func (h *MaintenanceHandler) GetLogs(c *gin.Context) {
	limit := uint(100)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = uint(parsed)
	}

	logs, err := h.service.Logs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

func respondWithStoreError(c *gin.Context, err error) {
	var validationErr *custom_error.ValidationError
	var conflictErr *custom_error.ConflictError
	var notFoundErr *custom_error.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
