package reports

import (
	"net/http"

	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *ReportService
}

func NewHandler(service *ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.Engine) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Use(security.JWTMiddleware())
	{
		reportRoutes.GET("/dashboard", h.GetDashboard)
	}
}

func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.service.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
