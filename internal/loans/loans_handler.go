package loans

import (
	"net/http"
	"strconv"

	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

type LoansHandler struct {
	service *LoanService
}

func NewHandler(service *LoanService) *LoansHandler {
	return &LoansHandler{
		service: service,
	}
}

func (h *LoansHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.POST("/loans/borrow", h.Borrow)
		protectedRoutes.POST("/loans/return", h.Return)
		protectedRoutes.GET("/loans/logs", h.GetLogs)
	}
}

type borrowRequest struct {
	AssetTags []string `json:"asset_tags" binding:"required"`
	Borrower  string   `json:"borrower_name" binding:"required"`
	Note      string   `json:"note"`
}

type returnRequest struct {
	AssetTags []string `json:"asset_tags" binding:"required"`
	Note      string   `json:"note"`
}

func (h *LoansHandler) Borrow(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	borrowed, errs := h.service.BorrowMany(req.AssetTags, req.Borrower, req.Note)
	if borrowed == 0 && len(errs) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "No assets borrowed", "details": errs})
		return
	}

	c.JSON(http.StatusOK, gin.H{"borrowed": borrowed, "errors": errs})
}

func (h *LoansHandler) Return(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	returned, errs := h.service.ReturnMany(req.AssetTags, req.Note)
	if returned == 0 && len(errs) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "No assets returned", "details": errs})
		return
	}

	c.JSON(http.StatusOK, gin.H{"returned": returned, "errors": errs})
}

func (h *LoansHandler) GetLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.service.Logs(uint(limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load borrow logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
