package documents

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/naruerongk-png/inventory/internal/assets"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service *DocumentService
}

func NewHandler(service *DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type bulkQRRequest struct {
	AssetTags []string `json:"asset_tags" binding:"required"`
}

type handoverRequest struct {
	AssetTags []string `json:"asset_tags" binding:"required"`
	Borrower  string   `json:"borrower_name" binding:"required"`
	Note      string   `json:"note"`
}

func (h *DocumentHandler) RegisterRoutes(router *gin.Engine) {
	documentRoutes := router.Group("/documents")
	documentRoutes.Use(security.JWTMiddleware())
	{
		documentRoutes.GET("/qr/:tag", h.GetQRCode)
		documentRoutes.POST("/qr/pdf", h.GetBulkQRPDF)
		documentRoutes.POST("/handover", h.GetHandoverPDF)
		documentRoutes.GET("/export/excel", h.GetExcelExport)
	}
}

func (h *DocumentHandler) GetQRCode(c *gin.Context) {
	png, err := h.service.QRCode(c.Param("tag"))
	if err != nil {
		respondWithStoreError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=qr_%s.png", c.Param("tag")))
	c.Data(http.StatusOK, "image/png", png)
}

func (h *DocumentHandler) GetBulkQRPDF(c *gin.Context) {
	var req bulkQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pdf, err := h.service.BulkQRPDF(req.AssetTags)
	if err != nil {
		respondWithStoreError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=qr_codes.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *DocumentHandler) GetHandoverPDF(c *gin.Context) {
	var req handoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pdf, err := h.service.HandoverPDF(req.AssetTags, req.Borrower, req.Note)
	if err != nil {
		respondWithStoreError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=Handover_%s.pdf", req.Borrower))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *DocumentHandler) GetExcelExport(c *gin.Context) {
	filter := assets.ListFilter{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	workbook, err := h.service.ExcelExport(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export assets"})
		return
	}

	filename := fmt.Sprintf("Asset_Export_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func respondWithStoreError(c *gin.Context, err error) {
	var validationErr *custom_error.ValidationError
	var notFoundErr *custom_error.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
