package assets

import (
	"net/http"
	"strconv"

	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"
	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{
		service: service,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets", h.ListAssets)
		protectedRoutes.POST("/assets", h.CreateAsset)
		protectedRoutes.GET("/assets/tag/:tag", h.GetAssetByTag)
		protectedRoutes.PATCH("/assets/tag/:tag", h.UpdateAssetByTag)
		protectedRoutes.DELETE("/assets/tag/:tag", security.Authorize("admin"), h.ArchiveAsset)
		protectedRoutes.GET("/assets/tag/:tag/history", h.GetAssetHistory)
		protectedRoutes.GET("/history", h.GetRecentHistory)
		protectedRoutes.POST("/assets/tag/:tag/audit", h.AuditAsset)
		protectedRoutes.PATCH("/assets/glpi/:id", h.UpdateAssetByGLPIID)
		protectedRoutes.POST("/assets/glpi/:id/tag", h.AssignTag)
		protectedRoutes.GET("/bin", h.ListArchived)
		protectedRoutes.POST("/bin/:tag/restore", security.Authorize("admin"), h.RestoreAsset)
	}
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	filter := ListFilter{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	assets, err := h.service.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.Create(req)
	if err != nil {
		respondWithStoreError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetAssetByTag(c *gin.Context) {
	asset, err := h.service.GetByTag(c.Param("tag"))
	if err != nil {
		respondWithStoreError(c, err, "Unable to get asset")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) UpdateAssetByTag(c *gin.Context) {
	var changes models.AssetChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.service.UpdateByTag(c.Param("tag"), changes); err != nil {
		respondWithStoreError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

func (h *AssetHandler) UpdateAssetByGLPIID(c *gin.Context) {
	glpiID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GLPI id", "details": err.Error()})
		return
	}

	var changes models.AssetChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.service.UpdateByGLPIID(glpiID, changes); err != nil {
		respondWithStoreError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

func (h *AssetHandler) AssignTag(c *gin.Context) {
	glpiID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GLPI id", "details": err.Error()})
		return
	}

	var req struct {
		Tag string `json:"asset_tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.service.AssignTag(glpiID, req.Tag); err != nil {
		respondWithStoreError(c, err, "Failed to assign tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag assigned successfully"})
}

func (h *AssetHandler) AuditAsset(c *gin.Context) {
	if err := h.service.Audit(c.Param("tag")); err != nil {
		respondWithStoreError(c, err, "Failed to record audit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audit timestamp updated"})
}

func (h *AssetHandler) ArchiveAsset(c *gin.Context) {
	if err := h.service.Archive(c.Param("tag")); err != nil {
		respondWithStoreError(c, err, "Failed to archive asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset moved to recycle bin"})
}

func (h *AssetHandler) RestoreAsset(c *gin.Context) {
	if err := h.service.Restore(c.Param("tag")); err != nil {
		respondWithStoreError(c, err, "Failed to restore asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset restored"})
}

func (h *AssetHandler) ListArchived(c *gin.Context) {
	archived, err := h.service.ListArchived()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list recycle bin", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, archived)
}

func (h *AssetHandler) GetRecentHistory(c *gin.Context) {
	limit := uint(100)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = uint(parsed)
	}

	entries, err := h.service.RecentHistory(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AssetHandler) GetAssetHistory(c *gin.Context) {
	entries, err := h.service.History(c.Param("tag"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load asset history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// respondWithStoreError maps the store error taxonomy onto HTTP codes.
func respondWithStoreError(c *gin.Context, err error, message string) {
	switch {
	case custom_error.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
	case custom_error.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": message, "details": err.Error()})
	case custom_error.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}
