package glpi

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/naruerongk-png/inventory/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler exposes the one-way GLPI-to-local synchronization. The user
// triggers it and blocks until the batch summary comes back.
type SyncHandler struct {
	store  AssetStore
	logger *zap.Logger
}

func NewSyncHandler(store AssetStore, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		store:  store,
		logger: logger,
	}
}

func (h *SyncHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.POST("/glpi/sync", security.Authorize("admin"), h.RunSync)
	}
}

type syncRequest struct {
	APIURL    string `json:"api_url"`
	AppToken  string `json:"app_token"`
	UserToken string `json:"user_token"`
	PageSize  int    `json:"page_size"`
}

func (h *SyncHandler) RunSync(c *gin.Context) {
	// The body is optional; connection settings fall back to environment.
	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	config := h.configFromRequest(req)
	if config.APIURL == "" || config.AppToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "API URL and App Token are required"})
		return
	}

	client := NewClient(config, nil)

	session, err := client.Open(c.Request.Context())
	if err != nil {
		h.logger.Error("glpi session init failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to initialize GLPI session", "details": err.Error()})
		return
	}
	defer session.Close()

	computers, err := session.FetchComputers(c.Request.Context())
	if err != nil {
		var fetchErr *FetchError
		status := http.StatusBadGateway
		if !errors.As(err, &fetchErr) {
			status = http.StatusInternalServerError
		}
		h.logger.Error("glpi fetch failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "Failed to fetch data from GLPI", "details": err.Error()})
		return
	}

	synchronizer := NewSynchronizer(h.store, h.logger)
	result := synchronizer.Sync(computers)

	h.logger.Info("glpi sync complete",
		zap.Int("fetched", len(computers)),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors),
	)

	c.JSON(http.StatusOK, gin.H{
		"fetched":  len(computers),
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"errors":   result.Errors,
	})
}

// configFromRequest falls back to environment configuration so the UI can
// omit credentials it does not hold.
func (h *SyncHandler) configFromRequest(req syncRequest) Config {
	config := Config{
		APIURL:    req.APIURL,
		AppToken:  req.AppToken,
		UserToken: req.UserToken,
		PageSize:  req.PageSize,
	}

	if config.APIURL == "" {
		config.APIURL = os.Getenv("GLPI_API_URL")
	}
	if config.AppToken == "" {
		config.AppToken = os.Getenv("GLPI_APP_TOKEN")
	}
	if config.UserToken == "" {
		config.UserToken = os.Getenv("GLPI_USER_TOKEN")
	}
	if config.PageSize <= 0 {
		if raw := os.Getenv("GLPI_PAGE_SIZE"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				config.PageSize = parsed
			}
		}
	}

	return config
}
