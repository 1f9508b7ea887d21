package handlers

import (
	"net/http"
	"time"

	"consultorio/services/storage"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves signed upload grants and download URLs for patient
// file attachments. The files themselves go straight between the client and
// the object store.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// AuthorizeUploadHandler handles POST /api/storage/authorize.
func (h *StorageHandler) AuthorizeUploadHandler(c *gin.Context) {
	if _, ok := professionalID(c); !ok {
		return
	}

	var input struct {
		ContentType string `json:"contentType" binding:"required"`
		Size        int64  `json:"size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, err := h.StorageSvc.AuthorizeUpload(c.Request.Context(), input.ContentType, input.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, auth)
}

// GetDownloadURLHandler handles GET /api/storage/download/:publicId.
func (h *StorageHandler) GetDownloadURLHandler(c *gin.Context) {
	if _, ok := professionalID(c); !ok {
		return
	}

	publicID := c.Param("publicId")
	resourceType := c.DefaultQuery("resourceType", "image")

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.StorageSvc.SecureDownloadURL(c.Request.Context(), resourceType, publicID, expiry)
	if err != nil {
		utils.GetLogger().Error("Failed to sign download URL", zap.String("publicId", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadURL": url})
}

// DeleteFileHandler handles DELETE /api/storage/:publicId.
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	if _, ok := professionalID(c); !ok {
		return
	}

	publicID := c.Param("publicId")
	if err := h.StorageSvc.DeleteFile(c.Request.Context(), publicID); err != nil {
		utils.GetLogger().Error("Failed to delete stored file", zap.String("publicId", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
