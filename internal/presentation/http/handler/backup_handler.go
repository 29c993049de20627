package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// BackupHandler handles backup downloads and restores
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export downloads the whole shop as a JSON document
func (h *BackupHandler) Export(c *gin.Context) {
	data, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "pos-backup-" + time.Now().Format("20060102-150405") + ".json"
	response.Attachment(c, filename, "application/json", data)
}

// Import restores a backup sent either as the raw JSON body or as a
// multipart upload in the "file" field.
func (h *BackupHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, ferr := c.FormFile("file")
		if ferr != nil {
			response.BadRequest(c, "file is required")
			return
		}
		file, ferr := fileHeader.Open()
		if ferr != nil {
			response.BadRequest(c, "Failed to read uploaded file")
			return
		}
		defer file.Close()
		data, err = io.ReadAll(file)
	} else {
		data, err = io.ReadAll(c.Request.Body)
	}
	if err != nil {
		response.BadRequest(c, "Failed to read backup")
		return
	}

	summary, err := h.backupService.Import(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup restored", summary)
}
