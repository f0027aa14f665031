package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/request"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
	"github.com/sangkips/shopflow/pkg/apperror"
)

// maxBackupSize bounds the restore upload
const maxBackupSize = 32 << 20

// SettingsHandler handles settings and backup HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	backupService   *service.BackupService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, backupService *service.BackupService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		backupService:   backupService,
	}
}

// GetSettings handles getting the shop settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings handles replacing the shop settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &entity.ShopSettings{
		ShopName:         req.ShopName,
		Address:          req.Address,
		Phone:            req.Phone,
		GSTIN:            req.GSTIN,
		FooterMessage:    req.FooterMessage,
		WhatsappTemplate: req.WhatsappTemplate,
		EmailSubject:     req.EmailSubject,
		EmailBody:        req.EmailBody,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}

// Backup downloads every collection as one JSON document
func (h *SettingsHandler) Backup(c *gin.Context) {
	backup, err := h.backupService.CreateBackup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, backup.Filename(), "application/json", data)
}

// Restore overwrites the collections present in the uploaded document.
// The document may be the raw request body or a multipart "file" field.
func (h *SettingsHandler) Restore(c *gin.Context) {
	data, err := readBackup(c)
	if err != nil {
		response.Error(c, apperror.ErrCorruptBackup)
		return
	}

	result, err := h.backupService.Restore(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Data restored successfully", result)
}

func readBackup(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxBackupSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
}
