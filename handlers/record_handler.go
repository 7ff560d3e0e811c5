package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Rivarora/hospital/logger"
	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/repository"
	"github.com/Rivarora/hospital/service"
	"github.com/Rivarora/hospital/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRecordSize caps uploaded medical record files at 10MB
const maxRecordSize = 10 << 20

// RecordHandler handles HTTP requests for medical record files
type RecordHandler struct {
	wellnessService *service.WellnessService
	analysisService *service.AnalysisService
	recordRepo      *repository.RecordRepository
	store           storage.Store
	log             *logger.Logger
}

// NewRecordHandler creates a new medical record handler
func NewRecordHandler(
	wellnessService *service.WellnessService,
	analysisService *service.AnalysisService,
	recordRepo *repository.RecordRepository,
	store storage.Store,
	log *logger.Logger,
) *RecordHandler {
	return &RecordHandler{
		wellnessService: wellnessService,
		analysisService: analysisService,
		recordRepo:      recordRepo,
		store:           store,
		log:             log,
	}
}

// UploadRecord handles POST /api/medical-records/upload. The file goes to
// blob storage and through AI analysis first; only then does the reward
// engine persist the record and award tokens, so the engine transaction
// never waits on storage or the AI collaborator.
func (h *RecordHandler) UploadRecord(c *gin.Context) {
	userID, err := uuid.Parse(c.PostForm("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A file is required",
			},
		})
		return
	}
	if fileHeader.Size > maxRecordSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": "File exceeds the 10MB limit",
			},
		})
		return
	}

	contentType, err := storage.ContentTypeFor(fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNSUPPORTED_FILE_TYPE",
				"message": fmt.Sprintf("File type not supported for %s", fileHeader.Filename),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxRecordSize))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	recordID := uuid.New()
	storagePath, err := h.store.Upload(ctx, recordID, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		h.log.Error("record upload to storage failed", "filename", fileHeader.Filename, "error", err)
		handleServiceError(c, err)
		return
	}

	analysis := h.analysisService.AnalyzeRecord(ctx, fileHeader.Filename, string(data))

	result, err := h.wellnessService.RecordUpload(ctx, service.RecordUploadRequest{
		UserID:         userID,
		Filename:       fileHeader.Filename,
		StoragePath:    storagePath,
		AISummary:      analysis.Summary,
		RiskAssessment: analysis.RiskAssessment,
		Metrics: models.RecordMetrics{
			"content_type": contentType,
			"size_bytes":   fileHeader.Size,
		},
	})
	if err != nil {
		// The record row never landed; drop the orphaned blob.
		if delErr := h.store.Delete(ctx, storagePath); delErr != nil {
			h.log.Warn("orphaned blob cleanup failed", "storage_path", storagePath, "error", delErr)
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"record":         result.Record,
			"tokens_awarded": result.TokensAwarded,
			"new_balance":    result.NewBalance,
		},
	})
}

// ListRecords handles GET /api/medical-records/:userId
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	records, err := h.recordRepo.ListByUserID(c.Request.Context(), userID, 0)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

// DownloadRecord handles GET /api/medical-records/file/:id
func (h *RecordHandler) DownloadRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid record ID format",
			},
		})
		return
	}

	record, err := h.recordRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = service.ErrRecordNotFound
		}
		handleServiceError(c, err)
		return
	}

	reader, err := h.store.Download(c.Request.Context(), record.StoragePath)
	if err != nil {
		h.log.Error("record download failed", "record_id", id, "error", err)
		handleServiceError(c, service.ErrRecordNotFound)
		return
	}
	defer reader.Close()

	contentType, err := storage.ContentTypeFor(record.Filename)
	if err != nil {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", record.Filename),
	})
}

// DeleteRecord handles DELETE /api/medical-records/:id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid record ID format",
			},
		})
		return
	}

	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "A valid user_id query parameter is required",
			},
		})
		return
	}

	ctx := c.Request.Context()
	record, err := h.recordRepo.GetByID(ctx, id)
	if err == nil && record.UserID != userID {
		err = repository.ErrNotFound
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = service.ErrRecordNotFound
		}
		handleServiceError(c, err)
		return
	}

	if err := h.recordRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = service.ErrRecordNotFound
		}
		handleServiceError(c, err)
		return
	}

	// Row is gone; blob cleanup failures only leak storage, never state.
	if err := h.store.Delete(ctx, record.StoragePath); err != nil {
		h.log.Warn("record blob delete failed", "record_id", id, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": true,
		},
	})
}
