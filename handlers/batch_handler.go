package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"tenderdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHandler handles HTTP requests for extraction batches
type BatchHandler struct {
	batchService   *service.BatchService
	maxArchiveSize int64
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batchService *service.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService:   batchService,
		maxArchiveSize: 50 * 1024 * 1024, // 50MB
	}
}

// UploadTender handles POST /upload-tender
func (h *BatchHandler) UploadTender(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".zip") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Only .zip archives are accepted",
			},
		})
		return
	}

	if fileHeader.Size > h.maxArchiveSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxArchiveSize),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	batch, err := h.batchService.CreateBatch(c.Request.Context(), service.CreateBatchRequest{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  file,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidArchive) || errors.Is(err, service.ErrEmptyArchive) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ARCHIVE",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"batch_id":    batch.ID,
			"run_id":      batch.RunID,
			"total_files": batch.TotalFiles,
		},
	})
}

// ProcessBatch handles POST /api/batches/:id/process
func (h *BatchHandler) ProcessBatch(c *gin.Context) {
	id, ok := h.batchID(c)
	if !ok {
		return
	}

	if err := h.batchService.StartProcessing(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrBatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Batch not found",
				},
			})
		case errors.Is(err, service.ErrBatchProcessing):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ALREADY_PROCESSING",
					"message": "Batch is already being processed",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROCESS_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.batchService.Process(bgCtx, id); err != nil {
			// Error is stored on the batch; the client polls status
			log.Printf("Batch %s processing failed: %v", id, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"batch_id": id,
			"status":   "processing",
			"message":  "Extraction started. Poll /api/batches/:id/status for updates.",
		},
	})
}

// GetSummary handles GET /api/batches/:id/summary
func (h *BatchHandler) GetSummary(c *gin.Context) {
	id, ok := h.batchID(c)
	if !ok {
		return
	}

	summary, err := h.batchService.GetSummary(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// GetStatus handles GET /api/batches/:id/status. The payload is flat so
// polling clients can read counters without unwrapping an envelope.
func (h *BatchHandler) GetStatus(c *gin.Context) {
	id, ok := h.batchID(c)
	if !ok {
		return
	}

	report, err := h.batchService.GetStatus(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListFiles handles GET /api/batches/:id/files
func (h *BatchHandler) ListFiles(c *gin.Context) {
	id, ok := h.batchID(c)
	if !ok {
		return
	}

	files, err := h.batchService.ListFiles(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
	})
}

func (h *BatchHandler) batchID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid batch ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BatchHandler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Batch not found",
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "RETRIEVAL_FAILED",
			"message": err.Error(),
		},
	})
}
