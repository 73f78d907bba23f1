package handlers

import (
	"errors"
	"net/http"

	"tenderdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenderHandler handles HTTP requests for tenders
type TenderHandler struct {
	tenderService *service.TenderService
}

// NewTenderHandler creates a new tender handler
func NewTenderHandler(tenderService *service.TenderService) *TenderHandler {
	return &TenderHandler{
		tenderService: tenderService,
	}
}

// ListTenders handles GET /api/tenders
func (h *TenderHandler) ListTenders(c *gin.Context) {
	sortBy := c.Query("sortBy")

	tenders, err := h.tenderService.ListTenders(c.Request.Context(), sortBy)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SORT",
					"message": "sortBy must be one of: deadline, score",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tenders,
	})
}

// GetTender handles GET /api/tenders/:id
func (h *TenderHandler) GetTender(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid tender ID format",
			},
		})
		return
	}

	tender, err := h.tenderService.GetTender(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTenderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Tender not found",
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
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tender,
	})
}
