package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"tenderdesk-backend/models"
	"tenderdesk-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionHandler handles HTTP requests for bid submissions
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// SaveSubmissionRequest represents the request body for saving a submission
type SaveSubmissionRequest struct {
	Profile      models.CompanyProfile   `json:"profile"`
	Answers      []models.Answer         `json:"answers"`
	Documents    []models.DocItem        `json:"documents"`
	MustCriteria []models.CriterionCheck `json:"must_criteria"`
	Pricing      models.PricingInput     `json:"pricing"`
}

// SaveSubmission handles PUT /api/tenders/:id/submission
func (h *SubmissionHandler) SaveSubmission(c *gin.Context) {
	id, ok := h.tenderID(c)
	if !ok {
		return
	}

	var req SaveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	submission := &models.Submission{
		Profile:      req.Profile,
		Answers:      req.Answers,
		Documents:    req.Documents,
		MustCriteria: req.MustCriteria,
		Pricing:      req.Pricing,
	}

	result, err := h.submissionService.SaveSubmission(c.Request.Context(), id, submission)
	if err != nil {
		h.serviceError(c, err, "SAVE_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetSubmission handles GET /api/tenders/:id/submission
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := h.tenderID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "RETRIEVAL_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ExportSubmission handles GET /api/tenders/:id/submission/export
func (h *SubmissionHandler) ExportSubmission(c *gin.Context) {
	id, ok := h.tenderID(c)
	if !ok {
		return
	}

	document, err := h.submissionService.ExportSubmission(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err, "EXPORT_FAILED")
		return
	}

	filename := fmt.Sprintf("angebot_%s.txt", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(document))
}

func (h *SubmissionHandler) tenderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid tender ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *SubmissionHandler) serviceError(c *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, service.ErrTenderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Tender not found",
			},
		})
	case errors.Is(err, service.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "No submission saved for this tender",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    fallbackCode,
				"message": err.Error(),
			},
		})
	}
}
