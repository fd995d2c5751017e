package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizsearch.app/leadagent/internal/http/dto"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ProcessInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.leadService.ProcessInquiry(ctx, req.InquiryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		case errors.Is(err, service.ErrLeadRejected):
			slog.WarnContext(ctx, "lead rejected", "error", err, "inquiry_id", req.InquiryID)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to process inquiry", "error", err, "inquiry_id", req.InquiryID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProcessInquiryResponse(result))
}

func (h *LeadHandler) ProcessAll(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.leadService.ProcessAllPending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "batch processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ProcessAllResponse{
		Message:   "Batch processing complete",
		Processed: result.Processed,
	})
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := strconv.ParseInt(c.Param("lead_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leadService.UpdateStatus(ctx, leadID, model.LeadStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, service.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		default:
			slog.ErrorContext(ctx, "failed to update lead status", "error", err, "lead_id", leadID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lead status updated"})
}

func (h *LeadHandler) SellerQueue(c *gin.Context) {
	ctx := c.Request.Context()
	sellerID := c.Param("seller_id")

	leads, summary, err := h.leadService.SellerQueue(ctx, sellerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch seller queue", "error", err, "seller_id", sellerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSellerQueueResponse(leads, summary))
}
