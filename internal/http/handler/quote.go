package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizsearch.app/leadagent/internal/http/dto"
	"bizsearch.app/leadagent/internal/http/middleware"
	"bizsearch.app/leadagent/internal/service"
)

type QuoteHandler struct {
	quoteService service.QuoteService
}

func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quoteService.Create(ctx, service.CreateQuoteInput{
		UserID:       profile.ID,
		ListingIDs:   req.ListingIDs,
		ListingType:  req.ListingType,
		Requirements: req.Requirements.ToModel(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoListings),
			errors.Is(err, service.ErrTooManyListings),
			errors.Is(err, service.ErrUnknownListings):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to create quote request", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuoteRequestResponse(quote))
}

func (h *QuoteHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requestID, err := strconv.ParseInt(c.Param("quote_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote request id"})
		return
	}

	status, err := h.quoteService.Status(ctx, requestID, profile.ID)
	if err != nil {
		if errors.Is(err, service.ErrQuoteRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch quote status", "error", err, "quote_request_id", requestID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteStatusResponse(status))
}

func (h *QuoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	profile := middleware.GetProfile(ctx)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	requests, err := h.quoteService.List(ctx, profile.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list quote requests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteListResponse(requests))
}

func (h *QuoteHandler) ProcessPending(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.quoteService.ProcessPending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "quote sweep failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.QuoteSweepResponse{
		Message:   "Quote processing complete",
		Expired:   result.Expired,
		Completed: result.Completed,
	})
}
