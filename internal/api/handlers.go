package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jhaShwet/content-generation/internal/completion"
	"github.com/jhaShwet/content-generation/internal/domain"
	"github.com/jhaShwet/content-generation/internal/logger"
	"github.com/jhaShwet/content-generation/internal/service"
)

const welcomeMessage = "Welcome to the Content Generation API"

// ContentService defines the operations the handler exposes over HTTP.
type ContentService interface {
	Generate(ctx context.Context, topic string) (domain.ContentRecord, error)
	Submit(ctx context.Context, contentID int64) (domain.ContentRecord, error)
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
}

// StorePinger reports content store health for the health endpoint.
type StorePinger interface {
	Ping() error
}

// Handler holds the HTTP request handlers.
type Handler struct {
	service ContentService
	store   StorePinger
	logger  logger.Logger
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHandler creates a new handler instance.
func NewHandler(contentService ContentService, storePinger StorePinger, log logger.Logger) *Handler {
	return &Handler{
		service: contentService,
		store:   storePinger,
		logger:  log,
	}
}

// Welcome handles the greeting exchange. No side effects.
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

// Generate handles content generation requests.
func (h *Handler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.service.Generate(c.Request.Context(), req.Topic)
	if err != nil {
		h.generateError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.GenerateResponse{
		Content: record.Content,
		ID:      record.ID,
	})
}

// generateError maps a generation failure to a status code and error payload.
func (h *Handler) generateError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "GENERATION_ERROR"

	var providerErr *completion.ProviderError

	switch {
	case errors.Is(err, service.ErrEmptyTopic), errors.Is(err, service.ErrTopicTooLong):
		status = http.StatusBadRequest
		code = "INVALID_REQUEST"
	case errors.Is(err, domain.ErrMissingAPIKey):
		code = "MISSING_API_KEY"
	case errors.Is(err, domain.ErrNoCompletions):
		status = http.StatusBadGateway
		code = "INVALID_RESPONSE"
	case errors.Is(err, domain.ErrEmptyCompletion):
		status = http.StatusBadGateway
		code = "EMPTY_COMPLETION"
	case errors.Is(err, completion.ErrUnavailable):
		status = http.StatusBadGateway
		code = "PROVIDER_UNAVAILABLE"
	case errors.As(err, &providerErr):
		status = http.StatusBadGateway
		code = "PROVIDER_ERROR"
	}

	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Timestamp: time.Now(),
	})
}

// Submit handles content submission requests.
func (h *Handler) Submit(c *gin.Context) {
	var req domain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.service.Submit(c.Request.Context(), req.ContentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:     "Content not found",
				Code:      "NOT_FOUND",
				Timestamp: time.Now(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     err.Error(),
			Code:      "INTERNAL_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.SubmitResponse{
		Detail:  "Content submitted successfully",
		Content: record,
	})
}

// Search handles web search requests.
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.service.Search(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:     err.Error(),
			Code:      "SEARCH_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	if results == nil {
		results = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, domain.SearchResponse{Results: results})
}

// HealthCheck handles health check requests. A failing store ping reports
// degraded rather than unhealthy: the primary operations still work from
// memory, only durability is impaired.
func (h *Handler) HealthCheck(c *gin.Context) {
	status := "healthy"
	checks := gin.H{"store": "ok"}

	if err := h.store.Ping(); err != nil {
		status = "degraded"
		checks["store"] = err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": checks,
	})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	h.logger.Warn("Invalid request", logger.String("reason", msg))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     msg,
		Code:      "INVALID_REQUEST",
		Timestamp: time.Now(),
	})
}
