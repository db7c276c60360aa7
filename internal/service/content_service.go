// Package service orchestrates the generate, submit, and search operations.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhaShwet/content-generation/internal/config"
	"github.com/jhaShwet/content-generation/internal/domain"
	"github.com/jhaShwet/content-generation/internal/logger"
	"github.com/jhaShwet/content-generation/internal/metrics"
	"github.com/jhaShwet/content-generation/internal/store"
)

// Validation errors for caller-supplied topics. The API layer maps these
// to client-error responses.
var (
	// ErrEmptyTopic indicates a blank or missing topic.
	ErrEmptyTopic = errors.New("topic must not be empty")

	// ErrTopicTooLong indicates the topic exceeds the configured maximum.
	ErrTopicTooLong = errors.New("topic too long")
)

// CompletionClient requests generated text for a topic.
type CompletionClient interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// SearchClient runs a free-text query against the search provider.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
}

// ContentService coordinates the content lifecycle: it calls the two
// external clients and owns all reads and writes of the content store.
type ContentService struct {
	completion CompletionClient
	search     SearchClient
	store      *store.Store
	cfg        *config.Config
	logger     logger.Logger
}

// NewContentService creates a new content service.
func NewContentService(
	completionClient CompletionClient,
	searchClient SearchClient,
	contentStore *store.Store,
	cfg *config.Config,
	log logger.Logger,
) *ContentService {
	return &ContentService{
		completion: completionClient,
		search:     searchClient,
		store:      contentStore,
		cfg:        cfg,
		logger:     log,
	}
}

// Generate requests generated text for the topic, stores it under a freshly
// assigned identifier, and returns the stored record. Client failures
// propagate unchanged and leave the store untouched; no identifier is
// consumed on a failed generation.
func (s *ContentService) Generate(ctx context.Context, topic string) (domain.ContentRecord, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.ContentRecord{}, fmt.Errorf("validation error: %w", ErrEmptyTopic)
	}
	if len(topic) > s.cfg.Service.MaxTopicLength {
		return domain.ContentRecord{}, fmt.Errorf("validation error: %w: exceeds %d characters", ErrTopicTooLong, s.cfg.Service.MaxTopicLength)
	}

	s.logger.Info("Generating content", logger.String("topic", topic))

	text, err := s.completion.Generate(ctx, topic)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("failure").Inc()
		s.logger.Error("Content generation failed",
			logger.String("topic", topic),
			logger.Error(err),
		)
		return domain.ContentRecord{}, err
	}

	record := s.store.Insert(topic, text)
	metrics.GenerationsTotal.WithLabelValues("success").Inc()

	s.logger.Info("Content generated",
		logger.Int64("id", record.ID),
		logger.String("topic", topic),
		logger.Int("length", len(text)),
	)

	return record, nil
}

// Submit looks up a previously generated record. It is a read-only
// acknowledgment: the record carries no submitted flag and repeated calls
// with the same identifier return the identical record every time.
// Returns domain.ErrContentNotFound for unknown identifiers.
func (s *ContentService) Submit(_ context.Context, contentID int64) (domain.ContentRecord, error) {
	record, err := s.store.Get(contentID)
	if err != nil {
		s.logger.Warn("Submission for unknown content", logger.Int64("id", contentID))
		return domain.ContentRecord{}, err
	}

	s.logger.Info("Content submitted", logger.Int64("id", contentID))
	return record, nil
}

// Search delegates the query to the search client and returns the raw
// provider results unmodified.
func (s *ContentService) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	results, err := s.search.Search(ctx, query)
	if err != nil {
		s.logger.Error("Search failed",
			logger.String("query", query),
			logger.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Search completed",
		logger.String("query", query),
		logger.Int("results", len(results)),
	)
	return results, nil
}
