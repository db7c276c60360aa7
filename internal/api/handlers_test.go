package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jhaShwet/content-generation/internal/api"
	"github.com/jhaShwet/content-generation/internal/config"
	"github.com/jhaShwet/content-generation/internal/domain"
	"github.com/jhaShwet/content-generation/internal/logger"
	"github.com/jhaShwet/content-generation/internal/service"
	"github.com/jhaShwet/content-generation/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockContentService struct {
	generateFunc func(topic string) (domain.ContentRecord, error)
	submitFunc   func(contentID int64) (domain.ContentRecord, error)
	searchFunc   func(query string) ([]json.RawMessage, error)
}

func (m *mockContentService) Generate(_ context.Context, topic string) (domain.ContentRecord, error) {
	if m.generateFunc != nil {
		return m.generateFunc(topic)
	}
	return domain.ContentRecord{ID: 1, Topic: topic, Content: "generated text"}, nil
}

func (m *mockContentService) Submit(_ context.Context, contentID int64) (domain.ContentRecord, error) {
	if m.submitFunc != nil {
		return m.submitFunc(contentID)
	}
	return domain.ContentRecord{}, domain.ErrContentNotFound
}

func (m *mockContentService) Search(_ context.Context, query string) ([]json.RawMessage, error) {
	if m.searchFunc != nil {
		return m.searchFunc(query)
	}
	return []json.RawMessage{}, nil
}

type healthyStore struct{}

func (healthyStore) Ping() error { return nil }

func setupRouter(t *testing.T, svc api.ContentService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := api.NewHandler(svc, healthyStore{}, logger.NewNop())
	api.SetupRoutes(router, handler)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	bodyJSON, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, path, bytes.NewReader(bodyJSON))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Welcome(t *testing.T) {
	router := setupRouter(t, &mockContentService{})

	w := httptest.NewRecorder()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "/", http.NoBody)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Welcome to the Content Generation API"}`, w.Body.String())
}

func TestHandler_Generate_Success(t *testing.T) {
	svc := &mockContentService{
		generateFunc: func(topic string) (domain.ContentRecord, error) {
			return domain.ContentRecord{ID: 1, Topic: topic, Content: "Volcanoes are..."}, nil
		},
	}
	router := setupRouter(t, svc)

	w := postJSON(t, router, "/generate/", map[string]any{"topic": "volcanoes"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content": "Volcanoes are...", "id": 1}`, w.Body.String())
}

func TestHandler_Generate_MissingBody(t *testing.T) {
	router := setupRouter(t, &mockContentService{})

	w := postJSON(t, router, "/generate/", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestHandler_Generate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing api key", domain.ErrMissingAPIKey, http.StatusInternalServerError, "MISSING_API_KEY"},
		{"no completions", domain.ErrNoCompletions, http.StatusBadGateway, "INVALID_RESPONSE"},
		{"empty completion", domain.ErrEmptyCompletion, http.StatusBadGateway, "EMPTY_COMPLETION"},
		{"empty topic", service.ErrEmptyTopic, http.StatusBadRequest, "INVALID_REQUEST"},
		{"topic too long", service.ErrTopicTooLong, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "GENERATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContentService{
				generateFunc: func(string) (domain.ContentRecord, error) {
					return domain.ContentRecord{}, tt.err
				},
			}
			router := setupRouter(t, svc)

			w := postJSON(t, router, "/generate/", map[string]any{"topic": "volcanoes"})

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandler_Generate_TopicTooLong(t *testing.T) {
	// Full service path: the over-length rejection must surface as a
	// client error, not a server fault.
	cfg := &config.Config{Service: config.ServiceConfig{MaxTopicLength: 500}}
	contentStore := store.New(filepath.Join(t.TempDir(), "content_data.json"), logger.NewNop())
	svc := service.NewContentService(
		&stubCompletionClient{text: "text"},
		stubSearchClient{},
		contentStore,
		cfg,
		logger.NewNop(),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.SetupRoutes(router, api.NewHandler(svc, contentStore, logger.NewNop()))

	topic := make([]byte, 501)
	for i := range topic {
		topic[i] = 'a'
	}

	w := postJSON(t, router, "/generate/", map[string]any{"topic": string(topic)})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, 0, contentStore.Len())
}

func TestHandler_Submit_Success(t *testing.T) {
	svc := &mockContentService{
		submitFunc: func(contentID int64) (domain.ContentRecord, error) {
			return domain.ContentRecord{ID: contentID, Topic: "volcanoes", Content: "Volcanoes are..."}, nil
		},
	}
	router := setupRouter(t, svc)

	w := postJSON(t, router, "/submit/", map[string]any{"content_id": 1})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp domain.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Content submitted successfully", resp.Detail)
	assert.Equal(t, "volcanoes", resp.Content.Topic)
	assert.Equal(t, "Volcanoes are...", resp.Content.Content)
}

func TestHandler_Submit_NotFound(t *testing.T) {
	// Any identifier never produced by a generation answers not-found,
	// zero and omitted ids included.
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown id", map[string]any{"content_id": 42}},
		{"zero id", map[string]any{"content_id": 0}},
		{"missing id", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, &mockContentService{})

			w := postJSON(t, router, "/submit/", tt.body)

			assert.Equal(t, http.StatusNotFound, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "NOT_FOUND", resp.Code)
			assert.Equal(t, "Content not found", resp.Error)
		})
	}
}

func TestHandler_Search_EmptyResults(t *testing.T) {
	router := setupRouter(t, &mockContentService{
		searchFunc: func(string) ([]json.RawMessage, error) {
			return []json.RawMessage{}, nil
		},
	})

	w := postJSON(t, router, "/search/", map[string]any{"topic": "x"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": []}`, w.Body.String())
}

func TestHandler_Search_PassesRawRecords(t *testing.T) {
	router := setupRouter(t, &mockContentService{
		searchFunc: func(query string) ([]json.RawMessage, error) {
			assert.Equal(t, "volcanoes", query)
			return []json.RawMessage{json.RawMessage(`{"Text":"Volcano","FirstURL":"https://example.com"}`)}, nil
		},
	})

	w := postJSON(t, router, "/search/", map[string]any{"topic": "volcanoes"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": [{"Text":"Volcano","FirstURL":"https://example.com"}]}`, w.Body.String())
}

func TestHandler_Search_ProviderFailure(t *testing.T) {
	router := setupRouter(t, &mockContentService{
		searchFunc: func(string) ([]json.RawMessage, error) {
			return nil, errors.New("search request failed: connection refused")
		},
	})

	w := postJSON(t, router, "/search/", map[string]any{"topic": "x"})

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SEARCH_ERROR", resp.Code)
}

func TestHandler_Health(t *testing.T) {
	router := setupRouter(t, &mockContentService{})

	w := httptest.NewRecorder()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "/health", http.NoBody)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

// stubCompletionClient backs the end-to-end flow without a network.
type stubCompletionClient struct {
	text string
}

func (s *stubCompletionClient) Generate(_ context.Context, _ string) (string, error) {
	return s.text, nil
}

type stubSearchClient struct{}

func (stubSearchClient) Search(_ context.Context, _ string) ([]json.RawMessage, error) {
	return []json.RawMessage{}, nil
}

func TestGenerateThenSubmit_EndToEnd(t *testing.T) {
	cfg := &config.Config{Service: config.ServiceConfig{MaxTopicLength: 500}}
	contentStore := store.New(filepath.Join(t.TempDir(), "content_data.json"), logger.NewNop())
	svc := service.NewContentService(
		&stubCompletionClient{text: "Volcanoes are..."},
		stubSearchClient{},
		contentStore,
		cfg,
		logger.NewNop(),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.SetupRoutes(router, api.NewHandler(svc, contentStore, logger.NewNop()))

	w := postJSON(t, router, "/generate/", map[string]any{"topic": "volcanoes"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content": "Volcanoes are...", "id": 1}`, w.Body.String())

	w = postJSON(t, router, "/submit/", map[string]any{"content_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"detail": "Content submitted successfully",
		"content": {"id": 1, "topic": "volcanoes", "content": "Volcanoes are..."}
	}`, w.Body.String())
}
