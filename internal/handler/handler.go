package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yammerjp/demovectors/internal/client"
	"github.com/yammerjp/demovectors/internal/testvectors"
	"github.com/yammerjp/demovectors/internal/util"
)

const (
	basePath        = "/v1/test-vectors"
	headerRequestID = "X-Request-ID"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Source は配信するテストベクトルセット。*testvectors.Set が実装しています。
type Source interface {
	Name() string
	Len() int
	Dim() int
	Vector(index int) ([]float32, error)
}

var _ Source = (*testvectors.Set)(nil)

type Handler struct {
	source Source
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

// RequestID はコンテキストに保存されたリクエストIDを返します
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	w.Header().Set(headerRequestID, requestID)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

	status := http.StatusOK
	err := h.handleRequest(w, r)
	if err != nil {
		status = err.Status
		err.WriteResponse(w)
	}

	// リクエスト完了時に1つのログエントリを出力
	logger := slog.With(
		"request_id", requestID,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	)
	if status >= 500 {
		logger.Error("request completed", "error", err.Error())
	} else {
		logger.Info("request completed")
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) *HandlerError {
	if r.URL.Path != basePath && !strings.HasPrefix(r.URL.Path, basePath+"/") {
		return NewHandlerError(http.StatusNotFound, "Not found", "invalid_request_error", fmt.Errorf("not found: %s", r.URL.Path))
	}

	if r.Method != http.MethodGet {
		return NewHandlerError(http.StatusMethodNotAllowed, "Method not allowed. Please use GET.", "invalid_request_error",
			fmt.Errorf("method not allowed: %s", r.Method))
	}

	format := r.URL.Query().Get("encoding_format")
	if format != "" && format != "float" && format != "base64" {
		return NewHandlerError(http.StatusBadRequest, "Invalid encoding_format: must be either 'float' or 'base64'", "invalid_request_error",
			fmt.Errorf("invalid encoding format: %s", format))
	}

	if r.URL.Path == basePath {
		return h.handleList(w, format)
	}
	return h.handleGet(w, strings.TrimPrefix(r.URL.Path, basePath+"/"), format)
}

func (h *Handler) handleList(w http.ResponseWriter, format string) *HandlerError {
	resp := client.ListResponse{
		Object:    "list",
		Name:      h.source.Name(),
		Count:     h.source.Len(),
		Dimension: h.source.Dim(),
		Data:      make([]client.VectorData, h.source.Len()),
	}

	for i := range resp.Data {
		vec, err := h.source.Vector(i)
		if err != nil {
			return NewHandlerError(http.StatusInternalServerError, "Failed to read test vectors", "internal_error",
				fmt.Errorf("failed to read vector %d: %w", i, err))
		}
		resp.Data[i] = newVectorData(i, vec, format)
	}

	return writeJSON(w, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, rawIndex, format string) *HandlerError {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return NewHandlerError(http.StatusBadRequest, "Invalid index: "+rawIndex, "invalid_request_error",
			fmt.Errorf("invalid index: %w", err))
	}

	vec, err := h.source.Vector(index)
	if errors.Is(err, testvectors.ErrOutOfRange) {
		herr := NewHandlerError(http.StatusNotFound,
			fmt.Sprintf("Test vector index %d out of range [0, %d)", index, h.source.Len()),
			"invalid_request_error", err)
		herr.Code = client.CodeIndexOutOfRange
		return herr
	}
	if err != nil {
		return NewHandlerError(http.StatusInternalServerError, "Failed to read test vector", "internal_error", err)
	}

	return writeJSON(w, newVectorData(index, vec, format))
}

func newVectorData(index int, vec []float32, format string) client.VectorData {
	data := client.VectorData{
		Object: "test_vector",
		Index:  index,
		Vector: vec,
	}
	if format == "base64" {
		data.Vector = util.Float32ToBase64(vec)
	}
	return data
}

func writeJSON(w http.ResponseWriter, v any) *HandlerError {
	body, err := json.Marshal(v)
	if err != nil {
		return NewHandlerError(http.StatusInternalServerError, "Failed to encode response", "internal_error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return nil
}
