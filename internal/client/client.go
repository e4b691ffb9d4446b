package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yammerjp/demovectors/internal/util"
)

// Client はテストベクトルAPIのクライアントの構造体
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient は新しいClientを作成します。httpClient が nil の場合は http.DefaultClient を使います。
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// GetVector は index 番目のベクトルを取得します。転送にはbase64形式を使います。
func (c *Client) GetVector(ctx context.Context, index int) ([]float32, error) {
	var data VectorData
	if err := c.get(ctx, "/v1/test-vectors/"+strconv.Itoa(index), &data); err != nil {
		return nil, err
	}
	return decodeVector(data.Vector)
}

// ListVectors はセット全体を取得します
func (c *Client) ListVectors(ctx context.Context) (*ListResponse, [][]float32, error) {
	var resp ListResponse
	if err := c.get(ctx, "/v1/test-vectors", &resp); err != nil {
		return nil, nil, err
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vec, err := decodeVector(data.Vector)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode vector %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return &resp, vectors, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	q := url.Values{"encoding_format": {"base64"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return &APIError{
				StatusCode: resp.StatusCode,
				Message:    "Failed to decode error response",
				Type:       "internal_error",
			}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Error.Message,
			Type:       errResp.Error.Type,
			Code:       errResp.Error.Code,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeVector(v interface{}) ([]float32, error) {
	switch x := v.(type) {
	case string:
		return util.Base64ToFloat32Slice(util.EmbeddedVectorBase64(x))
	case []interface{}:
		result := make([]float32, len(x))
		for i, val := range x {
			f, ok := val.(float64)
			if !ok {
				return nil, fmt.Errorf("invalid element type at index %d: got %T", i, val)
			}
			result[i] = float32(f)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected vector type: %T", v)
	}
}
