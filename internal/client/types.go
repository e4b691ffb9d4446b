package client

import (
	"fmt"

	"github.com/yammerjp/demovectors/internal/testvectors"
)

// VectorData は個々のテストベクトルを表します。
// Vector は encoding_format に応じて []float32 か base64 文字列になります。
type VectorData struct {
	Object string      `json:"object"`
	Index  int         `json:"index"`
	Vector interface{} `json:"vector"`
}

// ListResponse はセット全体のレスポンスを表します
type ListResponse struct {
	Object    string       `json:"object"`
	Name      string       `json:"name"`
	Count     int          `json:"count"`
	Dimension int          `json:"dimension"`
	Data      []VectorData `json:"data"`
}

// CodeIndexOutOfRange は範囲外インデックスを示すエラーコード
const CodeIndexOutOfRange = "index_out_of_range"

// ErrorResponse はエラーレスポンスの構造体
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
}

// APIError はサーバーからのエラーレスポンスを表します
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.StatusCode)
}

// サーバーが CodeIndexOutOfRange を返したときだけ範囲外として扱う
func (e *APIError) Is(target error) bool {
	return target == testvectors.ErrOutOfRange && e.Code == CodeIndexOutOfRange
}
