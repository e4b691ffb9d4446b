package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yammerjp/demovectors/internal/client"
)

// HandlerError はハンドラーのエラー情報を保持する構造体
type HandlerError struct {
	Status      int    // HTTPステータスコード
	Message     string // クライアントに返すエラーメッセージ
	ErrorType   string // エラータイプ（"invalid_request_error"など）
	Code        string // エラーコード。空ならステータス文字列を使う
	InternalErr error  // 内部エラー（ログ用）
}

func (e *HandlerError) Error() string {
	if e.InternalErr != nil {
		return e.InternalErr.Error()
	}
	return e.Message
}

func (e *HandlerError) Unwrap() error {
	return e.InternalErr
}

func NewHandlerError(status int, message, errorType string, err error) *HandlerError {
	return &HandlerError{
		Status:      status,
		Message:     message,
		ErrorType:   errorType,
		InternalErr: err,
	}
}

// WriteResponse はエラーレスポンスを書き込みます
func (e *HandlerError) WriteResponse(w http.ResponseWriter) {
	writeError(w, e.Status, e.Message, e.ErrorType, e.Code)
}

func writeError(w http.ResponseWriter, status int, message, errType, code string) {
	var resp client.ErrorResponse
	resp.Error.Message = message
	resp.Error.Type = errType
	resp.Error.Code = code
	if code == "" {
		resp.Error.Code = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
