package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/courier-admin/internal/errors"
	"github.com/tidwall/gjson"
)

const (
	msgNetworkError    = "network error"
	msgUploadFailed    = "file upload failed"
	msgProcessingError = "failed to process server response"
)

// Result is the uniform outcome of one remote call. A failed Result never carries Data.
type Result[T any] struct {
	Success    bool   `json:"success"`
	Data       T      `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"-"`
}

// Empty is used for calls whose response body is irrelevant to the caller.
type Empty = json.RawMessage

// Error describes a failed Result. It unwraps to errors.ErrRemote.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return errors.ErrRemote
}

// Err returns nil for a successful result, otherwise an *Error.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{StatusCode: r.StatusCode, Message: r.Error}
}

func failure[T any](status int, msg string) Result[T] {
	return Result[T]{Success: false, Error: msg, StatusCode: status}
}

// decodeResult turns a status code and raw body into a Result.
// Non-2xx bodies yield their "message" or "error" field; 2xx bodies are unwrapped
// from a "data" envelope when one is present.
func decodeResult[T any](status int, body []byte) Result[T] {
	ok := status >= http.StatusOK && status < http.StatusMultipleChoices

	// 204 replies from the write endpoints carry no body and still succeed.
	if ok && len(bytes.TrimSpace(body)) == 0 {
		return Result[T]{Success: true, StatusCode: status}
	}
	if !gjson.ValidBytes(body) {
		return failure[T](status, msgProcessingError)
	}
	parsed := gjson.ParseBytes(body)

	if !ok {
		msg := stringField(parsed, "message")
		if msg == "" {
			msg = stringField(parsed, "error")
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
		return failure[T](status, msg)
	}

	payload := parsed
	if d := parsed.Get("data"); parsed.IsObject() && truthy(d) {
		payload = d
	}

	var data T
	if err := json.Unmarshal([]byte(payload.Raw), &data); err != nil {
		return failure[T](status, msgProcessingError)
	}
	return Result[T]{
		Success:    true,
		Data:       data,
		Message:    stringField(parsed, "message"),
		StatusCode: status,
	}
}

func stringField(v gjson.Result, key string) string {
	if !v.IsObject() {
		return ""
	}
	f := v.Get(key)
	if f.Type != gjson.String {
		return ""
	}
	return f.Str
}

// truthy mirrors how the remote API's clients treat an optional data envelope:
// null, false, 0 and "" mean "no envelope".
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	}
	return true
}
