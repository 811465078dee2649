// Package response writes the JSON envelope served by /api/v1 and reads the
// matching envelope returned by the appointments backend.
package response

import (
	"encoding/json"
	"net/http"

	"hospitron/pkg/result"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Envelope is the body shape the appointments backend replies with.
// Data stays raw so the caller can decode a list or a single record.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Total   *int            `json:"total,omitempty"`
	Page    *int            `json:"page,omitempty"`
	Limit   *int            `json:"limit,omitempty"`
}

// HasPaging reports whether the backend sent any paging field.
func (e *Envelope) HasPaging() bool {
	return e.Total != nil || e.Page != nil || e.Limit != nil
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// MetaFromResult converts backend paging into the served meta block.
func MetaFromResult(meta *result.Meta) *Meta {
	if meta == nil {
		return nil
	}
	out := &Meta{
		Page:  meta.Page,
		Limit: meta.Limit,
		Total: int64(meta.Total),
	}
	if meta.Limit > 0 {
		out.TotalPages = (meta.Total + meta.Limit - 1) / meta.Limit
	}
	return out
}

// FromResult writes an Ok result as a success envelope, with present
// shaping its value, and an Err result as 502 carrying the backend message.
// A nil present writes no data.
func FromResult[T any](w http.ResponseWriter, statusCode int, message string, res result.Result[T], present func(T) interface{}) {
	if !res.IsOk() {
		BadGateway(w, res.Message())
		return
	}

	var data interface{}
	if present != nil {
		data = present(res.Value())
	}
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    MetaFromResult(res.Meta()),
	})
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Error:   errors,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

// BadGateway reports a failure of the appointments backend.
func BadGateway(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Upstream service unavailable"
	}
	Error(w, http.StatusBadGateway, message, nil)
}
