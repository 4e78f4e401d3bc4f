package response

import (
	"encoding/json"
	"net/http"

	"baize/shared/constant"
	"baize/shared/failure"
	"baize/shared/logger"
)

// Envelope is the response shape shared by every endpoint.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Data    *T      `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a success response carrying a text message only.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope[any]{Success: code < http.StatusBadRequest, Message: &message})
}

// WithJSON sends a success response containing a JSON payload.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Envelope[any]{Success: true, Data: &jsonPayload})
}

// WithError sends a failed response, deriving the status code from the error.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	response(writer, code, Envelope[any]{Success: false, Message: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Envelope[any]{
		Success: false,
		Message: strptr(constant.ResponseErrorRequestLimitExceeded),
	})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope[any]{
		Success: false,
		Message: strptr(constant.ResponseErrorPrepareShutdown),
	})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope[any]{
		Success: false,
		Message: strptr(constant.ResponseErrorUnhealthy),
	})
}

func strptr(s string) *string {
	return &s
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
