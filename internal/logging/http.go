package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPLogger logs chat completion requests and responses at debug level
type HTTPLogger struct {
	logger      *Logger
	maxBodySize int
}

// NewHTTPLogger creates a new HTTP logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{
		logger:      logger,
		maxBodySize: 10000, // Default 10KB max body logging
	}
}

// LogRequest logs an HTTP request with credentials redacted
func (h *HTTPLogger) LogRequest(req *http.Request, body []byte) {
	fields := Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}

	headers := make(map[string]string)
	for k, v := range req.Header {
		if isSensitiveHeader(k) {
			headers[k] = "[REDACTED]"
		} else if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	fields["headers"] = headers
	h.addBody(fields, body, true)

	h.logger.Debug("HTTP Request", fields)
}

// LogResponse logs an HTTP response
func (h *HTTPLogger) LogResponse(resp *http.Response, body []byte, duration time.Duration) {
	fields := Fields{
		"status":      resp.StatusCode,
		"status_text": resp.Status,
		"duration_ms": duration.Milliseconds(),
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		fields["content_type"] = ct
	}
	h.addBody(fields, body, false)

	h.logger.Debug("HTTP Response", fields)
}

// LogError logs a transport failure
func (h *HTTPLogger) LogError(err error, req *http.Request) {
	h.logger.Error("HTTP Error", err, Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	})
}

func (h *HTTPLogger) addBody(fields Fields, body []byte, redact bool) {
	if len(body) == 0 {
		return
	}
	fields["body_size"] = len(body)

	var parsed interface{}
	if len(body) <= h.maxBodySize && json.Unmarshal(body, &parsed) == nil {
		if redact {
			parsed = redactSensitiveFields(parsed)
		}
		fields["body"] = parsed
		return
	}
	fields["body"] = truncateBody(body, h.maxBodySize)
}

// RoundTripperWrapper wraps an http.RoundTripper with logging
type RoundTripperWrapper struct {
	wrapped http.RoundTripper
	logger  *HTTPLogger
	logBody bool
}

// NewLoggingRoundTripper creates a new logging round tripper
func NewLoggingRoundTripper(wrapped http.RoundTripper, logger *HTTPLogger, logBody bool) *RoundTripperWrapper {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &RoundTripperWrapper{
		wrapped: wrapped,
		logger:  logger,
		logBody: logBody,
	}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripperWrapper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if rt.logBody && req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}
	rt.logger.LogRequest(req, reqBody)

	resp, err := rt.wrapped.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		rt.logger.LogError(err, req)
		return nil, err
	}

	var respBody []byte
	if rt.logBody {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(respBody))
	}
	rt.logger.LogResponse(resp, respBody, duration)

	return resp, nil
}

// isSensitiveHeader checks if a header should be redacted
func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "api-key", "x-api-key", "openai-organization", "cookie", "set-cookie":
		return true
	}
	return false
}

// truncateBody truncates body if too large
func truncateBody(body []byte, maxSize int) string {
	if len(body) <= maxSize {
		return string(body)
	}
	return string(body[:maxSize]) + "...[truncated]"
}

// redactSensitiveFields redacts sensitive fields in parsed JSON
func redactSensitiveFields(data interface{}) interface{} {
	sensitiveKeys := []string{
		"api_key", "apikey", "api-key",
		"password", "secret", "token",
		"authorization",
	}

	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			keyLower := strings.ToLower(k)
			isSensitive := false
			for _, sensitive := range sensitiveKeys {
				if strings.Contains(keyLower, sensitive) {
					isSensitive = true
					break
				}
			}
			if isSensitive {
				result[k] = "[REDACTED]"
			} else {
				result[k] = redactSensitiveFields(val)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactSensitiveFields(item)
		}
		return result
	default:
		return data
	}
}
