package client

import (
	"encoding/json"
	"errors"
	"strings"
)

// Op names one backend capability.
type Op string

const (
	OpCreateDailyLog   Op = "create_daily_log"
	OpGetDailyLog      Op = "get_daily_log"
	OpListDailyLogs    Op = "list_daily_logs"
	OpGenerateSummary  Op = "generate_summary"
	OpExplainConcept   Op = "explain_concept"
	OpSemanticSearch   Op = "semantic_search"
	OpLearningGuidance Op = "learning_guidance"
	OpHealth           Op = "health"
)

var defaultMessages = map[Op]string{
	OpCreateDailyLog:   "Failed to create daily log",
	OpGetDailyLog:      "Log not found",
	OpListDailyLogs:    "Failed to fetch logs",
	OpGenerateSummary:  "Failed to generate summary",
	OpExplainConcept:   "Failed to explain concept",
	OpSemanticSearch:   "Search failed",
	OpLearningGuidance: "Failed to get guidance",
	OpHealth:           "Health check failed",
}

// DefaultMessage is the user-facing message used when the backend gives no detail.
func (o Op) DefaultMessage() string {
	if m, ok := defaultMessages[o]; ok {
		return m
	}
	return "Request failed"
}

// Cause classifies an APIError.
type Cause int

const (
	// CauseTransport: the backend could not be reached or its reply could not be read.
	CauseTransport Cause = iota + 1
	// CauseBackend: the backend answered with a non-2xx status.
	CauseBackend
)

func (c Cause) String() string {
	switch c {
	case CauseTransport:
		return "transport-failure"
	case CauseBackend:
		return "backend-rejection"
	default:
		return "unknown"
	}
}

// APIError is the single error type returned by every Client operation.
// Error() returns Message unchanged so it can be shown to the user as-is.
type APIError struct {
	Op         Op
	Message    string
	Cause      Cause
	StatusCode int // zero for transport failures
	Err        error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// IsTransport reports whether err is an APIError caused by a transport failure.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Cause == CauseTransport
}

// IsBackend reports whether err is an APIError caused by a backend rejection.
func IsBackend(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Cause == CauseBackend
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func transportError(op Op, err error) *APIError {
	return &APIError{
		Op:      op,
		Message: op.DefaultMessage() + ": " + err.Error(),
		Cause:   CauseTransport,
		Err:     err,
	}
}

func backendError(op Op, status int, body []byte) *APIError {
	msg := detailMessage(body)
	if msg == "" {
		msg = op.DefaultMessage()
	}
	return &APIError{
		Op:         op,
		Message:    msg,
		Cause:      CauseBackend,
		StatusCode: status,
	}
}

// detailMessage extracts the "detail" of an error body. A string detail is used as-is;
// a validation list ([{"msg": ...}]) is joined. Anything else yields "".
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
