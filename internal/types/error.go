package types

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the HTTP layer can map it to a status
// code without inspecting message strings.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindDuplicateName  Kind = "duplicate_name"
	KindValidation     Kind = "validation"
	KindIndexNotReady  Kind = "index_not_ready"
	KindIngestion      Kind = "ingestion"
	KindQueryExecution Kind = "query_execution"
	KindInternal       Kind = "internal"
)

// ServiceError is the tagged error variant returned by the service layer.
type ServiceError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing or inactive entity.
func NotFound(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// DuplicateName reports a collection name collision.
func DuplicateName(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindDuplicateName, Message: fmt.Sprintf(format, args...)}
}

// Validation reports rejected caller input.
func Validation(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// IndexNotReady reports a query against a collection that has no index yet.
func IndexNotReady(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindIndexNotReady, Message: fmt.Sprintf(format, args...)}
}

// QueryExecution wraps a retrieval or answer-synthesis failure.
func QueryExecution(err error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindQueryExecution, Message: fmt.Sprintf(format, args...), Err: err}
}

// Internal wraps an unexpected failure.
func Internal(err error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// Ingestion wraps a per-file ingestion failure.
func Ingestion(err error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindIngestion, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf extracts the message from an error chain.
func MessageOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
