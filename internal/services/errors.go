package services

import (
	"errors"
	"fmt"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// RpcError is an error carrying a JSON-RPC code. Its message is returned to the caller verbatim.
type RpcError struct {
	Code    int
	Message string
}

func (e *RpcError) Error() string {
	return e.Message
}

func newRpcError(code int, format string, args ...any) *RpcError {
	return &RpcError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidRequestError reports a method that is illegal for the transaction or a malformed envelope.
func NewInvalidRequestError(format string, args ...any) *RpcError {
	return newRpcError(models.CodeInvalidRequest, format, args...)
}

// NewMethodNotFoundError reports a method with no registered handler.
func NewMethodNotFoundError(format string, args ...any) *RpcError {
	return newRpcError(models.CodeMethodNotFound, format, args...)
}

// NewInvalidParamsError reports amount, asset or refund violations.
func NewInvalidParamsError(format string, args ...any) *RpcError {
	return newRpcError(models.CodeInvalidParams, format, args...)
}

// NewInternalError reports collaborator failures and unexpected faults.
func NewInternalError(format string, args ...any) *RpcError {
	return newRpcError(models.CodeInternalError, format, args...)
}

// toRpcError maps any error to an RpcError, defaulting to an internal error.
func toRpcError(err error) *RpcError {
	var rpcErr *RpcError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return NewInternalError("%s", err.Error())
}
