package services

import (
	"context"
	"fmt"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=batch.go -destination=batch_mock.go -package=services

// DefaultBatchSizeLimit is used when no positive limit is configured.
const DefaultBatchSizeLimit = 10

// RequestDispatcher executes one request of a batch.
type RequestDispatcher interface {
	Dispatch(ctx context.Context, req models.RpcRequest) models.RpcResponse
}

// RpcService processes JSON-RPC batches item by item, in order.
type RpcService struct {
	dispatcher     RequestDispatcher
	batchSizeLimit int
}

// NewRpcService creates a new RpcService.
func NewRpcService(dispatcher RequestDispatcher, batchSizeLimit int) *RpcService {
	if batchSizeLimit <= 0 {
		batchSizeLimit = DefaultBatchSizeLimit
	}
	return &RpcService{dispatcher: dispatcher, batchSizeLimit: batchSizeLimit}
}

// Handle returns one response per request, at the request's position.
// An oversize or empty batch is answered with a single error.
func (s *RpcService) Handle(ctx context.Context, reqs []models.RpcRequest) []models.RpcResponse {
	if len(reqs) == 0 {
		return []models.RpcResponse{envelopeError(NewInvalidRequestError("Empty batch"))}
	}
	if len(reqs) > s.batchSizeLimit {
		return []models.RpcResponse{envelopeError(NewInvalidRequestError("RPC batch size limit[%d] exceeded", s.batchSizeLimit))}
	}

	responses := make([]models.RpcResponse, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, s.handleOne(ctx, req))
	}
	return responses
}

// handleOne isolates a single item so a fault never aborts its siblings.
func (s *RpcService) handleOne(ctx context.Context, req models.RpcRequest) (resp models.RpcResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorw("panic while handling rpc request", "id", req.ID, "method", req.Method, "panic", r)
			resp = models.RpcResponse{
				JSONRPC: models.JSONRPCVersion,
				ID:      req.ID,
				Error: &models.RpcError{
					ID:      req.ID,
					Code:    models.CodeInternalError,
					Message: fmt.Sprintf("Internal error: %v", r),
				},
			}
		}
	}()
	return s.dispatcher.Dispatch(ctx, req)
}

// ParseErrorResponse is the response to a body that is not JSON.
func ParseErrorResponse() models.RpcResponse {
	return envelopeError(newRpcError(models.CodeParseError, "Parse error"))
}

func envelopeError(err *RpcError) models.RpcResponse {
	return models.RpcResponse{
		JSONRPC: models.JSONRPCVersion,
		Error:   &models.RpcError{Code: err.Code, Message: err.Message},
	}
}
