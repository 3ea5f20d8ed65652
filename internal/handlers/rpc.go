package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
	"github.com/stellar/anchor-platform-sub000/internal/services"
)

//go:generate mockgen -source=rpc.go -destination=rpc_mock.go -package=handlers

// maxRpcBodyBytes caps the size of a request body.
const maxRpcBodyBytes = 1 << 20

// RpcBatchHandler defines the interface that the service must implement.
type RpcBatchHandler interface {
	Handle(ctx context.Context, reqs []models.RpcRequest) []models.RpcResponse
}

// NewRpcHandler returns an HTTP handler for JSON-RPC 2.0 action requests.
// @Summary Run RPC actions
// @Description Accepts a JSON-RPC 2.0 request or batch of requests that drive transactions through their lifecycle. Responses follow request order.
// @Tags rpc
// @Accept json
// @Produce json
// @Param request body []models.RpcRequest true "RPC batch"
// @Success 200 {array} models.RpcResponse "Per-request results or errors"
// @Failure 401 "Unauthorized"
// @Router /rpc [post]
// @Security BearerAuth
func NewRpcHandler(svc RpcBatchHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRpcBodyBytes))
		if err != nil {
			logger.Log.Errorw("failed to read rpc request body", "error", err)
			writeJSON(w, services.ParseErrorResponse())
			return
		}

		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var items []json.RawMessage
			if err := json.Unmarshal(trimmed, &items); err != nil {
				logger.Log.Warnw("failed to decode rpc batch", "error", err)
				writeJSON(w, services.ParseErrorResponse())
				return
			}
			writeJSON(w, handleBatch(ctx, svc, items))
			return
		}

		var req models.RpcRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			logger.Log.Warnw("failed to decode rpc request", "error", err)
			writeJSON(w, decodeErrorResponse(err))
			return
		}
		resps := svc.Handle(ctx, []models.RpcRequest{req})
		writeJSON(w, resps[0])
	}
}

// handleBatch answers every element that is not a request object with its own
// Invalid Request error and hands the rest to svc. Responses keep element order.
func handleBatch(ctx context.Context, svc RpcBatchHandler, items []json.RawMessage) []models.RpcResponse {
	if len(items) == 0 {
		return svc.Handle(ctx, []models.RpcRequest{})
	}

	resps := make([]models.RpcResponse, len(items))
	reqs := make([]models.RpcRequest, 0, len(items))
	positions := make([]int, 0, len(items))
	for i, item := range items {
		var req models.RpcRequest
		if err := decodeBatchElement(item, &req); err != nil {
			logger.Log.Warnw("invalid rpc batch element", "index", i, "error", err)
			resps[i] = invalidRequestResponse()
			continue
		}
		reqs = append(reqs, req)
		positions = append(positions, i)
	}
	if len(reqs) == 0 {
		return resps
	}

	handled := svc.Handle(ctx, reqs)
	if len(handled) != len(reqs) {
		// A batch-wide rejection such as the size limit replaces the per-element answers.
		return handled
	}
	for j, resp := range handled {
		resps[positions[j]] = resp
	}
	return resps
}

// decodeBatchElement accepts only JSON objects.
func decodeBatchElement(item json.RawMessage, req *models.RpcRequest) error {
	item = bytes.TrimSpace(item)
	if len(item) == 0 || item[0] != '{' {
		return errors.New("batch element is not an object")
	}
	return json.Unmarshal(item, req)
}

func invalidRequestResponse() models.RpcResponse {
	return models.RpcResponse{
		JSONRPC: models.JSONRPCVersion,
		Error:   &models.RpcError{Code: models.CodeInvalidRequest, Message: "Invalid Request"},
	}
}

// decodeErrorResponse distinguishes malformed JSON from well-formed JSON of the wrong shape.
func decodeErrorResponse(err error) models.RpcResponse {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalidRequestResponse()
	}
	return services.ParseErrorResponse()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode rpc response", "error", err)
	}
}
