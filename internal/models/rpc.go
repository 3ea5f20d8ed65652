package models

import "encoding/json"

// JSONRPCVersion is the only protocol version accepted by the engine.
const JSONRPCVersion = "2.0"

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// RpcRequest is a single element of a JSON-RPC batch.
// swagger:model RpcRequest
type RpcRequest struct {
	// Request id; string or number
	// example: 1
	ID any `json:"id"`

	// Protocol version
	// example: 2.0
	JSONRPC string `json:"jsonrpc"`

	// Method name
	// example: request_offchain_funds
	Method string `json:"method"`

	// Method parameters, always carrying transaction_id
	Params json.RawMessage `json:"params"`
}

// RpcResponse is a single element of a JSON-RPC batch response.
// Exactly one of Result and Error is set.
// swagger:model RpcResponse
type RpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *RpcError `json:"error,omitempty"`
}

// RpcError is the error member of a failed RpcResponse.
// swagger:model RpcError
type RpcError struct {
	ID      any    `json:"id,omitempty"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
