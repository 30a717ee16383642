// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/require"
)

type mockEth struct {
	eth_chainId               func(ctx context.Context) (ethtypes.HexUint64, error)
	eth_call                  func(ctx context.Context, tx ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error)
	eth_estimateGas           func(ctx context.Context, tx ethsigner.Transaction) (ethtypes.HexInteger, error)
	eth_sendTransaction       func(ctx context.Context, tx ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
	eth_getTransactionReceipt func(ctx context.Context, txHash string) (*txReceiptJSONRPC, error)
}

// testRPCError lets a mock attach JSON-RPC error data (such as revert data)
// to the failure.
type testRPCError struct {
	message string
	data    string
}

func (e *testRPCError) Error() string { return e.message }

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcResponseError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Result  interface{}       `json:"result,omitempty"`
	Error   *rpcResponseError `json:"error,omitempty"`
}

func newTestServer(t *testing.T, mEth *mockEth) (*httptest.Server, func()) {
	if mEth.eth_chainId == nil {
		mEth.eth_chainId = func(ctx context.Context) (ethtypes.HexUint64, error) {
			return 12345, nil
		}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		var result interface{}
		switch req.Method {
		case "eth_chainId":
			result, err = mEth.eth_chainId(r.Context())
		case "eth_call":
			var tx ethsigner.Transaction
			var block string
			require.NoError(t, json.Unmarshal(req.Params[0], &tx))
			require.NoError(t, json.Unmarshal(req.Params[1], &block))
			result, err = mEth.eth_call(r.Context(), tx, block)
		case "eth_estimateGas":
			var tx ethsigner.Transaction
			require.NoError(t, json.Unmarshal(req.Params[0], &tx))
			result, err = mEth.eth_estimateGas(r.Context(), tx)
		case "eth_sendTransaction":
			var tx ethsigner.Transaction
			require.NoError(t, json.Unmarshal(req.Params[0], &tx))
			result, err = mEth.eth_sendTransaction(r.Context(), tx)
		case "eth_getTransactionReceipt":
			var txHash string
			require.NoError(t, json.Unmarshal(req.Params[0], &txHash))
			result, err = mEth.eth_getTransactionReceipt(r.Context(), txHash)
		default:
			t.Fatalf("method %q not implemented by test", req.Method)
		}

		res := &rpcResponse{JSONRPC: "2.0", ID: req.ID}
		if err != nil {
			res.Error = &rpcResponseError{Code: -32000, Message: err.Error()}
			var rpcErr *testRPCError
			if errors.As(err, &rpcErr) && rpcErr.data != "" {
				errData, mErr := json.Marshal(rpcErr.data)
				require.NoError(t, mErr)
				res.Error.Data = errData
			}
		} else {
			res.Result = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))
	return server, server.Close
}

func newTestClientAndServer(t *testing.T, mEth *mockEth) (context.Context, LedgerClient, func()) {
	ctx := context.Background()
	server, serverDone := newTestServer(t, mEth)

	lc, err := NewLedgerClient(ctx, &Config{
		HTTP: HTTPConfig{URL: server.URL},
	})
	require.NoError(t, err)
	require.Equal(t, int64(12345), lc.ChainID())

	return ctx, lc, func() {
		lc.Close()
		serverDone()
	}
}
