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
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"

	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/internal/retry"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/sirupsen/logrus"
)

// LedgerClient is the single connection to the ledger node. It carries no
// business rules: one JSON-RPC round trip per method, with errors classified
// via MapError by callers that care.
type LedgerClient interface {
	ChainID() int64
	Call(ctx context.Context, tx *ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error)
	EstimateBudget(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error)
	Submit(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
	GetReceipt(ctx context.Context, txHash string) (*Receipt, error)
	AwaitFinality(ctx context.Context, txHash string) (*Receipt, error)
	Close()
}

type ledgerClient struct {
	chainID      int64
	rpc          rpcbackend.Backend
	receiptRetry *retry.Retry
}

// NewLedgerClient connects to the configured JSON-RPC endpoint and verifies
// it by querying the chain ID.
func NewLedgerClient(ctx context.Context, conf *Config) (LedgerClient, error) {
	httpClient, err := parseHTTPConfig(ctx, &conf.HTTP)
	if err != nil {
		return nil, err
	}
	return WrapRPCClient(ctx, rpcbackend.NewRPCClient(httpClient), conf)
}

// WrapRPCClient builds a LedgerClient over an existing JSON-RPC backend, for
// callers that manage their own connection.
func WrapRPCClient(ctx context.Context, rpc rpcbackend.Backend, conf *Config) (LedgerClient, error) {
	lc := &ledgerClient{
		rpc:          rpc,
		receiptRetry: retry.NewRetryIndefinite(&conf.ReceiptPolling, &Defaults.ReceiptPolling),
	}
	if err := lc.setupChainID(ctx); err != nil {
		return nil, err
	}
	return lc, nil
}

func (lc *ledgerClient) Close() {
}

func (lc *ledgerClient) ChainID() int64 {
	return lc.chainID
}

func (lc *ledgerClient) setupChainID(ctx context.Context) error {
	var chainID ethtypes.HexUint64
	if rpcErr := lc.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
		log.L(ctx).Errorf("eth_chainId failed: %+v", rpcErr)
		return i18n.WrapError(ctx, rpcErr.Error(), msgs.MsgLedgerChainIDFailed)
	}
	lc.chainID = int64(chainID.Uint64())
	return nil
}

func (lc *ledgerClient) Call(ctx context.Context, tx *ethsigner.Transaction, block string) (data ethtypes.HexBytes0xPrefix, err error) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		log.L(ctx).Tracef("eth_call data=%s block=%s", tx.Data, block)
	}
	if rpcErr := lc.rpc.CallRPC(ctx, &data, "eth_call", tx, block); rpcErr != nil {
		log.L(ctx).Errorf("eth_call failed: %+v", rpcErr)
		if len(rpcErr.Data) > 0 {
			// The node may attach the revert data to the error
			var revertData ethtypes.HexBytes0xPrefix
			_ = json.Unmarshal(rpcErr.Data.Bytes(), &revertData)
			if errorMessage := decodeDefaultError(ctx, revertData.String()); errorMessage != "" {
				return nil, i18n.NewError(ctx, msgs.MsgLedgerCallReverted, errorMessage)
			}
		}
		return nil, rpcErr.Error()
	}
	return data, nil
}

func (lc *ledgerClient) EstimateBudget(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error) {
	var budget ethtypes.HexInteger
	if rpcErr := lc.rpc.CallRPC(ctx, &budget, "eth_estimateGas", tx); rpcErr != nil {
		log.L(ctx).Errorf("eth_estimateGas failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return &budget, nil
}

func (lc *ledgerClient) Submit(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		log.L(ctx).Tracef("eth_sendTransaction data=%s gasLimit=%s", tx.Data, tx.GasLimit)
	}
	var txHash ethtypes.HexBytes0xPrefix
	if rpcErr := lc.rpc.CallRPC(ctx, &txHash, "eth_sendTransaction", tx); rpcErr != nil {
		log.L(ctx).Errorf("eth_sendTransaction failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	log.L(ctx).Infof("Transaction submitted txHash=%s", txHash)
	return txHash, nil
}

func (lc *ledgerClient) GetReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	// Get the receipt in the back-end JSON/RPC format
	var ethReceipt *txReceiptJSONRPC
	if rpcErr := lc.rpc.CallRPC(ctx, &ethReceipt, "eth_getTransactionReceipt", txHash); rpcErr != nil {
		return nil, rpcErr.Error()
	}
	if ethReceipt == nil {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerReceiptNotAvailable, txHash)
	}
	isSuccess := (ethReceipt.Status != nil && ethReceipt.Status.BigInt().Int64() > 0)

	var errorMessage string
	var returnValue *string
	if !isSuccess {
		returnValue, errorMessage = lc.getErrorInfo(ctx, txHash, ethReceipt.RevertReason)
	}

	fullReceipt, _ := json.Marshal(&receiptExtraInfo{
		ContractAddress:   ethReceipt.ContractAddress,
		CumulativeGasUsed: (*fftypes.FFBigInt)(ethReceipt.CumulativeGasUsed),
		From:              ethReceipt.From,
		To:                ethReceipt.To,
		Status:            (*fftypes.FFBigInt)(ethReceipt.Status),
		ErrorMessage:      &errorMessage,
		ReturnValue:       returnValue,
	})

	return &Receipt{
		TransactionHash: ethReceipt.TransactionHash,
		BlockNumber:     (*fftypes.FFBigInt)(ethReceipt.BlockNumber),
		BlockHash:       ethReceipt.BlockHash.String(),
		GasUsed:         (*fftypes.FFBigInt)(ethReceipt.GasUsed),
		Success:         isSuccess,
		ContractAddress: ethReceipt.ContractAddress,
		ErrorMessage:    errorMessage,
		ExtraInfo:       fftypes.JSONAnyPtrBytes(fullReceipt),
	}, nil
}

// AwaitFinality polls for the receipt until it is available, or the supplied
// context expires. Detaching the waiter does not revoke the submitted write.
func (lc *ledgerClient) AwaitFinality(ctx context.Context, txHash string) (*Receipt, error) {
	var receipt *Receipt
	err := lc.receiptRetry.Do(ctx, func(attempt int) (retryable bool, err error) {
		receipt, err = lc.GetReceipt(ctx, txHash)
		if err != nil && MapError(err) == ErrorReasonNotFound {
			log.L(ctx).Debugf("Receipt not yet available for %s (attempt=%d)", txHash, attempt)
			return true, err
		}
		return false, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerFinalityTimeout, txHash)
		}
		return nil, err
	}
	return receipt, nil
}

func (lc *ledgerClient) getErrorInfo(ctx context.Context, txHash string, revertFromReceipt *ethtypes.HexBytes0xPrefix) (*string, string) {
	var revertReason string
	if revertFromReceipt != nil {
		revertReason = revertFromReceipt.String()
	}
	errorMessage := decodeDefaultError(ctx, revertReason)
	if errorMessage == "" {
		errorMessage = i18n.NewError(ctx, msgs.MsgPipelineExecutionReverted, txHash, revertReason).Error()
	}
	return &revertReason, errorMessage
}

// decodeDefaultError decodes revert data carrying the standard Error(string)
// selector, returning "" for anything else.
func decodeDefaultError(ctx context.Context, revertReason string) string {
	returnDataBytes, _ := hex.DecodeString(padHexData(revertReason))
	if len(returnDataBytes) > 4 && bytes.Equal(returnDataBytes[0:4], defaultErrorID) {
		value, err := defaultError.DecodeCallDataCtx(ctx, returnDataBytes)
		if err == nil {
			return value.Children[0].Value.(string)
		}
	}
	return ""
}
