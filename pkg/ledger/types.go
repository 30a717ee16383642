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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// ErrorReason classifies errors from the ledger node, so callers can decide
// whether a failure is worth a fee-budget bump, terminal, or transient.
type ErrorReason string

const (
	// ErrorReasonBudgetTooLow the node judged the fee budget insufficient to execute the transaction
	ErrorReasonBudgetTooLow ErrorReason = "budget_too_low"
	// ErrorReasonReverted on-chain execution reverted (during a call, gas estimation, or in a mined receipt)
	ErrorReasonReverted ErrorReason = "reverted"
	// ErrorReasonNotFound the requested object (receipt/block etc.) was not found
	ErrorReasonNotFound ErrorReason = "not_found"
	// ErrorReasonUnreachable the JSON-RPC endpoint could not be reached
	ErrorReasonUnreachable ErrorReason = "unreachable"
	// ErrorReasonTimeout the request or wait ran out of time
	ErrorReasonTimeout ErrorReason = "timeout"
	// ErrorReasonRejected any other node rejection
	ErrorReasonRejected ErrorReason = "rejected"
)

func MapError(err error) ErrorReason {
	errString := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errString, "out of gas"),
		strings.Contains(errString, "gas required exceeds allowance"),
		strings.Contains(errString, "intrinsic gas too low"),
		strings.Contains(errString, "underpriced"),
		strings.Contains(errString, "exceeds block gas limit"),
		strings.Contains(errString, "max fee per gas less than block base fee"):
		return ErrorReasonBudgetTooLow
	case strings.Contains(errString, "execution reverted"),
		strings.Contains(errString, "ct010204"): // classified revert from eth_call
		return ErrorReasonReverted
	case strings.Contains(errString, "not found"),
		strings.Contains(errString, "ct010205"): // receipt not available
		return ErrorReasonNotFound
	case strings.Contains(errString, "connection refused"),
		strings.Contains(errString, "no such host"),
		strings.Contains(errString, "connection reset"),
		strings.Contains(errString, "eof"):
		return ErrorReasonUnreachable
	case strings.Contains(errString, "timeout"),
		strings.Contains(errString, "deadline exceeded"),
		strings.Contains(errString, "context canceled"),
		strings.Contains(errString, "ct010000"):
		return ErrorReasonTimeout
	default:
		return ErrorReasonRejected
	}
}

// RevertReason extracts the decoded revert string from an error raised by
// Call, or "" when the error does not carry one.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	errString := err.Error()
	marker := "CT010204: Call reverted: "
	if i := strings.LastIndex(errString, marker); i >= 0 {
		return errString[i+len(marker):]
	}
	return ""
}

// Receipt is the client view of a mined transaction, with the revert error
// message decoded when execution failed.
type Receipt struct {
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	BlockNumber     *fftypes.FFBigInt         `json:"blockNumber"`
	BlockHash       string                    `json:"blockHash"`
	GasUsed         *fftypes.FFBigInt         `json:"gasUsed"`
	Success         bool                      `json:"success"`
	ContractAddress *ethtypes.Address0xHex    `json:"contractAddress,omitempty"`
	ErrorMessage    string                    `json:"errorMessage,omitempty"`
	ExtraInfo       *fftypes.JSONAny          `json:"extraInfo,omitempty"`
}

// txReceiptJSONRPC is the receipt in the back-end JSON/RPC format
type txReceiptJSONRPC struct {
	BlockHash         ethtypes.HexBytes0xPrefix  `json:"blockHash"`
	BlockNumber       *ethtypes.HexInteger       `json:"blockNumber"`
	ContractAddress   *ethtypes.Address0xHex     `json:"contractAddress"`
	CumulativeGasUsed *ethtypes.HexInteger       `json:"cumulativeGasUsed"`
	From              *ethtypes.Address0xHex     `json:"from"`
	GasUsed           *ethtypes.HexInteger       `json:"gasUsed"`
	Status            *ethtypes.HexInteger       `json:"status"`
	To                *ethtypes.Address0xHex     `json:"to"`
	TransactionHash   ethtypes.HexBytes0xPrefix  `json:"transactionHash"`
	TransactionIndex  *ethtypes.HexInteger       `json:"transactionIndex"`
	RevertReason      *ethtypes.HexBytes0xPrefix `json:"revertReason"`
}

type receiptExtraInfo struct {
	ContractAddress   *ethtypes.Address0xHex `json:"contractAddress"`
	CumulativeGasUsed *fftypes.FFBigInt      `json:"cumulativeGasUsed"`
	From              *ethtypes.Address0xHex `json:"from"`
	To                *ethtypes.Address0xHex `json:"to"`
	Status            *fftypes.FFBigInt      `json:"status"`
	ErrorMessage      *string                `json:"errorMessage,omitempty"`
	ReturnValue       *string                `json:"returnValue,omitempty"`
}

var (
	// See https://docs.soliditylang.org/en/v0.8.14/control-structures.html#revert
	// The default error for `revert("some error")` is a function Error(string)
	defaultError = &abi.Entry{
		Type: abi.Error,
		Name: "Error",
		Inputs: abi.ParameterArray{
			{
				Type: "string",
			},
		},
	}
	defaultErrorID = defaultError.FunctionSelectorBytes()
)

func padHexData(hexString string) string {
	hexString = strings.TrimPrefix(hexString, "0x")
	if len(hexString)%2 == 1 {
		hexString = "0" + hexString
	}
	return hexString
}
