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

// Package contract holds the traceability contract interface: the ABI of the
// nine contract functions, and the encode/decode plumbing between the Go
// domain types and the ABI wire formats.
package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

const (
	FnAddParty          = "addParty"
	FnAddNewItem        = "addNewItem"
	FnSellItem          = "sellItem"
	FnGetAccountDetails = "getAccountDetails"
	FnGetMyDetails      = "getMyDetails"
	FnGetMyAccountsList = "getMyAccountsList"
	FnGetAllItems       = "getAllItems"
	FnGetMyItems        = "getMyItems"
	FnGetSingleItem     = "getSingleItem"
)

const accountComponents = `[
	{"name": "accountId", "type": "address"},
	{"name": "role", "type": "uint8"},
	{"name": "name", "type": "string"},
	{"name": "email", "type": "string"}
]`

const itemComponents = `[
	{"name": "barcodeId", "type": "string"},
	{"name": "name", "type": "string"},
	{"name": "manufacturerName", "type": "string"},
	{"name": "manufacturer", "type": "address"},
	{"name": "manufacturedDate", "type": "uint256"},
	{"name": "expiringDate", "type": "uint256"},
	{"name": "isInBatch", "type": "bool"},
	{"name": "batchCount", "type": "uint256"},
	{"name": "itemImage", "type": "string"},
	{"name": "itemType", "type": "uint8"},
	{"name": "usage", "type": "string"},
	{"name": "others", "type": "string[]"}
]`

const custodyComponents = `[
	{"name": "holder", "type": "address"},
	{"name": "role", "type": "uint8"},
	{"name": "transferredAt", "type": "uint256"}
]`

var contractABIJSON = []byte(fmt.Sprintf(`[
	{
		"name": "addParty",
		"type": "function",
		"inputs": [
			{"name": "role", "type": "uint8"},
			{"name": "accountId", "type": "address"},
			{"name": "name", "type": "string"},
			{"name": "email", "type": "string"}
		],
		"outputs": []
	},
	{
		"name": "addNewItem",
		"type": "function",
		"inputs": [
			{"name": "item", "type": "tuple", "components": %[2]s},
			{"name": "timestamp", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "sellItem",
		"type": "function",
		"inputs": [
			{"name": "buyer", "type": "address"},
			{"name": "barcodeId", "type": "string"},
			{"name": "timestamp", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "getAccountDetails",
		"type": "function",
		"inputs": [
			{"name": "accountId", "type": "address"}
		],
		"outputs": [
			{"name": "account", "type": "tuple", "components": %[1]s}
		]
	},
	{
		"name": "getMyDetails",
		"type": "function",
		"inputs": [],
		"outputs": [
			{"name": "account", "type": "tuple", "components": %[1]s}
		]
	},
	{
		"name": "getMyAccountsList",
		"type": "function",
		"inputs": [],
		"outputs": [
			{"name": "parties", "type": "tuple[]", "components": %[1]s}
		]
	},
	{
		"name": "getAllItems",
		"type": "function",
		"inputs": [],
		"outputs": [
			{"name": "items", "type": "tuple[]", "components": %[2]s}
		]
	},
	{
		"name": "getMyItems",
		"type": "function",
		"inputs": [],
		"outputs": [
			{"name": "items", "type": "tuple[]", "components": %[2]s}
		]
	},
	{
		"name": "getSingleItem",
		"type": "function",
		"inputs": [
			{"name": "barcodeId", "type": "string"}
		],
		"outputs": [
			{"name": "item", "type": "tuple", "components": %[2]s},
			{"name": "history", "type": "tuple[]", "components": %[3]s}
		]
	}
]`, accountComponents, itemComponents, custodyComponents))

var functions = mustParseFunctions()

func mustParseFunctions() map[string]*abi.Entry {
	var contractABI abi.ABI
	if err := json.Unmarshal(contractABIJSON, &contractABI); err != nil {
		panic(err)
	}
	return contractABI.Functions()
}

// Function returns the ABI entry for one of the Fn constants. Unknown names
// panic, as they can only come from a programming error.
func Function(name string) *abi.Entry {
	fn := functions[name]
	if fn == nil {
		panic(fmt.Errorf("unknown contract function %q", name))
	}
	return fn
}

// BuildCall encodes a function invocation into a transaction ready for the
// ledger gateway. The inputs value is anything that marshals to the JSON
// shape of the function's ABI inputs.
func BuildCall(ctx context.Context, from, to *ethtypes.Address0xHex, fnName string, inputs interface{}) (*ethsigner.Transaction, error) {
	fn := Function(fnName)
	jsonInputs, err := json.Marshal(inputs)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidInputs, fnName)
	}
	cv, err := fn.Inputs.ParseJSONCtx(ctx, jsonInputs)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidInputs, fnName)
	}
	inputData, err := cv.EncodeABIDataCtx(ctx)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidInputs, fnName)
	}
	selector := fn.FunctionSelectorBytes()
	callData := make([]byte, len(selector)+len(inputData))
	copy(callData, selector)
	copy(callData[len(selector):], inputData)

	tx := &ethsigner.Transaction{
		To:   to,
		Data: callData,
	}
	if from != nil {
		fromJSON, _ := json.Marshal(from.String())
		tx.From = json.RawMessage(fromJSON)
	}
	return tx, nil
}

// DecodeOutputs unpacks return data into the target struct, going via the
// standard serializer so integers arrive as base-10 strings and addresses as
// 0x-prefixed hex.
func DecodeOutputs(ctx context.Context, fnName string, data []byte, target interface{}) error {
	fn := Function(fnName)
	cv, err := fn.Outputs.DecodeABIDataCtx(ctx, data, 0)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgLedgerReturnDataInvalid, fnName)
	}
	jsonData, err := serializer().SerializeJSONCtx(ctx, cv)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgLedgerReturnDataInvalid, fnName)
	}
	if err := json.Unmarshal(jsonData, target); err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgLedgerReturnDataInvalid, fnName)
	}
	return nil
}

func serializer() *abi.Serializer {
	return abi.NewSerializer().
		SetFormattingMode(abi.FormatAsObjects).
		SetIntSerializer(abi.Base10StringIntSerializer).
		SetFloatSerializer(abi.Base10StringFloatSerializer).
		SetByteSerializer(abi.HexByteSerializer0xPrefix)
}
