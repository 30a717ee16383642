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

package contract

import (
	"github.com/chaintrack-io/chaintrack-go/pkg/cktypes"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Wire structs mirror the ABI tuples. Integers travel as base-10 strings
// (FFBigInt) both ways through the standard serializer.

type AccountWire struct {
	AccountID *ethtypes.Address0xHex `json:"accountId"`
	Role      *fftypes.FFBigInt      `json:"role"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
}

type ItemWire struct {
	BarcodeID        string                 `json:"barcodeId"`
	Name             string                 `json:"name"`
	ManufacturerName string                 `json:"manufacturerName"`
	Manufacturer     *ethtypes.Address0xHex `json:"manufacturer"`
	ManufacturedDate *fftypes.FFBigInt      `json:"manufacturedDate"`
	ExpiringDate     *fftypes.FFBigInt      `json:"expiringDate"`
	IsInBatch        bool                   `json:"isInBatch"`
	BatchCount       *fftypes.FFBigInt      `json:"batchCount"`
	ItemImage        string                 `json:"itemImage"`
	ItemType         *fftypes.FFBigInt      `json:"itemType"`
	Usage            string                 `json:"usage"`
	Others           []string               `json:"others"`
}

type CustodyEntryWire struct {
	Holder        *ethtypes.Address0xHex `json:"holder"`
	Role          *fftypes.FFBigInt      `json:"role"`
	TransferredAt *fftypes.FFBigInt      `json:"transferredAt"`
}

// Decoded output shapes, keyed by the named ABI outputs.

type AccountOutput struct {
	Account *AccountWire `json:"account"`
}

type PartiesOutput struct {
	Parties []*AccountWire `json:"parties"`
}

type ItemsOutput struct {
	Items []*ItemWire `json:"items"`
}

type SingleItemOutput struct {
	Item    *ItemWire           `json:"item"`
	History []*CustodyEntryWire `json:"history"`
}

// AddPartyInputs is the flat input tuple of addParty.
type AddPartyInputs struct {
	Role      uint8                  `json:"role"`
	AccountID *ethtypes.Address0xHex `json:"accountId"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
}

type AddNewItemInputs struct {
	Item      *ItemWire         `json:"item"`
	Timestamp *fftypes.FFBigInt `json:"timestamp"`
}

type SellItemInputs struct {
	Buyer     *ethtypes.Address0xHex `json:"buyer"`
	BarcodeID string                 `json:"barcodeId"`
	Timestamp *fftypes.FFBigInt      `json:"timestamp"`
}

type GetAccountDetailsInputs struct {
	AccountID *ethtypes.Address0xHex `json:"accountId"`
}

type GetSingleItemInputs struct {
	BarcodeID string `json:"barcodeId"`
}

func (w *AccountWire) ToAccount() *cktypes.Account {
	if w == nil {
		return nil
	}
	return &cktypes.Account{
		AccountID: w.AccountID,
		Role:      cktypes.Role(bigToInt64(w.Role)),
		Name:      w.Name,
		Email:     w.Email,
	}
}

func AccountsToDomain(wires []*AccountWire) []*cktypes.Account {
	accounts := make([]*cktypes.Account, len(wires))
	for i, w := range wires {
		accounts[i] = w.ToAccount()
	}
	return accounts
}

func (w *ItemWire) ToItem() *cktypes.Item {
	if w == nil {
		return nil
	}
	return &cktypes.Item{
		BarcodeID:        w.BarcodeID,
		Name:             w.Name,
		ManufacturerName: w.ManufacturerName,
		Manufacturer:     w.Manufacturer,
		ManufacturedDate: bigToInt64(w.ManufacturedDate),
		ExpiringDate:     bigToInt64(w.ExpiringDate),
		IsInBatch:        w.IsInBatch,
		BatchCount:       bigToInt64(w.BatchCount),
		ItemImage:        w.ItemImage,
		ItemType:         cktypes.ItemType(bigToInt64(w.ItemType)),
		Usage:            w.Usage,
		Others:           w.Others,
	}
}

func ItemsToDomain(wires []*ItemWire) []*cktypes.Item {
	items := make([]*cktypes.Item, len(wires))
	for i, w := range wires {
		items[i] = w.ToItem()
	}
	return items
}

func ItemToWire(item *cktypes.Item) *ItemWire {
	others := item.Others
	if others == nil {
		others = []string{}
	}
	return &ItemWire{
		BarcodeID:        item.BarcodeID,
		Name:             item.Name,
		ManufacturerName: item.ManufacturerName,
		Manufacturer:     item.Manufacturer,
		ManufacturedDate: fftypes.NewFFBigInt(item.ManufacturedDate),
		ExpiringDate:     fftypes.NewFFBigInt(item.ExpiringDate),
		IsInBatch:        item.IsInBatch,
		BatchCount:       fftypes.NewFFBigInt(item.BatchCount),
		ItemImage:        item.ItemImage,
		ItemType:         fftypes.NewFFBigInt(int64(item.ItemType)),
		Usage:            item.Usage,
		Others:           others,
	}
}

func HistoryToDomain(wires []*CustodyEntryWire) cktypes.CustodyRecord {
	record := make(cktypes.CustodyRecord, len(wires))
	for i, w := range wires {
		record[i] = &cktypes.CustodyEntry{
			Holder:        w.Holder,
			Role:          cktypes.Role(bigToInt64(w.Role)),
			TransferredAt: bigToInt64(w.TransferredAt),
		}
	}
	return record
}

func bigToInt64(v *fftypes.FFBigInt) int64 {
	if v == nil {
		return 0
	}
	return v.Int().Int64()
}
