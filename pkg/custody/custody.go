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

// Package custody mints items and moves them along the role cascade. Every
// write is pre-validated against current ledger state so cascade violations
// surface as catalog errors before any budget is spent.
package custody

import (
	"context"

	"github.com/chaintrack-io/chaintrack-go/internal/contract"
	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/pkg/cktypes"
	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/chaintrack-io/chaintrack-go/pkg/submission"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// ItemView is a fully reconstructed item: the immutable detail, the custody
// chain, and the display accounts at each fixed cascade position. Account
// lookups are best effort, a position whose party cannot be resolved is nil.
type ItemView struct {
	Item         *cktypes.Item         `json:"item"`
	Custody      cktypes.CustodyRecord `json:"custody"`
	Manufacturer *cktypes.Account      `json:"manufacturer,omitempty"`
	Distributor  *cktypes.Account      `json:"distributor,omitempty"`
	Retailer     *cktypes.Account      `json:"retailer,omitempty"`
}

type Custody struct {
	lc       ledger.LedgerClient
	pipeline *submission.Pipeline
	to       *ethtypes.Address0xHex
}

func New(lc ledger.LedgerClient, pipeline *submission.Pipeline, contractAddr *ethtypes.Address0xHex) *Custody {
	return &Custody{
		lc:       lc,
		pipeline: pipeline,
		to:       contractAddr,
	}
}

// CreateItem mints a new item with the caller as manufacturer and sole
// custody holder. A revert from a validated mint means the barcode is
// already taken.
func (c *Custody) CreateItem(ctx context.Context, caller *ethtypes.Address0xHex, item *cktypes.Item, mintedAt int64) (*ledger.Receipt, error) {
	callerAccount, err := c.accountDetails(ctx, caller, caller)
	if err != nil {
		return nil, err
	}
	if !callerAccount.Registered() {
		return nil, i18n.NewError(ctx, msgs.MsgRegistryCallerUnknown, caller)
	}
	if callerAccount.Role != cktypes.RoleManufacturer {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyNotManufacturer, callerAccount.Role)
	}

	item.Manufacturer = caller
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	log.L(ctx).Infof("Minting item %s by %s", item.BarcodeID, caller)
	tx, err := contract.BuildCall(ctx, caller, c.to, contract.FnAddNewItem, &contract.AddNewItemInputs{
		Item:      contract.ItemToWire(item),
		Timestamp: fftypes.NewFFBigInt(mintedAt),
	})
	if err != nil {
		return nil, err
	}
	receipt, err := c.pipeline.Execute(ctx, contract.FnAddNewItem, tx)
	if err != nil {
		if ledger.MapError(err) == ledger.ErrorReasonReverted {
			return nil, i18n.WrapError(ctx, err, msgs.MsgCustodyDuplicateItem, item.BarcodeID)
		}
		return nil, err
	}
	return receipt, nil
}

// TransferCustody sells an item to the next party in the cascade. The
// current custody state and the buyer's registration are read back first,
// so every precondition failure is reported without touching the pipeline.
func (c *Custody) TransferCustody(ctx context.Context, caller *ethtypes.Address0xHex, barcodeID string, buyer *ethtypes.Address0xHex, transferredAt int64) (*ledger.Receipt, error) {
	if transferredAt == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyTransferTimestampZero)
	}

	view, err := c.singleItem(ctx, caller, barcodeID)
	if err != nil {
		return nil, err
	}
	holder := view.Custody.CurrentHolder()
	if holder == nil || holder.Holder == nil || *holder.Holder != *caller {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyNotCurrentHolder, caller, barcodeID)
	}
	nextRole, ok := holder.Role.Next()
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyTerminalHolder, barcodeID)
	}

	buyerAccount, err := c.accountDetails(ctx, caller, buyer)
	if err != nil {
		return nil, err
	}
	if !buyerAccount.Registered() {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyBuyerUnknown, buyer)
	}
	if buyerAccount.Role != nextRole {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyInvalidSuccessorRole, buyer, buyerAccount.Role, holder.Role, nextRole)
	}

	log.L(ctx).Infof("Transferring item %s from %s to %s", barcodeID, caller, buyer)
	tx, err := contract.BuildCall(ctx, caller, c.to, contract.FnSellItem, &contract.SellItemInputs{
		Buyer:     buyer,
		BarcodeID: barcodeID,
		Timestamp: fftypes.NewFFBigInt(transferredAt),
	})
	if err != nil {
		return nil, err
	}
	return c.pipeline.Execute(ctx, contract.FnSellItem, tx)
}

// GetItem reconstructs the full view of one item, resolving the display
// accounts for each custody position that has been reached.
func (c *Custody) GetItem(ctx context.Context, caller *ethtypes.Address0xHex, barcodeID string) (*ItemView, error) {
	view, err := c.singleItem(ctx, caller, barcodeID)
	if err != nil {
		return nil, err
	}
	view.Manufacturer = c.resolveHolder(ctx, caller, view.Custody.Manufacturer())
	view.Distributor = c.resolveHolder(ctx, caller, view.Custody.Distributor())
	view.Retailer = c.resolveHolder(ctx, caller, view.Custody.Retailer())
	return view, nil
}

// GetAllItems returns every item on the ledger.
func (c *Custody) GetAllItems(ctx context.Context, caller *ethtypes.Address0xHex) ([]*cktypes.Item, error) {
	return c.itemList(ctx, caller, contract.FnGetAllItems)
}

// GetMyItems returns the items the caller currently holds.
func (c *Custody) GetMyItems(ctx context.Context, caller *ethtypes.Address0xHex) ([]*cktypes.Item, error) {
	return c.itemList(ctx, caller, contract.FnGetMyItems)
}

func (c *Custody) itemList(ctx context.Context, caller *ethtypes.Address0xHex, fnName string) ([]*cktypes.Item, error) {
	tx, err := contract.BuildCall(ctx, caller, c.to, fnName, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	data, err := c.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.ItemsOutput
	if err := contract.DecodeOutputs(ctx, fnName, data, &out); err != nil {
		return nil, err
	}
	return contract.ItemsToDomain(out.Items), nil
}

// singleItem reads one item and its custody history. The contract returns an
// all-zero tuple for unknown barcodes, detected by the barcode mismatch.
func (c *Custody) singleItem(ctx context.Context, caller *ethtypes.Address0xHex, barcodeID string) (*ItemView, error) {
	tx, err := contract.BuildCall(ctx, caller, c.to, contract.FnGetSingleItem, &contract.GetSingleItemInputs{
		BarcodeID: barcodeID,
	})
	if err != nil {
		return nil, err
	}
	data, err := c.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.SingleItemOutput
	if err := contract.DecodeOutputs(ctx, contract.FnGetSingleItem, data, &out); err != nil {
		return nil, err
	}
	item := out.Item.ToItem()
	if item.BarcodeID != barcodeID {
		return nil, i18n.NewError(ctx, msgs.MsgCustodyItemNotFound, barcodeID)
	}
	return &ItemView{
		Item:    item,
		Custody: contract.HistoryToDomain(out.History),
	}, nil
}

func (c *Custody) resolveHolder(ctx context.Context, caller *ethtypes.Address0xHex, entry *cktypes.CustodyEntry) *cktypes.Account {
	if entry == nil {
		return nil
	}
	account, err := c.accountDetails(ctx, caller, entry.Holder)
	if err != nil || !account.Registered() {
		log.L(ctx).Debugf("Could not resolve custody holder %s: %v", entry.Holder, err)
		return nil
	}
	return account
}

func (c *Custody) accountDetails(ctx context.Context, caller, accountID *ethtypes.Address0xHex) (*cktypes.Account, error) {
	tx, err := contract.BuildCall(ctx, caller, c.to, contract.FnGetAccountDetails, &contract.GetAccountDetailsInputs{
		AccountID: accountID,
	})
	if err != nil {
		return nil, err
	}
	data, err := c.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.AccountOutput
	if err := contract.DecodeOutputs(ctx, contract.FnGetAccountDetails, data, &out); err != nil {
		return nil, err
	}
	return out.Account.ToAccount(), nil
}
