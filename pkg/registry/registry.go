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

// Package registry enforces the role cascade for new-party registrations:
// each role may register only the next role in the fixed hierarchy
// manufacturer, distributor, retailer, customer.
package registry

import (
	"context"

	"github.com/chaintrack-io/chaintrack-go/internal/contract"
	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/pkg/cktypes"
	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/chaintrack-io/chaintrack-go/pkg/submission"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// NewParty is a registration request. The role must be exactly the caller's
// successor role, which is checked before any ledger write.
type NewParty struct {
	AccountID *ethtypes.Address0xHex `json:"accountId"`
	Role      cktypes.Role           `json:"role"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
}

type Registry struct {
	lc       ledger.LedgerClient
	pipeline *submission.Pipeline
	to       *ethtypes.Address0xHex
}

func New(lc ledger.LedgerClient, pipeline *submission.Pipeline, contractAddr *ethtypes.Address0xHex) *Registry {
	return &Registry{
		lc:       lc,
		pipeline: pipeline,
		to:       contractAddr,
	}
}

// RegisterParty validates the cascade client-side, then submits addParty
// through the pipeline. The ledger is the final arbiter: a revert on a
// cascade-valid registration means the account already exists.
func (r *Registry) RegisterParty(ctx context.Context, caller *ethtypes.Address0xHex, party *NewParty) (*ledger.Receipt, error) {
	newAccount := &cktypes.Account{
		AccountID: party.AccountID,
		Role:      party.Role,
		Name:      party.Name,
		Email:     party.Email,
	}
	if err := newAccount.Validate(ctx); err != nil {
		return nil, err
	}

	callerAccount, err := r.accountDetails(ctx, caller, caller)
	if err != nil {
		return nil, err
	}
	if !callerAccount.Registered() {
		return nil, i18n.NewError(ctx, msgs.MsgRegistryCallerUnknown, caller)
	}
	next, ok := callerAccount.Role.Next()
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgRegistryCallerTerminalRole, callerAccount.Role)
	}
	if party.Role != next {
		return nil, i18n.NewError(ctx, msgs.MsgRegistryRoleCascade, callerAccount.Role, next, party.Role)
	}

	log.L(ctx).Infof("Registering party %s role=%s by %s", party.AccountID, party.Role, caller)
	tx, err := contract.BuildCall(ctx, caller, r.to, contract.FnAddParty, &contract.AddPartyInputs{
		Role:      uint8(party.Role),
		AccountID: party.AccountID,
		Name:      party.Name,
		Email:     party.Email,
	})
	if err != nil {
		return nil, err
	}
	receipt, err := r.pipeline.Execute(ctx, contract.FnAddParty, tx)
	if err != nil {
		if ledger.MapError(err) == ledger.ErrorReasonReverted {
			return nil, i18n.WrapError(ctx, err, msgs.MsgRegistryDuplicateAccount, party.AccountID)
		}
		return nil, err
	}
	return receipt, nil
}

// MyDetails returns the caller's own registration.
func (r *Registry) MyDetails(ctx context.Context, caller *ethtypes.Address0xHex) (*cktypes.Account, error) {
	tx, err := contract.BuildCall(ctx, caller, r.to, contract.FnGetMyDetails, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	data, err := r.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.AccountOutput
	if err := contract.DecodeOutputs(ctx, contract.FnGetMyDetails, data, &out); err != nil {
		return nil, err
	}
	account := out.Account.ToAccount()
	if !account.Registered() {
		return nil, i18n.NewError(ctx, msgs.MsgRegistryCallerUnknown, caller)
	}
	return account, nil
}

// MyAccountsList returns the parties the caller has registered (its direct
// successors in the cascade).
func (r *Registry) MyAccountsList(ctx context.Context, caller *ethtypes.Address0xHex) ([]*cktypes.Account, error) {
	tx, err := contract.BuildCall(ctx, caller, r.to, contract.FnGetMyAccountsList, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	data, err := r.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.PartiesOutput
	if err := contract.DecodeOutputs(ctx, contract.FnGetMyAccountsList, data, &out); err != nil {
		return nil, err
	}
	return contract.AccountsToDomain(out.Parties), nil
}

// AccountDetails looks up any account by identifier. An unregistered address
// returns an account that fails Registered().
func (r *Registry) AccountDetails(ctx context.Context, caller, accountID *ethtypes.Address0xHex) (*cktypes.Account, error) {
	return r.accountDetails(ctx, caller, accountID)
}

func (r *Registry) accountDetails(ctx context.Context, caller, accountID *ethtypes.Address0xHex) (*cktypes.Account, error) {
	tx, err := contract.BuildCall(ctx, caller, r.to, contract.FnGetAccountDetails, &contract.GetAccountDetailsInputs{
		AccountID: accountID,
	})
	if err != nil {
		return nil, err
	}
	data, err := r.lc.Call(ctx, tx, "latest")
	if err != nil {
		return nil, err
	}
	var out contract.AccountOutput
	if err := contract.DecodeOutputs(ctx, contract.FnGetAccountDetails, data, &out); err != nil {
		return nil, err
	}
	return out.Account.ToAccount(), nil
}
