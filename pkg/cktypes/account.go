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

package cktypes

import (
	"context"

	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Account is a registered party on the ledger. Accounts are immutable once
// registered, and the role never changes.
type Account struct {
	AccountID *ethtypes.Address0xHex `json:"accountId"`
	Role      Role                   `json:"role"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
}

// Registered reports whether the account exists on the ledger. The contract
// returns a zeroed struct for unknown addresses.
func (a *Account) Registered() bool {
	return a != nil && a.AccountID != nil && *a.AccountID != (ethtypes.Address0xHex{})
}

func (a *Account) Validate(ctx context.Context) error {
	if a.AccountID == nil || *a.AccountID == (ethtypes.Address0xHex{}) {
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "accountId")
	}
	if !a.Role.Valid() {
		return i18n.NewError(ctx, msgs.MsgTypesInvalidRole, a.Role)
	}
	if a.Name == "" {
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "name")
	}
	if a.Email == "" {
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "email")
	}
	return nil
}
