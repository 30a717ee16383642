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

// CustodyEntry is one hop in an item's custody chain.
type CustodyEntry struct {
	Holder        *ethtypes.Address0xHex `json:"holder"`
	Role          Role                   `json:"role"`
	TransferredAt int64                  `json:"transferredAt"` // unix seconds
}

// CustodyRecord is the append-only custody chain, ordered from creation to
// current holder.
type CustodyRecord []*CustodyEntry

// CurrentHolder returns the last entry, or nil for an empty record.
func (r CustodyRecord) CurrentHolder() *CustodyEntry {
	if len(r) == 0 {
		return nil
	}
	return r[len(r)-1]
}

// NeverSold reports whether the item is still held by its manufacturer.
func (r CustodyRecord) NeverSold() bool {
	return len(r) == 1
}

// Manufacturer, Distributor and Retailer return the display entries at the
// fixed cascade positions, nil when the chain has not reached that hop.
func (r CustodyRecord) Manufacturer() *CustodyEntry { return r.at(0) }
func (r CustodyRecord) Distributor() *CustodyEntry  { return r.at(1) }
func (r CustodyRecord) Retailer() *CustodyEntry     { return r.at(2) }

func (r CustodyRecord) at(i int) *CustodyEntry {
	if i >= len(r) {
		return nil
	}
	return r[i]
}

// Validate checks the record obeys the cascade: non-empty, starts at the
// manufacturer, and each hop advances the role exactly one step.
func (r CustodyRecord) Validate(ctx context.Context) error {
	if len(r) == 0 {
		return i18n.NewError(ctx, msgs.MsgTypesEmptyCustodyRecord)
	}
	if r[0].Role != RoleManufacturer {
		return i18n.NewError(ctx, msgs.MsgTypesFirstHolderNotMaker, r[0].Role)
	}
	for i := 1; i < len(r); i++ {
		next, ok := r[i-1].Role.Next()
		if !ok || r[i].Role != next {
			return i18n.NewError(ctx, msgs.MsgTypesCascadeBroken, i, r[i].Role, r[i-1].Role)
		}
	}
	return nil
}
