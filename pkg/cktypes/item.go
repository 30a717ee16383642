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
	"net/url"

	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Item is a traceable unit minted by a manufacturer. All fields are immutable
// after creation; the custody state is tracked separately.
type Item struct {
	BarcodeID        string                 `json:"barcodeId"`
	Name             string                 `json:"name"`
	ManufacturerName string                 `json:"manufacturerName"`
	Manufacturer     *ethtypes.Address0xHex `json:"manufacturer"`
	ManufacturedDate int64                  `json:"manufacturedDate"` // unix seconds
	ExpiringDate     int64                  `json:"expiringDate"`     // unix seconds
	IsInBatch        bool                   `json:"isInBatch"`
	BatchCount       int64                  `json:"batchCount"`
	ItemImage        string                 `json:"itemImage,omitempty"`
	ItemType         ItemType               `json:"itemType"`
	Usage            string                 `json:"usage"`

	// Others carries side effects followed by composition, in the order the
	// manufacturer supplied them. The split point is floor(len/2).
	Others []string `json:"others"`
}

// SideEffects returns the first half of the others sequence.
func (i *Item) SideEffects() []string {
	return i.Others[:len(i.Others)/2]
}

// Composition returns the second half of the others sequence.
func (i *Item) Composition() []string {
	return i.Others[len(i.Others)/2:]
}

func (i *Item) Validate(ctx context.Context) error {
	switch {
	case i.BarcodeID == "":
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "barcodeId")
	case i.Name == "":
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "name")
	case i.ManufacturerName == "":
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "manufacturerName")
	case i.ManufacturedDate == 0:
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "manufacturedDate")
	case i.ExpiringDate == 0:
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "expiringDate")
	case i.Usage == "":
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "usage")
	}
	if i.BatchCount < 0 {
		return i18n.NewError(ctx, msgs.MsgTypesRequiredField, "batchCount")
	}
	if !i.ItemType.Valid() {
		return i18n.NewError(ctx, msgs.MsgTypesInvalidItemType, i.ItemType)
	}
	if i.ExpiringDate < i.ManufacturedDate {
		return i18n.NewError(ctx, msgs.MsgTypesDatesOutOfOrder, i.ExpiringDate, i.ManufacturedDate)
	}
	if i.ItemImage != "" {
		u, err := url.Parse(i.ItemImage)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return i18n.NewError(ctx, msgs.MsgTypesInvalidImageURL, i.ItemImage)
		}
	}
	return nil
}
