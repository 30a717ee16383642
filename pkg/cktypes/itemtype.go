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
)

// ItemType is the pharmaceutical category of an item, encoded uint8 on the
// wire.
type ItemType uint8

const (
	ItemTypeAntibiotics ItemType = 0
	ItemTypeAntimalaria ItemType = 1
	ItemTypeAnalgesics  ItemType = 2
	ItemTypeSupplements ItemType = 3
	ItemTypeSteroids    ItemType = 4
)

var itemTypeNames = map[ItemType]string{
	ItemTypeAntibiotics: "antibiotics",
	ItemTypeAntimalaria: "antimalaria",
	ItemTypeAnalgesics:  "analgesics",
	ItemTypeSupplements: "supplements",
	ItemTypeSteroids:    "steroids",
}

func (t ItemType) String() string {
	if s, ok := itemTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

func (t ItemType) Valid() bool {
	_, ok := itemTypeNames[t]
	return ok
}

func ParseItemType(ctx context.Context, s string) (ItemType, error) {
	for t, name := range itemTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, i18n.NewError(ctx, msgs.MsgTypesInvalidItemType, s)
}

func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(b []byte) error {
	parsed, err := ParseItemType(context.Background(), string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
