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

// Role is a position in the fixed supply-chain hierarchy. The wire encoding
// (uint8) is part of the contract interface and must not change.
type Role uint8

const (
	RoleManufacturer Role = 0
	RoleDistributor  Role = 1
	RoleRetailer     Role = 2
	RoleCustomer     Role = 3
)

var roleNames = map[Role]string{
	RoleManufacturer: "manufacturer",
	RoleDistributor:  "distributor",
	RoleRetailer:     "retailer",
	RoleCustomer:     "customer",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Next returns the only role this role is permitted to register or sell to.
// The second return is false for the customer, which is terminal.
func (r Role) Next() (Role, bool) {
	if !r.Valid() || r == RoleCustomer {
		return 0, false
	}
	return r + 1, true
}

func ParseRole(ctx context.Context, s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, i18n.NewError(ctx, msgs.MsgTypesInvalidRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(context.Background(), string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
