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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCascade(t *testing.T) {
	next, ok := RoleManufacturer.Next()
	require.True(t, ok)
	assert.Equal(t, RoleDistributor, next)

	next, ok = RoleDistributor.Next()
	require.True(t, ok)
	assert.Equal(t, RoleRetailer, next)

	next, ok = RoleRetailer.Next()
	require.True(t, ok)
	assert.Equal(t, RoleCustomer, next)

	_, ok = RoleCustomer.Next()
	assert.False(t, ok)

	_, ok = Role(42).Next()
	assert.False(t, ok)
}

func TestRoleStrings(t *testing.T) {
	assert.Equal(t, "manufacturer", RoleManufacturer.String())
	assert.Equal(t, "customer", RoleCustomer.String())
	assert.Equal(t, "unknown", Role(42).String())
	assert.False(t, Role(42).Valid())

	r, err := ParseRole(context.Background(), "retailer")
	require.NoError(t, err)
	assert.Equal(t, RoleRetailer, r)

	_, err = ParseRole(context.Background(), "wholesaler")
	assert.Regexp(t, "CT010001", err)
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(RoleDistributor)
	require.NoError(t, err)
	assert.Equal(t, `"distributor"`, string(b))

	var r Role
	err = json.Unmarshal([]byte(`"customer"`), &r)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, r)

	err = json.Unmarshal([]byte(`"wizard"`), &r)
	assert.Regexp(t, "CT010001", err)
}

func TestItemTypeStrings(t *testing.T) {
	assert.Equal(t, "analgesics", ItemTypeAnalgesics.String())
	assert.Equal(t, "unknown", ItemType(99).String())

	it, err := ParseItemType(context.Background(), "steroids")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeSteroids, it)

	_, err = ParseItemType(context.Background(), "placebo")
	assert.Regexp(t, "CT010003", err)

	var parsed ItemType
	err = parsed.UnmarshalText([]byte("supplements"))
	require.NoError(t, err)
	assert.Equal(t, ItemTypeSupplements, parsed)
}
