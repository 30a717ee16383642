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

package submission

import "github.com/chaintrack-io/chaintrack-go/internal/confutil"

type Config struct {
	// GasBufferFactor is applied to every fee-budget estimate before submission
	GasBufferFactor *float64 `yaml:"gasBufferFactor"`

	// BudgetBumpFactor multiplies the budget when the ledger judged it too low
	BudgetBumpFactor *float64 `yaml:"budgetBumpFactor"`

	// MaxBudgetBumps bounds how many budget escalations a single submission
	// may make
	MaxBudgetBumps *int `yaml:"maxBudgetBumps"`

	FinalityTimeout *string `yaml:"finalityTimeout"`
}

var Defaults = &Config{
	GasBufferFactor:  confutil.P(1.2),
	BudgetBumpFactor: confutil.P(1.5),
	MaxBudgetBumps:   confutil.P(1),
	FinalityTimeout:  confutil.P("30s"),
}
