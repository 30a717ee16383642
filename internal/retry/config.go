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

package retry

import "github.com/chaintrack-io/chaintrack-go/internal/confutil"

type Config struct {
	InitialDelay *string  `json:"initialDelay,omitempty" yaml:"initialDelay,omitempty"`
	MaxDelay     *string  `json:"maxDelay,omitempty" yaml:"maxDelay,omitempty"`
	Factor       *float64 `json:"factor,omitempty" yaml:"factor,omitempty"`
}

type ConfigWithMax struct {
	Config      `yaml:",inline"`
	MaxAttempts *int `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
}

var Defaults = &ConfigWithMax{
	Config: Config{
		InitialDelay: confutil.P("250ms"),
		MaxDelay:     confutil.P("30s"),
		Factor:       confutil.P(2.0),
	},
	MaxAttempts: confutil.P(0), // unlimited
}
