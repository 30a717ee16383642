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

package ledger

import (
	"context"
	"net/url"

	"github.com/chaintrack-io/chaintrack-go/internal/confutil"
	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/internal/retry"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/ffresty"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type ConfigAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type HTTPConfig struct {
	URL            string                 `yaml:"url"`
	HTTPHeaders    map[string]interface{} `yaml:"httpHeaders"`
	Auth           ConfigAuth             `yaml:"auth"`
	RequestTimeout *string                `yaml:"requestTimeout"`
}

type Config struct {
	HTTP HTTPConfig `yaml:"http"`

	// ReceiptPolling paces the receipt poll loop inside AwaitFinality. The
	// overall wait is bounded by the caller's context, not by this config.
	ReceiptPolling retry.Config `yaml:"receiptPolling"`
}

var Defaults = &Config{
	HTTP: HTTPConfig{
		RequestTimeout: confutil.P("30s"),
	},
	ReceiptPolling: retry.Config{
		InitialDelay: confutil.P("500ms"),
		MaxDelay:     confutil.P("5s"),
		Factor:       confutil.P(2.0),
	},
}

func parseHTTPConfig(ctx context.Context, config *HTTPConfig) (*resty.Client, error) {
	if config.URL == "" {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerURLMissing)
	}
	u, err := url.Parse(config.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgLedgerInvalidURL, config.URL)
	}
	client := ffresty.NewWithConfig(ctx, ffresty.Config{
		URL: u.String(),
		HTTPConfig: ffresty.HTTPConfig{
			HTTPHeaders:  config.HTTPHeaders,
			AuthUsername: config.Auth.Username,
			AuthPassword: config.Auth.Password,
		},
	})
	client.SetTimeout(confutil.DurationMin(config.RequestTimeout, 0, *Defaults.HTTP.RequestTimeout))
	return client, nil
}
