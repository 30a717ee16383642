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

package chaintrack

import (
	"context"
	"strings"

	"github.com/chaintrack-io/chaintrack-go/internal/confutil"
	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/chaintrack-io/chaintrack-go/pkg/submission"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// ContractAddress is the deployed traceability contract all operations
	// are routed to
	ContractAddress string `yaml:"contractAddress"`

	// LogLevel adjusts the process-wide log level when set
	LogLevel string `yaml:"logLevel"`

	Ledger     ledger.Config     `yaml:"ledger"`
	Submission submission.Config `yaml:"submission"`
}

// SetLogLevel applies a level string to the process-wide logger. Unknown
// levels fall back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// ReadConfig parses a YAML config file. Defaults for anything unset are
// applied by the component constructors, not here.
func ReadConfig(ctx context.Context, filePath string) (*Config, error) {
	var conf Config
	if err := confutil.ReadAndParseYAMLFile(ctx, filePath, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) contractAddress(ctx context.Context) (*ethtypes.Address0xHex, error) {
	if c.ContractAddress == "" {
		return nil, i18n.NewError(ctx, msgs.MsgLedgerContractAddressMissing)
	}
	addr, err := ethtypes.NewAddress(c.ContractAddress)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgConfigInvalidAddress, c.ContractAddress)
	}
	return addr, nil
}
