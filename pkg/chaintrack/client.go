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

// Package chaintrack is the top level entry point: it wires the ledger
// gateway, the submission pipeline and the two domain surfaces (registry
// and custody) from a single configuration.
package chaintrack

import (
	"context"

	"github.com/chaintrack-io/chaintrack-go/pkg/custody"
	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/chaintrack-io/chaintrack-go/pkg/registry"
	"github.com/chaintrack-io/chaintrack-go/pkg/submission"
	"github.com/hyperledger/firefly-common/pkg/log"
)

type Client struct {
	lc       ledger.LedgerClient
	registry *registry.Registry
	custody  *custody.Custody
}

type Option func(*options)

type options struct {
	listener submission.Listener
}

// WithListener registers a stage listener invoked for every pipeline
// transition of every write submitted through this client.
func WithListener(listener submission.Listener) Option {
	return func(o *options) {
		o.listener = listener
	}
}

func New(ctx context.Context, conf *Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if conf.LogLevel != "" {
		SetLogLevel(conf.LogLevel)
	}
	contractAddr, err := conf.contractAddress(ctx)
	if err != nil {
		return nil, err
	}
	lc, err := ledger.NewLedgerClient(ctx, &conf.Ledger)
	if err != nil {
		return nil, err
	}
	pipeline := submission.NewPipeline(lc, &conf.Submission, o.listener)

	log.L(ctx).Infof("Connected to chain %d, contract %s", lc.ChainID(), contractAddr)
	return &Client{
		lc:       lc,
		registry: registry.New(lc, pipeline, contractAddr),
		custody:  custody.New(lc, pipeline, contractAddr),
	}, nil
}

// Registry is the party registration surface.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// Custody is the item minting and transfer surface.
func (c *Client) Custody() *custody.Custody {
	return c.custody
}

// Ledger exposes the underlying gateway for direct reads and receipts.
func (c *Client) Ledger() ledger.LedgerClient {
	return c.lc
}

func (c *Client) Close() {
	c.lc.Close()
}
