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

// Package submission drives a state-changing transaction through the ledger:
// estimate a fee budget, submit, escalate the budget at most a configured
// number of times, then wait for the finality signal.
package submission

import (
	"context"
	"math/big"
	"time"

	"github.com/chaintrack-io/chaintrack-go/internal/confutil"
	"github.com/chaintrack-io/chaintrack-go/internal/msgs"
	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type Stage string

const (
	StageEstimating       Stage = "estimating"
	StageSubmitted        Stage = "submitted"
	StageAwaitingFinality Stage = "awaiting_finality"
	StageConfirmed        Stage = "confirmed"
	StageFailed           Stage = "failed"
)

// StageEvent is emitted on every stage transition of a submission. TxHash is
// set from StageSubmitted onwards: even when the pipeline later reports
// failure to finalize, the handle lets a caller keep watching, because a
// submitted write cannot be revoked.
type StageEvent struct {
	SubmissionID uuid.UUID
	Operation    string
	Stage        Stage
	TxHash       ethtypes.HexBytes0xPrefix
	Receipt      *ledger.Receipt
	Err          error
}

type Listener func(event *StageEvent)

// Pipeline executes submissions one at a time per call, with no shared
// mutable state beyond the ledger client. Safe for concurrent Execute calls.
type Pipeline struct {
	lc               ledger.LedgerClient
	gasBufferFactor  float64
	budgetBumpFactor float64
	maxBudgetBumps   int
	finalityTimeout  time.Duration
	listener         Listener
}

func NewPipeline(lc ledger.LedgerClient, conf *Config, listener Listener) *Pipeline {
	return &Pipeline{
		lc:               lc,
		gasBufferFactor:  confutil.Float64Min(conf.GasBufferFactor, 1.0, *Defaults.GasBufferFactor),
		budgetBumpFactor: confutil.Float64Min(conf.BudgetBumpFactor, 1.0, *Defaults.BudgetBumpFactor),
		maxBudgetBumps:   confutil.IntMin(conf.MaxBudgetBumps, 0, *Defaults.MaxBudgetBumps),
		finalityTimeout:  confutil.DurationMin(conf.FinalityTimeout, 0, *Defaults.FinalityTimeout),
		listener:         listener,
	}
}

// Execute runs the full pipeline for one prepared transaction, returning the
// receipt on confirmation. Any returned error is terminal for this
// submission: the single budget escalation has already happened inside.
func (p *Pipeline) Execute(ctx context.Context, operation string, tx *ethsigner.Transaction) (*ledger.Receipt, error) {
	ev := &StageEvent{
		SubmissionID: uuid.New(),
		Operation:    operation,
	}
	log.L(ctx).Infof("Submission %s starting operation=%s", ev.SubmissionID, operation)

	p.emit(ctx, ev, StageEstimating, nil)
	estimate, err := p.lc.EstimateBudget(ctx, tx)
	if err != nil {
		err = i18n.WrapError(ctx, err, msgs.MsgPipelineEstimationFailed, operation)
		p.emit(ctx, ev, StageFailed, err)
		return nil, err
	}
	budget := factored(estimate.BigInt(), p.gasBufferFactor)

	submissions := 0
	for {
		submissions++
		tx.GasLimit = ethtypes.NewHexInteger(budget)
		txHash, submitErr := p.lc.Submit(ctx, tx)
		if submitErr != nil {
			reason := ledger.MapError(submitErr)
			if reason == ledger.ErrorReasonBudgetTooLow {
				if submissions <= p.maxBudgetBumps {
					budget = factored(budget, p.budgetBumpFactor)
					log.L(ctx).Warnf("Submission %s budget too low, bumping to %s (submission=%d)", ev.SubmissionID, budget, submissions)
					continue
				}
				err = i18n.WrapError(ctx, submitErr, msgs.MsgPipelineBudgetExhausted, operation, submissions)
				p.emit(ctx, ev, StageFailed, err)
				return nil, err
			}
			err = i18n.WrapError(ctx, submitErr, msgs.MsgPipelineSubmitRejected, operation, reason)
			p.emit(ctx, ev, StageFailed, err)
			return nil, err
		}
		ev.TxHash = txHash
		p.emit(ctx, ev, StageSubmitted, nil)
		break
	}

	p.emit(ctx, ev, StageAwaitingFinality, nil)
	waitCtx, cancel := context.WithTimeout(ctx, p.finalityTimeout)
	defer cancel()
	receipt, err := p.lc.AwaitFinality(waitCtx, ev.TxHash.String())
	if err != nil {
		if ledger.MapError(err) == ledger.ErrorReasonTimeout {
			err = i18n.WrapError(ctx, err, msgs.MsgPipelineFinalityTimeout, ev.TxHash, p.finalityTimeout)
		}
		p.emit(ctx, ev, StageFailed, err)
		return nil, err
	}
	ev.Receipt = receipt

	if !receipt.Success {
		err = i18n.NewError(ctx, msgs.MsgPipelineExecutionReverted, ev.TxHash, receipt.ErrorMessage)
		p.emit(ctx, ev, StageFailed, err)
		return nil, err
	}

	p.emit(ctx, ev, StageConfirmed, nil)
	log.L(ctx).Infof("Submission %s confirmed txHash=%s block=%s", ev.SubmissionID, ev.TxHash, receipt.BlockNumber.Int())
	return receipt, nil
}

func (p *Pipeline) emit(ctx context.Context, ev *StageEvent, stage Stage, err error) {
	ev.Stage = stage
	ev.Err = err
	log.L(ctx).Debugf("Submission %s stage=%s", ev.SubmissionID, stage)
	if p.listener != nil {
		eventCopy := *ev
		p.listener(&eventCopy)
	}
}

func factored(v *big.Int, factor float64) *big.Int {
	f := new(big.Float).SetInt(v)
	f = f.Mul(f, big.NewFloat(factor))
	result, _ := f.Int(nil)
	return result
}
