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

import (
	"context"
	"fmt"
	"testing"

	"github.com/chaintrack-io/chaintrack-go/pkg/ledger"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxHash = "0x6ee82a39e996b5fc8e19efea0501b2e5a402dbcbd54daa8d64cec94ba46a21a8"

type fakeLedger struct {
	estimateBudget func(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error)
	submit         func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
	awaitFinality  func(ctx context.Context, txHash string) (*ledger.Receipt, error)
}

func (fl *fakeLedger) ChainID() int64 { return 12345 }
func (fl *fakeLedger) Call(ctx context.Context, tx *ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error) {
	return nil, fmt.Errorf("not implemented by test")
}
func (fl *fakeLedger) EstimateBudget(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error) {
	return fl.estimateBudget(ctx, tx)
}
func (fl *fakeLedger) Submit(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	return fl.submit(ctx, tx)
}
func (fl *fakeLedger) GetReceipt(ctx context.Context, txHash string) (*ledger.Receipt, error) {
	return nil, fmt.Errorf("not implemented by test")
}
func (fl *fakeLedger) AwaitFinality(ctx context.Context, txHash string) (*ledger.Receipt, error) {
	return fl.awaitFinality(ctx, txHash)
}
func (fl *fakeLedger) Close() {}

func goodEstimate(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error) {
	return ethtypes.NewHexInteger64(100000), nil
}

func goodReceipt(ctx context.Context, txHash string) (*ledger.Receipt, error) {
	return &ledger.Receipt{
		TransactionHash: ethtypes.MustNewHexBytes0xPrefix(txHash),
		BlockNumber:     fftypes.NewFFBigInt(10),
		Success:         true,
	}, nil
}

func newTestPipeline(fl *fakeLedger) (*Pipeline, *[]Stage) {
	stages := []Stage{}
	p := NewPipeline(fl, &Config{}, func(ev *StageEvent) {
		stages = append(stages, ev.Stage)
	})
	return p, &stages
}

func TestExecuteConfirmed(t *testing.T) {
	submits := 0
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			submits++
			// 100000 estimate with the default 1.2 buffer
			assert.Equal(t, int64(120000), tx.GasLimit.BigInt().Int64())
			return ethtypes.MustNewHexBytes0xPrefix(testTxHash), nil
		},
		awaitFinality: goodReceipt,
	}
	p, stages := newTestPipeline(fl)

	receipt, err := p.Execute(context.Background(), "addParty", &ethsigner.Transaction{})
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, 1, submits)
	assert.Equal(t, []Stage{StageEstimating, StageSubmitted, StageAwaitingFinality, StageConfirmed}, *stages)
}

func TestExecuteEstimationFailedNoSubmit(t *testing.T) {
	fl := &fakeLedger{
		estimateBudget: func(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error) {
			return nil, fmt.Errorf("pop")
		},
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			t.Fatal("must not submit after estimation failure")
			return nil, nil
		},
	}
	p, stages := newTestPipeline(fl)

	_, err := p.Execute(context.Background(), "addParty", &ethsigner.Transaction{})
	assert.Regexp(t, "CT010300.*addParty", err)
	assert.Equal(t, []Stage{StageEstimating, StageFailed}, *stages)
}

func TestExecuteBudgetBumpThenConfirmed(t *testing.T) {
	submits := 0
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			submits++
			if submits == 1 {
				assert.Equal(t, int64(120000), tx.GasLimit.BigInt().Int64())
				return nil, fmt.Errorf("intrinsic gas too low")
			}
			// one bump of 1.5x on the buffered budget
			assert.Equal(t, int64(180000), tx.GasLimit.BigInt().Int64())
			return ethtypes.MustNewHexBytes0xPrefix(testTxHash), nil
		},
		awaitFinality: goodReceipt,
	}
	p, stages := newTestPipeline(fl)

	receipt, err := p.Execute(context.Background(), "sellItem", &ethsigner.Transaction{})
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, 2, submits)
	assert.Equal(t, []Stage{StageEstimating, StageSubmitted, StageAwaitingFinality, StageConfirmed}, *stages)
}

func TestExecuteSecondBudgetFailureTerminal(t *testing.T) {
	submits := 0
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			submits++
			return nil, fmt.Errorf("transaction underpriced")
		},
	}
	p, stages := newTestPipeline(fl)

	_, err := p.Execute(context.Background(), "sellItem", &ethsigner.Transaction{})
	assert.Regexp(t, "CT010302.*sellItem.*2", err)
	assert.Equal(t, 2, submits)
	assert.Equal(t, []Stage{StageEstimating, StageFailed}, *stages)
}

func TestExecuteRejectedNoRetry(t *testing.T) {
	submits := 0
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			submits++
			return nil, fmt.Errorf("pop")
		},
	}
	p, stages := newTestPipeline(fl)

	_, err := p.Execute(context.Background(), "addNewItem", &ethsigner.Transaction{})
	assert.Regexp(t, "CT010301.*rejected", err)
	assert.Equal(t, 1, submits)
	assert.Equal(t, []Stage{StageEstimating, StageFailed}, *stages)
}

func TestExecuteFinalityTimeoutReportsHandle(t *testing.T) {
	var failedEvent *StageEvent
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			return ethtypes.MustNewHexBytes0xPrefix(testTxHash), nil
		},
		awaitFinality: func(ctx context.Context, txHash string) (*ledger.Receipt, error) {
			return nil, fmt.Errorf("context deadline exceeded")
		},
	}
	p := NewPipeline(fl, &Config{}, func(ev *StageEvent) {
		if ev.Stage == StageFailed {
			failedEvent = ev
		}
	})

	_, err := p.Execute(context.Background(), "sellItem", &ethsigner.Transaction{})
	assert.Regexp(t, "CT010304", err)
	// the write may still land - the handle stays available to the caller
	require.NotNil(t, failedEvent)
	assert.Equal(t, testTxHash, failedEvent.TxHash.String())
}

func TestExecuteRevertedOnChain(t *testing.T) {
	fl := &fakeLedger{
		estimateBudget: goodEstimate,
		submit: func(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
			return ethtypes.MustNewHexBytes0xPrefix(testTxHash), nil
		},
		awaitFinality: func(ctx context.Context, txHash string) (*ledger.Receipt, error) {
			return &ledger.Receipt{
				TransactionHash: ethtypes.MustNewHexBytes0xPrefix(txHash),
				Success:         false,
				ErrorMessage:    "not the current holder",
			}, nil
		},
	}
	p, stages := newTestPipeline(fl)

	_, err := p.Execute(context.Background(), "sellItem", &ethsigner.Transaction{})
	assert.Regexp(t, "CT010303.*not the current holder", err)
	assert.Equal(t, []Stage{StageEstimating, StageSubmitted, StageAwaitingFinality, StageFailed}, *stages)
}

func TestConfigDefaults(t *testing.T) {
	p := NewPipeline(&fakeLedger{}, &Config{}, nil)
	assert.Equal(t, 1.2, p.gasBufferFactor)
	assert.Equal(t, 1.5, p.budgetBumpFactor)
	assert.Equal(t, 1, p.maxBudgetBumps)
}
