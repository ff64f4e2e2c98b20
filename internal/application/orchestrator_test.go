package application

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/async"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func donateBuilder(message string, value *big.Int) TxBuilder {
	return func(set entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		return contracts.DonateTx(*set.DonationContract, message, value), nil
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestOrchestrator_TransitionsIdlePendingConfirmed(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		receiptFn: func(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
			<-release
			return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(42)}, nil
		},
	}
	o := NewOrchestrator(gw, zap.NewNop())
	assert.Equal(t, entity.TxIdle, o.Status().State)

	updates, cancel := o.Subscribe()
	defer cancel()

	var states []entity.TxState
	track := func(s entity.TxState) {
		if len(states) == 0 || states[len(states)-1] != s {
			states = append(states, s)
		}
	}
	track((<-updates).Value.State)

	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("", big.NewInt(1))))

	var once sync.Once
	ctx := waitCtx(t)
	for {
		var snap entity.TransactionStatus
		select {
		case s := <-updates:
			snap = s.Value
		case <-ctx.Done():
			t.Fatalf("timed out, states so far: %v", states)
		}
		track(snap.State)
		if snap.State == entity.TxPending {
			once.Do(func() { close(release) })
		}
		if snap.State.Terminal() {
			break
		}
	}

	assert.Equal(t, []entity.TxState{entity.TxIdle, entity.TxPending, entity.TxConfirmed}, states)

	final := o.Status()
	assert.True(t, final.IsSuccess())
	require.NotNil(t, final.TransactionHash)
	assert.Equal(t, uint64(42), final.BlockNumber)
	assert.True(t, final.IsNetworkSupported)
}

func TestOrchestrator_WalletNotConnected(t *testing.T) {
	gw := &fakeGateway{}
	logger, logs := observedLogger()
	o := NewOrchestrator(gw, logger)

	err := o.Submit(context.Background(), entity.ReadOnlySession(entity.ChainIDBaseSepolia), donateBuilder("", big.NewInt(1)))
	assert.ErrorIs(t, err, domain.ErrWalletNotConnected)
	assert.Equal(t, entity.TxIdle, o.Status().State)
	assert.Empty(t, gw.submitted())

	entries := logs.FilterMessage("Wallet not connected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestOrchestrator_UnsupportedNetworkDoesNotTouchGateway(t *testing.T) {
	gw := &fakeGateway{}
	logger, logs := observedLogger()
	o := NewOrchestrator(gw, logger)

	built := false
	err := o.Submit(context.Background(), entity.NewSession(donor, entity.ChainIDEthereum),
		func(entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
			built = true
			return contracts.TransactionRequest{}, nil
		})

	assert.ErrorIs(t, err, domain.ErrUnsupportedNetwork)
	assert.False(t, built)
	assert.Empty(t, gw.submitted())
	assert.Equal(t, 0, gw.callCount())
	assert.Equal(t, entity.TxIdle, o.Status().State)
	assert.Equal(t, 1, logs.FilterMessage("Network not supported or contract address not found").Len())
}

func TestOrchestrator_BuilderErrorLeavesStatus(t *testing.T) {
	gw := &fakeGateway{}
	o := NewOrchestrator(gw, zap.NewNop())

	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("", big.NewInt(1))))
	_, err := o.Wait(waitCtx(t))
	require.NoError(t, err)
	before := o.Status()
	require.Equal(t, entity.TxConfirmed, before.State)

	err = o.Submit(context.Background(), baseSess, func(entity.NetworkAddressSet) (contracts.TransactionRequest, error) {
		return contracts.TransactionRequest{}, domain.ErrContractNotResolved
	})
	assert.ErrorIs(t, err, domain.ErrContractNotResolved)
	assert.Equal(t, before, o.Status())
	assert.Len(t, gw.submitted(), 1)
}

func TestOrchestrator_SubmissionRejected(t *testing.T) {
	rejected := errors.New("user rejected the request")
	gw := &fakeGateway{
		submitFn: func(int, contracts.TransactionRequest) (common.Hash, error) {
			return common.Hash{}, rejected
		},
	}
	o := NewOrchestrator(gw, zap.NewNop())
	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("", big.NewInt(1))))

	status, err := o.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.True(t, status.IsError())
	assert.ErrorIs(t, status.Error, rejected)
	assert.Nil(t, status.TransactionHash)
}

func TestOrchestrator_Reverted(t *testing.T) {
	gw := &fakeGateway{
		receiptFn: func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: hash, BlockNumber: big.NewInt(7)}, nil
		},
	}
	o := NewOrchestrator(gw, zap.NewNop())
	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("", big.NewInt(1))))

	status, err := o.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, entity.TxFailed, status.State)
	assert.ErrorIs(t, status.Error, domain.ErrTransactionReverted)
	assert.NotNil(t, status.TransactionHash)
}

func TestOrchestrator_NewSubmitSupersedesPrevious(t *testing.T) {
	first := common.BigToHash(big.NewInt(1))
	releaseFirst := make(chan struct{})
	firstDone := make(chan struct{})
	gw := &fakeGateway{
		receiptFn: func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			if hash == first {
				<-releaseFirst
				defer close(firstDone)
				return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: hash, BlockNumber: big.NewInt(1)}, nil
			}
			return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(2)}, nil
		},
	}
	o := NewOrchestrator(gw, zap.NewNop())

	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("a", big.NewInt(1))))
	_, err := o.cell.Wait(waitCtx(t), func(s async.Snapshot[entity.TransactionStatus]) bool { return s.Value.TransactionHash != nil })
	require.NoError(t, err)

	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("b", big.NewInt(2))))
	status, err := o.Wait(waitCtx(t))
	require.NoError(t, err)
	require.True(t, status.IsSuccess())
	second := *status.TransactionHash
	assert.NotEqual(t, first, second)

	close(releaseFirst)
	<-firstDone
	time.Sleep(10 * time.Millisecond)

	latest := o.Status()
	assert.True(t, latest.IsSuccess())
	assert.Equal(t, second, *latest.TransactionHash)
}

func TestOrchestrator_WaitHonoursContext(t *testing.T) {
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	gw := &fakeGateway{
		receiptFn: func(context.Context, common.Hash) (*types.Receipt, error) {
			<-stop
			return nil, errors.New("stopped")
		},
	}
	o := NewOrchestrator(gw, zap.NewNop())
	require.NoError(t, o.Submit(context.Background(), baseSess, donateBuilder("", big.NewInt(1))))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	status, err := o.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, status.IsLoading())
}
