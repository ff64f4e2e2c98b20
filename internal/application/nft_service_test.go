package application

import (
	"context"
	"math/big"
	"testing"
	"time"

	"bam-donation/internal/config"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProjectDonations(t *testing.T) {
	all := []entity.Donation{
		{Message: "zero"}, {Message: "one"}, {Message: "two"},
	}

	tests := []struct {
		name    string
		indices []*big.Int
		all     []entity.Donation
		want    []string
	}{
		{name: "not loaded", indices: []*big.Int{big.NewInt(0)}, all: nil, want: []string{}},
		{name: "no indices", indices: nil, all: all, want: []string{}},
		{name: "gather", indices: []*big.Int{big.NewInt(2), big.NewInt(0)}, all: all, want: []string{"two", "zero"}},
		{name: "out of range skipped", indices: []*big.Int{big.NewInt(1), big.NewInt(9)}, all: all, want: []string{"one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectDonations(tt.indices, tt.all, zap.NewNop())
			require.NotNil(t, got)
			msgs := make([]string, 0, len(got))
			for _, d := range got {
				msgs = append(msgs, d.Message)
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestDonationsByDonor_Projection(t *testing.T) {
	all := packedDonations(t, record(1, "first"), record(2, "second"), record(3, "third"))
	gw := &fakeGateway{
		callFn: func(req contracts.CallRequest) ([]any, error) {
			switch req.Method {
			case contracts.MethodGetDonationIndices:
				return []any{[]*big.Int{big.NewInt(0), big.NewInt(2)}}, nil
			case contracts.MethodGetAllDonations:
				return all, nil
			}
			return nil, assert.AnError
		},
	}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	res, err := svc.DonationsByDonor(context.Background(), baseSess, donor)
	require.NoError(t, err)
	assert.False(t, res.IsLoading)
	assert.True(t, res.IsNetworkSupported)
	require.Len(t, res.DonationIndices, 2)
	require.Len(t, res.Donations, 2)
	assert.Equal(t, "first", res.Donations[0].Message)
	assert.Equal(t, "third", res.Donations[1].Message)
}

func TestDonationsByDonor_EmptyWhileAllDonationsLoading(t *testing.T) {
	release := make(chan struct{})
	indicesDone := make(chan struct{})
	all := packedDonations(t, record(1, "only"))
	gw := &fakeGateway{
		callFn: func(req contracts.CallRequest) ([]any, error) {
			if req.Method == contracts.MethodGetDonationIndices {
				defer close(indicesDone)
				return []any{[]*big.Int{big.NewInt(0)}}, nil
			}
			<-release
			return all, nil
		},
	}
	view := newDonorDonationsView(testDeps(gw), baseSess, donor)

	loaded := make(chan error, 1)
	go func() { loaded <- view.Load(context.Background()) }()

	<-indicesDone
	require.Eventually(t, func() bool {
		return view.indices.Result().IsSuccess && view.all.Result().IsLoading
	}, time.Second, time.Millisecond)

	partial := view.Result()
	assert.Empty(t, partial.Donations)
	assert.NotNil(t, partial.Donations)
	assert.Len(t, partial.DonationIndices, 1)
	assert.True(t, partial.IsLoading)

	close(release)
	require.NoError(t, <-loaded)

	final := view.Result()
	assert.False(t, final.IsLoading)
	require.Len(t, final.Donations, 1)
	assert.Equal(t, "only", final.Donations[0].Message)
}

func TestDonationsByDonor_Unsupported(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	res, err := svc.DonationsByDonor(context.Background(), entity.ReadOnlySession(entity.ChainIDEthereum), donor)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNetwork)
	assert.False(t, res.IsNetworkSupported)
	assert.Empty(t, res.Donations)
	assert.Equal(t, 0, gw.callCount())
}

func TestClaimNFT(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	tx, err := svc.ClaimNFT(context.Background(), baseSess, big.NewInt(3))
	require.NoError(t, err)
	status, err := tx.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.True(t, status.IsSuccess())

	sent := gw.submitted()
	require.Len(t, sent, 1)
	assert.Equal(t, contracts.MethodClaimNFT, sent[0].Method)
	assert.Equal(t, *baseSet.NFTTrackerContract, sent[0].Address)
	assert.Equal(t, []any{big.NewInt(3)}, sent[0].Args)
}

func TestClaimNFT_InvalidIndex(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	_, err := svc.ClaimNFT(context.Background(), baseSess, nil)
	assert.Error(t, err)
	assert.Empty(t, gw.submitted())
}

func TestNFTReads(t *testing.T) {
	gw := &fakeGateway{
		callFn: func(req contracts.CallRequest) ([]any, error) {
			switch req.Method {
			case contracts.MethodHasReceivedNFT:
				return []any{true}, nil
			case contracts.MethodIsDonationClaimed:
				return []any{true}, nil
			case contracts.MethodNFTBalanceOf:
				return []any{big.NewInt(4)}, nil
			}
			return nil, assert.AnError
		},
	}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})
	ctx := context.Background()

	received, err := svc.HasReceivedNFT(ctx, baseSess, donor)
	require.NoError(t, err)
	assert.True(t, received)

	claimed, err := svc.IsDonationClaimed(ctx, baseSess, big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, claimed)

	balance, err := svc.UserNFTBalance(ctx, baseSess, donor)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), balance)
}

func TestNFTReads_DefaultsWhenDisabled(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})
	ctx := context.Background()

	received, err := svc.HasReceivedNFT(ctx, baseSess, common.Address{})
	require.NoError(t, err)
	assert.False(t, received)

	claimed, err := svc.IsDonationClaimed(ctx, baseSess, nil)
	require.NoError(t, err)
	assert.False(t, claimed)

	balance, err := svc.UserNFTBalance(ctx, baseSess, common.Address{})
	require.NoError(t, err)
	assert.Zero(t, balance)

	assert.Equal(t, 0, gw.callCount())
}

func TestIsDonationClaimed_NegativeIndex(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	claimed, err := svc.IsDonationClaimed(context.Background(), baseSess, big.NewInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.False(t, claimed)
	assert.Equal(t, 0, gw.callCount())
}

func TestReadKey_UnpackableArgsAreInvalidInput(t *testing.T) {
	req := contracts.IsDonationClaimedCall(*baseSet.NFTTrackerContract, big.NewInt(-1))

	_, err := readKey(entity.ChainIDBaseSepolia, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUserNFTBalance_Overflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	gw := &fakeGateway{
		callFn: func(contracts.CallRequest) ([]any, error) { return []any{huge}, nil },
	}
	svc := NewNFTService(gw, newMapCache(), zap.NewNop(), config.ReaderConfig{})

	balance, err := svc.UserNFTBalance(context.Background(), baseSess, donor)
	assert.ErrorIs(t, err, apperrors.ErrExternalServiceFailure)
	assert.Zero(t, balance)
}
