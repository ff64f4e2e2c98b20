package application

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"bam-donation/internal/contracts"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	donor    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	token    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	baseSet  = network.Resolve(entity.ChainIDBaseSepolia)
	baseSess = entity.NewSession(donor, entity.ChainIDBaseSepolia)
)

// fakeGateway records every call and lets tests script responses.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []contracts.CallRequest
	submits []contracts.TransactionRequest

	callFn    func(req contracts.CallRequest) ([]any, error)
	submitFn  func(n int, req contracts.TransactionRequest) (common.Hash, error)
	receiptFn func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

func (f *fakeGateway) Account() (common.Address, bool) { return donor, true }

func (f *fakeGateway) ChainID(_ context.Context, chainID int64) (int64, error) { return chainID, nil }

func (f *fakeGateway) Call(_ context.Context, _ int64, req contracts.CallRequest) ([]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.callFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("unexpected call " + req.Method.String())
	}
	return fn(req)
}

func (f *fakeGateway) Submit(_ context.Context, _ int64, req contracts.TransactionRequest) (common.Hash, error) {
	f.mu.Lock()
	f.submits = append(f.submits, req)
	n := len(f.submits)
	fn := f.submitFn
	f.mu.Unlock()
	if fn == nil {
		return common.BigToHash(big.NewInt(int64(n))), nil
	}
	return fn(n, req)
}

func (f *fakeGateway) WaitReceipt(ctx context.Context, _ int64, hash common.Hash) (*types.Receipt, error) {
	if f.receiptFn == nil {
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(1)}, nil
	}
	return f.receiptFn(ctx, hash)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) submitted() []contracts.TransactionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contracts.TransactionRequest(nil), f.submits...)
}

// mapCache is a CacheRepository over a plain map, without expiry.
type mapCache struct {
	mu    sync.Mutex
	reads map[string][]any
}

func newMapCache() *mapCache { return &mapCache{reads: make(map[string][]any)} }

func (c *mapCache) GetRead(_ context.Context, key string) ([]any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.reads[key]
	return v, ok, nil
}

func (c *mapCache) SetRead(_ context.Context, key string, out []any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads[key] = out
	return nil
}

func (c *mapCache) GetChains(context.Context) ([]entity.ChainMetadata, bool, error) {
	return nil, false, nil
}

func (c *mapCache) SetChains(context.Context, []entity.ChainMetadata, time.Duration) error {
	return nil
}

func (c *mapCache) GetChainCheckedRPCs(context.Context, int64) ([]entity.RPCDetail, bool, error) {
	return nil, false, nil
}

func (c *mapCache) SetChainCheckedRPCs(context.Context, int64, []entity.RPCDetail, time.Duration) error {
	return nil
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func testDeps(gw *fakeGateway) readDeps {
	return readDeps{gateway: gw, cache: newMapCache(), logger: zap.NewNop(), ttl: time.Minute}
}

type donationRecord struct {
	Donor        common.Address
	Amount       *big.Int
	AssetType    uint8
	TokenAddress common.Address
	Message      string
	Timestamp    *big.Int
}

// packedDonations returns getAllDonations outputs as the ABI decoder produces them.
func packedDonations(t *testing.T, records ...donationRecord) []any {
	t.Helper()
	a, err := contracts.ABI(contracts.KindDonation)
	require.NoError(t, err)
	if records == nil {
		records = []donationRecord{}
	}
	encoded, err := a.Methods["getAllDonations"].Outputs.Pack(records)
	require.NoError(t, err)
	out, err := a.Unpack("getAllDonations", encoded)
	require.NoError(t, err)
	return out
}

func record(amount int64, message string) donationRecord {
	return donationRecord{
		Donor:     donor,
		Amount:    big.NewInt(amount),
		Message:   message,
		Timestamp: big.NewInt(1700000000),
	}
}
