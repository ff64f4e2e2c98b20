package chainlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	dto "bam-donation/internal/adapter/storage/chainlist/dto"
	"bam-donation/internal/config"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const chainsJSON = `[
  {
    "name": "Ethereum Mainnet",
    "chain": "ETH",
    "rpc": ["https://mainnet.infura.io/v3/${INFURA_API_KEY}", "https://eth.llamarpc.com"],
    "nativeCurrency": {"name": "Ether", "symbol": "ETH", "decimals": 18},
    "shortName": "eth",
    "chainId": 1,
    "explorers": [{"name": "etherscan", "url": "https://etherscan.io", "standard": "EIP3091"}]
  },
  {
    "name": "Base Sepolia Testnet",
    "chain": "ETH",
    "rpc": ["https://sepolia.base.org", "wss://base-sepolia-rpc.publicnode.com", "not a url"],
    "nativeCurrency": {"name": "Sepolia Ether", "symbol": "ETH", "decimals": 18},
    "shortName": "basesep",
    "chainId": 84532,
    "explorers": [
      {"name": "blockscout", "url": "https://base-sepolia.blockscout.com/", "standard": "none"},
      {"name": "basescan", "url": "https://sepolia.basescan.org/", "standard": "EIP3091"}
    ]
  }
]`

func TestRepository_GetAllChains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chainsJSON))
	}))
	defer srv.Close()

	repo := NewRepository(config.ChainlistConfig{URL: srv.URL}, []int64{entity.ChainIDBaseSepolia}, zap.NewNop())

	chains, err := repo.GetAllChains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 1)

	base := chains[0]
	assert.Equal(t, entity.ChainIDBaseSepolia, base.ChainID)
	assert.Equal(t, entity.NetworkTestnet, base.Network)
	assert.Equal(t, []entity.RPCURL{"https://sepolia.base.org", "wss://base-sepolia-rpc.publicnode.com"}, base.RPC)

	explorer, ok := base.PrimaryExplorer()
	require.True(t, ok)
	assert.Equal(t, "https://sepolia.basescan.org", explorer.URL)
}

func TestRepository_KeepsAllWithoutFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chainsJSON))
	}))
	defer srv.Close()

	repo := NewRepository(config.ChainlistConfig{URL: srv.URL}, nil, zap.NewNop())
	chains, err := repo.GetAllChains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, []entity.RPCURL{"https://eth.llamarpc.com"}, chains[0].RPC, "templated endpoints are skipped")
}

func TestRepository_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: apperrors.ErrNotFound},
		{name: "server error", status: http.StatusBadGateway, wantErr: apperrors.ErrExternalServiceFailure},
		{name: "bad json", status: http.StatusOK, body: "{", wantErr: apperrors.ErrExternalServiceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			repo := NewRepository(config.ChainlistConfig{URL: srv.URL}, nil, zap.NewNop())
			_, err := repo.GetAllChains(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNetworkType(t *testing.T) {
	tests := []struct {
		raw  dto.ChainRaw
		want entity.NetworkType
	}{
		{dto.ChainRaw{Name: "Ethereum Mainnet"}, entity.NetworkMainnet},
		{dto.ChainRaw{Name: "Sepolia"}, entity.NetworkTestnet},
		{dto.ChainRaw{Name: "Base Sepolia Testnet"}, entity.NetworkTestnet},
		{dto.ChainRaw{Name: "Odd Chain", Network: "testnet"}, entity.NetworkTestnet},
		{dto.ChainRaw{Name: "Some Testnet", Network: "mainnet"}, entity.NetworkMainnet},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, networkType(tt.raw), tt.raw.Name)
	}
}

func TestRepository_RejectsNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chains": []}`))
	}))
	defer srv.Close()

	repo := NewRepository(config.ChainlistConfig{URL: srv.URL}, nil, zap.NewNop())
	_, err := repo.GetAllChains(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrExternalServiceFailure)
}
