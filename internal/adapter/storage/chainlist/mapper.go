package chainlist

import (
	"strings"

	dto "bam-donation/internal/adapter/storage/chainlist/dto"
	"bam-donation/internal/domain/entity"

	"go.uber.org/zap"
)

var testnetMarkers = []string{"sepolia", "testnet", "holesky", "goerli"}

// networkType trusts the entry's network field and falls back to the name.
func networkType(raw dto.ChainRaw) entity.NetworkType {
	switch entity.NetworkType(raw.Network) {
	case entity.NetworkMainnet, entity.NetworkTestnet:
		return entity.NetworkType(raw.Network)
	}
	name := strings.ToLower(raw.Name)
	for _, m := range testnetMarkers {
		if strings.Contains(name, m) {
			return entity.NetworkTestnet
		}
	}
	return entity.NetworkMainnet
}

// toMetadata converts one entry. Templated or malformed RPC URLs are dropped.
func toMetadata(raw dto.ChainRaw, logger *zap.Logger) entity.ChainMetadata {
	meta := entity.ChainMetadata{
		Name:      raw.Name,
		ShortName: raw.ShortName,
		ChainID:   raw.ChainID,
		Currency: entity.Currency{
			Name:     raw.Currency.Name,
			Symbol:   raw.Currency.Symbol,
			Decimals: raw.Currency.Decimals,
		},
		Network: networkType(raw),
	}

	for _, s := range raw.RPC {
		u, err := entity.NewRPCURL(s)
		if err != nil {
			logger.Debug("Skipping unusable public RPC",
				zap.Int64("chainId", raw.ChainID), zap.String("rawUrl", s), zap.Error(err))
			continue
		}
		meta.RPC = append(meta.RPC, u)
	}

	for _, e := range raw.Explorers {
		meta.Explorers = append(meta.Explorers, entity.Explorer{
			Name:     e.Name,
			URL:      strings.TrimRight(e.URL, "/"),
			Standard: e.Standard,
		})
	}
	return meta
}
