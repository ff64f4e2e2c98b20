// Package network holds the compiled-in table of chains the donation
// contracts are deployed on.
package network

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
)

type deployment struct {
	name       string
	donation   common.Address
	nftTracker common.Address
	nft        common.Address
}

var deployments = map[int64]deployment{
	entity.ChainIDBaseSepolia: {
		name:       "Base Sepolia",
		donation:   common.HexToAddress("0x48EAc2465b4BfA6DEE4009C3D043A5FcCbE26545"),
		nftTracker: common.HexToAddress("0x24690A3f62633C45E4473120F5227741E8689f6c"),
		nft:        common.HexToAddress("0xbBb74709629B14539f705Fe1673567FC56CFe6C5"),
	},
	entity.ChainIDSepolia: {
		name:       "Ethereum Sepolia",
		donation:   common.HexToAddress("0x8A4143dfBeD35f34bbb9f3f95b8065932157a329"),
		nftTracker: common.HexToAddress("0xdFE7ece717f6ac1e50a8f4d80D9Ce842390F3DD0"),
		nft:        common.HexToAddress("0x9C66b0AD3c944793B437d5c72B052fb964e3d455"),
	},
}

// Resolve returns the contract addresses deployed on chainID. For chains
// outside the table the result has IsSupported=false and nil addresses.
func Resolve(chainID int64) entity.NetworkAddressSet {
	d, ok := deployments[chainID]
	if !ok {
		return entity.NetworkAddressSet{ChainID: chainID}
	}
	donation, tracker, nft := d.donation, d.nftTracker, d.nft
	return entity.NetworkAddressSet{
		ChainID:            chainID,
		DonationContract:   &donation,
		NFTTrackerContract: &tracker,
		NFTContract:        &nft,
		IsSupported:        true,
	}
}

// RequireSupported is Resolve for callers that must stop on unsupported chains.
func RequireSupported(chainID int64) (entity.NetworkAddressSet, error) {
	set := Resolve(chainID)
	if !set.IsSupported {
		return set, fmt.Errorf("%w: chain id %d", domain.ErrUnsupportedNetwork, chainID)
	}
	return set, nil
}

// Name returns the display name of chainID.
func Name(chainID int64) string {
	if d, ok := deployments[chainID]; ok {
		return d.name
	}
	return entity.UnknownNetworkName
}

// Info derives the NetworkInfo for chainID.
func Info(chainID int64) entity.NetworkInfo {
	_, ok := deployments[chainID]
	return entity.NetworkInfo{
		ChainID:     chainID,
		NetworkName: Name(chainID),
		IsSupported: ok,
	}
}

// Supported lists every configured deployment ordered by chain id.
func Supported() []entity.NetworkAddressSet {
	ids := ChainIDs()
	sets := make([]entity.NetworkAddressSet, 0, len(ids))
	for _, id := range ids {
		sets = append(sets, Resolve(id))
	}
	return sets
}

// ChainIDs returns the supported chain ids in ascending order.
func ChainIDs() []int64 {
	ids := make([]int64, 0, len(deployments))
	for id := range deployments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
