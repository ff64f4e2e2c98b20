package entity

import "github.com/ethereum/go-ethereum/common"

// Well-known chain identifiers.
const (
	ChainIDEthereum       int64 = 1
	ChainIDSepolia        int64 = 11155111
	ChainIDBaseSepolia    int64 = 84532
	UnknownNetworkName          = "Unknown Network"
)

// NetworkAddressSet is the triple of donation-domain contracts deployed on one chain.
// Addresses are nil when IsSupported is false.
type NetworkAddressSet struct {
	ChainID            int64           `json:"chainId" yaml:"chainId"`
	DonationContract   *common.Address `json:"donationContract" yaml:"donationContract"`
	NFTTrackerContract *common.Address `json:"nftTrackerContract" yaml:"nftTrackerContract"`
	NFTContract        *common.Address `json:"nftContract" yaml:"nftContract"`
	IsSupported        bool            `json:"isSupported" yaml:"isSupported"`
}

// NetworkInfo describes the network a session is currently on.
type NetworkInfo struct {
	ChainID     int64  `json:"chainId" yaml:"chainId"`
	NetworkName string `json:"networkName" yaml:"networkName"`
	IsSupported bool   `json:"isSupported" yaml:"isSupported"`
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
}

// Session is the wallet context an operation runs under: the connected
// account (if any) and the chain the wallet is pointed at.
type Session struct {
	Account   common.Address
	Connected bool
	ChainID   int64
}

// NewSession builds a connected session for account on chainID.
func NewSession(account common.Address, chainID int64) Session {
	return Session{Account: account, Connected: true, ChainID: chainID}
}

// ReadOnlySession builds a session without an account, enough for reads.
func ReadOnlySession(chainID int64) Session {
	return Session{ChainID: chainID}
}
