package entity

// NetworkType defines the type for network classifications (e.g., mainnet, testnet).
type NetworkType string

// Constants for known network types.
const (
	NetworkMainnet NetworkType = "mainnet"
	NetworkTestnet NetworkType = "testnet"
)

// ChainMetadata is the public description of a chain used to enrich a
// supported network: display name, native currency, explorers, public RPCs.
type ChainMetadata struct {
	Name      string
	ShortName string
	ChainID   int64
	RPC       []RPCURL
	Currency  Currency
	Explorers []Explorer
	Network   NetworkType
}

// Currency defines the native currency details of a chain.
type Currency struct {
	Name     string
	Symbol   string
	Decimals int
}

// Explorer defines details about a block explorer for a chain.
type Explorer struct {
	Name     string
	URL      string
	Standard string
}

// PrimaryExplorer returns the first EIP-3091 explorer, or the first explorer
// when none declares the standard.
func (c ChainMetadata) PrimaryExplorer() (Explorer, bool) {
	for _, e := range c.Explorers {
		if e.Standard == "EIP3091" {
			return e, true
		}
	}
	if len(c.Explorers) > 0 {
		return c.Explorers[0], true
	}
	return Explorer{}, false
}
