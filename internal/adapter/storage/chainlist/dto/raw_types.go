// Package chainlist_dto mirrors the entries of the public chain list JSON.
package chainlist_dto

// ChainRaw is the subset of a chain list entry used to enrich supported networks.
// Network is usually empty; "testnet" or "mainnet" when present.
type ChainRaw struct {
	Name      string        `json:"name"`
	ShortName string        `json:"shortName"`
	ChainID   int64         `json:"chainId"`
	RPC       []string      `json:"rpc"`
	Currency  CurrencyRaw   `json:"nativeCurrency"`
	Explorers []ExplorerRaw `json:"explorers,omitempty"`
	Network   string        `json:"network,omitempty"`
}

type CurrencyRaw struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type ExplorerRaw struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Standard string `json:"standard"`
}
