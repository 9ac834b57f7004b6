package chain

import (
	"sort"
	"strings"
)

// Chain describes a network the oracle contract is deployed on.
type Chain struct {
	ID             int64
	Name           string
	CurrencyName   string
	CurrencySymbol string
	Decimals       int
	RPCURL         string
	ExplorerURL    string
}

const (
	ArbitrumSepoliaID int64 = 421614
	ZGMainnetID       int64 = 16600
	ZGTestnetID       int64 = 16601
)

// FallbackExplorerURL is used for chains not in the registry.
const FallbackExplorerURL = "https://sepolia.arbiscan.io"

// ZeroAddress is the placeholder contract address before deployment.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var known = map[int64]Chain{
	ArbitrumSepoliaID: {
		ID:             ArbitrumSepoliaID,
		Name:           "Arbitrum Sepolia",
		CurrencyName:   "Ether",
		CurrencySymbol: "ETH",
		Decimals:       18,
		RPCURL:         "https://sepolia-rollup.arbitrum.io/rpc",
		ExplorerURL:    "https://sepolia.arbiscan.io",
	},
	ZGMainnetID: {
		ID:             ZGMainnetID,
		Name:           "0G Mainnet",
		CurrencyName:   "A0GI",
		CurrencySymbol: "A0GI",
		Decimals:       18,
		RPCURL:         "https://evmrpc.0g.ai",
		ExplorerURL:    "https://chainscan.0g.ai",
	},
	ZGTestnetID: {
		ID:             ZGTestnetID,
		Name:           "0G Newton Testnet",
		CurrencyName:   "A0GI",
		CurrencySymbol: "A0GI",
		Decimals:       18,
		RPCURL:         "https://evmrpc-testnet.0g.ai",
		ExplorerURL:    "https://chainscan-newton.0g.ai",
	},
}

func Lookup(id int64) (Chain, bool) {
	c, ok := known[id]
	return c, ok
}

// Known returns the registry sorted by chain id.
func Known() []Chain {
	out := make([]Chain, 0, len(known))
	for _, c := range known {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func ExplorerBaseURL(id int64) string {
	if c, ok := known[id]; ok && c.ExplorerURL != "" {
		return c.ExplorerURL
	}
	return FallbackExplorerURL
}

func ExplorerTxURL(id int64, txHash string) string {
	return ExplorerBaseURL(id) + "/tx/" + strings.TrimSpace(txHash)
}

// DefaultContractAddress is the deployed oracle contract for a known chain.
func DefaultContractAddress(id int64) (string, bool) {
	if _, ok := known[id]; !ok {
		return "", false
	}
	return ZeroAddress, true
}
