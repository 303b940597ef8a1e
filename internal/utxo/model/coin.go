// Package model defines the chain data exchanged between data sources and the explorer.
package model

// Coin names the chain a data source serves.
type Coin string

// Network names the network of a coin.
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
