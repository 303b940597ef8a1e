// Package main is the command line entry point of the chain explorer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/metrics"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-explorer/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/explorer"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/repository/clickhouse"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"EXPLORER_CLICKHOUSE_DSN" description:"ClickHouse DSN of the spend and address index"`
	Coin          model.Coin    `long:"coin" env:"EXPLORER_COIN" description:"coin name" default:"BTC"`
	Network       model.Network `long:"network" env:"EXPLORER_NETWORK" description:"network name" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"EXPLORER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"EXPLORER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"EXPLORER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPS           int           `long:"rps" env:"EXPLORER_RPS" description:"max data source calls per second, 0 for unlimited" default:"50"`
	RetryAttempts int           `long:"retry-attempts" env:"EXPLORER_RETRY_ATTEMPTS" description:"attempts per data source call" default:"3"`
	RetryBackoff  time.Duration `long:"retry-backoff" env:"EXPLORER_RETRY_BACKOFF" description:"initial backoff between attempts" default:"500ms"`
	Workers       int           `long:"workers" env:"EXPLORER_WORKERS" description:"concurrent lookups when resolving address outputs" default:"8"`
	MetricsAddr   string        `long:"metrics-addr" env:"EXPLORER_METRICS_ADDR" description:"address for metrics server, empty to disable"`
	ZMQAddr       string        `long:"zmq-addr" env:"EXPLORER_ZMQ_ADDR" description:"node zmq endpoint publishing hashblock, used by follow"`
	Verbose       bool          `short:"v" long:"verbose" description:"log every data source lookup"`

	Block   blockCommand   `command:"block" description:"show a block by depth, negative index from the tip, or hash"`
	Tx      txCommand      `command:"tx" description:"show a transaction with its inputs and outputs"`
	Address addressCommand `command:"address" description:"list outputs paid to an address"`
	Follow  followCommand  `command:"follow" description:"print blocks as they arrive at the tip"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, parser.Active.Name, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Fatal("explorer failed", zap.String("command", parser.Active.Name), zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(ctx context.Context, cfg config, command string, logger *zap.Logger) error {
	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Coin, cfg.Network, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()

	rpc := rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network))
	nodeSource, err := bitcoin.NewSource(rpc, repo)
	if err != nil {
		return err
	}
	codec, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return err
	}

	source := chain.NewObserved(
		chain.NewRetrying(
			chain.NewRateLimited(nodeSource, cfg.RPS),
			cfg.RetryAttempts,
			cfg.RetryBackoff,
			logger.Named("source"),
		),
		metrics.NewSource(cfg.Coin, cfg.Network),
	)

	x, err := explorer.New(source, codec, logger.Named("explorer"))
	if err != nil {
		return err
	}

	a := &app{
		explorer: x,
		out:      os.Stdout,
		workers:  cfg.Workers,
		logger:   logger,
	}
	switch command {
	case "block":
		return a.showBlock(ctx, cfg.Block.Args.Key)
	case "tx":
		return a.showTransaction(ctx, cfg.Tx.Args.Hash)
	case "address":
		return a.showAddress(ctx, cfg.Address.Args.Address)
	case "follow":
		blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
		if err != nil {
			return err
		}
		return a.follow(ctx, cfg.Follow.From, metrics.NewFollower(cfg.Coin, cfg.Network), blockSignal)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
