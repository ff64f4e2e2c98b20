package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bam-donation/internal/adapter/ethereum"
	"bam-donation/internal/adapter/rpc"
	"bam-donation/internal/adapter/storage/chainlist"
	"bam-donation/internal/adapter/storage/memory"
	"bam-donation/internal/application"
	"bam-donation/internal/application/port"
	"bam-donation/internal/config"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"
	"bam-donation/internal/logger"
)

// app is the dependency graph one command invocation runs against.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	gateway   *ethereum.Gateway
	donations port.DonationService
	nfts      port.NFTService
	networks  port.NetworkService
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	// stdout carries command output, so logs are quieter than the server's.
	cfg.Logger.Encoding = "console"
	cfg.Logger.Output = "stderr"
	if cfg.Logger.Level == "info" {
		cfg.Logger.Level = "warn"
	}
	cfg.Checker.RunOnStartup = false

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}

	gateway, err := ethereum.NewGateway(*cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	cacheRepo := memory.NewCacheRepository(*cfg, log)
	return &app{
		cfg:       cfg,
		logger:    log,
		gateway:   gateway,
		donations: application.NewDonationService(gateway, cacheRepo, log, cfg.Reader),
		nfts:      application.NewNFTService(gateway, cacheRepo, log, cfg.Reader),
		networks: application.NewNetworkService(
			cmd.Context(),
			chainlist.NewRepository(cfg.Chainlist, network.ChainIDs(), log),
			cacheRepo,
			rpc.NewChecker(log),
			log,
			*cfg,
		),
	}, nil
}

func (a *app) Close() {
	a.gateway.Close()
	_ = a.logger.Sync()
}

// session builds the wallet context for the --chain flag.
func (a *app) session() entity.Session {
	if account, ok := a.gateway.Account(); ok {
		return entity.NewSession(account, chainID)
	}
	return entity.ReadOnlySession(chainID)
}

func readOptions() []port.ReadOption {
	if refresh {
		return []port.ReadOption{port.WithRefetch()}
	}
	return nil
}

// withApp wires the app for the duration of one RunE.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
