package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	delivery "bam-donation/internal/adapter/delivery/http"
	"bam-donation/internal/adapter/ethereum"
	handler "bam-donation/internal/adapter/handler/http"
	"bam-donation/internal/adapter/rpc"
	"bam-donation/internal/adapter/storage/chainlist"
	"bam-donation/internal/adapter/storage/memory"
	"bam-donation/internal/application"
	"bam-donation/internal/config"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain/network"
	"bam-donation/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	if err := contracts.Validate(); err != nil {
		appLogger.Fatal("Contract method table does not match the ABIs", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	appLogger.Info("Initializing dependencies...")

	cacheRepo := memory.NewCacheRepository(*cfg, appLogger)
	trackerRepo := memory.NewTrackerRepository(cfg.Tracker, appLogger)
	chainlistRepo := chainlist.NewRepository(cfg.Chainlist, network.ChainIDs(), appLogger)
	rpcChecker := rpc.NewChecker(appLogger)

	gateway, err := ethereum.NewGateway(*cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create chain gateway", zap.Error(err))
	}
	defer gateway.Close()

	if account, ok := gateway.Account(); ok {
		appLogger.Info("Wallet connected", zap.Stringer("account", account))
	} else {
		appLogger.Warn("No wallet key configured, write endpoints will be rejected")
	}

	donationService := application.NewDonationService(gateway, cacheRepo, appLogger, cfg.Reader)
	nftService := application.NewNFTService(gateway, cacheRepo, appLogger, cfg.Reader)
	networkService := application.NewNetworkService(ctx, chainlistRepo, cacheRepo, rpcChecker, appLogger, *cfg)

	donationHandler := handler.NewDonationHandler(donationService, nftService, networkService, trackerRepo, gateway, appLogger)

	// --- HTTP Router & Server ---
	appLogger.Info("Setting up HTTP router...")
	r := router.New()
	delivery.RegisterRoutes(r, donationHandler, appLogger)

	loggingMiddleware := func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			appLogger.Info("Request received",
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("uri", ctx.RequestURI()))
			next(ctx)
		}
	}

	server := &fasthttp.Server{
		Handler: loggingMiddleware(r.Handler),
		Name:    cfg.App.Name,
	}

	serverAddr := ":" + cfg.Server.Port
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
		errCh <- server.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down HTTP server")
		if err := server.Shutdown(); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}
}
