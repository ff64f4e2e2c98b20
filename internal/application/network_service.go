package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bam-donation/internal/application/port"
	"bam-donation/internal/config"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	"bam-donation/internal/domain/network"
	domainRepo "bam-donation/internal/domain/repository"
	domainService "bam-donation/internal/domain/service"

	"go.uber.org/zap"
)

// Compile-time check to ensure networkService implements NetworkService
var _ port.NetworkService = (*networkService)(nil)

// networkService implements port.NetworkService, enriching the registry with
// public chain metadata and endpoint health.
type networkService struct {
	chainRepo  domainRepo.ChainRepository
	cacheRepo  domainRepo.CacheRepository
	rpcChecker domainService.RPCChecker
	logger     *zap.Logger
	cfg        config.Config
	rootCtx    context.Context
}

// NewNetworkService creates a new instance of the network service.
func NewNetworkService(
	rootCtx context.Context,
	chainRepo domainRepo.ChainRepository,
	cacheRepo domainRepo.CacheRepository,
	rpcChecker domainService.RPCChecker,
	logger *zap.Logger,
	cfg config.Config,
) port.NetworkService {
	s := &networkService{
		chainRepo:  chainRepo,
		cacheRepo:  cacheRepo,
		rpcChecker: rpcChecker,
		logger:     logger.Named("NetworkService"),
		cfg:        cfg,
		rootCtx:    rootCtx,
	}

	if cfg.Checker.RunOnStartup {
		go s.warmup()
	}

	return s
}

// NetworkInfo returns the registry view of chainID plus its explorer, when known.
func (s *networkService) NetworkInfo(ctx context.Context, chainID int64) entity.NetworkInfo {
	info := network.Info(chainID)
	if !info.IsSupported {
		return info
	}

	meta, err := s.metadata(ctx, chainID)
	if err != nil {
		s.logger.Debug("Chain metadata unavailable", zap.Int64("chainId", chainID), zap.Error(err))
		return info
	}
	if explorer, ok := meta.PrimaryExplorer(); ok {
		info.ExplorerURL = explorer.URL
	}
	return info
}

// Networks lists every supported network in chain id order.
func (s *networkService) Networks(ctx context.Context) []entity.NetworkInfo {
	ids := network.ChainIDs()
	out := make([]entity.NetworkInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.NetworkInfo(ctx, id))
	}
	return out
}

// CheckedRPCs probes the endpoints of chainID, served from cache while fresh.
func (s *networkService) CheckedRPCs(ctx context.Context, chainID int64) ([]entity.RPCDetail, error) {
	if _, err := network.RequireSupported(chainID); err != nil {
		return nil, err
	}

	checkedRPCs, found, err := s.cacheRepo.GetChainCheckedRPCs(ctx, chainID)
	if err != nil {
		s.logger.Warn("Cache error when getting checked RPCs for chain",
			zap.Int64("chainId", chainID), zap.Error(err),
		)
	}
	if found {
		s.logger.Debug("Cache hit for chain checked RPCs", zap.Int64("chainId", chainID))
		if len(checkedRPCs) == 0 {
			return nil, fmt.Errorf("%w: no RPCs known for chain %d (cached result)",
				domain.ErrNoRPCsAvailable, chainID,
			)
		}
		return checkedRPCs, nil
	}

	urls := s.endpoints(ctx, chainID)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w for chain %d", domain.ErrNoRPCsAvailable, chainID)
	}

	s.logger.Debug("Checking RPCs for chain", zap.Int64("chainId", chainID), zap.Int("rpcCount", len(urls)))
	result := s.checkChainRPCs(s.cfg.Checker.GetTimeout(), chainID, urls)

	if cacheErr := s.cacheRepo.SetChainCheckedRPCs(ctx, chainID, result, s.cfg.Checker.GetCacheTTL()); cacheErr != nil {
		s.logger.Error("Failed to cache checked RPCs for chain",
			zap.Int64("chainId", chainID), zap.Error(cacheErr))
	}

	return result, nil
}

// endpoints merges configured RPC URLs with the public ones from chain metadata.
// Configured endpoints come first; duplicates and invalid URLs are dropped.
func (s *networkService) endpoints(ctx context.Context, chainID int64) []entity.RPCURL {
	seen := make(map[entity.RPCURL]struct{})
	var urls []entity.RPCURL
	add := func(u entity.RPCURL) {
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, raw := range s.cfg.RPCURLs(chainID) {
		u, err := entity.NewRPCURL(raw)
		if err != nil {
			s.logger.Warn("Skipping invalid configured RPC URL", zap.String("url", raw), zap.Error(err))
			continue
		}
		add(u)
	}

	meta, err := s.metadata(ctx, chainID)
	if err != nil {
		s.logger.Debug("Public RPCs unavailable", zap.Int64("chainId", chainID), zap.Error(err))
		return urls
	}
	for _, u := range meta.RPC {
		add(u)
	}
	return urls
}

// metadata returns the public metadata of chainID, fetching the chain list on cache miss.
func (s *networkService) metadata(ctx context.Context, chainID int64) (entity.ChainMetadata, error) {
	chains, found, err := s.cacheRepo.GetChains(ctx)
	if err != nil {
		s.logger.Warn("Cache error when getting chain metadata", zap.Error(err))
	}
	if !found {
		s.logger.Debug("Cache miss for chain metadata, fetching from repository")
		chains, err = s.chainRepo.GetAllChains(ctx)
		if err != nil {
			return entity.ChainMetadata{}, fmt.Errorf("failed to fetch chain metadata: %w", err)
		}
		if cacheErr := s.cacheRepo.SetChains(ctx, chains, s.cfg.Chainlist.GetCacheTTL()); cacheErr != nil {
			s.logger.Error("Failed to cache chain metadata", zap.Error(cacheErr))
		}
	}

	for i := range chains {
		if chains[i].ChainID == chainID {
			return chains[i], nil
		}
	}
	return entity.ChainMetadata{}, fmt.Errorf("%w: chain with ID %d not found in metadata", domain.ErrChainNotFound, chainID)
}

// checkChainRPCs performs parallel RPC checks and marks endpoints that report
// a different chain id as not working.
func (s *networkService) checkChainRPCs(timeout time.Duration, chainID int64, rpcs []entity.RPCURL) []entity.RPCDetail {
	if len(rpcs) == 0 {
		return nil
	}

	checked := make([]entity.RPCDetail, len(rpcs))
	var wg sync.WaitGroup

	numWorkers := s.cfg.Checker.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = 10
	}
	if len(rpcs) < numWorkers {
		numWorkers = len(rpcs)
	}

	jobChan := make(chan int, len(rpcs))

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobChan {
				checked[i] = s.checkOne(timeout, chainID, rpcs[i])
			}
			s.logger.Debug("RPC check worker finished", zap.Int("workerID", workerID))
		}(w)
	}

	for i := range rpcs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	return checked
}

func (s *networkService) checkOne(timeout time.Duration, chainID int64, u entity.RPCURL) entity.RPCDetail {
	detail := entity.RPCDetail{URL: u, Protocol: u.Protocol()}
	notWorking := false

	if detail.Protocol == entity.ProtocolUnknown {
		detail.IsWorking = &notWorking
		s.logger.Error("RPCURL with unknown protocol encountered", zap.String("url", u.String()))
		return detail
	}

	checkCtx, cancel := context.WithTimeout(s.rootCtx, timeout)
	probe, err := s.rpcChecker.CheckRPC(checkCtx, u)
	cancel()

	if err != nil {
		s.logger.Debug("RPC check failed", zap.String("rpc", u.String()), zap.Error(err))
		detail.IsWorking = &notWorking
		return detail
	}

	reported := probe.ChainID
	detail.ReportedChainID = &reported
	working := probe.Working && reported == chainID
	detail.IsWorking = &working
	if working {
		latencyMs := probe.Latency.Milliseconds()
		detail.LatencyMs = &latencyMs
	} else if probe.Working {
		s.logger.Warn("RPC reports a different chain id",
			zap.String("rpc", u.String()), zap.Int64("expected", chainID), zap.Int64("reported", reported),
		)
	}
	return detail
}

// warmup checks every supported network once so the first request hits the cache.
func (s *networkService) warmup() {
	s.logger.Info("Running startup RPC checks")
	var wg sync.WaitGroup
	for _, id := range network.ChainIDs() {
		wg.Add(1)
		go func(chainID int64) {
			defer wg.Done()
			if _, err := s.CheckedRPCs(s.rootCtx, chainID); err != nil {
				if s.rootCtx.Err() != nil {
					return
				}
				s.logger.Warn("Startup RPC check failed", zap.Int64("chainId", chainID), zap.Error(err))
			}
		}(id)
	}
	wg.Wait()
	s.logger.Info("Startup RPC checks finished")
}
