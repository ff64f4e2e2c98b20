package chainlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	dto "bam-donation/internal/adapter/storage/chainlist/dto"
	"bam-donation/internal/config"
	"bam-donation/internal/domain/entity"
	domainRepo "bam-donation/internal/domain/repository"
	"bam-donation/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const fetchTimeout = 15 * time.Second

// Compile-time check
var _ domainRepo.ChainRepository = (*Repository)(nil)

// Repository reads chain metadata from the public chain list.
type Repository struct {
	client *fasthttp.Client
	url    string
	keep   map[int64]struct{}
	logger *zap.Logger
}

// NewRepository creates a chain list reader. Only chains listed in chainIDs
// are returned; an empty list keeps every chain.
func NewRepository(cfg config.ChainlistConfig, chainIDs []int64, logger *zap.Logger) *Repository {
	keep := make(map[int64]struct{}, len(chainIDs))
	for _, id := range chainIDs {
		keep[id] = struct{}{}
	}
	return &Repository{
		client: &fasthttp.Client{},
		url:    cfg.URL,
		keep:   keep,
		logger: logger.Named("ChainlistStorage"),
	}
}

// GetAllChains downloads the chain list and returns metadata of the kept chains.
func (r *Repository) GetAllChains(ctx context.Context) ([]entity.ChainMetadata, error) {
	body, err := r.download(ctx)
	if err != nil {
		return nil, err
	}

	chains, scanned, err := r.decode(body)
	if err != nil {
		r.logger.Error("Failed to decode chain list", zap.Error(err))
		return nil, fmt.Errorf("%w: decode chain list: %w", apperrors.ErrExternalServiceFailure, err)
	}

	r.logger.Info("Loaded chain metadata",
		zap.Int("scanned", scanned), zap.Int("kept", len(chains)))
	return chains, nil
}

func (r *Repository) download(ctx context.Context) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	deadline := time.Now().Add(fetchTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	r.logger.Debug("Fetching chain list", zap.String("url", r.url), zap.Time("deadline", deadline))
	if err := r.client.DoDeadline(req, resp, deadline); err != nil {
		r.logger.Error("Chain list request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: fetch chain list: %w", apperrors.ErrExternalServiceFailure, err)
	}

	switch status := resp.StatusCode(); status {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		r.logger.Warn("Chain list not found", zap.String("url", r.url))
		return nil, fmt.Errorf("%w: chain list at %s", apperrors.ErrNotFound, r.url)
	default:
		r.logger.Error("Chain list returned non-OK status",
			zap.Int("statusCode", status), zap.ByteString("body", resp.Body()))
		return nil, fmt.Errorf("%w: chain list returned status %d", apperrors.ErrExternalServiceFailure, status)
	}

	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		body, err := resp.BodyGunzip()
		if err != nil {
			return nil, fmt.Errorf("%w: gunzip chain list: %w", apperrors.ErrExternalServiceFailure, err)
		}
		return body, nil
	}
	// resp goes back to the pool on return.
	return append([]byte(nil), resp.Body()...), nil
}

// decode streams the JSON array, materializing only the kept entries.
func (r *Repository) decode(body []byte) ([]entity.ChainMetadata, int, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, 0, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, 0, fmt.Errorf("expected a JSON array, got %v", tok)
	}

	var (
		chains  []entity.ChainMetadata
		scanned int
	)
	for dec.More() {
		var raw dto.ChainRaw
		if err := dec.Decode(&raw); err != nil {
			return nil, scanned, fmt.Errorf("entry %d: %w", scanned, err)
		}
		scanned++
		if !r.wanted(raw.ChainID) {
			continue
		}
		chains = append(chains, toMetadata(raw, r.logger))
	}
	return chains, scanned, nil
}

func (r *Repository) wanted(chainID int64) bool {
	if len(r.keep) == 0 {
		return true
	}
	_, ok := r.keep[chainID]
	return ok
}
