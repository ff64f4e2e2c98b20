// Package rpc probes JSON-RPC endpoints over HTTP(S) and WebSocket.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bam-donation/internal/domain/entity"
	domainService "bam-donation/internal/domain/service"
	"bam-donation/internal/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultProbeTimeout = 10 * time.Second

// Compile-time check
var _ domainService.RPCChecker = (*Checker)(nil)

// chainIDRequest asks the node which chain it serves; an answer also proves liveness.
var chainIDRequest = []byte(`{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":1}`)

type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// roundTrip sends chainIDRequest to url and returns the raw response body.
type roundTrip func(ctx context.Context, url string, timeout time.Duration) ([]byte, error)

// Checker implements domainService.RPCChecker.
type Checker struct {
	client *fasthttp.Client
	dialer *websocket.Dialer
	logger *zap.Logger
}

// NewChecker creates a new RPC checker instance.
func NewChecker(logger *zap.Logger) *Checker {
	return &Checker{
		client: &fasthttp.Client{ReadTimeout: defaultProbeTimeout},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: defaultProbeTimeout,
		},
		logger: logger.Named("RPCCheckerAdapter"),
	}
}

// CheckRPC asks rpcURL for its chain id and measures the round trip.
func (c *Checker) CheckRPC(ctx context.Context, rpcURL entity.RPCURL) (domainService.RPCProbe, error) {
	var send roundTrip
	switch rpcURL.Protocol() {
	case entity.ProtocolHTTP, entity.ProtocolHTTPS:
		send = c.overHTTP
	case entity.ProtocolWS, entity.ProtocolWSS:
		send = c.overWebSocket
	default:
		c.logger.Warn("Skipping check for unsupported protocol", zap.String("url", rpcURL.String()))
		return domainService.RPCProbe{}, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, rpcURL)
	}

	url := rpcURL.String()
	timeout := probeTimeout(ctx)
	start := time.Now()
	body, err := send(ctx, url, timeout)
	latency := time.Since(start)
	if err != nil {
		c.logger.Debug("RPC probe failed", zap.String("url", url), zap.Duration("latency", latency), zap.Error(err))
		return domainService.RPCProbe{Latency: latency}, classify(ctx, url, err)
	}

	chainID, err := decodeChainID(body)
	if err != nil {
		c.logger.Debug("RPC probe got an unusable answer",
			zap.String("url", url), zap.ByteString("body", body), zap.Error(err))
		return domainService.RPCProbe{Latency: latency}, fmt.Errorf("%w: rpc %s: %w",
			apperrors.ErrExternalServiceFailure, url, err)
	}
	return domainService.RPCProbe{Working: true, Latency: latency, ChainID: chainID}, nil
}

func (c *Checker) overHTTP(_ context.Context, url string, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(chainIDRequest)

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("http status %d", resp.StatusCode())
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (c *Checker) overWebSocket(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, chainIDRequest); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return message, nil
}

// probeTimeout is the context's remaining time, capped at the default.
func probeTimeout(ctx context.Context) time.Duration {
	timeout := defaultProbeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = max(left, time.Millisecond)
		}
	}
	return timeout
}

// classify maps transport failures onto the timeout and upstream categories.
func classify(ctx context.Context, url string, err error) error {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(context.Cause(ctx), context.DeadlineExceeded) {
		return fmt.Errorf("%w: rpc %s: %w", apperrors.ErrTimeout, url, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: rpc %s: %w", apperrors.ErrTimeout, url, err)
	}
	return fmt.Errorf("%w: rpc %s: %w", apperrors.ErrExternalServiceFailure, url, err)
}

// decodeChainID accepts only a successful JSON-RPC 2.0 answer carrying a hex quantity.
func decodeChainID(body []byte) (int64, error) {
	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("invalid JSON: %w", err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("json-rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Jsonrpc != "2.0" || resp.Result == nil {
		return 0, errors.New("not a JSON-RPC 2.0 result")
	}

	var quantity string
	if err := json.Unmarshal(resp.Result, &quantity); err != nil {
		return 0, fmt.Errorf("chain id is not a string: %w", err)
	}
	id, err := hexutil.DecodeUint64(quantity)
	if err != nil {
		return 0, fmt.Errorf("malformed chain id %q: %w", quantity, err)
	}
	return int64(id), nil
}
