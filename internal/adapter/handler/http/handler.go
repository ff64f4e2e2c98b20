package http

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bam-donation/internal/application/port"
	"bam-donation/internal/contracts"
	"bam-donation/internal/domain"
	"bam-donation/internal/domain/entity"
	domainRepo "bam-donation/internal/domain/repository"
	"bam-donation/internal/pkg/apperrors"
	"bam-donation/internal/pkg/format"
)

// Wallet reports the account write requests are signed with.
type Wallet interface {
	Account() (common.Address, bool)
}

// DonationHandler serves the donation, NFT and network endpoints.
type DonationHandler struct {
	donations port.DonationService
	nfts      port.NFTService
	networks  port.NetworkService
	tracker   domainRepo.TrackerRepository
	wallet    Wallet
	logger    *zap.Logger
}

func NewDonationHandler(
	donations port.DonationService,
	nfts port.NFTService,
	networks port.NetworkService,
	tracker domainRepo.TrackerRepository,
	wallet Wallet,
	logger *zap.Logger,
) *DonationHandler {
	return &DonationHandler{
		donations: donations,
		nfts:      nfts,
		networks:  networks,
		tracker:   tracker,
		wallet:    wallet,
		logger:    logger.Named("DonationHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type submittedResponse struct {
	ID string `json:"id"`
}

type transactionResponse struct {
	ID                 string         `json:"id"`
	ChainID            int64          `json:"chainId"`
	Method             string         `json:"method"`
	State              entity.TxState `json:"state"`
	TransactionHash    *common.Hash   `json:"transactionHash,omitempty"`
	BlockNumber        uint64         `json:"blockNumber,omitempty"`
	IsNetworkSupported bool           `json:"isNetworkSupported"`
	Error              string         `json:"error,omitempty"`
}

type donorDonationsResponse struct {
	Donations          []entity.FormattedDonation `json:"donations"`
	DonationIndices    []*big.Int                 `json:"donationIndices"`
	IsLoading          bool                       `json:"isLoading"`
	IsNetworkSupported bool                       `json:"isNetworkSupported"`
}

type nftStatusResponse struct {
	HasReceivedNFT bool   `json:"hasReceivedNft"`
	Balance        uint64 `json:"balance"`
}

type amountResponse struct {
	Wei *big.Int `json:"wei"`
}

type donateRequest struct {
	Amount  string `json:"amount"`
	Message string `json:"message"`
}

type tokenRequest struct {
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	Message  string `json:"message"`
	Decimals *uint8 `json:"decimals,omitempty"`
}

type claimRequest struct {
	DonationIndex string `json:"donationIndex"`
}

// Health reports liveness.
func (h *DonationHandler) Health(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString("OK")
}

// GetNetworks lists the supported networks.
func (h *DonationHandler) GetNetworks(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, h.networks.Networks(ctx))
}

// GetNetwork describes one chain, supported or not.
func (h *DonationHandler) GetNetwork(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, h.networks.NetworkInfo(ctx, chainID))
}

// GetNetworkRPCs returns the checked endpoints of a supported chain.
func (h *DonationHandler) GetNetworkRPCs(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	rpcs, err := h.networks.CheckedRPCs(ctx, chainID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, rpcs)
}

// GetDonations returns every donation on the chain, formatted.
func (h *DonationHandler) GetDonations(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	donations, err := h.donations.AllDonations(ctx, h.readSession(chainID), readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, format.FormatDonations(donations))
}

// GetDonorDonations returns the donations made by one donor.
func (h *DonationHandler) GetDonorDonations(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	donor, ok := h.address(ctx, "address")
	if !ok {
		return
	}
	res, err := h.nfts.DonationsByDonor(ctx, h.readSession(chainID), donor, readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, donorDonationsResponse{
		Donations:          format.FormatDonations(res.Donations),
		DonationIndices:    res.DonationIndices,
		IsLoading:          res.IsLoading,
		IsNetworkSupported: res.IsNetworkSupported,
	})
}

// GetBalance returns the native balance held by the donation contract.
func (h *DonationHandler) GetBalance(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	bal, err := h.donations.ContractBalance(ctx, h.readSession(chainID), readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, bal)
}

// GetTokenBalance returns the donation contract's balance of a token.
func (h *DonationHandler) GetTokenBalance(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	token, ok := h.address(ctx, "token")
	if !ok {
		return
	}
	bal, err := h.donations.ContractTokenBalance(ctx, h.readSession(chainID), token, readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, amountResponse{Wei: bal})
}

// GetAllowance returns how much of a token owner lets the donation contract spend.
func (h *DonationHandler) GetAllowance(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	token, ok := h.address(ctx, "token")
	if !ok {
		return
	}
	owner, ok := h.address(ctx, "owner")
	if !ok {
		return
	}
	allowance, err := h.donations.TokenAllowance(ctx, h.readSession(chainID), token, owner, readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, amountResponse{Wei: allowance})
}

// GetNFTStatus reports whether user holds a donation NFT and how many.
func (h *DonationHandler) GetNFTStatus(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	user, ok := h.address(ctx, "address")
	if !ok {
		return
	}
	sess := h.readSession(chainID)
	opts := readOptions(ctx)
	received, err := h.nfts.HasReceivedNFT(ctx, sess, user, opts...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	balance, err := h.nfts.UserNFTBalance(ctx, sess, user, opts...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, nftStatusResponse{HasReceivedNFT: received, Balance: balance})
}

// GetDonationClaimed reports whether the NFT for a donation index was claimed.
func (h *DonationHandler) GetDonationClaimed(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	indexStr, _ := ctx.UserValue("index").(string)
	index, ok := h.donationIndex(ctx, indexStr)
	if !ok {
		return
	}
	claimed, err := h.nfts.IsDonationClaimed(ctx, h.readSession(chainID), index, readOptions(ctx)...)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, map[string]bool{"claimed": claimed})
}

// Donate submits a native donation.
func (h *DonationHandler) Donate(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	var req donateRequest
	if !h.decode(ctx, &req) {
		return
	}
	tx, err := h.donations.DonateNative(submitContext(), h.writeSession(chainID), req.Amount, port.WithMessage(req.Message))
	h.track(ctx, chainID, contracts.MethodDonate, tx, err)
}

// DonateToken submits a token donation.
func (h *DonationHandler) DonateToken(ctx *fasthttp.RequestCtx) {
	h.tokenWrite(ctx, contracts.MethodDonateToken, h.donations.DonateToken)
}

// Approve submits an allowance for the donation contract.
func (h *DonationHandler) Approve(ctx *fasthttp.RequestCtx) {
	h.tokenWrite(ctx, contracts.MethodApprove, h.donations.ApproveToken)
}

type tokenWriteFunc func(
	ctx context.Context,
	sess entity.Session,
	token common.Address,
	amount string,
	opts ...port.TxOption,
) (port.Transaction, error)

func (h *DonationHandler) tokenWrite(ctx *fasthttp.RequestCtx, method contracts.Method, write tokenWriteFunc) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	var req tokenRequest
	if !h.decode(ctx, &req) {
		return
	}
	if !common.IsHexAddress(req.Token) {
		h.badRequest(ctx, "invalid token address")
		return
	}
	opts := []port.TxOption{port.WithMessage(req.Message)}
	if req.Decimals != nil {
		opts = append(opts, port.WithDecimals(*req.Decimals))
	}
	tx, err := write(submitContext(), h.writeSession(chainID), common.HexToAddress(req.Token), req.Amount, opts...)
	h.track(ctx, chainID, method, tx, err)
}

// ClaimNFT submits a claim for the NFT of one donation.
func (h *DonationHandler) ClaimNFT(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}
	var req claimRequest
	if !h.decode(ctx, &req) {
		return
	}
	index, ok := h.donationIndex(ctx, req.DonationIndex)
	if !ok {
		return
	}
	tx, err := h.nfts.ClaimNFT(submitContext(), h.writeSession(chainID), index)
	h.track(ctx, chainID, contracts.MethodClaimNFT, tx, err)
}

// GetTransaction returns the current status of a submitted write.
func (h *DonationHandler) GetTransaction(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	tracked, found, err := h.tracker.Get(ctx, id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	if !found {
		h.writeError(ctx, apperrors.ErrNotFound)
		return
	}
	status := tracked.Source.Status()
	resp := transactionResponse{
		ID:                 tracked.ID,
		ChainID:            tracked.ChainID,
		Method:             tracked.Method,
		State:              status.State,
		TransactionHash:    status.TransactionHash,
		BlockNumber:        status.BlockNumber,
		IsNetworkSupported: status.IsNetworkSupported,
	}
	if status.Error != nil {
		resp.Error = status.Error.Error()
	}
	h.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *DonationHandler) track(
	ctx *fasthttp.RequestCtx,
	chainID int64,
	method contracts.Method,
	tx port.Transaction,
	err error,
) {
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	id := uuid.NewString()
	if err := h.tracker.Save(ctx, domainRepo.TrackedTransaction{
		ID:      id,
		ChainID: chainID,
		Method:  method.String(),
		Source:  tx,
	}); err != nil {
		h.writeError(ctx, err)
		return
	}
	h.logger.Info("Transaction submitted",
		zap.String("id", id), zap.Int64("chainId", chainID), zap.Stringer("method", method))
	h.writeJSON(ctx, fasthttp.StatusAccepted, submittedResponse{ID: id})
}

func (h *DonationHandler) readSession(chainID int64) entity.Session {
	if account, ok := h.wallet.Account(); ok {
		return entity.NewSession(account, chainID)
	}
	return entity.ReadOnlySession(chainID)
}

// writeSession is readSession; the orchestrator rejects it when no account is configured.
func (h *DonationHandler) writeSession(chainID int64) entity.Session {
	return h.readSession(chainID)
}

func (h *DonationHandler) chainID(ctx *fasthttp.RequestCtx) (int64, bool) {
	chainIDStr, ok := ctx.UserValue("chainId").(string)
	if !ok {
		h.logger.Error("Failed to get chainId from context")
		h.badRequest(ctx, "invalid chainId format")
		return 0, false
	}
	chainID, err := strconv.ParseInt(chainIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("Failed to parse chainId", zap.String("chainIdStr", chainIDStr), zap.Error(err))
		h.badRequest(ctx, "invalid chainId")
		return 0, false
	}
	return chainID, true
}

func (h *DonationHandler) address(ctx *fasthttp.RequestCtx, name string) (common.Address, bool) {
	s, _ := ctx.UserValue(name).(string)
	if !common.IsHexAddress(s) {
		h.badRequest(ctx, "invalid "+name)
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}

// donationIndex accepts a base-10 index that fits a uint256.
func (h *DonationHandler) donationIndex(ctx *fasthttp.RequestCtx, s string) (*big.Int, bool) {
	index, ok := new(big.Int).SetString(s, 10)
	if !ok || index.Sign() < 0 || index.BitLen() > 256 {
		h.badRequest(ctx, "invalid donation index")
		return nil, false
	}
	return index, true
}

func (h *DonationHandler) decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		h.badRequest(ctx, "malformed request body")
		return false
	}
	return true
}

func (h *DonationHandler) badRequest(ctx *fasthttp.RequestCtx, msg string) {
	h.writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: msg})
}

func (h *DonationHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	}
	h.writeJSON(ctx, status, errorResponse{Error: err.Error()})
}

func (h *DonationHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, domain.ErrInvalidAmount):
		return fasthttp.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, domain.ErrChainNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedNetwork),
		errors.Is(err, domain.ErrWalletNotConnected),
		errors.Is(err, domain.ErrContractNotResolved):
		return fasthttp.StatusConflict
	case errors.Is(err, apperrors.ErrExternalServiceFailure), errors.Is(err, domain.ErrNoRPCsAvailable):
		return fasthttp.StatusBadGateway
	case errors.Is(err, apperrors.ErrTimeout):
		return fasthttp.StatusGatewayTimeout
	default:
		return fasthttp.StatusInternalServerError
	}
}

// submitContext roots write flows. The fasthttp RequestCtx is recycled once the
// handler returns, and the confirmation watch outlives the request.
func submitContext() context.Context {
	return context.Background()
}

func readOptions(ctx *fasthttp.RequestCtx) []port.ReadOption {
	if ctx.QueryArgs().GetBool("refresh") {
		return []port.ReadOption{port.WithRefetch()}
	}
	return nil
}

