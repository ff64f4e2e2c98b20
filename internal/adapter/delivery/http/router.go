package http

import (
	"github.com/fasthttp/router"
	"go.uber.org/zap"

	handler "bam-donation/internal/adapter/handler/http"
)

// RegisterRoutes sets up the donation API routes and the health check.
func RegisterRoutes(r *router.Router, h *handler.DonationHandler, logger *zap.Logger) {
	logger.Info("Setting up network routes...")
	r.GET("/networks", h.GetNetworks)
	r.GET("/networks/{chainId:[0-9]+}", h.GetNetwork)
	r.GET("/networks/{chainId:[0-9]+}/rpcs", h.GetNetworkRPCs)

	logger.Info("Setting up donation routes...")
	chains := r.Group("/chains/{chainId:[0-9]+}")
	chains.GET("/donations", h.GetDonations)
	chains.GET("/donations/{index}/claimed", h.GetDonationClaimed)
	chains.GET("/donors/{address}/donations", h.GetDonorDonations)
	chains.GET("/balance", h.GetBalance)
	chains.GET("/tokens/{token}/balance", h.GetTokenBalance)
	chains.GET("/tokens/{token}/allowance/{owner}", h.GetAllowance)
	chains.GET("/nft/{address}", h.GetNFTStatus)
	chains.POST("/donate", h.Donate)
	chains.POST("/donate-token", h.DonateToken)
	chains.POST("/approve", h.Approve)
	chains.POST("/claim", h.ClaimNFT)

	r.GET("/transactions/{id}", h.GetTransaction)

	logger.Info("Setting up health check route...")
	r.GET("/health", h.Health)

	logger.Info("All routes registered.")
}
