package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/client"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
	"github.com/AlexZinkM/xrpl-wallet/xrpl"
)

// Ledger is the part of the ledger client the handlers use
type Ledger interface {
	AccountNFTs(ctx context.Context, address string) ([]model.NFToken, error)
	NFTSellOffers(ctx context.Context, tokenID string) ([]model.NFTOffer, error)
	Network() string
	Networks() []string
	SwitchNetwork(ctx context.Context, network string) error
}

// NFTHandler serves NFTs of the stored wallet
type NFTHandler struct {
	vault       *vault.Vault
	ledger      Ledger
	resolver    xrpl.MetadataResolver
	concurrency int
	logger      *zap.Logger
}

// NewNFTHandler creates a new NFTHandler
func NewNFTHandler(v *vault.Vault, ledger Ledger, resolver xrpl.MetadataResolver, concurrency int, logger *zap.Logger) *NFTHandler {
	return &NFTHandler{
		vault:       v,
		ledger:      ledger,
		resolver:    resolver,
		concurrency: concurrency,
		logger:      logging.OrNop(logger).Named("nft"),
	}
}

// List handles GET /nfts
// @Summary      List NFTs
// @Description  Lists the NFTs of the stored wallet with resolved metadata, in ledger order
// @Tags         nft
// @Produce      json
// @Success      200  {object}  model.NFTListResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /nfts [get]
func (h *NFTHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	summary, ok := h.vault.Summary()
	if !ok {
		writeError(w, http.StatusNotFound, CodeNoWallet, "no wallet configured")
		return
	}

	nfts, err := xrpl.ListNFTs(r.Context(), h.ledger, h.resolver, summary.Address, h.concurrency)
	if err != nil {
		writeLedgerError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NFTListResponse{
		Address: summary.Address,
		Network: h.ledger.Network(),
		NFTs:    nfts,
	})
}

// Metadata handles GET /nfts/metadata
// @Summary      Resolve token metadata
// @Description  Resolves a raw on-chain URI. Always answers with a record; unresolvable tokens get a placeholder
// @Tags         nft
// @Produce      json
// @Param        uri      query     string  false  "Raw URI field (hex, base64 or plain)"
// @Param        tokenId  query     string  true   "NFTokenID"
// @Success      200      {object}  model.NFTMetadata
// @Router       /nfts/metadata [get]
func (h *NFTHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query()
	if q.Get("tokenId") == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "tokenId is required")
		return
	}

	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), q.Get("uri"), q.Get("tokenId")))
}

// Offers handles GET /nfts/offers
// @Summary      List sell offers
// @Description  Lists the open sell offers of an NFT on the current network
// @Tags         nft
// @Produce      json
// @Param        tokenId  query     string  true  "NFTokenID (64 hex characters)"
// @Success      200      {object}  model.NFTOffersResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /nfts/offers [get]
func (h *NFTHandler) Offers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	req := model.NFTOffersRequest{TokenID: r.URL.Query().Get("tokenId")}
	if err := validateRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	offers, err := h.ledger.NFTSellOffers(r.Context(), req.TokenID)
	if err != nil {
		writeLedgerError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NFTOffersResponse{
		TokenID: req.TokenID,
		Network: h.ledger.Network(),
		Offers:  offers,
	})
}

func writeLedgerError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, client.ErrNotConnected):
		writeError(w, http.StatusServiceUnavailable, CodeLedgerUnavailable, "ledger not connected")
	case errors.Is(err, client.ErrUnknownNetwork):
		writeError(w, http.StatusBadRequest, CodeUnknownNetwork, "unknown network")
	case errors.Is(err, client.ErrLedger):
		logger.Warn("ledger request failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, CodeLedgerError, "ledger request failed")
	default:
		logger.Warn("ledger unreachable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, CodeLedgerUnavailable, "ledger unreachable")
	}
}
