package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
	"github.com/AlexZinkM/xrpl-wallet/xrpl"
)

// WalletHandler serves the stored identity
type WalletHandler struct {
	vault  *vault.Vault
	logger *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(v *vault.Vault, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		vault:  v,
		logger: logging.OrNop(logger).Named("wallet"),
	}
}

// Wallet handles GET and DELETE /wallet
// @Summary      Get or remove the stored wallet
// @Description  GET returns the stored identity and a receive QR code; DELETE logs out
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet [get]
// @Router       /wallet [delete]
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp, err := xrpl.Describe(h.vault)
		if errors.Is(err, vault.ErrNoWallet) {
			writeError(w, http.StatusNotFound, CodeNoWallet, "no wallet configured")
			return
		}
		if err != nil {
			writeInternal(w, h.logger, "failed to describe wallet", err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		if err := xrpl.Logout(h.vault); err != nil {
			writeInternal(w, h.logger, "failed to log out", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "GET, DELETE")
	}
}

// Import handles POST /wallet/import
// @Summary      Import a wallet
// @Description  Stores a full (signing) credential, replacing any stored wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Credential"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req model.ImportWalletRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	cred := vault.FullCredential{
		Address:    req.Address,
		PublicKey:  req.PublicKey,
		Seed:       vault.Secret(req.Seed),
		PrivateKey: vault.Secret(req.PrivateKey),
	}
	defer cred.Wipe()

	resp, err := xrpl.ImportWallet(h.vault, cred)
	h.respondStored(w, resp, err)
}

// ReadOnly handles POST /wallet/readonly
// @Summary      Add a read-only wallet
// @Description  Stores an address to observe, replacing any stored wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ReadOnlyWalletRequest  true  "Address"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/readonly [post]
func (h *WalletHandler) ReadOnly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req model.ReadOnlyWalletRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	resp, err := xrpl.AddReadOnlyWallet(h.vault, req.Address, req.PublicKey)
	h.respondStored(w, resp, err)
}

func (h *WalletHandler) respondStored(w http.ResponseWriter, resp *model.WalletResponse, err error) {
	switch {
	case errors.Is(err, vault.ErrInvalidCredential):
		writeError(w, http.StatusBadRequest, CodeInvalidCredential, err.Error())
	case err != nil:
		writeInternal(w, h.logger, "failed to store wallet", err)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}
