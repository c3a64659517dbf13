package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
)

// NetworkHandler reads and switches the ledger network
type NetworkHandler struct {
	ledger Ledger
	logger *zap.Logger
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(ledger Ledger, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		ledger: ledger,
		logger: logging.OrNop(logger).Named("network"),
	}
}

// Network handles GET and PUT /network
// @Summary      Ledger network
// @Description  GET returns the connected network; PUT reconnects to another configured network
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  false  "Target network (PUT)"
// @Success      200      {object}  model.NetworkResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /network [get]
// @Router       /network [put]
func (h *NetworkHandler) Network(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.status())
	case http.MethodPut:
		var req model.NetworkRequest
		if err := decodeRequest(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
		if err := h.ledger.SwitchNetwork(r.Context(), req.Network); err != nil {
			writeLedgerError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, h.status())
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (h *NetworkHandler) status() model.NetworkResponse {
	network := h.ledger.Network()
	return model.NetworkResponse{
		Network:   network,
		Connected: network != "",
		Networks:  h.ledger.Networks(),
	}
}
