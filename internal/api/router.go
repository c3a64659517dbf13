package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/handler"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
	"github.com/AlexZinkM/xrpl-wallet/xrpl"
)

// Deps are the long-lived resources the handlers share
type Deps struct {
	Vault               *vault.Vault
	Ledger              handler.Ledger
	Metadata            xrpl.MetadataResolver
	MetadataConcurrency int
	Logger              *zap.Logger
}

// SetupRouter sets up router with handlers
func SetupRouter(d Deps) http.Handler {
	walletHandler := handler.NewWalletHandler(d.Vault, d.Logger)
	nftHandler := handler.NewNFTHandler(d.Vault, d.Ledger, d.Metadata, d.MetadataConcurrency, d.Logger)
	networkHandler := handler.NewNetworkHandler(d.Ledger, d.Logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet", walletHandler.Wallet)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/readonly", walletHandler.ReadOnly)

	// NFT endpoints
	mux.HandleFunc("/nfts", nftHandler.List)
	mux.HandleFunc("/nfts/metadata", nftHandler.Metadata)
	mux.HandleFunc("/nfts/offers", nftHandler.Offers)

	// Ledger network
	mux.HandleFunc("/network", networkHandler.Network)

	return mux
}
