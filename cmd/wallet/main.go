// @title        XRPL Wallet API
// @version      1.0
// @description  Local XRPL wallet: credential vault and NFT metadata resolution.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"go.uber.org/zap"

	_ "github.com/AlexZinkM/xrpl-wallet/docs"
	"github.com/AlexZinkM/xrpl-wallet/internal/api"
	"github.com/AlexZinkM/xrpl-wallet/internal/client"
	"github.com/AlexZinkM/xrpl-wallet/internal/config"
	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
	"github.com/AlexZinkM/xrpl-wallet/internal/kv"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/metadata"
	"github.com/AlexZinkM/xrpl-wallet/internal/uri"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	app := zapp.New(zapp.WithName("xrpl-wallet"))
	defer func() {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("shutdown: %w", closeErr)
		}
	}()

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if err := config.Init(); err != nil {
		return err
	}

	rootLogger, err := logging.Build(config.GetLogFile())
	if err != nil {
		return fmt.Errorf("failed to initialize log: %w", err)
	}
	app.Track(zapp.CloserFunc(func() error {
		_ = rootLogger.Sync() // fails on console outputs
		return nil
	}))
	zap.ReplaceGlobals(rootLogger)
	logger := rootLogger.Named("main")

	if err := config.PromptForPassword(); err != nil {
		return err
	}
	password, err := config.GetVaultPasswordBytes()
	if err != nil {
		return err
	}

	store, err := kv.NewFileStore(config.GetVaultDir())
	if err != nil {
		return err
	}
	v := vault.New(store, password,
		vault.WithKDF(crypto.DefaultKDF().WithN(config.GetVaultKDFN())),
		vault.WithLogger(rootLogger),
	)
	zcrypto.Erase(password)
	config.ClearPassword()
	app.Track(v)

	if migrated, err := v.Migrate(); err != nil {
		logger.Warn("legacy vault slot not migrated", zap.Error(err))
	} else if migrated {
		logger.Info("legacy vault slot migrated")
	}

	ledger := client.NewLedgerClient(config.GetLedgerEndpoints(), rootLogger)
	app.Track(ledger)
	// the API stays up without a ledger; PUT /network retries
	if err := ledger.Connect(ctx, config.GetLedgerNetwork()); err != nil {
		logger.Warn("ledger not connected", zap.Error(err))
	}

	resolver := metadata.NewService(
		uri.NewResolver(config.GetIPFSGateways()...),
		client.NewMetadataClient(config.GetMetadataTimeout()),
		rootLogger,
	)

	srv := &http.Server{
		Addr: ":" + config.GetPort(),
		Handler: api.SetupRouter(api.Deps{
			Vault:               v,
			Ledger:              ledger,
			Metadata:            resolver,
			MetadataConcurrency: config.GetMetadataConcurrency(),
			Logger:              rootLogger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("wallet server started", zap.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server closed with error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
