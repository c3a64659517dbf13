// One-off: rewrite a legacy base64 vault slot in the sealed envelope format.
// Usage: VAULT_DIR=... go run ./cmd/migrate_vault
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/core/pkg/zcrypto"

	"github.com/AlexZinkM/xrpl-wallet/internal/config"
	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
	"github.com/AlexZinkM/xrpl-wallet/internal/kv"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	app := zapp.New(zapp.WithName("migrate_vault"))
	defer func() {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("shutdown: %w", closeErr)
		}
	}()

	if err := config.Init(); err != nil {
		return err
	}

	logger, err := logging.BuildDevelopmentLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize log: %w", err)
	}
	app.Track(zapp.CloserFunc(func() error {
		_ = logger.Sync() // fails on console outputs
		return nil
	}))

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
		vault.WithLogger(logger),
	)
	zcrypto.Erase(password)
	config.ClearPassword()
	app.Track(v)

	migrated, err := v.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if !migrated {
		fmt.Println("nothing to migrate")
		return nil
	}

	// read back with the same password before reporting success
	c, ok := v.Load()
	if !ok {
		return errors.New("migrated slot cannot be read back")
	}
	if full, ok := c.(vault.FullCredential); ok {
		full.Wipe()
	}
	fmt.Printf("migrated %s wallet %s\n", c.Kind(), c.Account().Address)
	return nil
}
