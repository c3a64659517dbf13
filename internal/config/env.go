package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the vault password is prompted at runtime and stored in memory - use GetVaultPasswordBytes()
type Config struct {
	Port                string        `envconfig:"PORT" default:"8080"`
	VaultDir            string        `envconfig:"VAULT_DIR" required:"true"`
	VaultKDFN           int           `envconfig:"VAULT_KDF_N" default:"262144"`
	IPFSGateways        []string      `envconfig:"IPFS_GATEWAYS" default:"https://ipfs.io/ipfs/"`
	MetadataTimeout     time.Duration `envconfig:"METADATA_TIMEOUT" default:"10s"`
	MetadataConcurrency int           `envconfig:"METADATA_CONCURRENCY" default:"8"`
	LedgerNetwork       string        `envconfig:"LEDGER_NETWORK" default:"testnet"`
	LedgerMainnetURL    string        `envconfig:"LEDGER_MAINNET_URL" default:"https://xrplcluster.com"`
	LedgerTestnetURL    string        `envconfig:"LEDGER_TESTNET_URL" default:"https://s.altnet.rippletest.net:51234"`
	LedgerDevnetURL     string        `envconfig:"LEDGER_DEVNET_URL" default:"https://s.devnet.rippletest.net:51234"`
	LogFile             string        `envconfig:"LOG_FILE"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.VaultDir == "" {
		return errors.New("VAULT_DIR not set")
	}
	if len(c.IPFSGateways) == 0 {
		return errors.New("IPFS_GATEWAYS must contain at least one gateway")
	}
	if c.MetadataConcurrency < 1 {
		return errors.New("METADATA_CONCURRENCY must be positive")
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetVaultDir returns the directory holding the vault slot
func GetVaultDir() string {
	return Get().VaultDir
}

// GetVaultKDFN returns the scrypt cost used when sealing credentials
func GetVaultKDFN() int {
	return Get().VaultKDFN
}

// GetIPFSGateways returns the ordered gateway list
func GetIPFSGateways() []string {
	return Get().IPFSGateways
}

// GetMetadataTimeout returns the metadata fetch timeout
func GetMetadataTimeout() time.Duration {
	return Get().MetadataTimeout
}

// GetMetadataConcurrency returns how many metadata documents may be resolved at once
func GetMetadataConcurrency() int {
	return Get().MetadataConcurrency
}

// GetLedgerNetwork returns the network the ledger client connects to at startup
func GetLedgerNetwork() string {
	return Get().LedgerNetwork
}

// GetLedgerEndpoints returns ledger endpoints keyed by network name
func GetLedgerEndpoints() map[string]string {
	c := Get()
	return map[string]string{
		"mainnet": c.LedgerMainnetURL,
		"testnet": c.LedgerTestnetURL,
		"devnet":  c.LedgerDevnetURL,
	}
}

// GetLogFile returns the log file path, empty for console logging
func GetLogFile() string {
	return Get().LogFile
}

var passwordBytes []byte

// PromptForPassword prompts the user for the vault password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter vault password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	setPassword(raw)
	zcrypto.Erase(raw)
	return nil
}

func setPassword(raw []byte) {
	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
}

// GetVaultPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetVaultPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// ClearPassword zeroes and drops the stored password. Call it once the vault
// holds its own copy.
func ClearPassword() {
	zcrypto.Erase(passwordBytes)
	passwordBytes = nil
}
