package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/common"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
)

const (
	nftPageLimit   = 400 // rippled maximum for account_nfts
	offerPageLimit = 500 // rippled maximum for nft_sell_offers
	maxPages       = 100
)

var (
	// ErrLedger wraps error results returned by the ledger server.
	ErrLedger = errors.New("ledger error")
	// ErrNotConnected is returned while no transport is open.
	ErrNotConnected = errors.New("ledger client not connected")
	// ErrUnknownNetwork is returned for a network without a configured endpoint.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrObjectNotFound is the ledger's objectNotFound result. It also wraps ErrLedger.
	ErrObjectNotFound = errors.New("ledger object not found")
)

// transport sends one command and decodes its result into out.
type transport interface {
	request(ctx context.Context, command string, params map[string]any, out any) error
	close() error
}

// LedgerClient owns the single connection to a ledger server. Switching
// networks is an explicit transition: the current transport is closed and a
// new one is dialed. On dial failure the client stays disconnected.
type LedgerClient struct {
	mu        sync.RWMutex
	endpoints map[string]string
	network   string
	transport transport
	logger    *zap.Logger
}

// NewLedgerClient creates a disconnected client. endpoints maps a network
// name to its URL; http(s) URLs use JSON-RPC, ws(s) URLs use WebSocket.
func NewLedgerClient(endpoints map[string]string, logger *zap.Logger) *LedgerClient {
	eps := make(map[string]string, len(endpoints))
	for name, endpoint := range endpoints {
		if endpoint != "" {
			eps[name] = endpoint
		}
	}
	return &LedgerClient{
		endpoints: eps,
		logger:    logging.OrNop(logger).Named("ledger"),
	}
}

// Networks returns the configured network names, sorted.
func (c *LedgerClient) Networks() []string {
	names := make([]string, 0, len(c.endpoints))
	for name := range c.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Network returns the connected network, or "" when disconnected.
func (c *LedgerClient) Network() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.network
}

// Connect connects to network. It is a no-op when already connected to it.
func (c *LedgerClient) Connect(ctx context.Context, network string) error {
	if c.Network() == network {
		return nil
	}
	return c.SwitchNetwork(ctx, network)
}

// SwitchNetwork closes the current transport and dials network.
func (c *LedgerClient) SwitchNetwork(ctx context.Context, network string) error {
	endpoint, ok := c.endpoints[network]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()

	t, err := dial(ctx, endpoint, c.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", network, err)
	}
	// servers answer ping with an empty success result
	if err := t.request(ctx, "ping", nil, nil); err != nil {
		_ = t.close()
		return fmt.Errorf("failed to reach %s: %w", network, err)
	}

	c.transport = t
	c.network = network
	c.logger.Info("connected", zap.String("network", network), zap.String("endpoint", endpoint))
	return nil
}

// Close closes the transport. The client can be connected again afterwards.
func (c *LedgerClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *LedgerClient) closeLocked() error {
	if c.transport == nil {
		return nil
	}
	err := c.transport.close()
	c.logger.Info("disconnected", zap.String("network", c.network))
	c.transport = nil
	c.network = ""
	return err
}

func (c *LedgerClient) request(ctx context.Context, command string, params map[string]any, out any) error {
	c.mu.RLock()
	t := c.transport
	c.mu.RUnlock()
	if t == nil {
		return ErrNotConnected
	}
	return t.request(ctx, command, params, out)
}

type accountNFTsResult struct {
	AccountNFTs []model.NFToken `json:"account_nfts"`
	Marker      any             `json:"marker,omitempty"`
}

// AccountNFTs returns every NFT owned by address in ledger order, following
// marker pagination.
func (c *LedgerClient) AccountNFTs(ctx context.Context, address string) ([]model.NFToken, error) {
	nfts := []model.NFToken{}
	var marker any

	for page := 0; page < maxPages; page++ {
		params := map[string]any{
			"account":      address,
			"ledger_index": "validated",
			"limit":        nftPageLimit,
		}
		if marker != nil {
			params["marker"] = marker
		}

		var res accountNFTsResult
		if err := c.request(ctx, "account_nfts", params, &res); err != nil {
			return nil, fmt.Errorf("failed to get account nfts: %w", err)
		}
		nfts = append(nfts, res.AccountNFTs...)

		if res.Marker == nil {
			return nfts, nil
		}
		marker = res.Marker
	}
	return nil, fmt.Errorf("failed to get account nfts: more than %d pages", maxPages)
}

type ledgerOffer struct {
	Index       string          `json:"nft_offer_index"`
	Owner       string          `json:"owner"`
	Amount      json.RawMessage `json:"amount"`
	Destination string          `json:"destination,omitempty"`
	Expiration  uint32          `json:"expiration,omitempty"`
	Flags       uint32          `json:"flags"`
}

type sellOffersResult struct {
	Offers []ledgerOffer `json:"offers"`
	Marker any           `json:"marker,omitempty"`
}

// NFTSellOffers returns the sell offers for tokenID, following marker
// pagination. A token without offers yields an empty list: the ledger
// reports that case as objectNotFound.
func (c *LedgerClient) NFTSellOffers(ctx context.Context, tokenID string) ([]model.NFTOffer, error) {
	offers := []model.NFTOffer{}
	var marker any

	for page := 0; page < maxPages; page++ {
		params := map[string]any{
			"nft_id":       tokenID,
			"ledger_index": "validated",
			"limit":        offerPageLimit,
		}
		if marker != nil {
			params["marker"] = marker
		}

		var res sellOffersResult
		err := c.request(ctx, "nft_sell_offers", params, &res)
		switch {
		case errors.Is(err, ErrObjectNotFound):
			return offers, nil
		case err != nil:
			return nil, fmt.Errorf("failed to get sell offers: %w", err)
		}

		for _, o := range res.Offers {
			amount, err := parseAmount(o.Amount)
			if err != nil {
				return nil, fmt.Errorf("failed to get sell offers: offer %s: %w", o.Index, err)
			}
			offers = append(offers, model.NFTOffer{
				Index:       o.Index,
				Owner:       o.Owner,
				Amount:      amount,
				Destination: o.Destination,
				Expiration:  o.Expiration,
				Flags:       o.Flags,
			})
		}

		if res.Marker == nil {
			return offers, nil
		}
		marker = res.Marker
	}
	return nil, fmt.Errorf("failed to get sell offers: more than %d pages", maxPages)
}

// parseAmount reads a ledger amount: a drops string for XRP or an
// issued-currency object.
func parseAmount(raw json.RawMessage) (model.Amount, error) {
	var drops string
	if err := json.Unmarshal(raw, &drops); err == nil {
		value, err := common.DropsToXRP(drops)
		if err != nil {
			return model.Amount{}, err
		}
		return model.Amount{Currency: "XRP", Value: value}, nil
	}

	var issued model.Amount
	if err := json.Unmarshal(raw, &issued); err != nil {
		return model.Amount{}, fmt.Errorf("invalid amount: %w", err)
	}
	if issued.Currency == "" || issued.Value == "" {
		return model.Amount{}, fmt.Errorf("invalid amount: %s", raw)
	}
	return issued, nil
}

// ledgerStatus carries the error fields rippled puts next to every result.
type ledgerStatus struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (s ledgerStatus) err() error {
	if s.Status != "error" && s.Error == "" {
		return nil
	}
	msg := s.ErrorMessage
	if msg == "" {
		msg = s.Error
	}
	err := fmt.Errorf("%w: %s (%d): %s", ErrLedger, s.Error, s.ErrorCode, msg)
	if s.Error == "objectNotFound" {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	return err
}

// decodeResult checks the status fields of raw and decodes it into out.
func decodeResult(command string, raw json.RawMessage, out any) error {
	var status ledgerStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return fmt.Errorf("%s: failed to decode result: %w", command, err)
	}
	if err := status.err(); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: failed to decode result: %w", command, err)
	}
	return nil
}

func dial(ctx context.Context, endpoint string, logger *zap.Logger) (transport, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return newRPCTransport(endpoint), nil
	case "ws", "wss":
		return dialWS(ctx, endpoint, logger)
	default:
		return nil, fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
	}
}
