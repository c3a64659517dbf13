package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/xrpl-wallet/internal/client"
	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
	"github.com/AlexZinkM/xrpl-wallet/internal/kv"
	"github.com/AlexZinkM/xrpl-wallet/internal/metadata"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
)

const (
	addr = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	seed = "sEdTM1uX8pu2do5XvTnutH6HsouMaM2"
)

type fakeLedger struct {
	network string
	tokens  []model.NFToken
	offers  map[string][]model.NFTOffer
	err     error
}

func (f *fakeLedger) AccountNFTs(_ context.Context, address string) ([]model.NFToken, error) {
	if f.network == "" {
		return nil, client.ErrNotConnected
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

func (f *fakeLedger) NFTSellOffers(_ context.Context, tokenID string) ([]model.NFTOffer, error) {
	if f.network == "" {
		return nil, client.ErrNotConnected
	}
	if f.err != nil {
		return nil, f.err
	}
	offers, ok := f.offers[tokenID]
	if !ok {
		return []model.NFTOffer{}, nil
	}
	return offers, nil
}

func (f *fakeLedger) Network() string    { return f.network }
func (f *fakeLedger) Networks() []string { return []string{"devnet", "testnet"} }

func (f *fakeLedger) SwitchNetwork(_ context.Context, network string) error {
	f.network = ""
	switch network {
	case "devnet", "testnet":
		f.network = network
		return nil
	case "mainnet":
		return fmt.Errorf("%w: %q", client.ErrUnknownNetwork, network)
	default:
		return fmt.Errorf("failed to connect to %s: refused", network)
	}
}

type nameResolver struct{}

func (nameResolver) Resolve(_ context.Context, rawURI, tokenID string) model.NFTMetadata {
	if rawURI == "" {
		return metadata.Fallback(tokenID)
	}
	return model.NFTMetadata{Name: rawURI, Attributes: []model.Attribute{}}
}

func newVault(t *testing.T) *vault.Vault {
	t.Helper()
	v := vault.New(kv.NewMemStore(), []byte("pw"), vault.WithKDF(crypto.DefaultKDF().WithN(1<<10)))
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWalletHandler(t *testing.T) {
	v := newVault(t)
	h := NewWalletHandler(v, nil)

	rec := do(h.Wallet, http.MethodGet, "/wallet", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNoWallet, decodeError(t, rec).Code)

	rec = do(h.Import, http.MethodPost, "/wallet/import",
		`{"seed":"`+seed+`","address":"`+addr+`","publicKey":"ED0A"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), seed)

	var wallet model.WalletResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wallet))
	assert.Equal(t, addr, wallet.Address)
	assert.Equal(t, "full", wallet.Kind)
	assert.NotEmpty(t, wallet.QR)

	rec = do(h.Wallet, http.MethodGet, "/wallet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), seed)

	rec = do(h.ReadOnly, http.MethodPost, "/wallet/readonly", `{"address":"`+addr+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wallet))
	assert.True(t, wallet.ReadOnly)

	rec = do(h.Wallet, http.MethodDelete, "/wallet", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, v.Exists())

	rec = do(h.Wallet, http.MethodPost, "/wallet", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWalletHandlerValidation(t *testing.T) {
	h := NewWalletHandler(newVault(t), nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
	}{
		{"bad json", h.Import, `{`},
		{"unknown field", h.ReadOnly, `{"address":"` + addr + `","extra":1}`},
		{"missing seed", h.Import, `{"address":"` + addr + `"}`},
		{"bad checksum", h.ReadOnly, `{"address":"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYf"}`},
		{"bad public key", h.ReadOnly, `{"address":"` + addr + `","publicKey":"xyz"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(tt.handler, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, CodeInvalidRequest, decodeError(t, rec).Code)
		})
	}

	rec := do(h.Import, http.MethodGet, "/wallet/import", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNFTHandlerList(t *testing.T) {
	v := newVault(t)
	ledger := &fakeLedger{network: "testnet", tokens: []model.NFToken{
		{NFTokenID: "TOKEN-000001", URI: "first", TransferFee: 500},
		{NFTokenID: "TOKEN-000002"},
	}}
	h := NewNFTHandler(v, ledger, nameResolver{}, 4, nil)

	rec := do(h.List, http.MethodGet, "/nfts", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, v.Store(vault.ReadOnlyCredential{Address: addr}))

	rec = do(h.List, http.MethodGet, "/nfts", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.NFTListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, addr, resp.Address)
	assert.Equal(t, "testnet", resp.Network)
	require.Len(t, resp.NFTs, 2)
	assert.Equal(t, "first", resp.NFTs[0].Metadata.Name)
	assert.Equal(t, "0.500", resp.NFTs[0].TransferFee)
	assert.Equal(t, "NFT #000002", resp.NFTs[1].Metadata.Name)
	assert.Equal(t, "No metadata available", resp.NFTs[1].Metadata.Description)

	ledger.err = fmt.Errorf("account_nfts: %w: actNotFound", client.ErrLedger)
	rec = do(h.List, http.MethodGet, "/nfts", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "actNotFound")

	ledger.network = ""
	rec = do(h.List, http.MethodGet, "/nfts", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeLedgerUnavailable, decodeError(t, rec).Code)
}

func TestNFTHandlerMetadata(t *testing.T) {
	h := NewNFTHandler(newVault(t), &fakeLedger{}, nameResolver{}, 1, nil)

	rec := do(h.Metadata, http.MethodGet, "/nfts/metadata?tokenId=ABCDEF123456", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"NFT #123456","description":"No metadata available","image":"","attributes":[]}`, rec.Body.String())

	rec = do(h.Metadata, http.MethodGet, "/nfts/metadata?uri=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNFTHandlerOffers(t *testing.T) {
	const token = "000800006203F49C21D5D6E022CB16DE3538F248662FC73C0000000100000001"
	ledger := &fakeLedger{network: "testnet", offers: map[string][]model.NFTOffer{
		token: {{Index: "OFFER1", Owner: addr, Amount: model.Amount{Currency: "XRP", Value: "1.500000"}, Flags: 1}},
	}}
	h := NewNFTHandler(newVault(t), ledger, nameResolver{}, 1, nil)

	rec := do(h.Offers, http.MethodGet, "/nfts/offers?tokenId="+token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"tokenId": "`+token+`",
		"network": "testnet",
		"offers": [{"nft_offer_index":"OFFER1","owner":"`+addr+`","amount":{"currency":"XRP","value":"1.500000"},"flags":1}]
	}`, rec.Body.String())

	other := strings.Repeat("0", 64)
	rec = do(h.Offers, http.MethodGet, "/nfts/offers?tokenId="+other, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"offers":[]`)

	for _, bad := range []string{"", "?tokenId=ABC", "?tokenId=" + strings.Repeat("Z", 64)} {
		rec = do(h.Offers, http.MethodGet, "/nfts/offers"+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", bad)
		assert.Equal(t, CodeInvalidRequest, decodeError(t, rec).Code)
	}

	rec = do(h.Offers, http.MethodPost, "/nfts/offers?tokenId="+token, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	ledger.network = ""
	rec = do(h.Offers, http.MethodGet, "/nfts/offers?tokenId="+token, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNetworkHandler(t *testing.T) {
	ledger := &fakeLedger{network: "testnet"}
	h := NewNetworkHandler(ledger, nil)

	rec := do(h.Network, http.MethodGet, "/network", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"network":"testnet","connected":true,"networks":["devnet","testnet"]}`, rec.Body.String())

	rec = do(h.Network, http.MethodPut, "/network", `{"network":"devnet"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "devnet", ledger.network)

	rec = do(h.Network, http.MethodPut, "/network", `{"network":"mainnet"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeUnknownNetwork, decodeError(t, rec).Code)

	rec = do(h.Network, http.MethodPut, "/network", `{"network":"offline"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(h.Network, http.MethodGet, "/network", "")
	assert.JSONEq(t, `{"network":"","connected":false,"networks":["devnet","testnet"]}`, rec.Body.String())

	rec = do(h.Network, http.MethodPut, "/network", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
