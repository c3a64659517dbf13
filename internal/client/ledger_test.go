package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/xrpl-wallet/internal/model"
)

const (
	owner   = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	issuer  = "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"
	tokenA  = "000800006203F49C21D5D6E022CB16DE3538F248662FC73C00000001"
	tokenB  = "000800006203F49C21D5D6E022CB16DE3538F248662FC73C00000002"
	tokenC  = "000800006203F49C21D5D6E022CB16DE3538F248662FC73C00000003"
	uriHexA = "697066733A2F2F516D"
)

// fakeLedger answers ping, a two-page account_nfts for owner and a two-page
// nft_sell_offers for tokenA. Other tokens have no offers.
func fakeLedger(command string, params map[string]any) map[string]any {
	switch command {
	case "ping":
		return map[string]any{"status": "success"}
	case "account_nfts":
		if params["account"] != owner {
			return map[string]any{
				"status":        "error",
				"error":         "actNotFound",
				"error_code":    19,
				"error_message": "Account not found.",
			}
		}
		if params["marker"] == nil {
			return map[string]any{
				"status":  "success",
				"account": owner,
				"marker":  "page-2",
				"account_nfts": []map[string]any{
					{"NFTokenID": tokenA, "URI": uriHexA, "Issuer": owner, "Flags": 8, "NFTokenTaxon": 0, "TransferFee": 2500, "nft_serial": 1},
					{"NFTokenID": tokenB, "Issuer": owner, "Flags": 0, "NFTokenTaxon": 7, "nft_serial": 2},
				},
			}
		}
		return map[string]any{
			"status":  "success",
			"account": owner,
			"account_nfts": []map[string]any{
				{"NFTokenID": tokenC, "Issuer": owner, "NFTokenTaxon": 7, "nft_serial": 3},
			},
		}
	case "nft_sell_offers":
		if params["nft_id"] != tokenA {
			return map[string]any{
				"status":        "error",
				"error":         "objectNotFound",
				"error_code":    92,
				"error_message": "The requested object was not found.",
			}
		}
		if params["marker"] == nil {
			return map[string]any{
				"status": "success",
				"nft_id": tokenA,
				"marker": "offers-2",
				"offers": []map[string]any{
					{"nft_offer_index": "OFFER1", "owner": owner, "amount": "1500000", "flags": 1},
				},
			}
		}
		return map[string]any{
			"status": "success",
			"nft_id": tokenA,
			"offers": []map[string]any{
				{
					"nft_offer_index": "OFFER2",
					"owner":           owner,
					"amount":          map[string]any{"currency": "USD", "issuer": issuer, "value": "12.5"},
					"destination":     issuer,
					"expiration":      800000000,
					"flags":           1,
				},
			},
		}
	default:
		return map[string]any{"status": "error", "error": "unknownCmd", "error_code": 32}
	}
}

func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string           `json:"method"`
			Params []map[string]any `json:"params"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		params := map[string]any{}
		if len(req.Params) > 0 {
			params = req.Params[0]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"result": fakeLedger(req.Method, params)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// an unsolicited stream message must be ignored
		_ = conn.WriteJSON(map[string]any{"type": "ledgerClosed", "ledger_index": 1})

		for {
			var req map[string]any
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			command, _ := req["command"].(string)
			if command == "hang_up" {
				return
			}
			res := fakeLedger(command, req)
			reply := map[string]any{"id": req["id"], "type": "response", "status": res["status"]}
			if res["status"] == "error" {
				for k, v := range res {
					reply[k] = v
				}
			} else {
				reply["result"] = res
			}
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws://" + strings.TrimPrefix(srv.URL, "http://")
}

func TestLedgerClientTransports(t *testing.T) {
	endpoints := map[string]string{
		"rpc": newRPCServer(t).URL,
		"ws":  wsURL(newWSServer(t)),
	}

	for _, network := range []string{"rpc", "ws"} {
		t.Run(network, func(t *testing.T) {
			c := NewLedgerClient(endpoints, nil)
			defer c.Close()
			ctx := context.Background()

			require.NoError(t, c.Connect(ctx, network))
			assert.Equal(t, network, c.Network())

			nfts, err := c.AccountNFTs(ctx, owner)
			require.NoError(t, err)
			require.Len(t, nfts, 3)
			assert.Equal(t, model.NFToken{
				NFTokenID:   tokenA,
				URI:         uriHexA,
				Issuer:      owner,
				Flags:       8,
				TransferFee: 2500,
				Serial:      1,
			}, nfts[0])
			assert.Equal(t, []string{tokenA, tokenB, tokenC},
				[]string{nfts[0].NFTokenID, nfts[1].NFTokenID, nfts[2].NFTokenID})
			assert.Equal(t, uint32(7), nfts[2].NFTokenTaxon)

			_, err = c.AccountNFTs(ctx, "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe")
			assert.ErrorIs(t, err, ErrLedger)
			assert.Contains(t, err.Error(), "actNotFound")

			offers, err := c.NFTSellOffers(ctx, tokenA)
			require.NoError(t, err)
			assert.Equal(t, []model.NFTOffer{
				{
					Index:  "OFFER1",
					Owner:  owner,
					Amount: model.Amount{Currency: "XRP", Value: "1.500000"},
					Flags:  1,
				},
				{
					Index:       "OFFER2",
					Owner:       owner,
					Amount:      model.Amount{Currency: "USD", Issuer: issuer, Value: "12.5"},
					Destination: issuer,
					Expiration:  800000000,
					Flags:       1,
				},
			}, offers)

			offers, err = c.NFTSellOffers(ctx, tokenB)
			require.NoError(t, err, "a token without offers is not an error")
			assert.NotNil(t, offers)
			assert.Empty(t, offers)
		})
	}
}

func TestLedgerClientSwitchNetwork(t *testing.T) {
	c := NewLedgerClient(map[string]string{
		"testnet": newRPCServer(t).URL,
		"devnet":  wsURL(newWSServer(t)),
		"down":    "ws://127.0.0.1:1",
		"bogus":   "ftp://example.com",
		"unset":   "",
	}, nil)
	defer c.Close()
	ctx := context.Background()

	assert.Equal(t, []string{"bogus", "devnet", "down", "testnet"}, c.Networks())

	_, err := c.AccountNFTs(ctx, owner)
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, c.Connect(ctx, "testnet"))
	require.NoError(t, c.SwitchNetwork(ctx, "devnet"))
	assert.Equal(t, "devnet", c.Network())

	err = c.SwitchNetwork(ctx, "mainnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	assert.Equal(t, "devnet", c.Network(), "unknown network must not drop the connection")

	require.Error(t, c.SwitchNetwork(ctx, "down"))
	assert.Empty(t, c.Network())
	_, err = c.AccountNFTs(ctx, owner)
	assert.ErrorIs(t, err, ErrNotConnected)

	require.Error(t, c.SwitchNetwork(ctx, "bogus"))
	assert.Empty(t, c.Network())

	require.NoError(t, c.Connect(ctx, "testnet"))
	require.NoError(t, c.Close())
	assert.Empty(t, c.Network())
}

func TestWSTransportServerHangsUp(t *testing.T) {
	srv := newWSServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr, err := dialWS(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	defer tr.close()

	require.NoError(t, tr.request(ctx, "ping", nil, nil))

	err = tr.request(ctx, "hang_up", nil, nil)
	assert.ErrorIs(t, err, ErrNotConnected)

	err = tr.request(ctx, "ping", nil, nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestWSTransportContext(t *testing.T) {
	srv := newWSServer(t)
	tr, err := dialWS(context.Background(), wsURL(srv), nil)
	require.NoError(t, err)
	defer tr.close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// the reply may race the cancellation; either outcome leaves no pending entry
	_ = tr.request(ctx, "ping", nil, nil)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	assert.Empty(t, tr.pending)
}

func TestObjectNotFoundStatus(t *testing.T) {
	err := ledgerStatus{Status: "error", Error: "objectNotFound", ErrorCode: 92}.err()
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, err, ErrLedger)

	err = ledgerStatus{Status: "error", Error: "actNotFound", ErrorCode: 19}.err()
	assert.ErrorIs(t, err, ErrLedger)
	assert.NotErrorIs(t, err, ErrObjectNotFound)

	assert.NoError(t, ledgerStatus{Status: "success"}.err())
}

func TestParseAmount(t *testing.T) {
	got, err := parseAmount(json.RawMessage(`"250"`))
	require.NoError(t, err)
	assert.Equal(t, model.Amount{Currency: "XRP", Value: "0.000250"}, got)

	got, err = parseAmount(json.RawMessage(`{"currency":"USD","issuer":"` + issuer + `","value":"1"}`))
	require.NoError(t, err)
	assert.Equal(t, model.Amount{Currency: "USD", Issuer: issuer, Value: "1"}, got)

	for _, bad := range []string{`"-5"`, `"1.5"`, `{}`, `42`, `null`} {
		_, err := parseAmount(json.RawMessage(bad))
		assert.Error(t, err, "amount %s", bad)
	}
}
