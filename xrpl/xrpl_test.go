package xrpl

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/xrpl-wallet/internal/crypto"
	"github.com/AlexZinkM/xrpl-wallet/internal/kv"
	"github.com/AlexZinkM/xrpl-wallet/internal/metadata"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/vault"
)

const (
	addr      = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	otherAddr = "r9cZA1mLK5R5Am25ArfXFmqgNwjZgnfk59"
)

func newVault(t *testing.T) *vault.Vault {
	t.Helper()
	v := vault.New(kv.NewMemStore(), []byte("pw"), vault.WithKDF(crypto.DefaultKDF().WithN(1<<10)))
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func TestWalletLifecycle(t *testing.T) {
	v := newVault(t)

	_, err := Describe(v)
	assert.ErrorIs(t, err, vault.ErrNoWallet)

	resp, err := ImportWallet(v, vault.FullCredential{Address: addr, PublicKey: "ED01", Seed: vault.Secret("sEdSeed")})
	require.NoError(t, err)
	assert.Equal(t, addr, resp.Address)
	assert.Equal(t, "full", resp.Kind)
	assert.False(t, resp.ReadOnly)
	require.NotNil(t, resp.CreatedAt)

	png, err := base64.StdEncoding.DecodeString(resp.QR)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	resp, err = AddReadOnlyWallet(v, otherAddr, "")
	require.NoError(t, err)
	assert.Equal(t, otherAddr, resp.Address)
	assert.Equal(t, "readonly", resp.Kind)
	assert.True(t, resp.ReadOnly)

	_, err = v.LoadSigner()
	assert.ErrorIs(t, err, vault.ErrReadOnly)

	require.NoError(t, Logout(v))
	_, err = Describe(v)
	assert.ErrorIs(t, err, vault.ErrNoWallet)
}

func TestWalletRejectsInvalid(t *testing.T) {
	v := newVault(t)

	_, err := AddReadOnlyWallet(v, "rNope", "")
	assert.ErrorIs(t, err, vault.ErrInvalidCredential)

	_, err = ImportWallet(v, vault.FullCredential{Address: addr})
	assert.ErrorIs(t, err, vault.ErrInvalidCredential)
}

type fakeSource struct {
	tokens []model.NFToken
	err    error
}

func (f fakeSource) AccountNFTs(_ context.Context, _ string) ([]model.NFToken, error) {
	return f.tokens, f.err
}

// slowResolver records peak parallelism; later tokens finish first.
type slowResolver struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (r *slowResolver) Resolve(_ context.Context, rawURI, tokenID string) model.NFTMetadata {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Duration(len(rawURI)) * time.Millisecond)
	if rawURI == "" {
		return metadata.Fallback(tokenID)
	}
	return model.NFTMetadata{Name: rawURI, Attributes: []model.Attribute{}}
}

func TestListNFTs(t *testing.T) {
	uris := []string{"aaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaa", "", "aaaaa", "a", "aaaaaaaaaaaaaaa"}
	tokens := make([]model.NFToken, len(uris))
	for i, u := range uris {
		tokens[i] = model.NFToken{
			NFTokenID:   "00080000TOKEN" + string(rune('A'+i)),
			URI:         u,
			Issuer:      addr,
			TransferFee: uint16(i * 1250),
			Serial:      uint32(i),
		}
	}

	resolver := &slowResolver{}
	nfts, err := ListNFTs(context.Background(), fakeSource{tokens: tokens}, resolver, addr, 2)
	require.NoError(t, err)
	require.Len(t, nfts, len(tokens))

	for i, nft := range nfts {
		assert.Equal(t, tokens[i].NFTokenID, nft.TokenID)
		assert.Equal(t, uint32(i), nft.Serial)
	}
	assert.Equal(t, "aaaaa", nfts[3].Metadata.Name)
	assert.Equal(t, "NFT #TOKENC", nfts[2].Metadata.Name)
	assert.Equal(t, "No metadata available", nfts[2].Metadata.Description)
	assert.Equal(t, "0.000", nfts[0].TransferFee)
	assert.Equal(t, "2.500", nfts[2].TransferFee)
	assert.LessOrEqual(t, resolver.peak.Load(), int32(2))
}

func TestListNFTsEmptyAndError(t *testing.T) {
	nfts, err := ListNFTs(context.Background(), fakeSource{tokens: []model.NFToken{}}, &slowResolver{}, addr, 0)
	require.NoError(t, err)
	assert.NotNil(t, nfts)
	assert.Empty(t, nfts)

	boom := errors.New("boom")
	_, err = ListNFTs(context.Background(), fakeSource{err: boom}, &slowResolver{}, addr, 4)
	assert.ErrorIs(t, err, boom)
}
