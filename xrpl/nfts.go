package xrpl

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/xrpl-wallet/internal/common"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
)

// NFTSource lists the NFTs an account owns.
type NFTSource interface {
	AccountNFTs(ctx context.Context, address string) ([]model.NFToken, error)
}

// MetadataResolver resolves a raw token URI. It must always return a record.
type MetadataResolver interface {
	Resolve(ctx context.Context, rawURI, tokenID string) model.NFTMetadata
}

// ListNFTs fetches the NFTs of address and resolves their metadata with at
// most concurrency resolutions in flight. The result keeps ledger order.
func ListNFTs(ctx context.Context, source NFTSource, resolver MetadataResolver, address string, concurrency int) ([]model.NFT, error) {
	tokens, err := source.AccountNFTs(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list nfts: %w", err)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	nfts := make([]model.NFT, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, token := range tokens {
		g.Go(func() error {
			nfts[i] = model.NFT{
				TokenID:     token.NFTokenID,
				Issuer:      token.Issuer,
				Taxon:       token.NFTokenTaxon,
				Serial:      token.Serial,
				Flags:       token.Flags,
				TransferFee: common.TransferFeeToPercent(token.TransferFee),
				Metadata:    resolver.Resolve(gctx, token.URI, token.NFTokenID),
			}
			return nil
		})
	}
	// goroutines never fail; Wait only joins them
	_ = g.Wait()

	return nfts, nil
}
