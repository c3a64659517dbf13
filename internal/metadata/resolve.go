// Package metadata turns an on-chain token URI into a normalized metadata
// record. Resolution never fails from the caller's point of view: every
// failure degrades into a placeholder record.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/codec"
	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/uri"
)

// FallbackDescription is shown for tokens whose metadata could not be resolved.
const FallbackDescription = "No metadata available"

var (
	// ErrEmptyURI means the token carries no URI.
	ErrEmptyURI = errors.New("token has no uri")
	// ErrUnreachableHost covers transport failures, timeouts and non-2xx statuses.
	ErrUnreachableHost = errors.New("metadata host unreachable")
	// ErrMalformedJSON means the payload is not a JSON object.
	ErrMalformedJSON = errors.New("malformed metadata json")
)

// Fetcher performs a single GET for a metadata document.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// Service drives decode, classify, fetch and normalize for one token.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	resolver   *uri.Resolver
	normalizer *Normalizer
	fetcher    Fetcher
	logger     *zap.Logger
}

// NewService creates a metadata Service.
func NewService(resolver *uri.Resolver, fetcher Fetcher, logger *zap.Logger) *Service {
	return &Service{
		resolver:   resolver,
		normalizer: NewNormalizer(resolver),
		fetcher:    fetcher,
		logger:     logging.OrNop(logger).Named("metadata"),
	}
}

// Resolve always returns a record. Failures are logged and replaced by
// Fallback(tokenID).
func (s *Service) Resolve(ctx context.Context, rawURI, tokenID string) model.NFTMetadata {
	md, err := s.ResolveDetailed(ctx, rawURI, tokenID)
	if err != nil {
		s.logger.Debug("metadata fallback",
			zap.String("tokenId", tokenID),
			zap.Error(err),
		)
		return Fallback(tokenID)
	}
	return md
}

// ResolveDetailed is Resolve without the fallback: the returned error wraps
// ErrEmptyURI, ErrUnreachableHost or ErrMalformedJSON.
func (s *Service) ResolveDetailed(ctx context.Context, rawURI, tokenID string) (model.NFTMetadata, error) {
	decoded, enc := codec.Detect(rawURI)

	resolved, err := s.resolver.ClassifyAndResolve(decoded)
	switch {
	case errors.Is(err, uri.ErrEmptyURI):
		return model.NFTMetadata{}, ErrEmptyURI
	case err != nil:
		return model.NFTMetadata{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	s.logger.Debug("resolved token uri",
		zap.String("tokenId", tokenID),
		zap.Stringer("encoding", enc),
		zap.Stringer("kind", resolved.Kind),
		zap.String("url", resolved.URL),
	)

	payload := resolved.JSON
	if resolved.Kind == uri.KindHTTPURL {
		payload, err = s.fetcher.FetchJSON(ctx, resolved.URL)
		if err != nil {
			return model.NFTMetadata{}, fmt.Errorf("%w: %v", ErrUnreachableHost, err)
		}
	}

	doc, err := parseObject(payload)
	if err != nil {
		return model.NFTMetadata{}, err
	}
	return s.normalizer.Normalize(doc, tokenID), nil
}

// Fallback is the placeholder record for an unresolvable token.
func Fallback(tokenID string) model.NFTMetadata {
	return model.NFTMetadata{
		Name:        FallbackName(tokenID),
		Description: FallbackDescription,
		Attributes:  []model.Attribute{},
	}
}

func parseObject(payload []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: data after top-level value", ErrMalformedJSON)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", ErrMalformedJSON, v)
	}
	return doc, nil
}
