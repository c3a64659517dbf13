// Package uri classifies decoded token URIs and maps content-addressed
// references onto fetchable HTTP URLs.
package uri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultGateway is used when a Resolver is built without gateways.
const DefaultGateway = "https://ipfs.io/ipfs/"

const (
	dataJSONPrefix = "data:application/json"
	ipfsScheme     = "ipfs://"
	ipfsPathPrefix = "/ipfs/"

	// direct links from this pinning provider are unreliable
	filebaseHost = "ipfs.filebase.io"
)

var (
	// ErrEmptyURI is returned for an empty decoded URI.
	ErrEmptyURI = errors.New("empty uri")
	// ErrMalformedDataURI is returned for a data URI without payload or with a bad encoding.
	ErrMalformedDataURI = errors.New("malformed data uri")
)

var (
	cidV0Pattern = regexp.MustCompile(`^Qm[1-9A-HJ-NP-Za-km-z]{44}`)
	cidV1Pattern = regexp.MustCompile(`^bafy[a-z2-7]{55}`)
)

// Kind is the classification of a resolved URI.
type Kind int

const (
	// KindDataLiteral carries an inline JSON document.
	KindDataLiteral Kind = iota
	// KindHTTPURL carries a URL to fetch.
	KindHTTPURL
)

func (k Kind) String() string {
	switch k {
	case KindDataLiteral:
		return "DataLiteral"
	case KindHTTPURL:
		return "HttpUrl"
	default:
		return "Unknown"
	}
}

// Resolved is either an inline JSON document or a URL to fetch.
type Resolved struct {
	Kind Kind
	JSON []byte // set for KindDataLiteral
	URL  string // set for KindHTTPURL
}

// Resolver maps URIs through an ordered gateway list. Only the first gateway
// is used for a given resolution; the rest are kept so the primary can be
// replaced by configuration without touching callers.
type Resolver struct {
	gateways []string
}

// NewResolver creates a Resolver. Each gateway is normalised to end in "/".
func NewResolver(gateways ...string) *Resolver {
	gw := make([]string, 0, len(gateways))
	for _, g := range gateways {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if !strings.HasSuffix(g, "/") {
			g += "/"
		}
		gw = append(gw, g)
	}
	if len(gw) == 0 {
		gw = append(gw, DefaultGateway)
	}
	return &Resolver{gateways: gw}
}

// Gateways returns a copy of the ordered gateway list.
func (r *Resolver) Gateways() []string {
	out := make([]string, len(r.gateways))
	copy(out, r.gateways)
	return out
}

// Gateway returns the gateway used for resolution. A zero Resolver uses
// DefaultGateway.
func (r *Resolver) Gateway() string {
	if len(r.gateways) == 0 {
		return DefaultGateway
	}
	return r.gateways[0]
}

// ClassifyAndResolve classifies decoded and produces an inline JSON document
// or a fetchable URL:
//   - data:application/json[;base64],<payload> -> DataLiteral
//   - ipfs://<cid>[/path]                     -> gateway URL
//   - http(s)://...                           -> as-is, filebase links rewritten to the gateway
//   - anything else is treated as a bare content identifier
func (r *Resolver) ClassifyAndResolve(decoded string) (Resolved, error) {
	s := strings.TrimSpace(decoded)
	if s == "" {
		return Resolved{}, ErrEmptyURI
	}

	switch {
	case strings.HasPrefix(s, dataJSONPrefix):
		doc, err := decodeDataURI(s)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Kind: KindDataLiteral, JSON: doc}, nil
	case strings.HasPrefix(s, ipfsScheme):
		return Resolved{Kind: KindHTTPURL, URL: r.fromIPFS(s)}, nil
	case isHTTP(s):
		return Resolved{Kind: KindHTTPURL, URL: r.rewriteHTTP(s)}, nil
	case strings.HasPrefix(s, ipfsPathPrefix):
		return Resolved{Kind: KindHTTPURL, URL: r.Gateway() + strings.TrimPrefix(s, ipfsPathPrefix)}, nil
	default:
		return Resolved{Kind: KindHTTPURL, URL: r.Gateway() + s}, nil
	}
}

// ToHTTP normalises an image or media reference. Unlike ClassifyAndResolve it
// only routes strings that look content-addressed through the gateway;
// anything unrecognised (including data:image URIs) is returned unchanged.
func (r *Resolver) ToHTTP(ref string) string {
	s := strings.TrimSpace(ref)
	switch {
	case s == "":
		return ""
	case isHTTP(s):
		return r.rewriteHTTP(s)
	case strings.HasPrefix(s, ipfsScheme):
		return r.fromIPFS(s)
	case cidV0Pattern.MatchString(s), cidV1Pattern.MatchString(s):
		return r.Gateway() + s
	case strings.HasPrefix(s, "/") && strings.Contains(s, "ipfs/"):
		return r.Gateway() + s[strings.Index(s, "ipfs/")+len("ipfs/"):]
	default:
		return s
	}
}

func (r *Resolver) fromIPFS(s string) string {
	cid := strings.TrimPrefix(s, ipfsScheme)
	// ipfs://ipfs/<cid> shows up in older mints
	cid = strings.TrimPrefix(cid, "ipfs/")
	return r.Gateway() + cid
}

func (r *Resolver) rewriteHTTP(s string) string {
	u, err := url.Parse(s)
	if err != nil || !strings.Contains(u.Host, filebaseHost) {
		return s
	}
	_, path, found := strings.Cut(s, ipfsPathPrefix)
	if !found || path == "" {
		return s
	}
	return r.Gateway() + path
}

func isHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// decodeDataURI extracts the payload after the first comma, base64-decoding
// it when the header says so and percent-decoding it otherwise.
func decodeDataURI(s string) ([]byte, error) {
	header, payload, found := strings.Cut(s, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing payload", ErrMalformedDataURI)
	}

	if strings.Contains(strings.ToLower(header), ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
		}
		return b, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	return []byte(text), nil
}
