package metadata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlexZinkM/xrpl-wallet/internal/model"
	"github.com/AlexZinkM/xrpl-wallet/internal/uri"
)

// Upstream hosts disagree on where fields live (xSPECTAR, altImageData,
// OpenSea-like). Each field has its own ordered list of extraction rules;
// the first rule that yields a value wins. A new schema shape is supported by
// adding a rule, not by branching on schema names.

type stringRule func(doc map[string]any) string

var imageRules = []stringRule{
	func(d map[string]any) string { return str(d, "image") },
	func(d map[string]any) string { return str(d, "properties", "image", "description") },
	func(d map[string]any) string { return str(d, "properties", "image") },
	func(d map[string]any) string { return str(d, "properties", "files", 0, "uri") },
	func(d map[string]any) string { return str(d, "alternative_sources", "image", 0) },
	func(d map[string]any) string { return str(d, "altImageData", "centralisedUri") },
}

var attributeRules = []func(doc map[string]any) []model.Attribute{
	func(d map[string]any) []model.Attribute { return attributes(lookup(d, "attributes")) },
	func(d map[string]any) []model.Attribute { return attributes(lookup(d, "traits")) },
}

var collectionRules = []func(doc map[string]any) *model.Collection{
	func(d map[string]any) *model.Collection {
		if name := str(d, "collection"); name != "" {
			return &model.Collection{Name: name}
		}
		return &model.Collection{
			Name:        str(d, "collection", "name"),
			Description: str(d, "collection", "description"),
			Family:      str(d, "collection", "family"),
		}
	},
	func(d map[string]any) *model.Collection {
		return &model.Collection{
			Name:        first(str(d, "properties", "collection", "name"), str(d, "collection_name")),
			Description: first(str(d, "properties", "collection", "description"), str(d, "collection_description")),
		}
	},
}

// Normalizer reconciles upstream metadata documents into model.NFTMetadata.
type Normalizer struct {
	resolver *uri.Resolver
}

// NewNormalizer creates a Normalizer that routes image references through resolver.
func NewNormalizer(resolver *uri.Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize builds a fully populated record from doc. Missing paths degrade
// to defaults; it never fails.
func (n *Normalizer) Normalize(doc map[string]any, tokenID string) model.NFTMetadata {
	md := model.NFTMetadata{
		Name:        first(str(doc, "name"), FallbackName(tokenID)),
		Description: str(doc, "description"),
		Attributes:  []model.Attribute{},
	}

	for _, rule := range imageRules {
		if img := rule(doc); img != "" {
			md.Image = n.resolver.ToHTTP(img)
			break
		}
	}

	for _, rule := range attributeRules {
		if attrs := rule(doc); len(attrs) > 0 {
			md.Attributes = attrs
			break
		}
	}

	for _, rule := range collectionRules {
		if c := rule(doc); c.Name != "" {
			md.Collection = c
			break
		}
	}

	return md
}

// FallbackName is the placeholder name derived from a token identifier.
func FallbackName(tokenID string) string {
	if len(tokenID) > 6 {
		tokenID = tokenID[len(tokenID)-6:]
	}
	return "NFT #" + tokenID
}

// lookup walks doc along path; string steps index objects, int steps index
// arrays. Any mismatch yields nil.
func lookup(doc map[string]any, path ...any) any {
	var cur any = doc
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = obj[key]
		case int:
			arr, ok := cur.([]any)
			if !ok || key >= len(arr) {
				return nil
			}
			cur = arr[key]
		}
	}
	return cur
}

// str returns the trimmed string at path, or "" when absent or not a string.
func str(doc map[string]any, path ...any) string {
	s, _ := lookup(doc, path...).(string)
	return strings.TrimSpace(s)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// attributes converts a JSON array of trait objects, keeping upstream order.
// Non-object entries are skipped; scalar values are rendered as text.
func attributes(v any) []model.Attribute {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Attribute, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Attribute{
			TraitType: scalar(obj["trait_type"]),
			Value:     scalar(obj["value"]),
		})
	}
	return out
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool, float64:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
